// Package report renders the aggregated statistics as one self-contained
// HTML dashboard. All interactivity (tabs, theme, charts) lives in the
// document itself; this package only embeds the data and the chrome.
package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/rnaudi/releases/internal/domain"
)

//go:embed template.html
var templateHTML string

// ProjectMeta identifies one project tab. The slice passed to Render fixes
// the tab order; map iteration order is never relied on.
type ProjectMeta struct {
	ID   string
	Name string
}

// payload is the JSON structure embedded in the document and read by its
// script layer.
type payload struct {
	Order    []string                        `json:"order"`
	Projects map[string]*domain.ProjectStats `json:"projects"`
}

// Renderer holds the parsed report template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Parse(templateHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the complete dashboard document. The statistics map must
// contain an entry for every project in the order slice.
func (r *Renderer) Render(w io.Writer, projects []ProjectMeta, statsByID map[string]*domain.ProjectStats) error {
	if len(projects) == 0 {
		return fmt.Errorf("no projects to render")
	}

	p := payload{
		Order:    make([]string, 0, len(projects)),
		Projects: statsByID,
	}
	for _, meta := range projects {
		if _, ok := statsByID[meta.ID]; !ok {
			return fmt.Errorf("missing statistics for project %s", meta.ID)
		}
		p.Order = append(p.Order, meta.ID)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling report data: %w", err)
	}

	return r.tmpl.Execute(w, struct {
		GeneratedAt string
		Data        template.JS
	}{
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		Data:        template.JS(data),
	})
}
