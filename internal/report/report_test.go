package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnaudi/releases/internal/domain"
	"github.com/rnaudi/releases/internal/usecase"
)

func sampleStats(t *testing.T) map[string]*domain.ProjectStats {
	t.Helper()
	release := func(number int, date string) domain.Release {
		r, err := domain.ParseRelease(number, date, "alice")
		require.NoError(t, err)
		return r
	}
	return map[string]*domain.ProjectStats{
		"app": usecase.Aggregate("My App", []domain.Release{
			release(1, "2024-01-05"),
			release(2, "2024-01-12"),
			release(3, "2024-02-02"),
		}),
		"lib": usecase.Aggregate("My Lib", nil),
	}
}

// extractPayload pulls the embedded JSON object back out of the rendered
// document so tests can verify it byte-for-byte against the input.
func extractPayload(t *testing.T, doc string) (order []string, projects map[string]*domain.ProjectStats) {
	t.Helper()
	const marker = "const DATA = "
	start := strings.Index(doc, marker)
	require.GreaterOrEqual(t, start, 0, "document must embed the data object")
	rest := doc[start+len(marker):]
	end := strings.Index(rest, ";\n")
	require.GreaterOrEqual(t, end, 0)

	var payload struct {
		Order    []string                        `json:"order"`
		Projects map[string]*domain.ProjectStats `json:"projects"`
	}
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &payload))
	return payload.Order, payload.Projects
}

func TestRenderer_Render(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)
	statsByID := sampleStats(t)
	metas := []ProjectMeta{{ID: "app", Name: "My App"}, {ID: "lib", Name: "My Lib"}}

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, metas, statsByID))
	doc := buf.String()

	// The embedded payload must match the aggregated stats exactly, and
	// carry an explicit order list for tab display.
	order, projects := extractPayload(t, doc)
	assert.Equal(t, []string{"app", "lib"}, order)
	assert.Equal(t, statsByID, projects)

	// UI chrome present: tabs container, theme toggle, heatmap, charts.
	assert.Contains(t, doc, `id="tabs"`)
	assert.Contains(t, doc, `id="theme-toggle"`)
	assert.Contains(t, doc, `id="heatmap"`)
	assert.Contains(t, doc, `id="chart-monthly"`)
	assert.Contains(t, doc, `id="chart-weekly"`)
}

func TestRenderer_Render_OrderFollowsInput(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)
	statsByID := sampleStats(t)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, []ProjectMeta{{ID: "lib", Name: "My Lib"}, {ID: "app", Name: "My App"}}, statsByID))

	order, _ := extractPayload(t, buf.String())
	assert.Equal(t, []string{"lib", "app"}, order)
}

func TestRenderer_Render_MissingStats(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Render(&buf, []ProjectMeta{{ID: "ghost", Name: "Ghost"}}, map[string]*domain.ProjectStats{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
	assert.Zero(t, buf.Len(), "nothing should be written on failure")
}

func TestRenderer_Render_NoProjects(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, renderer.Render(&buf, nil, nil))
}
