// Package cache persists fetched releases as one CSV file per project so
// repeated runs do not refetch from the network. The files store only
// number, date and author; derived fields are recomputed on load so they
// always reflect the current week-numbering rule.
package cache

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rnaudi/releases/internal/domain"
)

var header = []string{"number", "date", "author"}

// Store reads and writes per-project cache files under a single directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created lazily
// on the first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the cache file path for a project id.
func (s *Store) Path(projectID string) string {
	return filepath.Join(s.dir, projectID+".csv")
}

// Load returns the cached releases for a project. The second return value
// is false on a cache miss (file absent). A malformed file is an error;
// there is no auto-repair and no fallback fetch.
func (s *Store) Load(projectID string) ([]domain.Release, bool, error) {
	f, err := os.Open(s.Path(projectID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("reading cache file for %s: %w", projectID, err)
	}
	if len(rows) == 0 || len(rows[0]) != 3 || rows[0][0] != header[0] {
		return nil, false, fmt.Errorf("cache file for %s: missing header row", projectID)
	}

	releases := make([]domain.Release, 0, len(rows)-1)
	for i, row := range rows[1:] {
		number, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, false, fmt.Errorf("cache file for %s, row %d: bad number %q", projectID, i+2, row[0])
		}
		r, err := domain.ParseRelease(number, row[1], row[2])
		if err != nil {
			return nil, false, fmt.Errorf("cache file for %s, row %d: %w", projectID, i+2, err)
		}
		releases = append(releases, r)
	}
	return releases, true, nil
}

// Save overwrites the project's cache file with the given releases, sorted
// ascending by date. The write is wholesale; a run is single-process and
// last writer wins.
func (s *Store) Save(projectID string, releases []domain.Release) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	sorted := make([]domain.Release, len(releases))
	copy(sorted, releases)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	f, err := os.Create(s.Path(projectID))
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing cache header: %w", err)
	}
	for _, r := range sorted {
		if err := w.Write([]string{strconv.Itoa(r.Number), r.Date, r.Author}); err != nil {
			return fmt.Errorf("writing cache row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing cache file: %w", err)
	}
	return f.Close()
}
