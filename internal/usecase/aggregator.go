// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/rnaudi/releases/internal/cache"
	"github.com/rnaudi/releases/internal/config"
	"github.com/rnaudi/releases/internal/domain"
	"github.com/rnaudi/releases/internal/gateway"
)

// Aggregator is the use case for producing per-project release statistics.
// It orchestrates the cache-or-fetch step and the aggregation itself.
type Aggregator struct {
	fetcher gateway.Fetcher
	store   *cache.Store
	logger  *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, store *cache.Store, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

// Run processes every configured project strictly in order: consult the
// cache (unless fresh), fetch and persist on miss, then aggregate. The
// returned map is keyed by project id. Warnings are non-fatal notices for
// the user (currently only fetch-limit truncation). Any error aborts the
// whole run; there is no per-project isolation.
func (a *Aggregator) Run(ctx context.Context, projects []config.Project, fresh bool) (map[string]*domain.ProjectStats, []string, error) {
	statsByID := make(map[string]*domain.ProjectStats, len(projects))
	var warnings []string

	for _, p := range projects {
		a.logger.Printf("Usecase: Processing project %s (%s)...", p.ID, p.Repo)

		releases, hit := []domain.Release(nil), false
		var err error
		if !fresh {
			releases, hit, err = a.store.Load(p.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("project %s: %w (delete the cache file or rerun with --fresh)", p.ID, err)
			}
		}
		if !hit {
			releases, err = a.fetcher.FetchReleases(ctx, p.Repo, p.Base)
			if err != nil {
				return nil, nil, fmt.Errorf("project %s: %w", p.ID, err)
			}
			if len(releases) == gateway.FetchLimit {
				warnings = append(warnings, fmt.Sprintf(
					"project %s returned exactly %d results; older pull requests may be missing",
					p.ID, gateway.FetchLimit))
			}
			if err := a.store.Save(p.ID, releases); err != nil {
				return nil, nil, fmt.Errorf("project %s: %w", p.ID, err)
			}
		} else {
			a.logger.Printf("Usecase: Cache hit for %s (%d releases).", p.ID, len(releases))
		}

		statsByID[p.ID] = Aggregate(p.Name, releases)
	}

	a.logger.Println("Usecase: All projects processed.")
	return statsByID, warnings, nil
}
