// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/rnaudi/releases/internal/domain"
)

// FetchLimit is the fixed cap on fetched merged pull requests per project.
// A result count equal to the cap means older history may be truncated;
// callers warn and proceed rather than paginating further.
const FetchLimit = 500

// pageSize is the GraphQL search page size; the search API caps it at 100.
const pageSize = 100

// Fetcher defines the behavior of a gateway for fetching merged pull
// requests from GitHub.
type Fetcher interface {
	FetchReleases(ctx context.Context, repo, base string) ([]domain.Release, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// mergedPRQuery pages through merged pull requests of one repository via
// the search API. Search tops out at 1000 results, comfortably above
// FetchLimit.
type mergedPRQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Edges []struct {
			Node struct {
				Typename    string `graphql:"__typename"`
				PullRequest struct {
					Number   githubv4.Int
					MergedAt githubv4.DateTime
					Author   struct {
						Login githubv4.String
					}
				} `graphql:"... on PullRequest"`
			}
		}
	} `graphql:"search(query: $query, type: ISSUE, first: $pageSize, after: $cursor)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// FetchReleases lists merged pull requests for repo targeting the given
// base branch, up to FetchLimit, sorted ascending by merge date. Any
// transport or auth failure is returned as-is: the caller treats it as
// fatal for the run, with no retry.
func (g *GitHubGateway) FetchReleases(ctx context.Context, repo, base string) ([]domain.Release, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		return nil, fmt.Errorf("repository %q is not in owner/name form", repo)
	}

	// Validate the repository first so an unknown or inaccessible repo
	// fails with a clear error instead of an empty search result.
	g.logger.Printf("Validating repository %s...", repo)
	if _, _, err := g.restClient.Repositories.Get(ctx, owner, name); err != nil {
		return nil, fmt.Errorf("failed to resolve repository %s: %w", repo, err)
	}

	query := fmt.Sprintf("repo:%s base:%s is:pr is:merged", repo, base)
	variables := map[string]interface{}{
		"query":    githubv4.String(query),
		"pageSize": githubv4.Int(pageSize),
		"cursor":   (*githubv4.String)(nil),
	}

	g.logger.Printf("Fetching merged pull requests for %s (base %s)...", repo, base)
	releases := make([]domain.Release, 0, pageSize)
	for {
		var q mergedPRQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to search merged pull requests for %s: %w", repo, err)
		}
		for _, edge := range q.Search.Edges {
			pr := edge.Node.PullRequest
			if edge.Node.Typename != "PullRequest" || pr.MergedAt.IsZero() {
				continue
			}
			releases = append(releases, domain.NewRelease(int(pr.Number), pr.MergedAt.Time, string(pr.Author.Login)))
			if len(releases) == FetchLimit {
				g.logger.Printf("Reached fetch limit of %d for %s.", FetchLimit, repo)
				sortByDate(releases)
				return releases, nil
			}
		}
		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of merged pull requests...")
	}
	g.logger.Printf("Fetched %d merged pull requests for %s.", len(releases), repo)

	sortByDate(releases)
	return releases, nil
}

// sortByDate orders releases ascending by date. Lexicographic comparison
// is correct because dates are fixed-width YYYY-MM-DD; number breaks ties
// for a stable order within a day.
func sortByDate(releases []domain.Release) {
	sort.Slice(releases, func(i, j int) bool {
		if releases[i].Date != releases[j].Date {
			return releases[i].Date < releases[j].Date
		}
		return releases[i].Number < releases[j].Number
	})
}
