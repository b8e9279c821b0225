// Package cmd contains the CLI command for the application,
// built using the Cobra library.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/rnaudi/releases/internal/cache"
	"github.com/rnaudi/releases/internal/config"
	"github.com/rnaudi/releases/internal/gateway"
	"github.com/rnaudi/releases/internal/report"
	"github.com/rnaudi/releases/internal/usecase"
)

const (
	// cacheDir holds one CSV file per project, keyed by project id.
	cacheDir = "cache"
	// outputPath is the fixed report location, overwritten each run.
	outputPath = "release-report.html"
)

var rootCmd = &cobra.Command{
	Use:   "releases",
	Short: "Generates a release statistics dashboard from merged pull requests.",
	Long: `releases fetches merged pull requests for every project listed in
projects.yaml, caches them locally, aggregates them into monthly, yearly,
weekly and day-of-week statistics, and writes a self-contained HTML
dashboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		verbose, _ := cmd.Flags().GetBool("verbose")
		fresh, _ := cmd.Flags().GetBool("fresh")
		noOpen, _ := cmd.Flags().GetBool("no-open")

		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		cfg, err := config.Load(config.FileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "\nCreate %s with a non-empty project list, for example:\n\n"+
				"projects:\n"+
				"  - id: my-app\n"+
				"    name: My App\n"+
				"    repo: owner/name\n"+
				"    base: main\n", config.FileName)
			os.Exit(1)
		}

		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			fmt.Fprintln(os.Stderr, "Error: GITHUB_TOKEN environment variable is not set.")
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		fetcher, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(fetcher, cache.NewStore(cacheDir), logger)

		statsByID, warnings, err := aggregator.Run(ctx, cfg.Projects, fresh)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to collect release data: %v\n", err)
			os.Exit(1)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}

		renderer, err := report.NewRenderer()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to prepare report renderer: %v\n", err)
			os.Exit(1)
		}
		metas := make([]report.ProjectMeta, 0, len(cfg.Projects))
		for _, p := range cfg.Projects {
			metas = append(metas, report.ProjectMeta{ID: p.ID, Name: p.Name})
		}

		// Render fully in memory first so a failure never leaves a
		// truncated document behind.
		var buf bytes.Buffer
		if err := renderer.Render(&buf, metas, statsByID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render report: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d projects).\n", outputPath, len(cfg.Projects))

		if !noOpen {
			if err := browser.OpenFile(outputPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open %s: %v\n", outputPath, err)
			}
		}
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.Flags().Bool("fresh", false, "Bypass all per-project caches and re-fetch")
	rootCmd.Flags().Bool("no-open", false, "Skip opening the generated report in a browser")
}
