// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-contrib-stats/internal/config"
	"github.com/naka-gawa/github-contrib-stats/internal/gateway"
	"github.com/naka-gawa/github-contrib-stats/internal/logging"
	"github.com/naka-gawa/github-contrib-stats/internal/render"
	"github.com/naka-gawa/github-contrib-stats/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregates GitHub contribution activity and writes JSON, SVG and Markdown reports",
	Long: `Aggregates commits, pull requests, issues and languages for a GitHub user across
their own repositories and the configured organizations, then writes
github-stats.json, github-stats.svg and github-stats.md to the output directory.
The access token is read from GH_TOKEN (or GITHUB_TOKEN).`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger, err := logging.New(verbose)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			logger.Fatal("failed to load configuration", zap.Error(err))
		}

		ctx := context.Background()
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, cfg.PerPage, logger)
		if err != nil {
			logger.Fatal("failed to create GitHub gateway", zap.Error(err))
		}
		aggregator := usecase.NewAggregator(githubGateway, logger)

		stats, err := aggregator.Aggregate(ctx, usecase.Options{
			User:          cfg.User,
			Organizations: cfg.Organizations,
			ExcludedRepos: usecase.ExcludeSet(cfg.ExcludeRepos),
			Concurrency:   cfg.Concurrency,
		})
		if err != nil {
			logger.Fatal("failed to aggregate stats", zap.Error(err))
		}

		displayName, err := githubGateway.FetchDisplayName(ctx, cfg.User)
		if err != nil {
			logger.Warn("using login as display name", zap.Error(err))
			displayName = cfg.User
		}

		meta := render.Meta{DisplayName: displayName, Date: time.Now()}
		if err := render.WriteAll(cfg.OutputDir, stats, meta, logger, render.Default()...); err != nil {
			logger.Fatal("failed to write reports", zap.Error(err))
		}

		if summary, _ := cmd.Flags().GetBool("summary"); summary {
			render.WriteSummary(cmd.OutOrStdout(), stats)
		}
		logger.Info("GitHub stats generated", zap.Int("failed_fetches", len(stats.Failures)))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("user", "u", "", "Target GitHub user name")
	statsCmd.Flags().StringSliceP("org", "o", nil, "Organization to include (repeatable)")
	statsCmd.Flags().StringSliceP("exclude", "e", nil, "Repository name to exclude (repeatable)")
	statsCmd.Flags().String("output-dir", "", "Directory the reports are written to")
	statsCmd.Flags().Int("concurrency", 0, "Number of repositories fetched in parallel")
	statsCmd.Flags().Duration("timeout", 0, "Deadline for the whole run, e.g. 10m (0 disables it)")
	statsCmd.Flags().Bool("summary", false, "Print a per-repository table to stdout")
}
