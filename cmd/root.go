// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-stats",
	Short: "A CLI tool to aggregate a GitHub user's contributions.",
	Long: `github-stats collects a user's contribution activity (commits, pull requests,
issues and language byte counts) across their own repositories and a list of
organizations, and renders it as JSON, an SVG badge and a Markdown report.`,
}

// Execute runs the root command and exits with status 1 when cobra reports an error.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file (default: ./github-stats.yaml if present)")
}
