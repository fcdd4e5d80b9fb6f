// Package commands defines the brief CLI.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brief",
	Short: "Web3 + AI daily briefing generator",
	Long: `brief collects trending content from GitHub, crypto news feeds,
Reddit and Hacker News, analyzes it with Gemini, and renders a grouped
Markdown briefing.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()
	return rootCmd.Execute()
}
