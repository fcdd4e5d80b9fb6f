package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/app"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/config"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/logging"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/usecase"
)

var generateFlags struct {
	sources   []string
	aiOnly    bool
	web3Only  bool
	maxItems  int
	outputDir string
	daily     bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Collect, analyze and write today's briefing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if generateFlags.outputDir != "" {
			cfg.Report.OutputDir = generateFlags.outputDir
		}
		if generateFlags.maxItems > 0 {
			cfg.Scrape.MaxItems = generateFlags.maxItems
		}
		logger := logging.New(cfg.Logging.Level)

		a, err := app.New(cfg, logger)
		if err != nil {
			return err
		}

		opts := usecase.RunOptions{
			Sources:  generateFlags.sources,
			MaxItems: cfg.Scrape.MaxItems,
			AIOnly:   generateFlags.aiOnly,
			Web3Only: generateFlags.web3Only,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if generateFlags.daily {
			logger.Info("daily mode", "interval", cfg.Scheduler.Interval())
			return a.RunDaily(ctx, opts)
		}

		path, err := a.RunOnce(ctx, opts)
		if err != nil {
			return err
		}
		logger.Info("done", "brief", path)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringSliceVar(&generateFlags.sources, "sources", nil,
		"restrict to these sources (github, coindesk, cointelegraph, reddit, hackernews)")
	generateCmd.Flags().BoolVar(&generateFlags.aiOnly, "ai-only", false,
		"filter GitHub Trending with AI keywords only")
	generateCmd.Flags().BoolVar(&generateFlags.web3Only, "web3-only", false,
		"filter GitHub Trending with Web3 keywords only")
	generateCmd.Flags().IntVar(&generateFlags.maxItems, "max", 0,
		"max items per source and per analysis batch (0 = config default)")
	generateCmd.Flags().StringVar(&generateFlags.outputDir, "output-dir", "",
		"directory for the generated briefing (default from config)")
	generateCmd.Flags().BoolVar(&generateFlags.daily, "daily", false,
		"run immediately, then repeat on the configured interval")

	rootCmd.AddCommand(generateCmd)
}
