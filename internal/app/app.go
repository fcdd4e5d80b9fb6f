package app

import (
	"context"
	"log/slog"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/analyzer"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/config"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/infrastructure/llm"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/infrastructure/scheduler"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/infrastructure/scrape"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/infrastructure/telegram"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/ports"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/report"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/scraper"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/usecase"
)

// App assembles the configured pipeline and its scheduler.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New wires every stage from configuration. The only fatal condition is
// a missing text-generation credential.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}

	registry := scraper.NewRegistry()
	registry.Register(scrape.NewGitHub(nil))
	registry.Register(scrape.NewCoinDesk(nil))
	registry.Register(scrape.NewCoinTelegraph(nil))
	registry.Register(scrape.NewReddit(cfg.Scrape.Subreddit, cfg.Scrape.RedditSort, cfg.Scrape.RedditWindow, nil))
	registry.Register(scrape.NewHackerNews(cfg.Scrape.HNKeywords, cfg.Scrape.HNMinPoints, cfg.Scrape.HNHoursBack, nil))

	gemini := llm.NewGeminiClient(cfg.Gemini.APIKey, llm.WithModel(cfg.Gemini.Model))
	summarizer := analyzer.NewSummarizer(gemini, analyzer.Options{
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
		MaxAttempts:       cfg.Gemini.MaxAttempts,
		Cooldown:          cfg.Gemini.Cooldown(),
		Logger:            logger.With("component", "analyzer"),
	})

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Registry:     registry,
		Analyzer:     summarizer,
		Market:       scrape.NewMarket(nil),
		Builder:      report.NewBuilder(cfg.Report.OutputDir),
		Notifier:     notifier,
		Logger:       logger.With("component", "pipeline"),
		AIKeywords:   cfg.Scrape.AIKeywords,
		Web3Keywords: cfg.Scrape.Web3Keywords,
	})

	return &App{cfg: cfg, logger: logger, pipeline: pipeline}, nil
}

// RunOnce executes a single pipeline pass.
func (a *App) RunOnce(ctx context.Context, opts usecase.RunOptions) (string, error) {
	return a.pipeline.Run(ctx, opts)
}

// RunDaily runs the pipeline immediately and then on the configured
// interval until the context is cancelled.
func (a *App) RunDaily(ctx context.Context, opts usecase.RunOptions) error {
	sched := scheduler.NewTickerScheduler(a.cfg.Scheduler.Interval())
	runner := usecase.NewScheduledRunner(a.pipeline, sched, opts, a.logger.With("component", "scheduler"))
	if err := runner.Start(ctx); err != nil {
		return err
	}
	defer runner.Stop(context.Background())

	<-ctx.Done()
	return nil
}
