package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/analyzer"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/ports"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/report"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/scraper"
)

// Pipeline runs one end-to-end brief: fetch every requested source,
// filter and dedupe, enrich through the analyzer, attach market data,
// render the Markdown report and optionally publish it.
type Pipeline struct {
	registry *scraper.Registry
	analyzer *analyzer.Summarizer
	market   ports.MarketData
	builder  *report.Builder
	notifier ports.Notifier
	logger   *slog.Logger

	aiKeywords   []string
	web3Keywords []string
}

// PipelineDeps lists everything a Pipeline needs. Market and Notifier
// are optional; nil simply skips those stages.
type PipelineDeps struct {
	Registry     *scraper.Registry
	Analyzer     *analyzer.Summarizer
	Market       ports.MarketData
	Builder      *report.Builder
	Notifier     ports.Notifier
	Logger       *slog.Logger
	AIKeywords   []string
	Web3Keywords []string
}

// RunOptions selects which sources participate in a run and how the
// GitHub feed is filtered.
type RunOptions struct {
	// Sources restricts the run to these adapter names; empty means all
	// registered adapters.
	Sources []string

	// MaxItems caps both the per-source fetch and the analysis batch.
	MaxItems int

	// AIOnly / Web3Only narrow the GitHub Trending filter to one
	// keyword set. Setting neither applies both sets.
	AIOnly   bool
	Web3Only bool
}

// NewPipeline wires the stages together.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		registry:     deps.Registry,
		analyzer:     deps.Analyzer,
		market:       deps.Market,
		builder:      deps.Builder,
		notifier:     deps.Notifier,
		logger:       logger,
		aiKeywords:   deps.AIKeywords,
		web3Keywords: deps.Web3Keywords,
	}
}

// Run executes one full pipeline pass and returns the path of the
// written brief.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (string, error) {
	items := p.collect(ctx, opts)
	items = scraper.DeduplicateByURL(items)
	p.logger.Info("collection finished", "items", len(items))

	enriched := p.analyzer.BatchSummarize(ctx, items, opts.MaxItems)

	path, content, err := p.builder.Generate(enriched, p.marketSection(ctx))
	if err != nil {
		return "", fmt.Errorf("generate brief: %w", err)
	}
	p.logger.Info("brief written", "path", path)

	if p.notifier != nil {
		if err := p.notifier.PublishBrief(ctx, content); err != nil {
			p.logger.Warn("brief delivery failed", "error", err)
		}
	}
	return path, nil
}

// collect fetches every requested source in registration order. A
// failing adapter is logged and contributes zero items; it never aborts
// the others.
func (p *Pipeline) collect(ctx context.Context, opts RunOptions) []domain.Item {
	names := opts.Sources
	if len(names) == 0 {
		names = p.registry.Names()
	}

	req := scraper.Request{MaxItems: opts.MaxItems, Since: "daily"}

	var collected []domain.Item
	for _, name := range names {
		adapter, err := p.registry.Resolve(name)
		if err != nil {
			p.logger.Warn("unknown source skipped", "source", name)
			continue
		}

		items, err := adapter.Fetch(ctx, req)
		if err != nil {
			p.logger.Warn("source fetch failed", "source", name, "error", err)
			continue
		}
		if adapter.Source() == domain.SourceGitHub {
			items = p.filterGitHub(items, opts)
		}
		p.logger.Info("source fetched", "source", name, "items", len(items))
		collected = append(collected, items...)
	}
	return collected
}

// filterGitHub narrows trending repositories to the tracked sectors.
func (p *Pipeline) filterGitHub(items []domain.Item, opts RunOptions) []domain.Item {
	keywords := append(append([]string{}, p.aiKeywords...), p.web3Keywords...)
	switch {
	case opts.AIOnly && !opts.Web3Only:
		keywords = p.aiKeywords
	case opts.Web3Only && !opts.AIOnly:
		keywords = p.web3Keywords
	}
	return scraper.FilterByKeywords(items, keywords)
}

// marketSection gathers the optional market block. Each probe fails
// independently and only costs its own line in the report.
func (p *Pipeline) marketSection(ctx context.Context) report.MarketSection {
	var section report.MarketSection
	if p.market == nil {
		return section
	}

	snapshot, err := p.market.Snapshot(ctx)
	if err != nil {
		p.logger.Warn("market snapshot unavailable", "error", err)
	} else {
		section.Snapshot = snapshot
	}

	index, err := p.market.FearGreed(ctx)
	if err != nil {
		p.logger.Warn("fear & greed index unavailable", "error", err)
	} else {
		section.FearGreed = index
		section.HasFearGreed = true
	}
	return section
}
