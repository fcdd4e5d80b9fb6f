package analyzer

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/infrastructure/llm"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/ports"
)

const (
	// defaultRequestsPerMinute matches the Gemini free tier; 5 rpm
	// spaces consecutive calls 12 seconds apart.
	defaultRequestsPerMinute = 5

	// maxAttempts counts the first try plus rate-limit retries.
	defaultMaxAttempts = 3

	// defaultCooldown is slept between rate-limited attempts.
	defaultCooldown = 30 * time.Second

	fallbackCategory     = "other"
	fallbackImportance   = 5
	fallbackSummaryRunes = 50
)

// Options tunes the analysis stage. Zero values select the defaults.
type Options struct {
	RequestsPerMinute int
	MaxAttempts       int
	Cooldown          time.Duration
	GitHubCategories  string
	NewsCategories    string
	Logger            *slog.Logger
}

// Summarizer turns Items into EnrichedItems through the external
// text-generation service. All calls for a batch share one limiter, so
// processing is strictly sequential; a single item's failure degrades
// to fallback enrichment and never aborts the batch.
type Summarizer struct {
	gen              ports.TextGenerator
	limiter          *rate.Limiter
	maxAttempts      int
	cooldown         time.Duration
	githubCategories string
	newsCategories   string
	logger           *slog.Logger
}

// NewSummarizer wires the generator with the retry/pacing policy.
func NewSummarizer(gen ports.TextGenerator, opts Options) *Summarizer {
	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	cooldown := opts.Cooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	githubCategories := opts.GitHubCategories
	if githubCategories == "" {
		githubCategories = DefaultGitHubCategories
	}
	newsCategories := opts.NewsCategories
	if newsCategories == "" {
		newsCategories = DefaultNewsCategories
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Summarizer{
		gen: gen,
		// Burst 1: the first call goes out immediately, every later
		// call waits out the full interval since the previous one.
		limiter:          rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		maxAttempts:      attempts,
		cooldown:         cooldown,
		githubCategories: githubCategories,
		newsCategories:   newsCategories,
		logger:           logger,
	}
}

// enrichment is the JSON shape the model is instructed to emit.
type enrichment struct {
	Summary    string  `json:"summary"`
	Category   string  `json:"category"`
	Importance float64 `json:"importance"`
}

// Summarize enriches a single item. It never returns an error: retry
// exhaustion and unparseable responses degrade to fallback enrichment.
func (s *Summarizer) Summarize(ctx context.Context, item domain.Item) domain.EnrichedItem {
	prompt := s.buildPrompt(item)

	for attempt := 1; ; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.Warn("analysis aborted", "title", item.Title, "error", err)
			return fallbackEnrichment(item)
		}

		text, err := s.gen.Generate(ctx, prompt)
		if err == nil {
			parsed, perr := parseEnrichment(text)
			if perr != nil {
				s.logger.Warn("unparseable analysis response", "title", item.Title, "error", perr)
				return fallbackEnrichment(item)
			}
			return domain.EnrichedItem{
				Item:       item,
				Summary:    parsed.Summary,
				Category:   parsed.Category,
				Importance: clampImportance(int(parsed.Importance)),
			}
		}

		if llm.IsRateLimit(err) && attempt < s.maxAttempts {
			s.logger.Warn("rate limited, cooling down",
				"title", item.Title, "attempt", attempt, "cooldown", s.cooldown)
			if serr := sleepContext(ctx, s.cooldown); serr != nil {
				return fallbackEnrichment(item)
			}
			continue
		}

		s.logger.Warn("analysis failed", "title", item.Title, "error", err)
		return fallbackEnrichment(item)
	}
}

// BatchSummarize enriches at most maxItems items (input order; the rest
// are ignored, not queued) and returns the results sorted by importance
// descending, ties keeping input-relative order. Empty input returns
// empty output with zero external calls. maxItems <= 0 means no cap.
func (s *Summarizer) BatchSummarize(ctx context.Context, items []domain.Item, maxItems int) []domain.EnrichedItem {
	if len(items) == 0 {
		return []domain.EnrichedItem{}
	}
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	results := make([]domain.EnrichedItem, 0, len(items))
	for _, item := range items {
		results = append(results, s.Summarize(ctx, item))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Importance > results[j].Importance
	})
	return results
}

// BatchSummarizeLegacy accepts the pre-normalization flat-record shape.
// Records are upgraded to canonical Items at this boundary and flow
// through the exact same enrichment path.
func (s *Summarizer) BatchSummarizeLegacy(ctx context.Context, records []map[string]string, maxItems int) []domain.EnrichedItem {
	items := make([]domain.Item, 0, len(records))
	for _, record := range records {
		items = append(items, domain.ItemFromLegacy(record))
	}
	return s.BatchSummarize(ctx, items, maxItems)
}

func parseEnrichment(text string) (enrichment, error) {
	var parsed enrichment
	if err := json.Unmarshal([]byte(extractJSON(text)), &parsed); err != nil {
		return enrichment{}, err
	}
	return parsed, nil
}

// extractJSON pulls the JSON object out of a response that may wrap it
// in a fenced code block; unfenced text is used verbatim.
func extractJSON(text string) string {
	for _, fence := range []string{"```json", "```"} {
		start := strings.Index(text, fence)
		if start < 0 {
			continue
		}
		rest := text[start+len(fence):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}

// fallbackEnrichment is the deterministic substitute used whenever the
// external call fails or cannot be parsed.
func fallbackEnrichment(item domain.Item) domain.EnrichedItem {
	summary := item.Title
	if item.Description != "" {
		summary = truncateRunes(item.Description, fallbackSummaryRunes) + "..."
	}
	return domain.EnrichedItem{
		Item:       item,
		Summary:    summary,
		Category:   fallbackCategory,
		Importance: fallbackImportance,
	}
}

func clampImportance(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
