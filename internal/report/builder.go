package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
)

// MarketSection carries the optional market data rendered at the top of
// the brief. Missing pieces are simply omitted.
type MarketSection struct {
	Snapshot     domain.MarketSnapshot
	FearGreed    int
	HasFearGreed bool
}

// Builder renders enriched items into a grouped Markdown brief and
// writes it under the output directory.
type Builder struct {
	outputDir string
	now       func() time.Time
}

// NewBuilder creates a builder writing to outputDir.
func NewBuilder(outputDir string) *Builder {
	return &Builder{outputDir: outputDir, now: time.Now}
}

// Generate renders the brief and writes {date}-briefing.md, returning
// the written path and the rendered content.
func (b *Builder) Generate(items []domain.EnrichedItem, market MarketSection) (string, string, error) {
	date := b.now().Format("2006-01-02")
	content := b.Render(items, market, date)

	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(b.outputDir, date+"-briefing.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", "", fmt.Errorf("write brief: %w", err)
	}
	return path, content, nil
}

// Render produces the full Markdown document.
func (b *Builder) Render(items []domain.EnrichedItem, market MarketSection, date string) string {
	var lines []string

	lines = append(lines,
		fmt.Sprintf("# Web3 + AI Daily Brief | %s", date),
		"",
		fmt.Sprintf("> Generated at %s UTC · %d items", b.now().UTC().Format("15:04"), len(items)),
		"",
		"---",
		"")

	if section := renderMarket(market); len(section) > 0 {
		lines = append(lines, section...)
	}

	grouped := GroupByCategory(items)
	for _, category := range orderedCategories(grouped) {
		lines = append(lines, fmt.Sprintf("## %s", category), "")
		for _, item := range grouped[category] {
			lines = append(lines, renderItem(item)...)
		}
	}

	lines = append(lines, "---", "", "## Today's Numbers", "")
	counts := countBySource(items)
	sources := make([]string, 0, len(counts))
	for source := range counts {
		sources = append(sources, string(source))
	}
	sort.Strings(sources)
	for _, source := range sources {
		lines = append(lines, fmt.Sprintf("- %s: %d items", source, counts[domain.SourceType(source)]))
	}
	lines = append(lines,
		fmt.Sprintf("- Generated: %s", b.now().Format("2006-01-02 15:04:05")),
		"")

	return strings.Join(lines, "\n")
}

// GroupByCategory folds enriched items into a category map, keeping
// each group sorted by importance descending (stable).
func GroupByCategory(items []domain.EnrichedItem) map[string][]domain.EnrichedItem {
	grouped := map[string][]domain.EnrichedItem{}
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "other"
		}
		grouped[category] = append(grouped[category], item)
	}
	for category := range grouped {
		group := grouped[category]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Importance > group[j].Importance
		})
	}
	return grouped
}

// orderedCategories lists categories with the strongest item first,
// ties broken by name; "other" always renders last.
func orderedCategories(grouped map[string][]domain.EnrichedItem) []string {
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if a == "other" || b == "other" {
			return b == "other"
		}
		topA, topB := grouped[a][0].Importance, grouped[b][0].Importance
		if topA != topB {
			return topA > topB
		}
		return a < b
	})
	return names
}

func renderItem(item domain.EnrichedItem) []string {
	stars := strings.Repeat("⭐", starCount(item.Importance))

	lines := []string{
		fmt.Sprintf("**%s [%s](%s)**", stars, item.Title, item.URL),
		"",
		fmt.Sprintf("- Summary: %s", item.Summary),
		fmt.Sprintf("- Source: %s", item.Source),
	}
	if item.Engagement != "" {
		lines = append(lines, fmt.Sprintf("- Engagement: %s", item.Engagement))
	}
	if item.ContentType != "" {
		lines = append(lines, fmt.Sprintf("- Tag: %s", item.ContentType))
	}
	if item.PublishedDate != "" {
		// Date strings are heterogeneous across sources; print verbatim.
		lines = append(lines, fmt.Sprintf("- Published: %s", item.PublishedDate))
	}
	return append(lines, "")
}

func starCount(importance int) int {
	count := importance / 2
	if count < 1 {
		count = 1
	}
	if count > 5 {
		count = 5
	}
	return count
}

func renderMarket(market MarketSection) []string {
	if len(market.Snapshot) == 0 && !market.HasFearGreed {
		return nil
	}

	lines := []string{"## Market Snapshot", ""}

	symbols := make([]string, 0, len(market.Snapshot))
	for symbol := range market.Snapshot {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		quote := market.Snapshot[symbol]
		lines = append(lines, fmt.Sprintf("- **%s**: $%.2f (%+.2f%% 24h, mcap $%.0fB)",
			symbol, quote.Price, quote.Change24h, quote.MarketCap/1e9))
	}
	if market.HasFearGreed {
		lines = append(lines, fmt.Sprintf("- **Fear & Greed Index**: %d/100", market.FearGreed))
	}
	return append(lines, "", "---", "")
}

func countBySource(items []domain.EnrichedItem) map[domain.SourceType]int {
	counts := map[domain.SourceType]int{}
	for _, item := range items {
		counts[item.Source]++
	}
	return counts
}
