package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
)

func enriched(title, category string, importance int, source domain.SourceType) domain.EnrichedItem {
	return domain.EnrichedItem{
		Item: domain.Item{
			Title:  title,
			URL:    "https://example.com/" + title,
			Source: source,
		},
		Summary:    "summary of " + title,
		Category:   category,
		Importance: importance,
	}
}

func TestGroupByCategory(t *testing.T) {
	t.Parallel()

	items := []domain.EnrichedItem{
		enriched("a", "Infrastructure", 4, domain.SourceGitHub),
		enriched("b", "Regulation", 9, domain.SourceCoinDesk),
		enriched("c", "Infrastructure", 8, domain.SourceGitHub),
		enriched("d", "", 5, domain.SourceReddit),
	}

	grouped := GroupByCategory(items)
	require.Len(t, grouped, 3)

	infra := grouped["Infrastructure"]
	require.Len(t, infra, 2)
	assert.Equal(t, "c", infra[0].Title, "groups are sorted by importance descending")

	assert.Len(t, grouped["other"], 1, "empty category lands in the default group")
}

func TestOrderedCategoriesPutsOtherLast(t *testing.T) {
	t.Parallel()

	grouped := GroupByCategory([]domain.EnrichedItem{
		enriched("a", "other", 10, domain.SourceGitHub),
		enriched("b", "Regulation", 3, domain.SourceCoinDesk),
		enriched("c", "Fundraising", 7, domain.SourceCoinDesk),
	})

	order := orderedCategories(grouped)
	assert.Equal(t, []string{"Fundraising", "Regulation", "other"}, order)
}

func TestRenderIncludesItemsAndMarket(t *testing.T) {
	t.Parallel()

	b := NewBuilder(t.TempDir())
	b.now = func() time.Time { return time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC) }

	items := []domain.EnrichedItem{
		enriched("acme/rocket", "Developer Tools", 8, domain.SourceGitHub),
	}
	items[0].Engagement = "123"
	items[0].ContentType = "Go"

	market := MarketSection{
		Snapshot: domain.MarketSnapshot{
			"BTC": {Price: 112000, Change24h: -1.5, MarketCap: 2.2e12},
		},
		FearGreed:    61,
		HasFearGreed: true,
	}

	content := b.Render(items, market, "2026-08-23")

	assert.Contains(t, content, "# Web3 + AI Daily Brief | 2026-08-23")
	assert.Contains(t, content, "## Market Snapshot")
	assert.Contains(t, content, "**BTC**: $112000.00")
	assert.Contains(t, content, "Fear & Greed Index**: 61/100")
	assert.Contains(t, content, "## Developer Tools")
	assert.Contains(t, content, "[acme/rocket](https://example.com/acme/rocket)")
	assert.Contains(t, content, "- Engagement: 123")
	assert.Contains(t, content, "- github: 1 items")
}

func TestRenderOmitsEmptyMarketSection(t *testing.T) {
	t.Parallel()

	b := NewBuilder(t.TempDir())
	content := b.Render(nil, MarketSection{}, "2026-08-23")
	assert.NotContains(t, content, "Market Snapshot")
}

func TestGenerateWritesDatedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := NewBuilder(dir)
	b.now = func() time.Time { return time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC) }

	path, content, err := b.Generate([]domain.EnrichedItem{
		enriched("x", "other", 5, domain.SourceHackerNews),
	}, MarketSection{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "2026-08-23-briefing.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))
	assert.True(t, strings.HasPrefix(content, "# Web3 + AI Daily Brief"))
}

func TestStarCountBounds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, starCount(1))
	assert.Equal(t, 5, starCount(10))
	assert.Equal(t, 4, starCount(8))
}
