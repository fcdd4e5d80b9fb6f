package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/scraper"
)

const (
	hnSearchURL = "https://hn.algolia.com/api/v1/search"
	hnItemBase  = "https://news.ycombinator.com/item?id="

	hnHitsPerPage = 20
)

// DefaultHNKeywords keeps the Hacker News stream focused on AI topics.
var DefaultHNKeywords = []string{
	"AI", "artificial intelligence", "machine learning", "LLM",
	"GPT", "Claude", "Gemini", "deep learning", "neural network",
	"transformer", "diffusion", "RAG", "agent", "OpenAI", "Anthropic",
	"Mistral", "Llama", "open source AI",
}

// HackerNews queries the Algolia HN Search API once per keyword, merges
// the hits, and keeps the highest-scored stories.
type HackerNews struct {
	searchURL string
	keywords  []string
	minPoints int
	hoursBack int
	client    *http.Client
	now       func() time.Time
}

var _ scraper.Scraper = (*HackerNews)(nil)

// NewHackerNews builds the adapter. A nil keyword list falls back to
// the default AI query set.
func NewHackerNews(keywords []string, minPoints, hoursBack int, client *http.Client) *HackerNews {
	if keywords == nil {
		keywords = DefaultHNKeywords
	}
	if minPoints <= 0 {
		minPoints = 10
	}
	if hoursBack <= 0 {
		hoursBack = 24
	}
	return &HackerNews{
		searchURL: hnSearchURL,
		keywords:  keywords,
		minPoints: minPoints,
		hoursBack: hoursBack,
		client:    newHTTPClient(client),
		now:       time.Now,
	}
}

func (h *HackerNews) Name() string {
	return "hackernews"
}

func (h *HackerNews) Source() domain.SourceType {
	return domain.SourceHackerNews
}

type hnHit struct {
	ObjectID  string `json:"objectID"`
	Title     string `json:"title"`
	StoryText string `json:"story_text"`
	URL       string `json:"url"`
	Points    int    `json:"points"`
	CreatedAt string `json:"created_at"`
	Author    string `json:"author"`
}

type hnSearchResponse struct {
	Hits []hnHit `json:"hits"`
}

// Fetch merges hits from all keyword queries, deduplicates by the
// story's objectID (not URL — that happens later across sources), sorts
// by points descending, and converts the top MaxItems.
func (h *HackerNews) Fetch(ctx context.Context, req scraper.Request) ([]domain.Item, error) {
	maxItems := req.MaxItems
	if maxItems <= 0 {
		maxItems = 20
	}

	seen := map[string]struct{}{}
	var merged []hnHit
	var lastErr error

	for _, keyword := range h.keywords {
		hits, err := h.searchKeyword(ctx, keyword)
		if err != nil {
			// One failed query does not abort the rest.
			lastErr = err
			continue
		}
		for _, hit := range hits {
			if hit.ObjectID == "" {
				continue
			}
			if _, ok := seen[hit.ObjectID]; ok {
				continue
			}
			seen[hit.ObjectID] = struct{}{}
			merged = append(merged, hit)
		}
	}

	if len(merged) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all hn queries failed: %w", lastErr)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Points > merged[j].Points
	})
	if len(merged) > maxItems {
		merged = merged[:maxItems]
	}

	items := make([]domain.Item, 0, len(merged))
	for _, hit := range merged {
		items = append(items, h.hitToItem(hit))
	}
	return items, nil
}

func (h *HackerNews) searchKeyword(ctx context.Context, keyword string) ([]hnHit, error) {
	sinceUnix := h.now().Unix() - int64(h.hoursBack)*3600

	query := url.Values{}
	query.Set("query", keyword)
	query.Set("tags", "story")
	query.Set("numericFilters", fmt.Sprintf("points>=%d,created_at_i>%d", h.minPoints, sinceUnix))
	query.Set("hitsPerPage", strconv.Itoa(hnHitsPerPage))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, h.searchURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("algolia returned %s for %q", resp.Status, keyword)
	}

	var parsed hnSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response for %q: %w", keyword, err)
	}
	return parsed.Hits, nil
}

func (h *HackerNews) hitToItem(hit hnHit) domain.Item {
	link := hit.URL
	if link == "" {
		link = hnItemBase + hit.ObjectID
	}
	return domain.Item{
		Title:         strings.TrimSpace(hit.Title),
		Description:   strings.TrimSpace(truncateRunes(hit.StoryText, maxDescriptionRunes)),
		URL:           link,
		Source:        domain.SourceHackerNews,
		PublishedDate: hit.CreatedAt,
		Engagement:    strconv.Itoa(hit.Points),
		ContentType:   hit.Author,
	}
}
