package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/scraper"
)

const githubTrendingURL = "https://github.com/trending"

var nonDigits = regexp.MustCompile(`[^\d]`)

// GitHub scrapes the GitHub Trending listing page.
type GitHub struct {
	baseURL string
	client  *http.Client
}

var _ scraper.Scraper = (*GitHub)(nil)

// NewGitHub wires an HTTP client; a nil client gets the default timeout.
func NewGitHub(client *http.Client) *GitHub {
	return &GitHub{baseURL: githubTrendingURL, client: newHTTPClient(client)}
}

// Name identifies the adapter inside the registry.
func (g *GitHub) Name() string {
	return "github"
}

// Source tags every produced item.
func (g *GitHub) Source() domain.SourceType {
	return domain.SourceGitHub
}

// Fetch downloads the trending page (optionally narrowed to one
// language and time window) and parses the repeated row blocks.
func (g *GitHub) Fetch(ctx context.Context, req scraper.Request) ([]domain.Item, error) {
	pageURL := g.baseURL
	if req.Language != "" {
		pageURL += "/" + url.PathEscape(req.Language)
	}
	since := req.Since
	if since == "" {
		since = "daily"
	}
	pageURL += "?since=" + url.QueryEscape(since)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch trending page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trending page: %w", err)
	}

	return g.parseTrending(doc), nil
}

// FetchTrendingLegacy is the v1 accessor returning flat records with
// the old field names. Kept for scripts written against that shape.
func (g *GitHub) FetchTrendingLegacy(ctx context.Context, req scraper.Request) ([]map[string]string, error) {
	items, err := g.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	records := make([]map[string]string, 0, len(items))
	for _, item := range items {
		records = append(records, item.LegacyRecord())
	}
	return records, nil
}

func (g *GitHub) parseTrending(doc *goquery.Document) []domain.Item {
	var items []domain.Item
	doc.Find("article.Box-row").Each(func(_ int, row *goquery.Selection) {
		if item, ok := parseTrendingRow(row); ok {
			items = append(items, item)
		}
	})
	return items
}

// parseTrendingRow extracts one repository row. Rows missing the title
// anchor are skipped silently rather than surfaced as errors.
func parseTrendingRow(row *goquery.Selection) (domain.Item, bool) {
	link := row.Find("h2 a").First()
	if link.Length() == 0 {
		return domain.Item{}, false
	}
	href, ok := link.Attr("href")
	if !ok || strings.Trim(href, "/") == "" {
		return domain.Item{}, false
	}

	repoName := strings.Trim(href, "/")
	description := strings.TrimSpace(row.Find("p").First().Text())
	language := strings.TrimSpace(row.Find("span[itemprop=programmingLanguage]").First().Text())
	if language == "" {
		language = "Unknown"
	}

	return domain.Item{
		Title:       repoName,
		Description: description,
		URL:         "https://github.com" + href,
		Source:      domain.SourceGitHub,
		Engagement:  parseTodayStars(row.Find("span.d-inline-block.float-sm-right").First().Text()),
		ContentType: language,
	}, true
}

// parseTodayStars pulls the daily star count out of free text like
// "1,234 stars today" by discarding everything that is not a digit in
// the substring before the "today" marker.
func parseTodayStars(text string) string {
	text = strings.TrimSpace(text)
	before, _, found := strings.Cut(text, "today")
	if !found {
		return "0"
	}
	digits := nonDigits.ReplaceAllString(before, "")
	if digits == "" {
		return "0"
	}
	return digits
}
