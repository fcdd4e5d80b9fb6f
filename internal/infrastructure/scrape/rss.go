package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/scraper"
)

const (
	coinDeskFeedURL      = "https://www.coindesk.com/arc/outboundfeeds/rss/"
	coinTelegraphFeedURL = "https://cointelegraph.com/rss"
)

// RSS adapts one syndication feed into Items. The two news sources
// share this logic and differ only in feed URL and source tag.
type RSS struct {
	name    string
	feedURL string
	source  domain.SourceType
	parser  *gofeed.Parser
}

var _ scraper.Scraper = (*RSS)(nil)

// NewRSS builds an adapter for an arbitrary feed.
func NewRSS(name, feedURL string, source domain.SourceType, client *http.Client) *RSS {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = newHTTPClient(client)
	return &RSS{name: name, feedURL: feedURL, source: source, parser: parser}
}

// NewCoinDesk returns the CoinDesk news adapter.
func NewCoinDesk(client *http.Client) *RSS {
	return NewRSS("coindesk", coinDeskFeedURL, domain.SourceCoinDesk, client)
}

// NewCoinTelegraph returns the CoinTelegraph news adapter.
func NewCoinTelegraph(client *http.Client) *RSS {
	return NewRSS("cointelegraph", coinTelegraphFeedURL, domain.SourceCoinTelegraph, client)
}

func (r *RSS) Name() string {
	return r.name
}

func (r *RSS) Source() domain.SourceType {
	return r.source
}

// Fetch parses the feed and converts entries. A feed that fails outright
// returns an error (and therefore zero items) instead of partial data.
func (r *RSS) Fetch(ctx context.Context, req scraper.Request) ([]domain.Item, error) {
	feed, err := r.parser.ParseURLWithContext(r.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", r.feedURL, err)
	}

	entries := feed.Items
	if req.MaxItems > 0 && len(entries) > req.MaxItems {
		entries = entries[:req.MaxItems]
	}

	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		if entry.Link == "" {
			continue
		}

		contentType := ""
		if len(entry.Categories) > 0 {
			contentType = entry.Categories[0]
		}

		items = append(items, domain.Item{
			Title:       strings.TrimSpace(entry.Title),
			Description: truncateRunes(stripHTML(entry.Description), maxDescriptionRunes),
			URL:         entry.Link,
			Source:      r.source,
			// The raw feed date string is passed through unreformatted;
			// downstream treats it as opaque display text.
			PublishedDate: entry.Published,
			ContentType:   contentType,
		})
	}
	return items, nil
}

// stripHTML flattens feed summaries that arrive as markup.
func stripHTML(text string) string {
	if text == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return strings.TrimSpace(text)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
