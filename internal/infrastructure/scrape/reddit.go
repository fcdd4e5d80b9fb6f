package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/scraper"
)

const redditBaseURL = "https://www.reddit.com"

// Reddit fetches a subreddit listing through the public JSON endpoint.
// No credentials are required.
type Reddit struct {
	baseURL    string
	subreddit  string
	sort       string
	timeFilter string
	client     *http.Client
}

var _ scraper.Scraper = (*Reddit)(nil)

// NewReddit builds an adapter for one sub-community. sort is one of
// hot, new, top; timeFilter applies only when sort is top.
func NewReddit(subreddit, sort, timeFilter string, client *http.Client) *Reddit {
	if sort == "" {
		sort = "hot"
	}
	if timeFilter == "" {
		timeFilter = "day"
	}
	return &Reddit{
		baseURL:    redditBaseURL,
		subreddit:  subreddit,
		sort:       sort,
		timeFilter: timeFilter,
		client:     newHTTPClient(client),
	}
}

func (r *Reddit) Name() string {
	return "reddit"
}

func (r *Reddit) Source() domain.SourceType {
	return domain.SourceReddit
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title         string   `json:"title"`
	Selftext      string   `json:"selftext"`
	URL           string   `json:"url"`
	Permalink     string   `json:"permalink"`
	Score         int      `json:"score"`
	LinkFlairText string   `json:"link_flair_text"`
	CreatedUTC    *float64 `json:"created_utc"`
}

// Fetch issues one GET against the listing endpoint and converts posts.
// A post that cannot yield a URL is dropped, not fatal to the batch.
func (r *Reddit) Fetch(ctx context.Context, req scraper.Request) ([]domain.Item, error) {
	maxItems := req.MaxItems
	if maxItems <= 0 {
		maxItems = 20
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(min(maxItems, 100)))
	if r.sort == "top" {
		query.Set("t", r.timeFilter)
	}
	endpoint := fmt.Sprintf("%s/r/%s/%s.json?%s", r.baseURL, r.subreddit, r.sort, query.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", r.subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit returned %s", resp.Status)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode r/%s listing: %w", r.subreddit, err)
	}

	items := make([]domain.Item, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if len(items) >= maxItems {
			break
		}
		if item, ok := r.postToItem(child.Data); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *Reddit) postToItem(post redditPost) (domain.Item, bool) {
	link := post.URL
	if link == "" {
		if post.Permalink == "" {
			return domain.Item{}, false
		}
		link = redditBaseURL + post.Permalink
	}

	published := ""
	if post.CreatedUTC != nil {
		published = strconv.FormatInt(int64(*post.CreatedUTC), 10)
	}

	return domain.Item{
		Title:         strings.TrimSpace(post.Title),
		Description:   strings.TrimSpace(truncateRunes(post.Selftext, maxDescriptionRunes)),
		URL:           link,
		Source:        domain.SourceReddit,
		PublishedDate: published,
		Engagement:    strconv.Itoa(post.Score),
		ContentType:   post.LinkFlairText,
	}, true
}
