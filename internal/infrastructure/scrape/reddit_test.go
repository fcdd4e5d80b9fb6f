package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/scraper"
)

const redditListingBody = `{
  "data": {
    "children": [
      {"data": {
        "title": "New agent framework released",
        "selftext": "We built a framework for autonomous agents.",
        "url": "https://example.com/agent-framework",
        "permalink": "/r/MachineLearning/comments/abc/agent/",
        "score": 321,
        "link_flair_text": "Project",
        "created_utc": 1755432000.0
      }},
      {"data": {
        "title": "Discussion thread",
        "selftext": "",
        "url": "",
        "permalink": "/r/MachineLearning/comments/def/discussion/",
        "score": 45
      }},
      {"data": {
        "title": "Broken post without any link",
        "selftext": "",
        "url": "",
        "permalink": "",
        "score": 7
      }}
    ]
  }
}`

func TestRedditFetchConvertsPosts(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(redditListingBody))
	}))
	defer server.Close()

	sc := NewReddit("MachineLearning", "hot", "", server.Client())
	sc.baseURL = server.URL

	items, err := sc.Fetch(context.Background(), scraper.Request{MaxItems: 10})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotPath != "/r/MachineLearning/hot.json" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotQuery != "limit=10" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items (post without url or permalink dropped), got %d", len(items))
	}

	first := items[0]
	if first.URL != "https://example.com/agent-framework" {
		t.Fatalf("external link should win: %q", first.URL)
	}
	if first.Engagement != "321" {
		t.Fatalf("unexpected score: %q", first.Engagement)
	}
	if first.ContentType != "Project" {
		t.Fatalf("unexpected flair: %q", first.ContentType)
	}
	if first.PublishedDate != "1755432000" {
		t.Fatalf("created_utc must convert to integer string, got %q", first.PublishedDate)
	}
	if first.Source != domain.SourceReddit {
		t.Fatalf("unexpected source: %s", first.Source)
	}

	second := items[1]
	if second.URL != redditBaseURL+"/r/MachineLearning/comments/def/discussion/" {
		t.Fatalf("expected constructed permalink, got %q", second.URL)
	}
	if second.PublishedDate != "" {
		t.Fatalf("missing created_utc must stay empty, got %q", second.PublishedDate)
	}
}

func TestRedditFetchTopAddsTimeFilter(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer server.Close()

	sc := NewReddit("solana", "top", "week", server.Client())
	sc.baseURL = server.URL

	if _, err := sc.Fetch(context.Background(), scraper.Request{MaxItems: 5}); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if gotQuery != "limit=5&t=week" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
}

func TestRedditFetchBadJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>rate limited</html>"))
	}))
	defer server.Close()

	sc := NewReddit("MachineLearning", "hot", "", server.Client())
	sc.baseURL = server.URL

	if _, err := sc.Fetch(context.Background(), scraper.Request{}); err == nil {
		t.Fatal("expected decode error")
	}
}
