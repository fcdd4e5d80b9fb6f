package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/scraper"
)

const trendingPage = `
<html><body>
<article class="Box-row">
  <h2 class="h3"><a href="/acme/rocket">acme / rocket</a></h2>
  <p class="col-9">A launch framework for smart contracts</p>
  <span itemprop="programmingLanguage">Rust</span>
  <span class="d-inline-block float-sm-right">1,234 stars today</span>
</article>
<article class="Box-row">
  <p class="col-9">Row without a title anchor, must be skipped</p>
  <span class="d-inline-block float-sm-right">99 stars today</span>
</article>
<article class="Box-row">
  <h2 class="h3"><a href="/beta/ledger"> beta / ledger </a></h2>
  <p class="col-9">Minimal append-only ledger</p>
  <span class="d-inline-block float-sm-right">56 stars today</span>
</article>
</body></html>`

func TestGitHubFetchSkipsMalformedRows(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(trendingPage))
	}))
	defer server.Close()

	g := NewGitHub(server.Client())
	g.baseURL = server.URL

	items, err := g.Fetch(context.Background(), scraper.Request{Since: "daily"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotQuery != "since=daily" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "acme/rocket" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.URL != "https://github.com/acme/rocket" {
		t.Fatalf("unexpected url: %q", first.URL)
	}
	if first.Engagement != "1234" {
		t.Fatalf("unexpected stars: %q", first.Engagement)
	}
	if first.ContentType != "Rust" {
		t.Fatalf("unexpected language: %q", first.ContentType)
	}
	if items[1].Title != "beta/ledger" {
		t.Fatalf("unexpected second title: %q", items[1].Title)
	}
}

func TestGitHubFetchLanguageSegment(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	g := NewGitHub(server.Client())
	g.baseURL = server.URL

	if _, err := g.Fetch(context.Background(), scraper.Request{Language: "go", Since: "weekly"}); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if gotPath != "/go" {
		t.Fatalf("expected language path segment, got %s", gotPath)
	}
}

func TestGitHubFetchServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGitHub(server.Client())
	g.baseURL = server.URL

	if _, err := g.Fetch(context.Background(), scraper.Request{}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGitHubLegacyRecords(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(trendingPage))
	}))
	defer server.Close()

	g := NewGitHub(server.Client())
	g.baseURL = server.URL

	records, err := g.FetchTrendingLegacy(context.Background(), scraper.Request{})
	if err != nil {
		t.Fatalf("FetchTrendingLegacy error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["repo_name"] != "acme/rocket" {
		t.Fatalf("unexpected repo_name: %q", records[0]["repo_name"])
	}
	if records[0]["stars"] != "1234" {
		t.Fatalf("unexpected stars: %q", records[0]["stars"])
	}
	if records[0]["language"] != "Rust" {
		t.Fatalf("unexpected language: %q", records[0]["language"])
	}
}

func TestParseTodayStars(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"1,234 stars today": "1234",
		"87 stars today":    "87",
		"12,345 stars":      "0",
		"":                  "0",
	}
	for input, want := range cases {
		if got := parseTodayStars(input); got != want {
			t.Fatalf("parseTodayStars(%q) = %q, want %q", input, got, want)
		}
	}
}
