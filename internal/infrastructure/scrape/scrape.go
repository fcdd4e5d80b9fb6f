// Package scrape holds the per-source adapters. Each one is hard-coded
// to its source's current page or API shape and is expected to break
// when that shape changes; breakage stays contained behind the
// scraper.Scraper contract.
package scrape

import (
	"net/http"
	"time"
)

const (
	// userAgent identifies this tool on every outbound request.
	userAgent = "web3-ai-daily-brief/1.0 (automated research tool)"

	// requestTimeout bounds every external call.
	requestTimeout = 10 * time.Second

	// maxDescriptionRunes bounds item descriptions across sources.
	maxDescriptionRunes = 500
)

func newHTTPClient(client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return client
}

// truncateRunes shortens s to at most n runes. Source text is routinely
// multi-byte, so byte slicing would split characters.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
