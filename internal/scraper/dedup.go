package scraper

import "github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"

// DeduplicateByURL collapses items sharing a URL, keeping the first one
// encountered regardless of which adapter produced it. Traversal order
// is significant and preserved (stable, not sorted).
func DeduplicateByURL(items []domain.Item) []domain.Item {
	seen := make(map[string]struct{}, len(items))
	result := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		result = append(result, item)
	}
	return result
}
