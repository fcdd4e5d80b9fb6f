package scraper

import (
	"strings"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
)

// FilterByKeywords returns the items whose title or description contains
// at least one keyword as a case-insensitive substring. Order is
// preserved and the input is never mutated. An empty keyword list (or
// empty input) returns the input unchanged.
func FilterByKeywords(items []domain.Item, keywords []string) []domain.Item {
	if len(items) == 0 || len(keywords) == 0 {
		return items
	}

	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lowered = append(lowered, strings.ToLower(kw))
	}

	matched := make([]domain.Item, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(item.Title + " " + item.Description)
		for _, kw := range lowered {
			if strings.Contains(haystack, kw) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}
