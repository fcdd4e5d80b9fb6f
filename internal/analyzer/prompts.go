package analyzer

import (
	"fmt"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
)

// Category taxonomies are product configuration, not logic: overridable
// via Options, defaulted here. One taxonomy for code repositories, one
// for industry news.
const (
	DefaultGitHubCategories = "Frontier Tech/DeFi & Trading/Payments & Stablecoins/RWA Tokenization/Infrastructure/Developer Tools/other"
	DefaultNewsCategories   = "Frontier Tech/DeFi & Trading/Payments & Stablecoins/RWA Tokenization/Fundraising/Market Moves/Regulation/other"
)

const jsonInstruction = `Respond strictly with the following JSON and no other text:
{
  "summary": "one-sentence summary",
  "category": "category name",
  "importance": 8
}`

var newsSourceLabels = map[domain.SourceType]string{
	domain.SourceCoinDesk:      "CoinDesk",
	domain.SourceCoinTelegraph: "CoinTelegraph",
	domain.SourceReddit:        "Reddit",
	domain.SourceHackerNews:    "Hacker News",
}

// buildPrompt selects the prompt shape by source: GitHub repositories
// get the tech/commercial framing, every other source gets the
// news-analysis framing.
func (s *Summarizer) buildPrompt(item domain.Item) string {
	if item.Source == domain.SourceGitHub {
		return s.projectPrompt(item)
	}
	return s.newsPrompt(item)
}

func (s *Summarizer) projectPrompt(item domain.Item) string {
	language := item.ContentType
	if language == "" {
		language = "Unknown"
	}
	stars := item.Engagement
	if stars == "" {
		stars = "0"
	}

	return fmt.Sprintf(`Analyze the following GitHub project from a VC investment perspective:

Project: %s
Description: %s
Language: %s
Stars today: %s

Provide:
1. A one-sentence summary (under 30 words, highlighting commercial value)
2. A category, exactly one of: %s
3. An investment-relevance score (1-10, weighing technical novelty, market potential, revenue prospects, and investment stage fit)

%s`, item.Title, item.Description, language, stars, s.githubCategories, jsonInstruction)
}

func (s *Summarizer) newsPrompt(item domain.Item) string {
	label, ok := newsSourceLabels[item.Source]
	if !ok {
		label = string(item.Source)
	}
	published := item.PublishedDate
	if published == "" {
		published = "unknown"
	}

	return fmt.Sprintf(`Analyze the following crypto/Web3 industry news from a VC investment perspective:

Title: %s
Source: %s
Summary: %s
Published: %s

Provide:
1. A one-sentence summary (under 30 words, highlighting the impact on investment decisions)
2. A category, exactly one of: %s
3. An investment-relevance score (1-10, weighing market impact, regulatory impact, fundraising/exit signals, and effect on priority sectors)

%s`, item.Title, label, truncateRunes(item.Description, 300), published, s.newsCategories, jsonInstruction)
}
