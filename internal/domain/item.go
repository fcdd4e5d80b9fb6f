package domain

// SourceType tags every item with the adapter that produced it.
type SourceType string

const (
	SourceGitHub        SourceType = "github"
	SourceCoinDesk      SourceType = "coindesk"
	SourceCoinTelegraph SourceType = "cointelegraph"
	SourceReddit        SourceType = "reddit"
	SourceHackerNews    SourceType = "hackernews"
)

// Item is the normalized record all source adapters produce. URL doubles
// as the cross-source identity key; an item that cannot yield a URL is
// dropped during parsing and never reaches this type. Items are value
// objects and are not mutated after construction.
type Item struct {
	Title       string
	Description string
	URL         string
	Source      SourceType

	// PublishedDate is the source's own date string, passed through
	// unmodified. Empty for sources without a notion of publish time.
	PublishedDate string

	// Engagement carries the popularity signal (stars, points, score)
	// as a string for cross-source uniformity.
	Engagement string

	// ContentType is a secondary tag whose meaning varies per source:
	// programming language, author, flair, or feed section.
	ContentType string
}

// EnrichedItem is an Item plus the model-generated analysis fields.
// Created only by the analyzer, consumed only by the report builder.
type EnrichedItem struct {
	Item

	Summary    string
	Category   string
	Importance int
}

// Legacy flat-record keys, kept for scripts written against the v1
// list-of-dict API.
const (
	legacyKeyRepoName    = "repo_name"
	legacyKeyDescription = "description"
	legacyKeyURL         = "url"
	legacyKeyStars       = "stars"
	legacyKeyLanguage    = "language"
)

// LegacyRecord converts the item to the old flat map shape.
func (i Item) LegacyRecord() map[string]string {
	stars := i.Engagement
	if stars == "" {
		stars = "0"
	}
	language := i.ContentType
	if language == "" {
		language = "Unknown"
	}
	return map[string]string{
		legacyKeyRepoName:    i.Title,
		legacyKeyDescription: i.Description,
		legacyKeyURL:         i.URL,
		legacyKeyStars:       stars,
		legacyKeyLanguage:    language,
	}
}

// ItemFromLegacy upgrades a legacy flat record to a canonical Item so
// that exactly one enrichment path exists downstream. Legacy records
// were only ever produced for GitHub Trending.
func ItemFromLegacy(record map[string]string) Item {
	return Item{
		Title:       record[legacyKeyRepoName],
		Description: record[legacyKeyDescription],
		URL:         record[legacyKeyURL],
		Source:      SourceGitHub,
		Engagement:  record[legacyKeyStars],
		ContentType: record[legacyKeyLanguage],
	}
}
