package scraper

import (
	"context"
	"fmt"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
)

// Request carries the per-fetch options shared by all adapters. Fields
// an adapter does not understand are ignored.
type Request struct {
	// MaxItems caps how many items a single fetch may return.
	MaxItems int

	// Language narrows GitHub Trending to one programming language.
	Language string

	// Since selects the GitHub Trending window: daily, weekly, monthly.
	Since string
}

// Scraper is the common adapter contract: fetch one external source and
// normalize it into Items. Each adapter degrades independently; the
// pipeline treats a returned error as zero items from that source.
type Scraper interface {
	Name() string
	Source() domain.SourceType
	Fetch(ctx context.Context, req Request) ([]domain.Item, error)
}

// Registry keeps a mapping from adapter names to their implementations.
type Registry struct {
	scrapers map[string]Scraper
	order    []string
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scrapers: map[string]Scraper{}}
}

// Register adds or replaces an adapter. Registration order is preserved
// so that dedupe's first-seen-wins semantics stay deterministic.
func (r *Registry) Register(s Scraper) {
	if r.scrapers == nil {
		r.scrapers = map[string]Scraper{}
	}
	if _, ok := r.scrapers[s.Name()]; !ok {
		r.order = append(r.order, s.Name())
	}
	r.scrapers[s.Name()] = s
}

// Resolve returns an adapter by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scraper, error) {
	if s, ok := r.scrapers[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("scraper %s is not registered", name)
}

// Names lists registered adapters in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
