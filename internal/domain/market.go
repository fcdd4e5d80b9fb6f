package domain

// MarketQuote is one coin's snapshot from the market-data adapter.
type MarketQuote struct {
	Price     float64
	Change24h float64
	MarketCap float64
}

// MarketSnapshot maps display symbols (BTC, ETH, SOL) to their quotes.
// An empty snapshot means the market endpoint was unreachable.
type MarketSnapshot map[string]MarketQuote
