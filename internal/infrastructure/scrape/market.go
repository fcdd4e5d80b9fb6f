package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
)

const (
	coinGeckoBaseURL = "https://api.coingecko.com/api/v3"
	fearGreedURL     = "https://api.alternative.me/fng/"
)

// coinLabels maps CoinGecko coin ids to display symbols; the key set
// doubles as the fixed coin list the snapshot requests.
var coinLabels = map[string]string{
	"bitcoin":  "BTC",
	"solana":   "SOL",
	"ethereum": "ETH",
}

// Market is not an item-producing adapter: it returns a price snapshot
// for a fixed coin set plus an independent sentiment index. Each piece
// fails on its own; the pipeline renders without whatever is missing.
type Market struct {
	baseURL      string
	sentimentURL string
	client       *http.Client
}

// NewMarket wires an HTTP client for both market endpoints.
func NewMarket(client *http.Client) *Market {
	return &Market{
		baseURL:      coinGeckoBaseURL,
		sentimentURL: fearGreedURL,
		client:       newHTTPClient(client),
	}
}

// Snapshot returns current price, 24h change, and market cap for the
// fixed BTC/ETH/SOL set.
func (m *Market) Snapshot(ctx context.Context) (domain.MarketSnapshot, error) {
	endpoint := m.baseURL + "/simple/price" +
		"?ids=bitcoin,solana,ethereum" +
		"&vs_currencies=usd&include_24hr_change=true&include_market_cap=true"

	var raw map[string]struct {
		USD          float64 `json:"usd"`
		USD24hChange float64 `json:"usd_24h_change"`
		USDMarketCap float64 `json:"usd_market_cap"`
	}
	if err := m.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("market snapshot: %w", err)
	}

	snapshot := domain.MarketSnapshot{}
	for coinID, label := range coinLabels {
		quote, ok := raw[coinID]
		if !ok {
			continue
		}
		snapshot[label] = domain.MarketQuote{
			Price:     quote.USD,
			Change24h: quote.USD24hChange,
			MarketCap: quote.USDMarketCap,
		}
	}
	return snapshot, nil
}

// FearGreed returns the crypto Fear & Greed index, 0 (extreme fear) to
// 100 (extreme greed).
func (m *Market) FearGreed(ctx context.Context) (int, error) {
	var parsed struct {
		Data []struct {
			Value string `json:"value"`
		} `json:"data"`
	}
	if err := m.getJSON(ctx, m.sentimentURL, &parsed); err != nil {
		return 0, fmt.Errorf("fear & greed index: %w", err)
	}
	if len(parsed.Data) == 0 {
		return 0, fmt.Errorf("fear & greed index: empty response")
	}
	value, err := strconv.Atoi(parsed.Data[0].Value)
	if err != nil {
		return 0, fmt.Errorf("fear & greed index: %w", err)
	}
	return value, nil
}

func (m *Market) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
