package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMarketSnapshot(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"bitcoin":  {"usd": 112000.5, "usd_24h_change": -1.2, "usd_market_cap": 2200000000000},
			"ethereum": {"usd": 4100.0, "usd_24h_change": 3.4, "usd_market_cap": 490000000000}
		}`))
	}))
	defer server.Close()

	m := NewMarket(server.Client())
	m.baseURL = server.URL

	snapshot, err := m.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}

	if len(snapshot) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(snapshot))
	}
	btc, ok := snapshot["BTC"]
	if !ok {
		t.Fatal("BTC quote missing")
	}
	if btc.Price != 112000.5 || btc.Change24h != -1.2 {
		t.Fatalf("unexpected BTC quote: %+v", btc)
	}
	if _, ok := snapshot["SOL"]; ok {
		t.Fatal("SOL should be absent when the API omits it")
	}
}

func TestMarketFearGreed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"value":"73","value_classification":"Greed"}]}`))
	}))
	defer server.Close()

	m := NewMarket(nil)
	m.sentimentURL = server.URL

	value, err := m.FearGreed(context.Background())
	if err != nil {
		t.Fatalf("FearGreed error: %v", err)
	}
	if value != 73 {
		t.Fatalf("expected 73, got %d", value)
	}
}

func TestMarketEndpointsFailIndependently(t *testing.T) {
	t.Parallel()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"value":"12"}]}`))
	}))
	defer up.Close()

	m := NewMarket(nil)
	m.baseURL = down.URL
	m.sentimentURL = up.URL

	if _, err := m.Snapshot(context.Background()); err == nil {
		t.Fatal("expected snapshot error")
	}
	value, err := m.FearGreed(context.Background())
	if err != nil {
		t.Fatalf("FearGreed should not be affected: %v", err)
	}
	if value != 12 {
		t.Fatalf("expected 12, got %d", value)
	}
}
