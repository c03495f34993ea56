package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"CoinSage/internal/domain/models"
	xlogger "CoinSage/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordProviderRequest(endpoint, status string) {}
func (nopMetrics) RecordCacheResult(hit bool)                    {}
func (nopMetrics) RecordEnrichmentIssue()                        {}
func (nopMetrics) RecordRecommendation(profile string)           {}
func (nopMetrics) RecordRefresh(seconds float64)                 {}
func (nopMetrics) SetCoinsTracked(n int)                         {}

const marketsBody = `[
  {
    "id": "bitcoin",
    "name": "Bitcoin",
    "symbol": "btc",
    "current_price": 50000,
    "market_cap": 1000000000000,
    "market_cap_rank": 1,
    "total_volume": 30000000000,
    "high_24h": 51000,
    "low_24h": 49000,
    "price_change_24h": 500,
    "price_change_percentage_24h": 1.0,
    "circulating_supply": 19000000,
    "total_supply": 21000000,
    "max_supply": 21000000,
    "ath": 69000,
    "ath_date": "2021-11-10T14:24:11.849Z",
    "atl": 67.81,
    "atl_date": "2013-07-06T00:00:00.000Z",
    "sparkline_in_7d": {"price": [48000, 49000, 50000]}
  }
]`

const chartBody = `{
  "prices": [[1700000000000, 48000], [1700086400000, 50000]],
  "total_volumes": [[1700000000000, 25000000000], [1700086400000, 30000000000]],
  "market_caps": [[1700000000000, 950000000000], [1700086400000, 1000000000000]]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, xlogger.Nop(), nopMetrics{}), srv
}

func TestTopCoinsEnrichesListing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/coins/markets", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("vs_currency"); got != "usd" {
			t.Errorf("vs_currency = %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "2" {
			t.Errorf("per_page = %q", got)
		}
		if got := r.URL.Query().Get("sparkline"); got != "true" {
			t.Errorf("sparkline = %q", got)
		}
		w.Write([]byte(marketsBody))
	})
	mux.HandleFunc("/coins/bitcoin/market_chart", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "daily" {
			t.Errorf("interval = %q", got)
		}
		w.Write([]byte(chartBody))
	})
	c, _ := newTestClient(t, mux)

	coins, err := c.TopCoins(context.Background(), 2)
	if err != nil {
		t.Fatalf("top coins: %v", err)
	}
	if len(coins) != 1 {
		t.Fatalf("expected 1 coin, got %d", len(coins))
	}

	coin := coins[0]
	if coin.ID != "bitcoin" || coin.CurrentPrice != 50000 {
		t.Fatalf("unexpected snapshot %+v", coin)
	}
	if coin.ATHDate == nil || coin.ATHDate.Year() != 2021 {
		t.Fatalf("ath date not parsed: %v", coin.ATHDate)
	}
	if coin.Historical == nil || len(coin.Historical.Prices) != 2 {
		t.Fatalf("history not attached: %+v", coin.Historical)
	}
	if coin.Volatility24h == nil || *coin.Volatility24h != 4 {
		t.Fatalf("metrics not merged: %+v", coin.EnrichedMetrics)
	}
	if coin.TrendDirection != "strong_upward" {
		t.Fatalf("unexpected trend %q", coin.TrendDirection)
	}
}

func TestTopCoinsEmptyListing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/coins/markets", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	c, _ := newTestClient(t, mux)

	if _, err := c.TopCoins(context.Background(), 10); !errors.Is(err, models.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestTopCoinsProviderFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/coins/markets", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	c, _ := newTestClient(t, mux)

	_, err := c.TopCoins(context.Background(), 10)
	var perr *models.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Endpoint != "markets" {
		t.Fatalf("unexpected endpoint %q", perr.Endpoint)
	}
}

func TestTopCoinsToleratesHistoryFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/coins/markets", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(marketsBody))
	})
	mux.HandleFunc("/coins/bitcoin/market_chart", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	c, _ := newTestClient(t, mux)

	coins, err := c.TopCoins(context.Background(), 1)
	if err != nil {
		t.Fatalf("listing should survive a history failure: %v", err)
	}
	if len(coins) != 1 {
		t.Fatalf("expected 1 coin, got %d", len(coins))
	}
	if coins[0].Historical != nil {
		t.Fatalf("history should be absent after failure")
	}
	if coins[0].Volatility24h == nil {
		t.Fatalf("metrics should still be computed")
	}
}

func TestCoinHistoryZipsSeries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/coins/bitcoin/market_chart", func(w http.ResponseWriter, r *http.Request) {
		// volumes shorter than prices; the shortest series bounds the rows
		w.Write([]byte(`{
  "prices": [[1700000000000, 48000], [1700086400000, 50000]],
  "total_volumes": [[1700000000000, 25000000000]],
  "market_caps": [[1700000000000, 950000000000], [1700086400000, 1000000000000]]
}`))
	})
	c, _ := newTestClient(t, mux)

	series, err := c.CoinHistory(context.Background(), "bitcoin", 30)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(series.Prices) != 1 || len(series.Volumes) != 1 || len(series.MarketCaps) != 1 {
		t.Fatalf("series not bounded by shortest: %+v", series)
	}
	if series.Prices[0].Value != 48000 {
		t.Fatalf("unexpected price %v", series.Prices[0].Value)
	}
	if series.Prices[0].Date == "" {
		t.Fatalf("missing date")
	}
}

func TestCoinHistoryEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/coins/bitcoin/market_chart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices": [], "total_volumes": [], "market_caps": []}`))
	})
	c, _ := newTestClient(t, mux)

	if _, err := c.CoinHistory(context.Background(), "bitcoin", 30); !errors.Is(err, models.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}
