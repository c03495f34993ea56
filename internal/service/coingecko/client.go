package coingecko

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"CoinSage/internal/domain/models"
	"CoinSage/internal/domain/repository"
	"CoinSage/internal/services/enrich"
	xhttp "CoinSage/pkg/http"
	xlogger "CoinSage/pkg/logger"
	"CoinSage/pkg/util"
)

// Client fetches market listings and per-coin history from the CoinGecko
// REST API and runs the enrichment step over each snapshot.
type Client struct {
	baseURL     string
	apiKey      string
	historyDays int
	http        *xhttp.Client
	logger      *xlogger.Logger
	metrics     repository.Metrics
}

// Option configures Client.
type Option func(*Client)

// New creates a CoinGecko market source.
func New(baseURL string, logger *xlogger.Logger, metrics repository.Metrics, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		historyDays: 30,
		http:        xhttp.NewClient(xhttp.WithTimeout(15 * time.Second)),
		logger:      logger,
		metrics:     metrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAPIKey sets the optional CoinGecko API key.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHistoryDays sets the day window for per-coin historical series.
func WithHistoryDays(days int) Option {
	return func(c *Client) {
		if days > 0 {
			c.historyDays = days
		}
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http = xhttp.NewClient(xhttp.WithTimeout(timeout))
	}
}

// marketListing mirrors one /coins/markets row. Pointer fields let absent
// values default to zero instead of failing the decode.
type marketListing struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Symbol            string   `json:"symbol"`
	CurrentPrice      *float64 `json:"current_price"`
	MarketCap         *float64 `json:"market_cap"`
	MarketCapRank     *int     `json:"market_cap_rank"`
	TotalVolume       *float64 `json:"total_volume"`
	High24h           *float64 `json:"high_24h"`
	Low24h            *float64 `json:"low_24h"`
	PriceChange24h    *float64 `json:"price_change_24h"`
	PriceChangePct24h *float64 `json:"price_change_percentage_24h"`
	PriceChangePct1h  *float64 `json:"price_change_percentage_1h_in_currency"`
	PriceChangePct7d  *float64 `json:"price_change_percentage_7d_in_currency"`
	MarketCapChg24h   *float64 `json:"market_cap_change_24h"`
	MarketCapChgPct   *float64 `json:"market_cap_change_percentage_24h"`
	CirculatingSupply *float64 `json:"circulating_supply"`
	TotalSupply       *float64 `json:"total_supply"`
	MaxSupply         *float64 `json:"max_supply"`
	ATH               *float64 `json:"ath"`
	ATHChangePct      *float64 `json:"ath_change_percentage"`
	ATHDate           string   `json:"ath_date"`
	ATL               *float64 `json:"atl"`
	ATLChangePct      *float64 `json:"atl_change_percentage"`
	ATLDate           string   `json:"atl_date"`
	Sparkline         struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
}

// marketChart mirrors the /coins/{id}/market_chart response. Each row is a
// [millisecond timestamp, value] pair.
type marketChart struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
	MarketCaps   [][]float64 `json:"market_caps"`
}

// TopCoins fetches the top coins by market cap, attaches per-coin history
// where available and merges enriched metrics into each snapshot. A history
// fetch failure for a single coin never aborts the whole listing.
func (c *Client) TopCoins(ctx context.Context, limit int) ([]models.CoinSnapshot, error) {
	var listings []marketListing
	err := c.http.GetJSON(ctx, c.baseURL+"/coins/markets", map[string]string{
		"vs_currency":             "usd",
		"order":                   "market_cap_desc",
		"per_page":                strconv.Itoa(limit),
		"page":                    "1",
		"sparkline":               "true",
		"price_change_percentage": "1h,24h,7d",
	}, c.headers(), &listings)
	if err != nil {
		c.metrics.RecordProviderRequest("markets", "error")
		return nil, &models.ProviderError{Endpoint: "markets", Err: err}
	}
	c.metrics.RecordProviderRequest("markets", "ok")

	if len(listings) == 0 {
		return nil, models.ErrEmptyResponse
	}

	coins := make([]models.CoinSnapshot, 0, len(listings))
	for _, l := range listings {
		snap := l.toSnapshot()

		history, err := c.CoinHistory(ctx, snap.ID, c.historyDays)
		if err != nil {
			// Partial failure tolerated: keep the snapshot without history.
			c.logger.Warn("coin history fetch failed",
				xlogger.String("coin", snap.ID), xlogger.Error(err))
		} else {
			snap.Historical = history
		}

		m, diag := enrich.ComputeMetrics(&snap)
		if diag != nil {
			c.metrics.RecordEnrichmentIssue()
			c.logger.Warn("enrichment diagnostic",
				xlogger.String("coin", snap.ID), xlogger.Error(diag))
		}
		snap.EnrichedMetrics = m

		coins = append(coins, snap)
	}

	if len(coins) == 0 {
		return nil, models.ErrNoValidData
	}

	return coins, nil
}

// CoinHistory fetches a coin's daily price/volume/market-cap series over the
// given day window. The three series are zipped positionally; the shortest
// one bounds the row count.
func (c *Client) CoinHistory(ctx context.Context, coinID string, days int) (*models.HistoricalSeries, error) {
	var chart marketChart
	err := c.http.GetJSON(ctx, fmt.Sprintf("%s/coins/%s/market_chart", c.baseURL, coinID), map[string]string{
		"vs_currency": "usd",
		"days":        strconv.Itoa(days),
		"interval":    "daily",
	}, c.headers(), &chart)
	if err != nil {
		c.metrics.RecordProviderRequest("market_chart", "error")
		return nil, &models.ProviderError{Endpoint: "market_chart", Err: err}
	}
	c.metrics.RecordProviderRequest("market_chart", "ok")

	rows := len(chart.Prices)
	if len(chart.TotalVolumes) < rows {
		rows = len(chart.TotalVolumes)
	}
	if len(chart.MarketCaps) < rows {
		rows = len(chart.MarketCaps)
	}
	if rows == 0 {
		return nil, models.ErrEmptyResponse
	}

	series := &models.HistoricalSeries{
		Prices:     make([]models.PricePoint, 0, rows),
		Volumes:    make([]models.PricePoint, 0, rows),
		MarketCaps: make([]models.PricePoint, 0, rows),
	}
	for i := 0; i < rows; i++ {
		if len(chart.Prices[i]) < 2 || len(chart.TotalVolumes[i]) < 2 || len(chart.MarketCaps[i]) < 2 {
			continue
		}
		date := util.DayFromMillis(int64(chart.Prices[i][0]))
		series.Prices = append(series.Prices, models.PricePoint{Date: date, Value: chart.Prices[i][1]})
		series.Volumes = append(series.Volumes, models.PricePoint{Date: date, Value: chart.TotalVolumes[i][1]})
		series.MarketCaps = append(series.MarketCaps, models.PricePoint{Date: date, Value: chart.MarketCaps[i][1]})
	}

	return series, nil
}

func (c *Client) headers() map[string]string {
	h := map[string]string{
		"Accept":     "application/json",
		"User-Agent": "CoinSage/1.0",
	}
	if c.apiKey != "" {
		h["X-CG-API-Key"] = c.apiKey
	}
	return h
}

func (l *marketListing) toSnapshot() models.CoinSnapshot {
	snap := models.CoinSnapshot{
		ID:                 l.ID,
		Name:               l.Name,
		Symbol:             l.Symbol,
		CurrentPrice:       f64(l.CurrentPrice),
		MarketCap:          f64(l.MarketCap),
		MarketCapRank:      intOrZero(l.MarketCapRank),
		TotalVolume:        f64(l.TotalVolume),
		High24h:            f64(l.High24h),
		Low24h:             f64(l.Low24h),
		PriceChange24h:     f64(l.PriceChange24h),
		PriceChangePct24h:  f64(l.PriceChangePct24h),
		PriceChangePct1h:   f64(l.PriceChangePct1h),
		PriceChangePct7d:   f64(l.PriceChangePct7d),
		MarketCapChange24h: f64(l.MarketCapChg24h),
		MarketCapChgPct24h: f64(l.MarketCapChgPct),
		CirculatingSupply:  f64(l.CirculatingSupply),
		TotalSupply:        f64(l.TotalSupply),
		MaxSupply:          f64(l.MaxSupply),
		ATH:                f64(l.ATH),
		ATHChangePct:       f64(l.ATHChangePct),
		ATL:                f64(l.ATL),
		ATLChangePct:       f64(l.ATLChangePct),
		Sparkline7d:        l.Sparkline.Price,
	}
	if t, ok := util.ParseTime(l.ATHDate); ok {
		snap.ATHDate = &t
	}
	if t, ok := util.ParseTime(l.ATLDate); ok {
		snap.ATLDate = &t
	}
	return snap
}

func f64(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
