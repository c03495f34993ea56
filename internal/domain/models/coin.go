package models

import "time"

// CoinSnapshot is one cryptocurrency's current market state as reported by
// the provider, plus derived metrics. Numeric fields missing from the source
// feed default to zero; missing dates stay absent.
type CoinSnapshot struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Symbol             string  `json:"symbol"`
	CurrentPrice       float64 `json:"current_price"`
	MarketCap          float64 `json:"market_cap"`
	MarketCapRank      int     `json:"market_cap_rank"`
	TotalVolume        float64 `json:"total_volume"`
	High24h            float64 `json:"high_24h"`
	Low24h             float64 `json:"low_24h"`
	PriceChange24h     float64 `json:"price_change_24h"`
	PriceChangePct24h  float64 `json:"price_change_percentage_24h"`
	PriceChangePct1h   float64 `json:"price_change_percentage_1h"`
	PriceChangePct7d   float64 `json:"price_change_percentage_7d"`
	MarketCapChange24h float64 `json:"market_cap_change_24h"`
	MarketCapChgPct24h float64 `json:"market_cap_change_percentage_24h"`
	CirculatingSupply  float64 `json:"circulating_supply"`
	TotalSupply        float64 `json:"total_supply"`
	MaxSupply          float64 `json:"max_supply"`
	ATH                float64 `json:"ath"`
	ATHChangePct       float64 `json:"ath_change_percentage"`
	ATHDate            *time.Time `json:"ath_date,omitempty"`
	ATL                float64    `json:"atl"`
	ATLChangePct       float64    `json:"atl_change_percentage"`
	ATLDate            *time.Time `json:"atl_date,omitempty"`
	Sparkline7d        []float64  `json:"sparkline_7d,omitempty"`

	Historical *HistoricalSeries `json:"historical_data,omitempty"`

	EnrichedMetrics
}

// PricePoint is one (calendar day, value) row of a daily series.
type PricePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// HistoricalSeries holds three parallel daily series for one coin, aligned
// by index because they come from the same provider response.
type HistoricalSeries struct {
	Prices     []PricePoint `json:"prices"`
	Volumes    []PricePoint `json:"volumes"`
	MarketCaps []PricePoint `json:"market_caps"`
}

// EnrichedMetrics are derived per-coin metrics. A metric whose inputs are
// missing or zero is omitted entirely, never defaulted to a sentinel.
type EnrichedMetrics struct {
	Volatility24h     *float64 `json:"volatility_24h,omitempty"`
	VolumeToMcapRatio *float64 `json:"volume_to_mcap_ratio,omitempty"`
	CirculationRatio  *float64 `json:"circulation_ratio,omitempty"`
	MaxSupplyRatio    *float64 `json:"max_supply_ratio,omitempty"`
	DistanceFromATH   *float64 `json:"distance_from_ath,omitempty"`
	DistanceFromATL   *float64 `json:"distance_from_atl,omitempty"`
	TrendStrength     *float64 `json:"trend_strength,omitempty"`
	AvgDailyChange    *float64 `json:"avg_daily_change,omitempty"`
	TrendVolatility   *float64 `json:"trend_volatility,omitempty"`
	TrendDirection    string   `json:"trend_direction,omitempty"`
}
