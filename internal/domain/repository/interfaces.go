package repository

import (
	"context"

	"CoinSage/internal/domain/models"
)

// MarketSource retrieves raw listings and per-coin historical series from an
// external market data provider.
type MarketSource interface {
	TopCoins(ctx context.Context, limit int) ([]models.CoinSnapshot, error)
	CoinHistory(ctx context.Context, coinID string, days int) (*models.HistoricalSeries, error)
}

// Metrics records operational metrics.
type Metrics interface {
	RecordProviderRequest(endpoint, status string)
	RecordCacheResult(hit bool)
	RecordEnrichmentIssue()
	RecordRecommendation(profile string)
	RecordRefresh(seconds float64)
	SetCoinsTracked(n int)
}
