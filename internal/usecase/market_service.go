package usecase

import (
	"context"
	"time"

	"CoinSage/internal/domain/models"
	"CoinSage/internal/domain/repository"
	"CoinSage/pkg/cache"
	xlogger "CoinSage/pkg/logger"
)

// MarketService serves enriched market listings, backed by a shared cache
// with a last-good-value policy. The cache is keyed by listing limit.
type MarketService struct {
	source  repository.MarketSource
	cache   cache.Service
	ttl     time.Duration
	logger  *xlogger.Logger
	metrics repository.Metrics
}

func NewMarketService(
	source repository.MarketSource,
	c cache.Service,
	ttl time.Duration,
	logger *xlogger.Logger,
	metrics repository.Metrics,
) *MarketService {
	return &MarketService{
		source:  source,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

// TopCoins returns the enriched top listing, serving the cached value when
// fresh and falling back to a live fetch.
func (s *MarketService) TopCoins(ctx context.Context, limit int) ([]models.CoinSnapshot, error) {
	key := cache.GenerateKeyWithParams("market:top", limit)

	if s.cache != nil {
		var coins []models.CoinSnapshot
		if err := s.cache.Get(ctx, key, &coins); err == nil && len(coins) > 0 {
			s.metrics.RecordCacheResult(true)
			return coins, nil
		}
		s.metrics.RecordCacheResult(false)
	}

	return s.Refresh(ctx, limit)
}

// Refresh fetches the listing from the provider and stores it as the new
// last good value for the limit.
func (s *MarketService) Refresh(ctx context.Context, limit int) ([]models.CoinSnapshot, error) {
	coins, err := s.source.TopCoins(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.metrics.SetCoinsTracked(len(coins))

	if s.cache != nil {
		key := cache.GenerateKeyWithParams("market:top", limit)
		if err := s.cache.Set(ctx, key, coins, s.ttl); err != nil {
			s.logger.Warn("cache store failed", xlogger.String("key", key), xlogger.Error(err))
		}
	}

	return coins, nil
}
