package usecase

import (
	"context"
	"time"

	"CoinSage/internal/domain/repository"
	xlogger "CoinSage/pkg/logger"
)

// MarketRefresher re-fetches the default listing on a fixed interval so the
// cache always holds a recent last good value. Failures leave the previous
// value in place.
type MarketRefresher struct {
	svc      *MarketService
	interval time.Duration
	limit    int
	logger   *xlogger.Logger
	metrics  repository.Metrics
}

func NewMarketRefresher(
	svc *MarketService,
	interval time.Duration,
	limit int,
	logger *xlogger.Logger,
	metrics repository.Metrics,
) *MarketRefresher {
	return &MarketRefresher{
		svc:      svc,
		interval: interval,
		limit:    limit,
		logger:   logger,
		metrics:  metrics,
	}
}

// Start runs the refresh loop until ctx is cancelled. Blocks; run in a
// goroutine.
func (r *MarketRefresher) Start(ctx context.Context) {
	r.logger.Info("market refresher started",
		xlogger.Duration("interval", r.interval), xlogger.Int("limit", r.limit))

	// Warm the cache immediately so the first requests don't pay for a fetch.
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("market refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *MarketRefresher) refresh(ctx context.Context) {
	start := time.Now()
	coins, err := r.svc.Refresh(ctx, r.limit)
	r.metrics.RecordRefresh(time.Since(start).Seconds())
	if err != nil {
		r.logger.Error("market refresh failed", xlogger.Error(err))
		return
	}
	r.logger.Info("market data refreshed",
		xlogger.Int("coins", len(coins)), xlogger.Duration("took", time.Since(start)))
}
