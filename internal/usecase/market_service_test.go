package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"CoinSage/internal/domain/models"
	"CoinSage/pkg/cache"
	xlogger "CoinSage/pkg/logger"
)

type fakeSource struct {
	mu    sync.Mutex
	calls int
	coins []models.CoinSnapshot
	err   error
}

func (f *fakeSource) TopCoins(_ context.Context, limit int) ([]models.CoinSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.coins) {
		return f.coins[:limit], nil
	}
	return f.coins, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSource) CoinHistory(_ context.Context, coinID string, days int) (*models.HistoricalSeries, error) {
	return nil, models.ErrEmptyResponse
}

func TestTopCoinsCachesListing(t *testing.T) {
	source := &fakeSource{coins: []models.CoinSnapshot{
		{ID: "bitcoin", CurrentPrice: 50000},
		{ID: "ethereum", CurrentPrice: 3000},
	}}
	mc := cache.NewMemoryCache()
	defer mc.Close()

	svc := NewMarketService(source, mc, time.Minute, xlogger.Nop(), nopMetrics{})
	ctx := context.Background()

	coins, err := svc.TopCoins(ctx, 2)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if len(coins) != 2 || source.calls != 1 {
		t.Fatalf("expected fetch on miss, coins=%d calls=%d", len(coins), source.calls)
	}

	coins, err = svc.TopCoins(ctx, 2)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(coins) != 2 || source.calls != 1 {
		t.Fatalf("expected cache hit, coins=%d calls=%d", len(coins), source.calls)
	}
}

func TestTopCoinsKeyedByLimit(t *testing.T) {
	source := &fakeSource{coins: []models.CoinSnapshot{
		{ID: "bitcoin"}, {ID: "ethereum"}, {ID: "tether"},
	}}
	mc := cache.NewMemoryCache()
	defer mc.Close()

	svc := NewMarketService(source, mc, time.Minute, xlogger.Nop(), nopMetrics{})
	ctx := context.Background()

	if _, err := svc.TopCoins(ctx, 2); err != nil {
		t.Fatalf("limit 2: %v", err)
	}
	coins, err := svc.TopCoins(ctx, 3)
	if err != nil {
		t.Fatalf("limit 3: %v", err)
	}
	if len(coins) != 3 {
		t.Fatalf("expected 3 coins for the larger limit, got %d", len(coins))
	}
	if source.calls != 2 {
		t.Fatalf("each limit should fetch once, calls=%d", source.calls)
	}
}

func TestTopCoinsPropagatesSourceError(t *testing.T) {
	source := &fakeSource{err: models.ErrEmptyResponse}
	mc := cache.NewMemoryCache()
	defer mc.Close()

	svc := NewMarketService(source, mc, time.Minute, xlogger.Nop(), nopMetrics{})
	if _, err := svc.TopCoins(context.Background(), 2); !errors.Is(err, models.ErrEmptyResponse) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestRefreshReplacesCachedValue(t *testing.T) {
	source := &fakeSource{coins: []models.CoinSnapshot{{ID: "bitcoin", CurrentPrice: 50000}}}
	mc := cache.NewMemoryCache()
	defer mc.Close()

	svc := NewMarketService(source, mc, time.Minute, xlogger.Nop(), nopMetrics{})
	ctx := context.Background()

	if _, err := svc.Refresh(ctx, 1); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	source.coins = []models.CoinSnapshot{{ID: "bitcoin", CurrentPrice: 60000}}
	if _, err := svc.Refresh(ctx, 1); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	coins, err := svc.TopCoins(ctx, 1)
	if err != nil {
		t.Fatalf("top coins: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("read should hit cache, calls=%d", source.calls)
	}
	if coins[0].CurrentPrice != 60000 {
		t.Fatalf("stale value served: %v", coins[0].CurrentPrice)
	}
}
