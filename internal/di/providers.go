package di

import (
	"fmt"

	"CoinSage/internal/domain/repository"
	"CoinSage/internal/handler/api"
	"CoinSage/internal/service/coingecko"
	"CoinSage/internal/usecase"
	"CoinSage/pkg/cache"
	"CoinSage/pkg/config"
	xhttp "CoinSage/pkg/http"
	applogger "CoinSage/pkg/logger"
	"CoinSage/pkg/metrics"
	"CoinSage/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	logCfg := &applogger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		logCfg.Level = "debug"
		logCfg.Format = "console"
	}
	return applogger.New(logCfg)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache backend selected by config.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Type {
	case "memory":
		opts := []cache.MemoryOption{}
		if cfg.Cache.MemoryMaxSize > 0 {
			opts = append(opts, cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
		}
		return cache.NewMemoryCache(opts...), nil
	case "redis":
		return newRedisCache(cfg)
	case "layered":
		redisCache, err := newRedisCache(cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(redisCache), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Cache.Type)
	}
}

func newRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	opts := []cache.RedisOption{
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	}
	if cfg.Cache.Redis.Host != "" {
		opts = append(opts, cache.WithRedisHost(cfg.Cache.Redis.Host))
	}
	if cfg.Cache.Redis.Port > 0 {
		opts = append(opts, cache.WithRedisPort(cfg.Cache.Redis.Port))
	}
	if cfg.Cache.Redis.Prefix != "" {
		opts = append(opts, cache.WithRedisPrefix(cfg.Cache.Redis.Prefix))
	}
	redisCache, err := cache.NewRedisCache(opts...)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return redisCache, nil
}

// ProvideMarketSource creates the CoinGecko market data client.
func ProvideMarketSource(cfg *config.Config, logger *applogger.Logger, m repository.Metrics) repository.MarketSource {
	return coingecko.New(
		cfg.CoinGecko.BaseURL,
		logger,
		m,
		coingecko.WithAPIKey(cfg.CoinGecko.APIKey),
		coingecko.WithTimeout(cfg.CoinGecko.Timeout),
		coingecko.WithHistoryDays(cfg.CoinGecko.HistoryDays),
	)
}

// ProvideMarketService creates the cached market data service.
func ProvideMarketService(
	source repository.MarketSource,
	c cache.Service,
	cfg *config.Config,
	logger *applogger.Logger,
	m repository.Metrics,
) *usecase.MarketService {
	return usecase.NewMarketService(source, c, cfg.Refresh.CacheTTL, logger, m)
}

// ProvideRecommendationEngine creates the risk-weighted recommendation engine.
func ProvideRecommendationEngine(cfg *config.Config, logger *applogger.Logger, m repository.Metrics) *usecase.RecommendationEngine {
	return usecase.NewRecommendationEngine(cfg.Weights, nil, logger, m)
}

// ProvideSentimentScorer creates the operating-hours-gated sentiment scorer.
func ProvideSentimentScorer(cfg *config.Config, logger *applogger.Logger) *usecase.SentimentScorer {
	return usecase.NewSentimentScorer(cfg.Sentiment.StartHour, cfg.Sentiment.EndHour, logger)
}

// ProvideRefresher creates the periodic market refresher.
func ProvideRefresher(
	svc *usecase.MarketService,
	cfg *config.Config,
	logger *applogger.Logger,
	m repository.Metrics,
) *usecase.MarketRefresher {
	return usecase.NewMarketRefresher(svc, cfg.Refresh.Interval, cfg.CoinGecko.TopLimit, logger, m)
}

// ProvideHandler creates the Echo route handler.
func ProvideHandler(
	logger *applogger.Logger,
	market *usecase.MarketService,
	engine *usecase.RecommendationEngine,
	sentiment *usecase.SentimentScorer,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewAdvisorHandler(logger, market, engine, sentiment, cfg.CoinGecko.TopLimit)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	refresher *usecase.MarketRefresher,
	logger *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, refresher, logger)
}
