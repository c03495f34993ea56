//go:build wireinject
// +build wireinject

package di

import (
	"CoinSage/pkg/config"
	"CoinSage/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		ProvideMarketSource,
		ProvideMarketService,
		ProvideRecommendationEngine,
		ProvideSentimentScorer,
		ProvideRefresher,

		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
