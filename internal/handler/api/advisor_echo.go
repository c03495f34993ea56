package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"CoinSage/internal/domain/models"
	"CoinSage/internal/usecase"
	xhttp "CoinSage/pkg/http"
	xlogger "CoinSage/pkg/logger"
)

// AdvisorHandler exposes the market and sentiment pipelines over Echo.
type AdvisorHandler struct {
	logger    *xlogger.Logger
	market    *usecase.MarketService
	engine    *usecase.RecommendationEngine
	sentiment *usecase.SentimentScorer
	topLimit  int
}

func NewAdvisorHandler(
	logger *xlogger.Logger,
	market *usecase.MarketService,
	engine *usecase.RecommendationEngine,
	sentiment *usecase.SentimentScorer,
	topLimit int,
) *AdvisorHandler {
	return &AdvisorHandler{
		logger:    logger,
		market:    market,
		engine:    engine,
		sentiment: sentiment,
		topLimit:  topLimit,
	}
}

func (h *AdvisorHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/crypto/top", h.TopCoins)
	g.GET("/recommendations", h.Recommendations)
	g.POST("/sentiment", h.Sentiment)
	g.POST("/sentiment/batch", h.SentimentBatch)
}

func (h *AdvisorHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AdvisorHandler) TopCoins(c echo.Context) error {
	req := &models.TopCoinsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	coins, err := h.market.TopCoins(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("top coins fetch failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, appError(err))
	}

	return xhttp.OKResponse(c, "data", coins)
}

func (h *AdvisorHandler) Recommendations(c echo.Context) error {
	req := &models.RecommendationsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	h.logger.Info("generating recommendations", xlogger.String("risk_profile", req.RiskProfile))

	coins, err := h.market.TopCoins(c.Request().Context(), h.topLimit)
	if err != nil {
		h.logger.Error("market data fetch failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("Failed to fetch market data: %v", err))
	}

	set, err := h.engine.Generate(coins, req.RiskProfile)
	if err != nil {
		h.logger.Error("recommendation generation failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, appError(err))
	}

	return xhttp.OKResponse(c, "recommendations", set)
}

func (h *AdvisorHandler) Sentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.sentiment.Score(req.Text)
	if err != nil {
		return xhttp.AppErrorResponse(c, appError(err))
	}

	return xhttp.OKResponse(c, "data", res)
}

func (h *AdvisorHandler) SentimentBatch(c echo.Context) error {
	req := &models.SentimentBatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.sentiment.ScoreBatch(req.Texts)
	if err != nil {
		return xhttp.AppErrorResponse(c, appError(err))
	}

	return xhttp.OKResponse(c, "data", res)
}

// appError maps domain errors to HTTP app errors: caller mistakes get a 400,
// the operating-hours gate a 503, everything else a 500.
func appError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrInvalidRiskProfile):
		return xhttp.BadRequestError(err.Error())
	case errors.Is(err, models.ErrOutOfHours):
		return xhttp.UnavailableError(err.Error())
	default:
		return xhttp.InternalError(err.Error())
	}
}
