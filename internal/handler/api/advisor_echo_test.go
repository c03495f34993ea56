package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"CoinSage/internal/domain/models"
	"CoinSage/internal/usecase"
	"CoinSage/pkg/config"
	xlogger "CoinSage/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordProviderRequest(endpoint, status string) {}
func (nopMetrics) RecordCacheResult(hit bool)                    {}
func (nopMetrics) RecordEnrichmentIssue()                        {}
func (nopMetrics) RecordRecommendation(profile string)           {}
func (nopMetrics) RecordRefresh(seconds float64)                 {}
func (nopMetrics) SetCoinsTracked(n int)                         {}

type fakeSource struct {
	coins []models.CoinSnapshot
	err   error
}

func (f *fakeSource) TopCoins(_ context.Context, limit int) ([]models.CoinSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.coins) {
		return f.coins[:limit], nil
	}
	return f.coins, nil
}

func (f *fakeSource) CoinHistory(_ context.Context, coinID string, days int) (*models.HistoricalSeries, error) {
	return nil, models.ErrEmptyResponse
}

func newTestServer(t *testing.T, source *fakeSource) *echo.Echo {
	t.Helper()

	logger := xlogger.Nop()
	market := usecase.NewMarketService(source, nil, time.Minute, logger, nopMetrics{})
	cfg := &config.Config{RiskProfiles: config.DefaultRiskProfiles()}
	engine := usecase.NewRecommendationEngine(
		cfg.Weights, rand.New(rand.NewSource(1)), logger, nopMetrics{})
	// window covers the whole day so tests never hit the hours gate
	scorer := usecase.NewSentimentScorer(0, 24, logger)

	h := NewAdvisorHandler(logger, market, engine, scorer, 50)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return rec, envelope
}

func successOf(t *testing.T, envelope map[string]json.RawMessage) bool {
	t.Helper()
	var ok bool
	if err := json.Unmarshal(envelope["success"], &ok); err != nil {
		t.Fatalf("missing success flag: %v", err)
	}
	return ok
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t, &fakeSource{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestTopCoinsEnvelope(t *testing.T) {
	source := &fakeSource{coins: []models.CoinSnapshot{
		{ID: "bitcoin", CurrentPrice: 50000, MarketCap: 1e12, TotalVolume: 3e10},
	}}
	e := newTestServer(t, source)

	rec, envelope := doJSON(t, e, http.MethodGet, "/api/crypto/top?limit=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if !successOf(t, envelope) {
		t.Fatalf("expected success envelope")
	}

	var coins []models.CoinSnapshot
	if err := json.Unmarshal(envelope["data"], &coins); err != nil {
		t.Fatalf("data payload: %v", err)
	}
	if len(coins) != 1 || coins[0].ID != "bitcoin" {
		t.Fatalf("unexpected payload %+v", coins)
	}
}

func TestTopCoinsRejectsBadLimit(t *testing.T) {
	e := newTestServer(t, &fakeSource{})
	rec, envelope := doJSON(t, e, http.MethodGet, "/api/crypto/top?limit=9999", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if successOf(t, envelope) {
		t.Fatalf("expected failure envelope")
	}
}

func TestTopCoinsUpstreamFailure(t *testing.T) {
	e := newTestServer(t, &fakeSource{err: models.ErrEmptyResponse})
	rec, envelope := doJSON(t, e, http.MethodGet, "/api/crypto/top", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if successOf(t, envelope) {
		t.Fatalf("expected failure envelope")
	}
}

func TestRecommendationsEnvelope(t *testing.T) {
	source := &fakeSource{coins: []models.CoinSnapshot{
		{ID: "bitcoin", CurrentPrice: 50000, MarketCap: 1e12, TotalVolume: 3e10, PriceChangePct24h: 1},
		{ID: "ethereum", CurrentPrice: 3000, MarketCap: 4e11, TotalVolume: 2e10, PriceChangePct24h: -2},
	}}
	e := newTestServer(t, source)

	rec, envelope := doJSON(t, e, http.MethodGet, "/api/recommendations?risk_profile=aggressive", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if !successOf(t, envelope) {
		t.Fatalf("expected success envelope")
	}

	var set models.RecommendationSet
	if err := json.Unmarshal(envelope["recommendations"], &set); err != nil {
		t.Fatalf("recommendations payload: %v", err)
	}
	if len(set.SpecificRecommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(set.SpecificRecommendations))
	}
	if set.Disclaimer == "" {
		t.Fatalf("missing disclaimer")
	}
}

func TestRecommendationsRejectsUnknownProfile(t *testing.T) {
	e := newTestServer(t, &fakeSource{coins: []models.CoinSnapshot{{ID: "bitcoin"}}})
	rec, _ := doJSON(t, e, http.MethodGet, "/api/recommendations?risk_profile=yolo", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestSentimentEndpoint(t *testing.T) {
	e := newTestServer(t, &fakeSource{})
	rec, envelope := doJSON(t, e, http.MethodPost, "/api/sentiment",
		`{"text": "Bitcoin is doing great today"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var res models.Sentiment
	if err := json.Unmarshal(envelope["data"], &res); err != nil {
		t.Fatalf("data payload: %v", err)
	}
	if res.Sentiment == "" {
		t.Fatalf("missing sentiment label")
	}
}

func TestSentimentRequiresText(t *testing.T) {
	e := newTestServer(t, &fakeSource{})
	rec, _ := doJSON(t, e, http.MethodPost, "/api/sentiment", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestSentimentBatchEndpoint(t *testing.T) {
	e := newTestServer(t, &fakeSource{})
	rec, envelope := doJSON(t, e, http.MethodPost, "/api/sentiment/batch",
		`{"texts": ["great news", "terrible news"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var res models.AggregateSentiment
	if err := json.Unmarshal(envelope["data"], &res); err != nil {
		t.Fatalf("data payload: %v", err)
	}
	if len(res.IndividualResults) != 2 {
		t.Fatalf("expected 2 individual results, got %d", len(res.IndividualResults))
	}
}

func TestAppErrorMapping(t *testing.T) {
	if got := appError(models.ErrInvalidRiskProfile); got.Status != http.StatusBadRequest {
		t.Fatalf("invalid profile status %d", got.Status)
	}
	if got := appError(models.ErrOutOfHours); got.Status != http.StatusServiceUnavailable {
		t.Fatalf("out of hours status %d", got.Status)
	}
	if got := appError(models.ErrEmptyResponse); got.Status != http.StatusInternalServerError {
		t.Fatalf("default status %d", got.Status)
	}
	if got := appError(models.ErrOutOfHours); got.Message != models.ErrOutOfHours.Error() {
		t.Fatalf("message not carried: %q", got.Message)
	}
}
