package usecase

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"CoinSage/internal/domain/models"
	"CoinSage/internal/domain/repository"
	"CoinSage/pkg/config"
	xlogger "CoinSage/pkg/logger"
)

const maxRecommendations = 4

// WeightsFunc resolves a risk profile name to its weight set.
type WeightsFunc func(profile string) (config.RiskWeights, bool)

// RecommendationEngine scores and ranks enriched coins by a risk profile and
// renders analysis and prediction text for the top candidates.
type RecommendationEngine struct {
	weights WeightsFunc
	logger  *xlogger.Logger
	metrics repository.Metrics

	// rng drives the prediction magnitude; guarded because engines are
	// shared across request handlers.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRecommendationEngine builds an engine over a weight lookup, normally
// Config.Weights. Pass a nil rng for production; tests inject a seeded source.
func NewRecommendationEngine(
	weights WeightsFunc,
	rng *rand.Rand,
	logger *xlogger.Logger,
	metrics repository.Metrics,
) *RecommendationEngine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RecommendationEngine{
		weights: weights,
		rng:     rng,
		logger:  logger,
		metrics: metrics,
	}
}

type scoredCoin struct {
	coin  models.CoinSnapshot
	score float64
}

// Generate ranks coins by composite score under the profile's weights and
// returns recommendations for the top candidates. Recommendations are
// ephemeral; nothing is persisted between calls.
func (e *RecommendationEngine) Generate(coins []models.CoinSnapshot, profile string) (*models.RecommendationSet, error) {
	if len(coins) == 0 {
		return nil, models.ErrNoData
	}

	w, ok := e.weights(profile)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidRiskProfile, profile)
	}

	scored := make([]scoredCoin, len(coins))
	for i, coin := range coins {
		scored[i] = scoredCoin{coin: coin, score: compositeScore(&coin, w)}
	}

	// Stable: equal scores keep the provider's original order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	top := maxRecommendations
	if len(scored) < top {
		top = len(scored)
	}

	recommendations := make([]models.Recommendation, 0, top)
	for _, sc := range scored[:top] {
		coin := sc.coin
		recommendations = append(recommendations, models.Recommendation{
			Coin:       coin.ID,
			Price:      coin.CurrentPrice,
			Change24h:  coin.PriceChangePct24h,
			RiskScore:  riskScore(&coin, w),
			Analysis:   analysisPoints(&coin, profile),
			Prediction: e.prediction(&coin),
		})
	}

	e.metrics.RecordRecommendation(profile)

	return &models.RecommendationSet{
		SpecificRecommendations: recommendations,
		Disclaimer:              disclaimer(profile),
	}, nil
}

// compositeScore combines a volatility sub-score (inverse of 24h movement),
// log-damped market cap and log-damped volume under the profile weights.
// A zero market cap or volume yields -Inf and sorts last.
func compositeScore(c *models.CoinSnapshot, w config.RiskWeights) float64 {
	volatilityScore := 1 / (math.Abs(c.PriceChangePct24h) + 1)
	marketCapScore := math.Log(c.MarketCap) / 30
	volumeScore := math.Log(c.TotalVolume) / 25

	return w.Volatility*volatilityScore + w.MarketCap*marketCapScore + w.Volume*volumeScore
}

// riskScore derives an integer risk score in [1,10].
func riskScore(c *models.CoinSnapshot, w config.RiskWeights) int {
	volatility := math.Abs(c.PriceChangePct24h)

	volatilityScore := math.Min(volatility/10, 1) * 10
	marketCapScore := 10.0
	if c.MarketCap > 0 {
		marketCapScore = (1 - math.Log(c.MarketCap)/25) * 10
	}
	volumeScore := 0.0
	if c.TotalVolume > 0 {
		volumeScore = math.Log(c.TotalVolume) / 25 * 10
	}

	score := w.Volatility*volatilityScore + w.MarketCap*marketCapScore + w.Volume*volumeScore

	n := int(score)
	if n < 1 {
		n = 1
	}
	if n > 10 {
		n = 10
	}
	return n
}

// analysisPoints renders the ordered list of analysis statements for a coin.
func analysisPoints(c *models.CoinSnapshot, profile string) []string {
	analysis := make([]string, 0, 4)

	if math.Abs(c.PriceChangePct24h) > 5 {
		direction := "bearish"
		if c.PriceChangePct24h > 0 {
			direction = "bullish"
		}
		analysis = append(analysis, fmt.Sprintf(
			"Showing strong %s momentum with %.1f%% change in 24h",
			direction, math.Abs(c.PriceChangePct24h)))
	}

	if c.MarketCap > 0 {
		ratio := c.TotalVolume / c.MarketCap
		if ratio > 0.2 {
			analysis = append(analysis, "High trading volume relative to market cap indicates strong market interest")
		} else if ratio < 0.05 {
			analysis = append(analysis, "Low trading volume suggests potential liquidity risks")
		}
	}

	if c.MarketCap > 1e10 {
		analysis = append(analysis, "Large market cap suggests lower volatility risk")
	} else if c.MarketCap < 1e9 {
		analysis = append(analysis, "Smaller market cap indicates higher potential for price swings")
	}

	switch profile {
	case "conservative":
		analysis = append(analysis, "Recommended as part of a conservative portfolio with focus on stability")
	case "aggressive":
		analysis = append(analysis, "Suitable for aggressive traders comfortable with higher volatility")
	default:
		analysis = append(analysis, "Balanced risk-reward profile for moderate investors")
	}

	return analysis
}

// prediction renders the non-deterministic outlook text. The magnitude is
// drawn uniformly from the market-cap bucket's range on every call.
func (e *RecommendationEngine) prediction(c *models.CoinSnapshot) string {
	confidence := "speculative"
	lo, hi := 5.0, 15.0
	if c.MarketCap > 1e10 {
		confidence = "moderate"
		lo, hi = 3.0, 7.0
	}

	e.mu.Lock()
	magnitude := lo + e.rng.Float64()*(hi-lo)
	e.mu.Unlock()

	direction := "decrease"
	if c.PriceChangePct24h > 0 {
		direction = "increase"
	}

	return fmt.Sprintf(
		"With %s confidence, we project a potential %s of %.1f%% in the next 24-48 hours based on current market conditions",
		confidence, direction, magnitude)
}

func disclaimer(profile string) string {
	switch profile {
	case "conservative":
		return "These recommendations prioritize stability over high returns. While selected assets show lower volatility, cryptocurrency investments still carry significant risks."
	case "moderate":
		return "These balanced recommendations aim to optimize risk-reward ratio. However, cryptocurrency markets are highly volatile and past performance doesn't guarantee future results."
	case "aggressive":
		return "These high-risk recommendations prioritize potential returns over stability. Be prepared for significant price swings and only invest what you can afford to lose."
	default:
		return "Cryptocurrency investments are highly volatile. Always conduct your own research and invest responsibly."
	}
}
