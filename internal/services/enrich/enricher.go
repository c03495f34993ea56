package enrich

import (
	"fmt"
	"math"

	"CoinSage/internal/domain/models"
)

// ComputeMetrics derives per-coin metrics from a snapshot. Pure, no I/O.
// Each metric is computed only when all of its operands are non-zero;
// anything else is omitted from the result. The returned error is a
// diagnostic for inputs that broke a sub-computation — the partial metrics
// are still valid and should be kept.
func ComputeMetrics(c *models.CoinSnapshot) (models.EnrichedMetrics, error) {
	var m models.EnrichedMetrics

	if c.High24h != 0 && c.Low24h != 0 && c.CurrentPrice != 0 {
		m.Volatility24h = round2((c.High24h - c.Low24h) / c.CurrentPrice * 100)
	}

	if c.MarketCap != 0 && c.TotalVolume != 0 {
		m.VolumeToMcapRatio = round2(c.TotalVolume / c.MarketCap * 100)
	}

	if c.CirculatingSupply != 0 && c.TotalSupply != 0 {
		m.CirculationRatio = round2(c.CirculatingSupply / c.TotalSupply * 100)
	}

	if c.MaxSupply != 0 {
		m.MaxSupplyRatio = round2(c.CirculatingSupply / c.MaxSupply * 100)
	}

	if c.ATH != 0 && c.CurrentPrice != 0 {
		m.DistanceFromATH = round2((c.ATH - c.CurrentPrice) / c.ATH * 100)
	}

	if c.ATL != 0 && c.CurrentPrice != 0 {
		m.DistanceFromATL = round2((c.CurrentPrice - c.ATL) / c.CurrentPrice * 100)
	}

	if err := analyzeTrend(c.Sparkline7d, &m); err != nil {
		return m, err
	}

	return m, nil
}

// analyzeTrend derives trend metrics from the sparkline sample. Needs at
// least two points; a zero base price aborts the trend part only.
func analyzeTrend(prices []float64, m *models.EnrichedMetrics) error {
	if len(prices) < 2 {
		return nil
	}

	changes := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			return fmt.Errorf("zero price at sparkline index %d", i-1)
		}
		changes = append(changes, (prices[i]-prices[i-1])/prices[i-1]*100)
	}

	var positive int
	var sum, sumAbs float64
	for _, ch := range changes {
		if ch > 0 {
			positive++
		}
		sum += ch
		sumAbs += math.Abs(ch)
	}

	n := float64(len(changes))
	strength := float64(positive) / n
	avg := sum / n
	vol := sumAbs / n

	m.TrendStrength = &strength
	m.AvgDailyChange = &avg
	m.TrendVolatility = &vol
	m.TrendDirection = ClassifyTrend(strength)

	return nil
}

// ClassifyTrend maps trend strength to a direction label. The thresholds are
// evaluated strictly top-down as an ordered chain; boundary behavior near 0.5
// is part of the contract.
func ClassifyTrend(strength float64) string {
	switch {
	case strength > 0.6:
		return "strong_upward"
	case strength > 0.5:
		return "moderate_upward"
	case strength < 0.4:
		return "strong_downward"
	case strength < 0.5:
		return "moderate_downward"
	default:
		return "sideways"
	}
}

func round2(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}
