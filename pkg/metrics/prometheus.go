package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	providerRequests *prometheus.CounterVec
	cacheResults     *prometheus.CounterVec
	enrichIssues     prometheus.Counter
	recommendations  *prometheus.CounterVec
	refreshDuration  prometheus.Histogram
	coinsTracked     prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinsage_provider_requests_total",
				Help: "Total number of market data provider requests",
			},
			[]string{"endpoint", "status"},
		),
		cacheResults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinsage_cache_results_total",
				Help: "Cache lookups by result",
			},
			[]string{"result"},
		),
		enrichIssues: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "coinsage_enrichment_issues_total",
				Help: "Total number of enrichment diagnostics",
			},
		),
		recommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinsage_recommendations_total",
				Help: "Recommendation sets generated by risk profile",
			},
			[]string{"profile"},
		),
		refreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coinsage_refresh_duration_seconds",
				Help:    "Duration of market data refresh cycles in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		coinsTracked: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "coinsage_coins_tracked",
				Help: "Number of coins in the last fetched listing",
			},
		),
	}
}

// RecordProviderRequest records a provider call outcome.
func (r *Recorder) RecordProviderRequest(endpoint, status string) {
	r.providerRequests.WithLabelValues(endpoint, status).Inc()
}

// RecordCacheResult records a cache hit or miss.
func (r *Recorder) RecordCacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheResults.WithLabelValues(result).Inc()
}

// RecordEnrichmentIssue records a swallowed enrichment diagnostic.
func (r *Recorder) RecordEnrichmentIssue() {
	r.enrichIssues.Inc()
}

// RecordRecommendation records a generated recommendation set.
func (r *Recorder) RecordRecommendation(profile string) {
	r.recommendations.WithLabelValues(profile).Inc()
}

// RecordRefresh records refresh cycle latency in seconds.
func (r *Recorder) RecordRefresh(seconds float64) {
	r.refreshDuration.Observe(seconds)
}

// SetCoinsTracked records the size of the last fetched listing.
func (r *Recorder) SetCoinsTracked(n int) {
	r.coinsTracked.Set(float64(n))
}
