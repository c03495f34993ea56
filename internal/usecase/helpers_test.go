package usecase

// nopMetrics satisfies repository.Metrics for tests.
type nopMetrics struct{}

func (nopMetrics) RecordProviderRequest(endpoint, status string) {}
func (nopMetrics) RecordCacheResult(hit bool)                    {}
func (nopMetrics) RecordEnrichmentIssue()                        {}
func (nopMetrics) RecordRecommendation(profile string)           {}
func (nopMetrics) RecordRefresh(seconds float64)                 {}
func (nopMetrics) SetCoinsTracked(n int)                         {}
