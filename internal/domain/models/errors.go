package models

import (
	"errors"
	"fmt"
)

// Pipeline error kinds. Public operations return these instead of raw
// transport or parsing faults.
var (
	ErrEmptyResponse      = errors.New("no data received from API")
	ErrNoValidData        = errors.New("no valid market data to analyze")
	ErrNoData             = errors.New("no market data available for analysis")
	ErrOutOfHours         = errors.New("service only available during operating hours")
	ErrNoValidTexts       = errors.New("no valid texts to analyze")
	ErrInvalidRiskProfile = errors.New("unknown risk profile")
)

// ProviderError is the uniform wrapper for transport-level failures
// (timeouts, non-2xx statuses, malformed payloads) from the market data
// provider.
type ProviderError struct {
	Endpoint string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("API request failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
