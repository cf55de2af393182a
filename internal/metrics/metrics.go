package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for AddOutcome.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeMaxRetries         = "max_retries"
	OutcomeCanceled           = "canceled"
	OutcomeCoverageIncomplete = "coverage_incomplete"
)

// GenerationMetrics records what each schedule generation run did.
type GenerationMetrics interface {
	ObserveAttempts(gameType string, attempts int)
	ObserveSwaps(gameType string, swaps int)
	SetMissingPairs(gameType string, missing int)
	AddOutcome(gameType string, outcome string)
}

func NewMetrics(registry *prometheus.Registry) GenerationMetrics {
	return setupPrometheusMetrics(registry)
}

type nopMetrics struct{}

func (nopMetrics) ObserveAttempts(gameType string, attempts int) {}
func (nopMetrics) ObserveSwaps(gameType string, swaps int) {}
func (nopMetrics) SetMissingPairs(gameType string, missing int) {}
func (nopMetrics) AddOutcome(gameType string, outcome string) {}

// NewNop returns metrics that record nothing.
func NewNop() GenerationMetrics {
	return nopMetrics{}
}
