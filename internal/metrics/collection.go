package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	attempts     prometheus.HistogramVec
	swaps        prometheus.HistogramVec
	missingPairs prometheus.GaugeVec
	outcomes     prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)
	labels := []string{"game_type"}

	attempts := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lineup_generation_attempts",
			Help:    "A histogram of attempts consumed before a schedule filled every location",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, labels)
	swaps := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lineup_coverage_swaps",
			Help:    "A histogram of player swaps accepted by the pair coverage repair",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, labels)
	missingPairs := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lineup_missing_pairs",
			Help: "Number of player pairs left without a shared location by the last run",
		}, labels)
	outcomes := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lineup_generation_outcomes_total",
			Help: "Schedule generation runs by outcome",
		}, append(labels, "outcome"))

	return prometheusMetrics{
		attempts:     *attempts,
		swaps:        *swaps,
		missingPairs: *missingPairs,
		outcomes:     *outcomes,
	}
}

func (m prometheusMetrics) ObserveAttempts(gameType string, attempts int) {
	m.attempts.With(prometheus.Labels{"game_type": gameType}).Observe(float64(attempts))
}

func (m prometheusMetrics) ObserveSwaps(gameType string, swaps int) {
	m.swaps.With(prometheus.Labels{"game_type": gameType}).Observe(float64(swaps))
}

func (m prometheusMetrics) SetMissingPairs(gameType string, missing int) {
	m.missingPairs.With(prometheus.Labels{"game_type": gameType}).Set(float64(missing))
}

func (m prometheusMetrics) AddOutcome(gameType string, outcome string) {
	m.outcomes.With(prometheus.Labels{"game_type": gameType, "outcome": outcome}).Inc()
}
