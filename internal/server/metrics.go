package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the service's prometheus collectors on a private
// registry so tests can build servers without collector name collisions.
type Metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics builds the collectors and registers them.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upgrade_evaluations_total",
		Help: "Total upgrade evaluations by outcome.",
	}, []string{"outcome"})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "upgrade_evaluation_duration_seconds",
		Help:    "Wall-clock duration of upgrade evaluations.",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(
		evaluations,
		duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:    registry,
		evaluations: evaluations,
		duration:    duration,
	}
}

// ObserveEvaluation records one evaluation outcome and its duration.
func (m *Metrics) ObserveEvaluation(outcome string, seconds float64) {
	m.evaluations.WithLabelValues(outcome).Inc()
	m.duration.Observe(seconds)
}
