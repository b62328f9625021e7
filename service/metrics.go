package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	results  prometheus.Counter
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semshacl",
			Name:      "requests_total",
			Help:      "Validation requests handled, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "semshacl",
			Name:      "request_duration_seconds",
			Help:      "Time spent handling a validation request.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		results: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "semshacl",
			Name:      "validation_results_total",
			Help:      "Validation results produced across all requests.",
		}),
	}
}
