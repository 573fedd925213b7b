// Package metrics provides Prometheus metrics for the project store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "multisite"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	HTTPRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
	)
)

// Store metrics
var (
	// StoreOperationsTotal counts store operations by name and result (ok|error).
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Project store operations by operation and result",
		},
		[]string{"op", "result"},
	)

	StoreProjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "projects",
			Help:      "Number of projects currently held in the store",
		},
	)
)

// StoreObserver feeds project store outcomes into the store metrics.
type StoreObserver struct{}

// ObserveOperation counts one operation outcome.
func (StoreObserver) ObserveOperation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOperationsTotal.WithLabelValues(op, result).Inc()
}

// SetProjectCount updates the project gauge.
func (StoreObserver) SetProjectCount(n int) {
	StoreProjects.Set(float64(n))
}
