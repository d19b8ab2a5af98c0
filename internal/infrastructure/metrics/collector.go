package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SubgraphCollector exports subgraph request metrics to Prometheus
type SubgraphCollector struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewSubgraphCollector creates the collector and registers it with reg
func NewSubgraphCollector(reg prometheus.Registerer) *SubgraphCollector {
	c := &SubgraphCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subgraph",
			Name:      "requests_total",
			Help:      "Subgraph requests by operation and HTTP status code.",
		}, []string{"operation", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subgraph",
			Name:      "request_errors_total",
			Help:      "Subgraph requests that failed in transport, status or decoding.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "subgraph",
			Name:      "request_duration_seconds",
			Help:      "Subgraph request latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}

	reg.MustRegister(c.requests, c.errors, c.duration)
	return c
}

// RecordRequest counts a completed request and observes its latency
func (c *SubgraphCollector) RecordRequest(operation string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(operation, strconv.Itoa(statusCode)).Inc()
	c.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordError counts a failed request
func (c *SubgraphCollector) RecordError(operation string) {
	c.errors.WithLabelValues(operation).Inc()
}
