// Package metrics exposes intake pipeline counters. All methods are nil-safe
// so services can run without metrics wired, as in most tests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_requests_total",
			Help: "Certificate requests by terminal outcome code.",
		}, []string{"outcome"}),
		duration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_request_duration_seconds",
			Help:    "Wall time of one request through the pipeline.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordOutcome counts one finished request. outcome is "issued" or the
// rejection code.
func (m *Metrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

// ObserveDuration records one request's pipeline wall time.
func (m *Metrics) ObserveDuration(seconds float64) {
	if m == nil {
		return
	}
	m.duration.Observe(seconds)
}
