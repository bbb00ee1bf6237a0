package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for roster loading and matching.
type Metrics struct {
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	MatchScores prometheus.Histogram
	MatchTotal  *prometheus.CounterVec
}

// New creates a Metrics instance with all roster metrics registered.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wathiq_roster_cache_hits_total",
			Help: "Roster loads served from a cached snapshot",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wathiq_roster_cache_misses_total",
			Help: "Roster loads that had to read the backing store",
		}),
		MatchScores: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wathiq_roster_match_score",
			Help:    "Best similarity score per match query, 0-100",
			Buckets: []float64{10, 30, 50, 70, 80, 85, 90, 95, 100},
		}),
		MatchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wathiq_roster_match_total",
			Help: "Match queries by outcome",
		}, []string{"outcome"}), // outcome: "matched", "not_found", "unavailable"
	}
}

// RecordCacheHit counts a load served without touching the store.
func (m *Metrics) RecordCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// RecordCacheMiss counts a load that read the backing store.
func (m *Metrics) RecordCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// RecordMatch observes one match query's best score and outcome.
func (m *Metrics) RecordMatch(outcome string, score int) {
	if m != nil {
		m.MatchScores.Observe(float64(score))
		m.MatchTotal.WithLabelValues(outcome).Inc()
	}
}

// RecordOutcome counts a match query that produced no score.
func (m *Metrics) RecordOutcome(outcome string) {
	if m != nil {
		m.MatchTotal.WithLabelValues(outcome).Inc()
	}
}
