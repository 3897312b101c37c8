package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSearchMetrics() {
	r.SearchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "searches_total",
			Help:      "Pattern searches run, by variant and outcome",
		},
		[]string{"variant", "status"},
	)

	r.SearchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Pattern search duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"variant"},
	)

	r.SearchAnchors = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_anchors",
			Help:      "Anchor candidates tried per search",
			Buckets:   []float64{10, 100, 1000, 10000, 100000},
		},
		[]string{"variant"},
	)

	r.MatchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "matches_total",
			Help:      "Pattern matches found, by variant",
		},
		[]string{"variant"},
	)

	r.IntegrityErrors = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "integrity_errors_total",
			Help:      "Searches aborted on a dangling model reference",
		},
	)
}
