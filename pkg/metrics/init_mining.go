package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initMiningMetrics() {
	r.EdgesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "edges_total",
			Help:      "Distinct edges mined, by relation type",
		},
		[]string{"tag"},
	)

	r.MiningDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "mining_duration_seconds",
			Help:      "Time to mine one relation type over all its variants",
			Buckets:   []float64{0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"tag"},
	)

	r.UnknownTypesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "unknown_relation_types_total",
			Help:      "Requests naming a relation type that does not exist",
		},
	)

	r.ExtractedNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "extracted_nodes",
			Help:      "Nodes in the last extracted sub-model",
		},
	)

	r.ModelNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "model_nodes",
			Help:      "Nodes in the loaded model",
		},
	)

	r.NamesAssignedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "names_assigned_total",
			Help:      "Display names set by the name normalizer, by pass",
		},
		[]string{"pass"},
	)
}
