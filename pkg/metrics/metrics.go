package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordSearch records one pattern search of a variant
func (r *Registry) RecordSearch(variant, status string, duration time.Duration, anchors, matches int) {
	r.SearchesTotal.WithLabelValues(variant, status).Inc()
	r.SearchDuration.WithLabelValues(variant).Observe(duration.Seconds())
	r.SearchAnchors.WithLabelValues(variant).Observe(float64(anchors))
	r.MatchesTotal.WithLabelValues(variant).Add(float64(matches))

	if status == StatusIntegrity {
		r.IntegrityErrors.Inc()
	}
}

// RecordMining records the distinct edges mined for a relation type
func (r *Registry) RecordMining(tag string, duration time.Duration, edges int) {
	r.EdgesTotal.WithLabelValues(tag).Add(float64(edges))
	r.MiningDuration.WithLabelValues(tag).Observe(duration.Seconds())
}

// RecordUnknownType counts a request for a relation type that does not exist
func (r *Registry) RecordUnknownType() {
	r.UnknownTypesTotal.Inc()
}

// RecordModel records the size of the loaded model
func (r *Registry) RecordModel(nodes int) {
	r.ModelNodes.Set(float64(nodes))
}

// RecordExtraction records the size of an extracted sub-model
func (r *Registry) RecordExtraction(nodes int) {
	r.ExtractedNodes.Set(float64(nodes))
}

// RecordNames records display names assigned by a normalizer pass
func (r *Registry) RecordNames(pass string, assigned int) {
	r.NamesAssignedTotal.WithLabelValues(pass).Add(float64(assigned))
}

// UpdateSystemMetrics samples uptime, goroutines and heap usage
func (r *Registry) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}

// WriteTextfile samples the system metrics and writes every metric to path in
// the Prometheus text format.
func (r *Registry) WriteTextfile(path string) error {
	r.UpdateSystemMetrics()
	return prometheus.WriteToTextfile(path, r.registry)
}
