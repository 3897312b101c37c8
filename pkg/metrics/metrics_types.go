// Package metrics exposes Prometheus metrics for pattern searches and
// relation mining.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name
const Namespace = "sif"

// Search outcomes used as the status label
const (
	StatusOK        = "ok"
	StatusIntegrity = "integrity_error"
	StatusCancelled = "cancelled"
	StatusError     = "error"
)

// Registry holds all metrics of a mining run
type Registry struct {
	// Search metrics, per variant
	SearchesTotal   *prometheus.CounterVec
	SearchDuration  *prometheus.HistogramVec
	SearchAnchors   *prometheus.HistogramVec
	MatchesTotal    *prometheus.CounterVec
	IntegrityErrors prometheus.Counter

	// Mining metrics, per relation type
	EdgesTotal         *prometheus.CounterVec
	MiningDuration     *prometheus.HistogramVec
	UnknownTypesTotal  prometheus.Counter
	ExtractedNodes     prometheus.Gauge
	ModelNodes         prometheus.Gauge
	NamesAssignedTotal *prometheus.CounterVec

	// System metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
	started  time.Time
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric registered on a fresh
// Prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}

	r.initSearchMetrics()
	r.initMiningMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
