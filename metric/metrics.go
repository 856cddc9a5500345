// Package metric exposes Prometheus instrumentation for graph builds and
// renders.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "semnif"

// Metrics groups the collectors updated by the exporter. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	RecordsBuilt    prometheus.Counter
	TriplesBuilt    prometheus.Counter
	Renders         *prometheus.CounterVec
	RenderBytes     *prometheus.HistogramVec
	CleanupFailures prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsBuilt: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "records_total",
			Help:      "Annotation records applied to graphs.",
		}),
		TriplesBuilt: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "triples_total",
			Help:      "Distinct triples added to graphs.",
		}),
		Renders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "renders_total",
			Help:      "Graph renders by output format.",
		}, []string{"format"}),
		RenderBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "render_bytes",
			Help:      "Size of rendered documents.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{"format"}),
		CleanupFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "cleanup_failures_total",
			Help:      "Swallowed close or flush failures after rendering.",
		}),
	}
}

// ObserveBuild records one completed graph build.
func (m *Metrics) ObserveBuild(records, triples int) {
	if m == nil {
		return
	}
	m.RecordsBuilt.Add(float64(records))
	m.TriplesBuilt.Add(float64(triples))
}

// ObserveRender records one render of size bytes in format.
func (m *Metrics) ObserveRender(format string, size int) {
	if m == nil {
		return
	}
	m.Renders.WithLabelValues(format).Inc()
	m.RenderBytes.WithLabelValues(format).Observe(float64(size))
}

// ObserveCleanupFailure records a swallowed close failure.
func (m *Metrics) ObserveCleanupFailure() {
	if m == nil {
		return
	}
	m.CleanupFailures.Inc()
}
