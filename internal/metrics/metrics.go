// Package metrics exposes the simulation's prometheus counters/gauges:
// ticks processed, events emitted (by category), consequence events
// generated by the cascade engine, cascade max depth reached, active entity
// count, snapshot count. There is no HTTP server here — serving /metrics is
// an operational concern outside the core's scope — so callers read these
// values directly off the Registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry groups every metric the simulation core emits. Each Engine or
// snapshot Manager instance should own one Registry, registered against
// its own prometheus.Registerer, so multiple simulations in one process
// (e.g. a snapshot-forked counterfactual branch) never collide on metric
// names.
type Registry struct {
	reg *prometheus.Registry

	TicksProcessed        prometheus.Counter
	EventsEmitted         *prometheus.CounterVec
	CascadeChainsResolved prometheus.Counter
	CascadeMaxDepth       prometheus.Gauge
	ActiveEntities        prometheus.Gauge
	SnapshotsTaken        prometheus.Counter
}

// NewRegistry builds a fresh, self-contained prometheus.Registry with the
// core's metrics registered on it.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		TicksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worldsim_ticks_processed_total",
			Help: "Number of simulation ticks processed.",
		}),
		EventsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worldsim_events_emitted_total",
			Help: "Number of events emitted, by category.",
		}, []string{"category"}),
		CascadeChainsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worldsim_cascade_events_generated_total",
			Help: "Number of consequence events generated by the cascade engine.",
		}),
		CascadeMaxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "worldsim_cascade_max_depth",
			Help: "Deepest cascade chain reached in the most recent resolution.",
		}),
		ActiveEntities: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "worldsim_active_entities",
			Help: "Number of currently-alive entities.",
		}),
		SnapshotsTaken: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worldsim_snapshots_taken_total",
			Help: "Number of snapshots captured.",
		}),
	}
	reg.MustRegister(r.TicksProcessed, r.EventsEmitted, r.CascadeChainsResolved, r.CascadeMaxDepth, r.ActiveEntities, r.SnapshotsTaken)
	return r
}

// Registerer exposes the underlying prometheus.Registry for callers that
// want to wire an HTTP /metrics handler themselves (outside this core).
func (r *Registry) Registerer() *prometheus.Registry {
	return r.reg
}
