// Package promhooks exports toolcache hook events as Prometheus metrics:
// hit/miss counters by operation kind, backend error counters by operation,
// self-heal counters by reason, and a backend-connected gauge.
//
// Keys are deliberately not used as label values; their cardinality is
// unbounded.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dev-indra/toolcache"
)

type Hooks struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	backendErrors *prometheus.CounterVec
	selfHeals     *prometheus.CounterVec
	connected     prometheus.Gauge
}

var _ toolcache.Hooks = (*Hooks)(nil)

// New registers the toolcache metrics with reg and returns the hook set.
// Use prometheus.DefaultRegisterer outside tests. New panics if metrics
// with the same namespace are already registered.
func New(namespace string, reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	h := &Hooks{
		hits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of cache hits by operation kind.",
		}, []string{"kind"}),
		misses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of cache misses by operation kind.",
		}, []string{"kind"}),
		backendErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "backend_errors_total",
			Help:      "Total number of failed backend operations.",
		}, []string{"op"}),
		selfHeals: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "self_heals_total",
			Help:      "Total number of undecodable entries dropped on read.",
		}, []string{"reason"}),
		connected: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "backend_connected",
			Help:      "1 while the cache backend is considered reachable.",
		}),
	}
	// Stores start optimistic; mirror that.
	h.connected.Set(1)
	return h
}

func (h *Hooks) Hit(kind, _ string)  { h.hits.WithLabelValues(kind).Inc() }
func (h *Hooks) Miss(kind, _ string) { h.misses.WithLabelValues(kind).Inc() }

func (h *Hooks) BackendError(op, _ string, _ error) {
	h.backendErrors.WithLabelValues(op).Inc()
}

func (h *Hooks) SelfHeal(_, reason string) {
	h.selfHeals.WithLabelValues(reason).Inc()
}

func (h *Hooks) HealthChanged(connected bool) {
	if connected {
		h.connected.Set(1)
		return
	}
	h.connected.Set(0)
}
