// Package metrics defines and registers all custom Prometheus metrics for the
// inventory client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package load; the
// HTTP API exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Dispatch metrics ──────────────────────────────────────────────────────────

// DispatchTotal counts dispatch attempts.
// Labels:
//   - op: ledger operation name (e.g. "purchase")
//   - result: "ok", "gated", "invalid", or the failure kind (e.g. "reverted")
var DispatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_total",
		Help:      "Total number of mutation dispatch attempts, by operation and result.",
	},
	[]string{"op", "result"},
)

// DispatchDuration measures submit-to-confirmation latency of operations that
// reached the gateway.
var DispatchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dispatch_duration_seconds",
		Help:      "Duration of gateway submissions until confirmation or failure.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"op"},
)

// ── Mirror metrics ────────────────────────────────────────────────────────────

// MirrorRefreshTotal counts mirror refreshes.
// Label:
//   - result: "ok" or "error"
var MirrorRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mirror_refresh_total",
		Help:      "Total number of inventory mirror refreshes, by result.",
	},
	[]string{"result"},
)

// MirrorItems is the number of items in the current mirror.
var MirrorItems = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mirror_items",
		Help:      "Number of inventory items in the local mirror.",
	},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsReceivedTotal counts events delivered by gateway subscriptions.
// Label:
//   - kind: ledger event kind (e.g. "LowStock")
var EventsReceivedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_received_total",
		Help:      "Total number of ledger events received, by kind.",
	},
	[]string{"kind"},
)

// EventsDeduplicatedTotal counts redelivered events dropped by the optional
// dedup store.
var EventsDeduplicatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_deduplicated_total",
		Help:      "Total number of redelivered ledger events dropped.",
	},
)

// EventLogSize is the current number of entries in the bounded event log.
var EventLogSize = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "event_log_size",
		Help:      "Current number of entries in the session event log.",
	},
)
