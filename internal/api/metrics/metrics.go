// Package metrics defines the custom Prometheus metrics of the storefront
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Call Register once at startup with the registry served on /metrics.
// Metrics that were never registered still count; they are just not exported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected requests on protected routes.
// Label:
//   - reason: "missing_credentials", "invalid_credentials" or "insufficient_role"
var AuthFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts newly created orders.
var OrdersPlacedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
)

// PaymentsRecordedTotal counts payment confirmations.
// Label:
//   - result: "recorded", "duplicate" or "failed"
var PaymentsRecordedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payment confirmations, labelled by result.",
	},
	[]string{"result"},
)

// FulfillmentsTotal counts delivery attempts.
// Label:
//   - result: "success", "partial" or "rejected"
var FulfillmentsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fulfillments_total",
		Help:      "Total number of order fulfillments, labelled by result.",
	},
	[]string{"result"},
)

// InventoryConflictsTotal counts compare-and-swap inventory writes that lost
// against a concurrent writer and had to re-read.
var InventoryConflictsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_conflicts_total",
		Help:      "Total number of inventory writes retried after a concurrent update.",
	},
)

// FulfillmentDuration measures a fulfillment from product read to order write.
var FulfillmentDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fulfillment_duration_seconds",
		Help:      "Duration of order fulfillment including both writes.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsPublishedTotal counts order events handed to the broker.
// Labels:
//   - type: the event type (e.g. "order.placed")
//   - result: "ok", "error" or "dropped"
var EventsPublishedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of order events, labelled by type and publish result.",
	},
	[]string{"type", "result"},
)

// EventsQueueDepth tracks the events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// Collectors returns every metric defined in this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		AuthFailuresTotal,
		OrdersPlacedTotal,
		PaymentsRecordedTotal,
		FulfillmentsTotal,
		InventoryConflictsTotal,
		FulfillmentDuration,
		EventsPublishedTotal,
		EventsQueueDepth,
	}
}

// Register adds every metric to r.
func Register(r prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
