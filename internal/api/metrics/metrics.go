// Package metrics defines and registers all custom Prometheus metrics for the
// ServiceHub marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "servicehub"

// ── Account & session metrics ────────────────────────────────────────────────

// SignupsTotal counts successful registrations.
// Label:
//   - role: "user" or "provider"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: the role claim as parsed ("user", "provider" or "invalid")
//   - result: "success" or the failure kind (e.g. "unknown_account", "bad_credential")
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// ── Booking metrics ──────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - service_type: the provider's service category at creation time
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by service type.",
	},
	[]string{"service_type"},
)

// BookingTransitionsTotal counts applied status changes.
// Labels:
//   - to: the new status
//   - actor: "provider" or "system"
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status transitions applied.",
	},
	[]string{"to", "actor"},
)

// BookingTransitionErrorsTotal counts refused accept/reject requests.
// Label:
//   - reason: e.g. "invalid_transition", "forbidden", "not_found"
var BookingTransitionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transition_errors_total",
		Help:      "Total number of refused booking transitions, by reason.",
	},
	[]string{"reason"},
)

// ── Completion event metrics ─────────────────────────────────────────────────

// EventsProcessedTotal counts events that completed processing successfully.
// Label:
//   - status: the booking status applied by the event
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_processed_total",
		Help:      "Total number of completion events successfully processed.",
	},
	[]string{"status"},
)

// EventsErrorsTotal counts events that failed processing.
// Label:
//   - reason: e.g. "invalid_transition", "booking_not_found", "update_failed"
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of completion events that failed processing.",
	},
	[]string{"reason"},
)

// EventsDedupTotal counts completion events skipped as already processed.
var EventsDedupTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dedup_total",
		Help:      "Total number of completion events skipped by deduplication.",
	},
)

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures how long a single event takes to process end-to-end.
// Label:
//   - status: the resulting booking status, or "error" on failure
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_processing_duration_seconds",
		Help:      "Duration of event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)
