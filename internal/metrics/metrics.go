// Package metrics defines and registers all custom Prometheus metrics for
// the social system. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "social"

// ── Inter-service call metrics ────────────────────────────────────────────────

// ServiceCallsTotal counts request/reply calls issued by the gateway.
// Labels:
//   - service: logical target service name (e.g. "users", "auth", "tweets")
//   - pattern: the operation name on the wire (e.g. "users.create-user")
//   - outcome: "ok", "domain_error" (error envelope) or "transport_error"
var ServiceCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_calls_total",
		Help:      "Total number of inter-service request/reply calls.",
	},
	[]string{"service", "pattern", "outcome"},
)

// ServiceCallDuration measures the latency of inter-service calls.
var ServiceCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "service_call_duration_seconds",
		Help:      "Duration of inter-service request/reply calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"service", "pattern"},
)

// EventsEmittedTotal counts fire-and-forget events published to the broker.
// Label:
//   - pattern: the event name (e.g. "users.revert-create-user")
//   - outcome: "ok" or "error" (publish failure; the event is lost)
var EventsEmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_emitted_total",
		Help:      "Total number of fire-and-forget events emitted.",
	},
	[]string{"pattern", "outcome"},
)

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts at the orchestrator.
// Label:
//   - outcome: "ok", "user_create_failed" or "credential_failed"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests rejected by the auth or role guards.
// Label:
//   - reason: "missing_token", "invalid_token", "upstream", "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected before reaching a handler.",
	},
	[]string{"reason"},
)
