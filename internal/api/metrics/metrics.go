// Package metrics defines and registers all custom Prometheus metrics for
// the Bourgeon platform gateway. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bourgeon"

// ── Upstream API metrics ──────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the learning-platform API.
// Labels:
//   - endpoint: logical endpoint name (e.g. "login", "verify_otp")
//   - outcome: "ok", "api_error", "network_error" or "timeout"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the upstream platform API.",
	},
	[]string{"endpoint", "outcome"},
)

// UpstreamRequestDuration measures upstream round-trip time per endpoint.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream platform API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Wizard metrics ────────────────────────────────────────────────────────────

// WizardOpsTotal counts wizard operations.
// Labels:
//   - flow: "registration" or "password_reset"
//   - op: "request_otp", "verify_otp", "resend_otp", "finalize", "reset", "back"
//   - outcome: "ok", "precondition_failed" or "error"
var WizardOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wizard_ops_total",
		Help:      "Total number of wizard operations, by flow, operation and outcome.",
	},
	[]string{"flow", "op", "outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsOpenedTotal counts sessions created, by entry point.
// Label:
//   - via: "login" or "register"
var SessionsOpenedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_opened_total",
		Help:      "Total number of sessions created.",
	},
	[]string{"via"},
)

// SessionsClosedTotal counts sessions torn down.
// Label:
//   - reason: "logout" or "expired"
var SessionsClosedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_closed_total",
		Help:      "Total number of sessions torn down.",
	},
	[]string{"reason"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsEmittedTotal counts toasts pushed to clients, by severity.
var NotificationsEmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_emitted_total",
		Help:      "Total number of notifications emitted, by severity.",
	},
	[]string{"severity"},
)
