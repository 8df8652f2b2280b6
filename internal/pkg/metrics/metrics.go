// Package metrics defines and registers all custom Prometheus metrics for the
// job board. It is the single source of truth for metric names, labels, and
// help strings. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts requests handled by the mock backend.
// Labels:
//   - operation: registry name (e.g. "CreateJob"), or "unknown"
//   - status: resulting status code (e.g. "200", "404")
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of mock backend requests, by operation and status.",
	},
	[]string{"operation", "status"},
)

// BackendRequestDuration measures a backend round trip including simulated latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of mock backend requests including simulated latency.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// JobsCreatedTotal counts created job postings.
// Label:
//   - tier: "free" or "premium"
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings created, by tier.",
	},
	[]string{"tier"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "error", or "auto"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// NavigationDecisionsTotal counts guard decisions.
// Label:
//   - outcome: "allow", "redirect_login", "redirect_landing"
var NavigationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigation_decisions_total",
		Help:      "Total number of navigation guard decisions, by outcome.",
	},
	[]string{"outcome"},
)
