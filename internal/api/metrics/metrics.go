// Package metrics defines all custom Prometheus metrics for the Focus
// Tracker API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "focustrack"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successfully registered users.",
	},
)

// LoginsTotal counts login attempts that reached a credential decision.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
// Label:
//   - scope: the limited route group (e.g. "auth", "global")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"scope"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsCreatedTotal counts recorded focus sessions.
// Label:
//   - outcome: "completed" or "abandoned"
var SessionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of focus sessions recorded, by outcome.",
	},
	[]string{"outcome"},
)

// SessionDurationMinutes tracks the distribution of recorded session lengths.
var SessionDurationMinutes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_duration_minutes",
		Help:      "Duration of recorded focus sessions in minutes.",
		Buckets:   []float64{5, 10, 15, 25, 45, 60, 90, 120, 240},
	},
)
