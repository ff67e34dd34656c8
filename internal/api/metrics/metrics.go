// Package metrics defines and registers all custom Prometheus metrics for
// the Random Knowledge API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// HTTP request metrics themselves come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "knowledge"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts issued token pairs.
// Label:
//   - grant: "password" (login) or "refresh_token"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of token pairs issued, by grant type.",
	},
	[]string{"grant"},
)

// AuthFailuresTotal counts requests rejected before reaching business logic.
// Label:
//   - reason: "invalid_token", "unknown_subject", or "forbidden"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected requests, by reason.",
	},
	[]string{"reason"},
)

// ── Curiosity metrics ─────────────────────────────────────────────────────────

// RandomCacheTotal counts cache lookups for the random curiosity endpoint.
// Label:
//   - result: "hit" (served from Redis) or "miss" (repository read)
var RandomCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "random_cache_total",
		Help:      "Total number of random-curiosity cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events written to storage.
// Label:
//   - result: "ok" or "error"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events persisted, by result.",
	},
	[]string{"result"},
)
