// Package metrics defines and registers all custom Prometheus metrics for the
// insurance portal API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure" (unknown email and wrong secret are
//     indistinguishable by design, so both count as "failure")
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RoleSwitchesTotal counts user-initiated role switches.
// Labels:
//   - from: the role before the switch
//   - to: the role after the switch
var RoleSwitchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_switches_total",
		Help:      "Total number of user-initiated role switches.",
	},
	[]string{"from", "to"},
)

// AccessDeniedTotal counts negative authorization decisions at the HTTP gates.
// Labels:
//   - gate: "permission" or "service"
//   - subject: the permission name or service id that was denied
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of denied authorization checks at the API gates.",
	},
	[]string{"gate", "subject"},
)

// UsersCreatedTotal counts successfully registered credential records.
// Label:
//   - role: the new account's role
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of credential records created, by role.",
	},
	[]string{"role"},
)

// StoreOpDuration measures persisted-store operation latency.
// Labels:
//   - op: "read", "write", or "remove"
//   - backend: "sqlite", "mongo", "redis"
var StoreOpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_op_duration_seconds",
		Help:      "Duration of persisted-store operations, by operation and backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op", "backend"},
)

// StoreOpErrorsTotal counts failed persisted-store operations.
// Labels as StoreOpDuration.
var StoreOpErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_op_errors_total",
		Help:      "Total number of failed persisted-store operations.",
	},
	[]string{"op", "backend"},
)
