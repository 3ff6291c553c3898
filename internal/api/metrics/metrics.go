// Package metrics defines the custom Prometheus metrics for the Comuna
// Inteligente identity API. It is the single source of truth for metric
// names, labels, and help strings; vectors register themselves with the
// default registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "comuna"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "conflict" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CedulaLookupsTotal counts check-cedula resolutions.
// Label:
//   - source: "local" (account exists), "registry" (prefill data found)
//     or "none" (no data anywhere, including degraded registry failures)
var CedulaLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cedula_lookups_total",
		Help:      "Total number of cedula checks, by data source.",
	},
	[]string{"source"},
)

// AuthDeniedTotal counts requests rejected by the access-control middleware.
// Label:
//   - reason: "unauthenticated", "role", "module" or "permission"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests denied by auth middleware, by reason.",
	},
	[]string{"reason"},
)
