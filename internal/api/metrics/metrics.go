// Package metrics defines all custom Prometheus metrics for the gestio API.
// It is the single source of truth for metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gestio"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionRejectionsTotal counts requests rejected by the tenant guard
// (header/token mismatch).
var SessionRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rejections_total",
		Help:      "Total number of requests rejected for session/header mismatch.",
	},
)

// RecordsWrittenTotal counts successful mutating operations per resource.
// Labels:
//   - resource: "employee", "product", "transaction", "absence", "account"
//   - op: "create", "update", "delete"
var RecordsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_written_total",
		Help:      "Total number of successful create/update/delete operations, by resource.",
	},
	[]string{"resource", "op"},
)
