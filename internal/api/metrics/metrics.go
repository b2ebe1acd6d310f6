// Package metrics defines and registers the custom Prometheus metrics of the
// beer list API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on package init; HTTP
// request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "beerlist"

// ── Beer metrics ──────────────────────────────────────────────────────────────

// BeerMutationsTotal counts successful writes to the beer list.
// Label:
//   - op: "create", "update" or "delete"
var BeerMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "beer_mutations_total",
		Help:      "Total number of successful beer writes, by operation.",
	},
	[]string{"op"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and register attempts.
// Labels:
//   - strategy: "login" or "register"
//   - result: "success", "rejected" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by strategy and result.",
	},
	[]string{"strategy", "result"},
)

// AuthorizationDeniedTotal counts write requests refused for lack of a session.
// Label:
//   - method: HTTP method of the refused request
var AuthorizationDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denied_total",
		Help:      "Total number of write requests rejected by the session gate.",
	},
	[]string{"method"},
)
