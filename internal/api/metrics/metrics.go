// Package metrics defines all custom Prometheus metrics for the console.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayResponsesTotal counts completed backend calls by outcome class.
// Label:
//   - class: "2xx", "4xx", "5xx", or "network_error"
var GatewayResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_responses_total",
		Help:      "Total number of backend responses observed by the gateway, by status class.",
	},
	[]string{"class"},
)

// GatewayUnauthorizedTotal counts 401 responses, each of which purges the
// stored credential.
var GatewayUnauthorizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_unauthorized_total",
		Help:      "Total number of 401 responses that purged the stored credential.",
	},
)

// GatewayRedirectsSuppressedTotal counts 401s whose login navigation was
// suppressed because the redirect guard was already set.
var GatewayRedirectsSuppressedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_redirects_suppressed_total",
		Help:      "Total number of login navigations suppressed by the redirect guard.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionLoginsTotal counts callback-driven login attempts.
// Label:
//   - result: "success" or "failure"
var SessionLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total number of login attempts processed by the session core, by result.",
	},
	[]string{"result"},
)
