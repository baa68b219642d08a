// Package metrics defines and registers all custom Prometheus metrics for
// the recipe API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry via promauto
// at package init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipebox"

// ── Recipe metrics ────────────────────────────────────────────────────────────

// RecipesCreatedTotal counts newly created recipes.
var RecipesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipes_created_total",
		Help:      "Total number of recipes created.",
	},
)

// RelationsReconciledTotal counts reconciler get-or-create decisions.
// Labels:
//   - kind: "tag" or "ingredient"
//   - result: "created" (new row inserted) or "existing" (row reused)
var RelationsReconciledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relations_reconciled_total",
		Help:      "Total number of tag/ingredient reconciliations, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
)

// TokensIssuedTotal counts bearer tokens issued on successful authentication.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
)

// AuthFailuresTotal counts rejected credential or token checks.
// Label:
//   - stage: "login" (bad credentials) or "token" (missing/unknown bearer token)
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts, by stage.",
	},
	[]string{"stage"},
)
