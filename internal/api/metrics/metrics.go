// Package metrics defines the custom Prometheus metrics of the shopping-list
// API. HTTP request metrics come from echoprometheus; everything here is
// domain level.
//
// All metrics register with the default registry at package init and are
// exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shoplist"

// ── Auth ─────────────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "rejected" (bad credentials) or "error" (storage/signing fault)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Cart ─────────────────────────────────────────────────────────────────────

// CartAddsTotal counts successful cart additions.
// Label:
//   - outcome: "created" (new line) or "incremented" (existing line)
var CartAddsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_adds_total",
		Help:      "Total number of products added to the cart, by outcome.",
	},
	[]string{"outcome"},
)

// ── Products ─────────────────────────────────────────────────────────────────

// ProductCacheTotal counts product cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ProductCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_cache_total",
		Help:      "Total number of product cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Users ────────────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts new accounts.
// Label:
//   - role: the role the account was created with
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users, by role.",
	},
	[]string{"role"},
)
