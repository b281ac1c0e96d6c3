// Package metrics defines and registers all custom Prometheus metrics for the
// PlanejAula API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto; the echoprometheus middleware adds the HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "planejaula"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Lesson metrics ────────────────────────────────────────────────────────────

// LessonsCreatedTotal counts newly created lessons.
var LessonsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lessons_created_total",
		Help:      "Total number of lessons created.",
	},
)

// LessonsUpdatedTotal counts successful lesson updates.
var LessonsUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lessons_updated_total",
		Help:      "Total number of lessons updated.",
	},
)

// LessonsDeletedTotal counts deleted lessons.
var LessonsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lessons_deleted_total",
		Help:      "Total number of lessons deleted.",
	},
)

// StatsCacheTotal counts lookups against the Redis stats cache.
// Label:
//   - result: "hit" or "miss"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of stats cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
