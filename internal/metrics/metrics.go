// Package metrics defines and registers the Prometheus metrics exposed at
// /metrics. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics use promauto, so they register themselves with the default
// registry at package init — no explicit Register() call is needed.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reads_stash"

// RequestsTotal counts completed HTTP requests.
// Labels:
//   - method: HTTP method
//   - status: numeric response status (e.g. "200", "403")
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, by method and status.",
	},
	[]string{"method", "status"},
)

// RequestDuration measures wall-clock request handling time.
// Label:
//   - method: HTTP method
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// AuthRejectionsTotal counts requests refused before reaching a handler.
// Label:
//   - reason: "unauthenticated" (401 from the principal resolver) or
//     "forbidden" (403 from the ownership guard)
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or ownership checks.",
	},
	[]string{"reason"},
)
