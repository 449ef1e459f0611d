// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the canteen service.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "canteen_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// AuthFailuresTotal counts rejected requests by failure reason:
	// no_token, invalid_token, unauthenticated, forbidden, invalid_api_key.
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_auth_failures_total",
			Help: "Authentication and authorization rejections",
		},
		[]string{"reason"},
	)

	// StorageConflictsTotal counts unique-constraint rejections by relation.
	StorageConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_storage_conflicts_total",
			Help: "Unique-constraint violations surfaced as conflicts",
		},
		[]string{"relation"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthFailuresTotal,
		StorageConflictsTotal,
	)
}
