// Package telemetry holds the process-wide logger setup and Prometheus metrics.
//
// Metrics are registered on the default registry through promauto and
// exposed by the /metrics route.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "artist_site"

var (
	// HTTPRequestsTotal is labelled by the gin route template, not the raw URL.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, by method, route and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter, by route.",
		},
		[]string{"path"},
	)
)

var (
	// NewsletterEventsTotal counts subscription lifecycle transitions:
	// subscribed, unsubscribed, deactivated, toggled, deleted, rejected.
	NewsletterEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "newsletter_events_total",
			Help:      "Newsletter subscription lifecycle events.",
		},
		[]string{"event"},
	)

	MailDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mail_deliveries_total",
			Help:      "Outbound mails by template and result (sent, failed).",
		},
		[]string{"template", "result"},
	)

	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_operations_total",
			Help:      "File storage calls by backend, operation and result.",
		},
		[]string{"backend", "operation", "result"},
	)
)

// Result turns an error into the "ok"/"error" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
