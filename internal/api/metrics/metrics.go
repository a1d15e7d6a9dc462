// Package metrics defines and registers the custom Prometheus metrics of the
// rental API. Metrics register with the default registry on package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly opened rental requests.
// Label:
//   - category: category of the booked car (e.g. "suv")
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by car category.",
	},
	[]string{"category"},
)

// BookingTransitionsTotal counts applied status changes.
// Labels:
//   - from: previous status
//   - to:   new status
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status transitions.",
	},
	[]string{"from", "to"},
)

// BookingErrorsTotal counts rejected booking operations.
// Label:
//   - reason: "car_not_found", "car_unavailable", "invalid_date_range", "invalid_state", "unauthorized", "not_found" or "storage"
var BookingErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_errors_total",
		Help:      "Total number of booking operations that failed.",
	},
	[]string{"reason"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - route:  matched route pattern (e.g. "/v1/cars/:id")
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests handled by the API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
