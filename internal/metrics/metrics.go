package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersSubmitted counts orders committed to the store.
	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "airport",
		Name:      "orders_submitted_total",
		Help:      "The total number of committed orders",
	})

	// OrdersRejected counts rejected submissions by reason
	// (empty, bounds, taken, invalid_reference, internal).
	OrdersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airport",
		Name:      "orders_rejected_total",
		Help:      "The total number of rejected order submissions",
	}, []string{"reason"})

	TicketsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "airport",
		Name:      "tickets_issued_total",
		Help:      "The total number of issued tickets",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airport",
		Name:      "http_requests_total",
		Help:      "The total number of handled HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "airport",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

const (
	ReasonEmpty            = "empty"
	ReasonBounds           = "bounds"
	ReasonTaken            = "taken"
	ReasonInvalidReference = "invalid_reference"
	ReasonInternal         = "internal"
)
