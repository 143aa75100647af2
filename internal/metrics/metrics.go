package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FlightSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightshop_searches_total",
		Help: "Flight searches by outcome",
	}, []string{"outcome"})
	CartOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightshop_cart_operations_total",
		Help: "Cart mutations by operation and outcome",
	}, []string{"operation", "outcome"})
	TicketsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightshop_tickets_issued_total",
		Help: "Tickets issued at checkout",
	})
	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightshop_payments_confirmed_total",
		Help: "Payments moved to PAID",
	})
	PaymentsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightshop_payments_expired_total",
		Help: "Pending payments expired by the sweep",
	})
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flightshop_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	}, []string{"method", "route", "status"})
)

// Outcome labels an operation result.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
