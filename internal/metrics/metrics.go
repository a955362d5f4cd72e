package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts all HTTP requests with labels
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration records request duration in seconds
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// PlansGenerated counts created installment plans
	PlansGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "installment_plans_generated_total",
			Help: "Total number of installment plans generated",
		},
	)

	// PaymentsMarkedPaid counts settled installments
	PaymentsMarkedPaid = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "installment_payments_marked_paid_total",
			Help: "Total number of installments marked paid",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(PlansGenerated)
	prometheus.MustRegister(PaymentsMarkedPaid)
}
