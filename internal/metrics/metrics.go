package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nagarsetu_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nagarsetu_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ComplaintsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nagarsetu_complaints_submitted_total",
			Help: "Complaints filed by citizens",
		},
	)

	RequestsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nagarsetu_service_requests_submitted_total",
			Help: "Service request forms filed by citizens",
		},
	)

	PaymentsCaptured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nagarsetu_payments_captured_total",
			Help: "Bills marked paid after gateway verification",
		},
	)

	SMSSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nagarsetu_sms_sent_total",
			Help: "Outbound SMS attempts by result",
		},
		[]string{"status"},
	)
)
