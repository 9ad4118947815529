package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeDeclined    = "declined"
	OutcomeInvalid     = "invalid_input"
	OutcomeServerError = "server_error"
	OutcomeNetwork     = "network_error"
	OutcomeBusy        = "in_progress"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mfdesk_http_requests_total",
			Help: "Desk API requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mfdesk_http_request_duration_seconds",
			Help:    "Desk API latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mfdesk_upstream_request_duration_seconds",
			Help:    "MF backend call latency by endpoint and status. Status is \"error\" when no response arrived.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	ReceiptSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mfdesk_receipt_submissions_total",
			Help: "Receipt submissions by outcome.",
		},
		[]string{"outcome"},
	)

	OpenDesks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mfdesk_open_desks",
			Help: "Desks currently open.",
		},
	)
)
