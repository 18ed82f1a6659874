// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscribe_submissions_received_total",
			Help: "Total number of subscription submissions received",
		},
		[]string{"mode"},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscribe_submissions_rejected_total",
			Help: "Total number of submissions rejected before dispatch",
		},
		[]string{"error_code"},
	)

	DispatchesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscribe_dispatches_completed_total",
			Help: "Total number of email batches dispatched",
		},
		[]string{"mode", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "subscribe_request_duration_seconds",
			Help: "Duration of subscription request handling in seconds",
		},
		[]string{"status"},
	)
)
