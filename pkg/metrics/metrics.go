package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voucher"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
)

// Business metrics
var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Total number of voucher form submissions by result",
		},
		[]string{"result"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Total number of outbound notification effects by outcome",
		},
		[]string{"effect", "status"},
	)
)

// Submission results
const (
	ResultRejected    = "rejected"
	ResultAccepted    = "accepted"
	ResultDegraded    = "degraded"
	ResultFailed      = "failed"
	ResultUnavailable = "unavailable"
)

// RecordSubmission increments the submission counter for result
func RecordSubmission(result string) {
	SubmissionsTotal.WithLabelValues(result).Inc()
}

// RecordNotification increments the effect counter
func RecordNotification(effect string, ok bool) {
	status := "success"
	if !ok {
		status = "failure"
	}
	NotificationsTotal.WithLabelValues(effect, status).Inc()
}
