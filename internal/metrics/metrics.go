// Package metrics exposes Prometheus collectors for moderation and session
// handling.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ModerationActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviedb_moderation_actions_total",
			Help: "Moderation actions by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	GuardRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviedb_session_guard_rejections_total",
			Help: "Requests rejected by the session guard by reason",
		},
		[]string{"reason"},
	)

	Deactivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviedb_token_deactivations_total",
			Help: "Accounts deactivated after presenting an invalid token, by outcome",
		},
		[]string{"outcome"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviedb_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviedb_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeSkipped  = "skipped"
)

// RecordModeration counts one moderation action. A nil error is a success;
// client-side failures are rejections.
func RecordModeration(action string, err error, clientError bool) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
		if clientError {
			outcome = OutcomeRejected
		}
	}
	ModerationActions.WithLabelValues(action, outcome).Inc()
}

// RecordAPIRequest records the count and latency of one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
