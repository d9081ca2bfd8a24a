// Package metrics defines the Prometheus metrics of the service. Everything is
// registered with the default registry and served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// RequestDurationSeconds is a histogram of HTTP request latency by route.
	RequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statusboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	// StatusWritesTotal counts minute records written through the webhook.
	StatusWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statusboard_status_writes_total",
			Help: "Total status records written by monitor, status and result.",
		},
		[]string{"monitor", "status", "result"},
	)

	// TrackerCallsTotal counts issue tracker calls by operation and result.
	TrackerCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statusboard_tracker_calls_total",
			Help: "Total issue tracker calls.",
		},
		[]string{"operation", "result"},
	)

	// DayRotationsTotal counts day-file rotations by monitor and result.
	DayRotationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statusboard_day_rotations_total",
			Help: "Total day rotations.",
		},
		[]string{"monitor", "result"},
	)

	// IncidentSideEffectsTotal counts ledger inserts and event publishes
	// that follow an incident creation.
	IncidentSideEffectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statusboard_incident_side_effects_total",
			Help: "Total incident ledger and event publish attempts.",
		},
		[]string{"sink", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDurationSeconds,
		StatusWritesTotal,
		TrackerCallsTotal,
		DayRotationsTotal,
		IncidentSideEffectsTotal,
	)
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// HTTPRecorder feeds the request metrics middleware.
type HTTPRecorder struct{}

func (HTTPRecorder) Observe(method, route string, status int, duration time.Duration) {
	RequestDurationSeconds.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func RecordStatusWrite(monitor, status string, err error) {
	StatusWritesTotal.WithLabelValues(monitor, status, result(err)).Inc()
}

func RecordTrackerCall(operation string, err error) {
	TrackerCallsTotal.WithLabelValues(operation, result(err)).Inc()
}

func RecordDayRotation(monitor string, err error) {
	DayRotationsTotal.WithLabelValues(monitor, result(err)).Inc()
}

func RecordIncidentSideEffect(sink string, err error) {
	IncidentSideEffectsTotal.WithLabelValues(sink, result(err)).Inc()
}
