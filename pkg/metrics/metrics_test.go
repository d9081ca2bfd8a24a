package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	m := &dto.Metric{}
	if err := cv.WithLabelValues(labels...).Write(m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func getHistogramCount(hv *prometheus.HistogramVec, labels ...string) uint64 {
	m := &dto.Metric{}
	if c, ok := hv.WithLabelValues(labels...).(prometheus.Metric); ok {
		if err := c.Write(m); err != nil {
			return 0
		}
		return m.GetHistogram().GetSampleCount()
	}
	return 0
}

func TestHTTPRecorder(t *testing.T) {
	HTTPRecorder{}.Observe("GET", "/badge/{tag}", 200, 15*time.Millisecond)

	if n := getHistogramCount(RequestDurationSeconds, "GET", "/badge/{tag}", "200"); n < 1 {
		t.Errorf("RequestDurationSeconds sample count = %d, want >= 1", n)
	}
}

func TestRecordStatusWrite(t *testing.T) {
	RecordStatusWrite("metrics-test", "UP", nil)
	RecordStatusWrite("metrics-test", "UP", nil)
	RecordStatusWrite("metrics-test", "DOWN", errors.New("disk full"))

	if v := getCounterValue(StatusWritesTotal, "metrics-test", "UP", ResultOK); v != 2 {
		t.Errorf("ok writes = %f, want 2", v)
	}
	if v := getCounterValue(StatusWritesTotal, "metrics-test", "DOWN", ResultError); v != 1 {
		t.Errorf("failed writes = %f, want 1", v)
	}
}

func TestRecordTrackerCall(t *testing.T) {
	RecordTrackerCall("metrics-test-create", errors.New("502"))

	if v := getCounterValue(TrackerCallsTotal, "metrics-test-create", ResultError); v != 1 {
		t.Errorf("TrackerCallsTotal = %f, want 1", v)
	}
}

func TestRecordDayRotationAndSideEffects(t *testing.T) {
	RecordDayRotation("metrics-test", nil)
	RecordIncidentSideEffect("metrics-test-sink", nil)

	if v := getCounterValue(DayRotationsTotal, "metrics-test", ResultOK); v != 1 {
		t.Errorf("DayRotationsTotal = %f, want 1", v)
	}
	if v := getCounterValue(IncidentSideEffectsTotal, "metrics-test-sink", ResultOK); v != 1 {
		t.Errorf("IncidentSideEffectsTotal = %f, want 1", v)
	}
}
