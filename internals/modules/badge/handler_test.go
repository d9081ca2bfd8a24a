package badge

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"statusboard/internals/modules/daystore"
	"statusboard/internals/modules/monitor"
	"statusboard/internals/modules/status"
	"statusboard/internals/modules/timeline"
	"statusboard/pkg/apperror"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// 2024-01-15T00:00:00Z
const jan15 int64 = 1705276800

type fakeReader struct {
	day daystore.Day
	err error
}

func (f *fakeReader) ReadDay(context.Context, monitor.Monitor) (daystore.Day, error) {
	return f.day, f.err
}

func newTestRouter(t *testing.T, reader *fakeReader) http.Handler {
	t.Helper()
	reg, err := monitor.NewRegistry([]monitor.Monitor{{Tag: "api", Name: "API", Path0Day: "unused"}})
	if err != nil {
		t.Fatal(err)
	}
	logger := zerolog.Nop()
	engine := timeline.NewEngine(reader, timeline.FixedClock(time.Unix(jan15+3*60, 0)))
	return Routes(NewHandler(monitor.NewCatalog(reg), reader, engine, time.UTC, &logger))
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStatusBadge_UsesLatestRecord(t *testing.T) {
	h := newTestRouter(t, &fakeReader{day: daystore.Day{
		jan15 + 120: {Status: status.Down},
		jan15:       {Status: status.Up},
		jan15 + 60:  {Status: status.Degraded},
	}})

	rec := get(h, "/api")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "no-cache") {
		t.Errorf("Cache-Control = %q", cc)
	}
	body := rec.Body.String()
	if !strings.Contains(body, ">DOWN</text>") || !strings.Contains(body, `fill="`+status.Down.Color()+`"`) {
		t.Errorf("badge does not show DOWN:\n%s", body)
	}
}

func TestStatusBadge_QueryOverrides(t *testing.T) {
	h := newTestRouter(t, &fakeReader{day: daystore.Day{jan15: {Status: status.Up}}})

	body := get(h, "/api?color=blue&labelColor=000000&style=flat-square").Body.String()
	for _, want := range []string{`fill="#007ec6"`, `fill="#000000"`, `rx="0"`} {
		if !strings.Contains(body, want) {
			t.Errorf("badge missing %q:\n%s", want, body)
		}
	}

	// bad parameters never fail the request
	rec := get(h, "/api?color=notacolor&style=weird")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d for bad params", rec.Code)
	}
}

func TestStatusBadge_EmptyDayIsNoData(t *testing.T) {
	h := newTestRouter(t, &fakeReader{day: daystore.Day{}})

	body := get(h, "/api").Body.String()
	if !strings.Contains(body, ">NO_DATA</text>") {
		t.Errorf("badge does not show NO_DATA:\n%s", body)
	}
}

func TestUptimeBadge(t *testing.T) {
	h := newTestRouter(t, &fakeReader{day: daystore.Day{
		jan15:       {Status: status.Up},
		jan15 + 60:  {Status: status.Up},
		jan15 + 120: {Status: status.Degraded},
		jan15 + 180: {Status: status.Down},
	}})

	rec := get(h, "/api/uptime?color=red")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	if !strings.Contains(body, ">75.0000%</text>") {
		t.Errorf("uptime message missing:\n%s", body)
	}
	if !strings.Contains(body, `fill="#0079ff"`) {
		t.Errorf("uptime accent missing:\n%s", body)
	}
}

func TestBadge_Errors(t *testing.T) {
	h := newTestRouter(t, &fakeReader{day: daystore.Day{}})
	if rec := get(h, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown tag status = %d, want 404", rec.Code)
	}
	if rec := get(h, "/nope/uptime"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown tag uptime status = %d, want 404", rec.Code)
	}

	broken := newTestRouter(t, &fakeReader{err: apperror.Storage("test", errors.New("corrupt"))})
	rec := get(broken, "/api")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("storage failure status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "storage error") {
		t.Errorf("body = %s", rec.Body)
	}
}
