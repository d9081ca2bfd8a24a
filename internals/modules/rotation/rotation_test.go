package rotation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"statusboard/internals/modules/daystore"
	"statusboard/internals/modules/monitor"
	"statusboard/internals/modules/status"
	"statusboard/internals/modules/timeline"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

func newCatalog(t *testing.T, monitors ...monitor.Monitor) *monitor.Catalog {
	t.Helper()
	reg, err := monitor.NewRegistry(monitors)
	if err != nil {
		t.Fatal(err)
	}
	return monitor.NewCatalog(reg)
}

func TestRunOnce_ArchivesAndEmptiesTheDay(t *testing.T) {
	logger := zerolog.Nop()
	dir := t.TempDir()
	api := monitor.Monitor{Tag: "api", Name: "API", Path0Day: filepath.Join(dir, "api.json")}
	web := monitor.Monitor{Tag: "web", Name: "Web", Path0Day: filepath.Join(dir, "web.json")}

	store := daystore.NewFileStore(&logger)
	ctx := context.Background()
	for _, m := range []monitor.Monitor{api, web} {
		if err := store.Ensure(ctx, m); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.WriteMinute(ctx, api, 1705276800, daystore.Record{Status: status.Up}); err != nil {
		t.Fatal(err)
	}

	// 2024-01-16 00:00:05 UTC, the 15th just ended
	clock := timeline.FixedClock(time.Date(2024, 1, 16, 0, 0, 5, 0, time.UTC))
	r := New(store, newCatalog(t, api, web), time.UTC, clock, &logger)

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	day, err := store.ReadDay(ctx, api)
	if err != nil {
		t.Fatal(err)
	}
	if len(day) != 0 {
		t.Errorf("day after rotation = %+v, want empty", day)
	}

	raw, err := os.ReadFile(api.Path0Day + ".2024-01-15")
	if err != nil {
		t.Fatalf("archive missing: %v", err)
	}
	if len(raw) < 10 {
		t.Errorf("archive = %s", raw)
	}
	if _, err := os.Stat(web.Path0Day + ".2024-01-15"); err != nil {
		t.Errorf("web archive missing: %v", err)
	}
}

func TestArchiveSuffix_UsesRotationTimezone(t *testing.T) {
	logger := zerolog.Nop()
	// 2024-01-15 20:00 UTC is already the 16th in UTC+5
	clock := timeline.FixedClock(time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC))
	loc := time.FixedZone("UTC+5", 5*3600)

	r := New(nil, newCatalog(t), loc, clock, &logger)
	if got := r.ArchiveSuffix(); got != "2024-01-15" {
		t.Errorf("ArchiveSuffix = %q, want 2024-01-15", got)
	}
}

type flakyStore struct {
	calls []string
}

func (f *flakyStore) Reset(_ context.Context, m monitor.Monitor, _ string) error {
	f.calls = append(f.calls, m.Tag)
	if m.Tag == "api" {
		return errors.New("disk full")
	}
	return nil
}

func TestRunOnce_ContinuesPastFailures(t *testing.T) {
	logger := zerolog.Nop()
	store := &flakyStore{}
	catalog := newCatalog(t,
		monitor.Monitor{Tag: "api", Path0Day: "a"},
		monitor.Monitor{Tag: "web", Path0Day: "w"},
	)
	r := New(store, catalog, time.UTC, timeline.SystemClock{}, &logger)

	if err := r.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(store.calls) != 2 {
		t.Errorf("Reset calls = %v, want both monitors", store.calls)
	}
}

func TestSpec_FiresAtLocalMidnight(t *testing.T) {
	logger := zerolog.Nop()
	loc, err := time.LoadLocation("UTC")
	if err != nil {
		t.Fatal(err)
	}
	r := New(nil, newCatalog(t), loc, timeline.SystemClock{}, &logger)

	sched, err := cron.ParseStandard(r.Spec())
	if err != nil {
		t.Fatalf("ParseStandard(%q): %v", r.Spec(), err)
	}
	next := sched.Next(time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC))
	if want := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}
