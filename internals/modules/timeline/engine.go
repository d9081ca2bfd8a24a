package timeline

import (
	"context"
	"statusboard/internals/modules/daystore"
	"statusboard/internals/modules/monitor"
	"statusboard/internals/modules/status"
	"time"
)

// Entry is one minute of a day timeline. Entries are derived on every read
// and never stored.
type Entry struct {
	Timestamp int64         `json:"timestamp"`
	Status    status.Status `json:"status"`
	CSSClass  string        `json:"cssClass"`
	Index     int           `json:"index"`
}

// DayReader is the part of daystore.Store the engine depends on.
type DayReader interface {
	ReadDay(ctx context.Context, m monitor.Monitor) (daystore.Day, error)
}

type Engine struct {
	store DayReader
	clock Clock
}

func NewEngine(store DayReader, clock Clock) *Engine {
	return &Engine{store: store, clock: clock}
}

// DayBounds returns local midnight of the current day in loc and the start of
// the current minute, both as unix seconds.
func DayBounds(now time.Time, loc *time.Location) (dayStart, minuteNow int64) {
	local := now.In(loc)
	y, mo, d := local.Date()
	dayStart = time.Date(y, mo, d, 0, 0, 0, 0, loc).Unix()
	minuteNow = daystore.MinuteStart(now.Unix())
	return dayStart, minuteNow
}

// BuildDayTimeline returns one entry per minute from local midnight to the
// current minute inclusive. Minutes without a record are NO_DATA; records
// outside the window, such as leftovers of a day that was not rotated yet,
// are ignored.
func (e *Engine) BuildDayTimeline(ctx context.Context, m monitor.Monitor, loc *time.Location) ([]Entry, error) {
	dayStart, now := DayBounds(e.clock.Now(), loc)

	entries := make([]Entry, 0, (now-dayStart)/60+1)
	for ts := dayStart; ts <= now; ts += 60 {
		entries = append(entries, Entry{
			Timestamp: ts,
			Status:    status.NoData,
			CSSClass:  status.NoData.CSSClass(),
			Index:     int((ts - dayStart) / 60),
		})
	}

	day, err := e.store.ReadDay(ctx, m)
	if err != nil {
		return nil, err
	}

	for ts, rec := range day {
		if ts < dayStart || ts > now || (ts-dayStart)%60 != 0 {
			continue
		}
		i := (ts - dayStart) / 60
		entries[i].Status = rec.Status
		entries[i].CSSClass = rec.Status.CSSClass()
	}

	return entries, nil
}

// Summarize computes the uptime over a built timeline.
func Summarize(entries []Entry) status.Summary {
	statuses := make([]status.Status, len(entries))
	for i, e := range entries {
		statuses[i] = e.Status
	}
	return status.Summarize(statuses)
}
