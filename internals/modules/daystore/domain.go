package daystore

import (
	"context"
	"statusboard/internals/modules/monitor"
	"statusboard/internals/modules/status"
)

// Record is the value stored per minute. Unknown fields in a day-file are
// ignored on read.
type Record struct {
	Status  status.Status `json:"status"`
	Latency *float64      `json:"latency,omitempty"`
	Type    string        `json:"type,omitempty"`
}

// Day maps a minute aligned unix timestamp to its record.
type Day map[int64]Record

// Latest returns the record with the greatest timestamp. Map iteration order
// carries no meaning, so recency is always decided by the key itself.
func (d Day) Latest() (int64, Record, bool) {
	var (
		latest int64
		rec    Record
		found  bool
	)
	for ts, r := range d {
		if !found || ts > latest {
			latest, rec, found = ts, r, true
		}
	}
	return latest, rec, found
}

// Statuses returns every stored status, in no particular order.
func (d Day) Statuses() []status.Status {
	out := make([]status.Status, 0, len(d))
	for _, r := range d {
		out = append(out, r.Status)
	}
	return out
}

func (d Day) clone() Day {
	out := make(Day, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// MinuteStart floors a unix timestamp to the start of its minute.
func MinuteStart(ts int64) int64 {
	m := ts % 60
	if m < 0 {
		m += 60
	}
	return ts - m
}

// Store is the only way to touch day records. Implementations serialize
// writes per monitor and never expose a partially written day.
type Store interface {
	// ReadDay loads the monitor's current day. A missing or corrupt day is a
	// storage error, not an empty day.
	ReadDay(ctx context.Context, m monitor.Monitor) (Day, error)
	// WriteMinute upserts one record; the last write for a timestamp wins.
	WriteMinute(ctx context.Context, m monitor.Monitor, ts int64, rec Record) error
	// Reset archives the current day under suffix and starts an empty one.
	Reset(ctx context.Context, m monitor.Monitor, suffix string) error
	// Ensure creates an empty day when none exists yet.
	Ensure(ctx context.Context, m monitor.Monitor) error
}
