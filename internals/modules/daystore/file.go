package daystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"statusboard/internals/modules/monitor"
	"statusboard/pkg/apperror"

	"github.com/moby/sys/atomicwriter"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const filePerm = 0o644

// FileStore keeps one JSON day-file per monitor at monitor.Path0Day.
// Writes replace the file through a temp file and rename, so readers see
// either the old or the new day and never a torn one.
type FileStore struct {
	locks  *keyedLocks
	reads  singleflight.Group
	logger *zerolog.Logger
}

func NewFileStore(logger *zerolog.Logger) *FileStore {
	return &FileStore{
		locks:  newKeyedLocks(),
		logger: logger,
	}
}

func (s *FileStore) ReadDay(ctx context.Context, m monitor.Monitor) (Day, error) {
	const op string = "daystore.file.read_day"

	if err := ctx.Err(); err != nil {
		return nil, apperror.New(apperror.RequestTimeout, op, err).WithMessage("request cancelled or timed out")
	}

	v, err, _ := s.reads.Do(m.Path0Day, func() (any, error) {
		return readDayFile(m.Path0Day)
	})
	if err != nil {
		return nil, apperror.Storage(op, err)
	}
	// the flight result is shared between callers
	return v.(Day).clone(), nil
}

func (s *FileStore) WriteMinute(ctx context.Context, m monitor.Monitor, ts int64, rec Record) error {
	const op string = "daystore.file.write_minute"

	if !rec.Status.Valid() {
		return apperror.Invalid(op, "invalid status")
	}
	if err := ctx.Err(); err != nil {
		return apperror.New(apperror.RequestTimeout, op, err).WithMessage("request cancelled or timed out")
	}

	unlock := s.locks.lock(m.Tag)
	defer unlock()

	day, err := readDayFile(m.Path0Day)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Str("tag", m.Tag).Str("path", m.Path0Day).Msg("day-file missing on write, starting a new one")
		day, err = Day{}, nil
	}
	if err != nil {
		return apperror.Storage(op, err)
	}

	day[MinuteStart(ts)] = rec

	if err := writeDayFile(m.Path0Day, day); err != nil {
		return apperror.Storage(op, err)
	}
	s.reads.Forget(m.Path0Day)
	return nil
}

func (s *FileStore) Reset(ctx context.Context, m monitor.Monitor, suffix string) error {
	const op string = "daystore.file.reset"

	unlock := s.locks.lock(m.Tag)
	defer unlock()

	archive := m.Path0Day + "." + suffix
	if err := os.Rename(m.Path0Day, archive); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperror.Storage(op, err)
	}
	if err := writeDayFile(m.Path0Day, Day{}); err != nil {
		return apperror.Storage(op, err)
	}
	s.reads.Forget(m.Path0Day)

	s.logger.Info().Str("tag", m.Tag).Str("archive", archive).Msg("day-file rotated")
	return nil
}

func (s *FileStore) Ensure(ctx context.Context, m monitor.Monitor) error {
	const op string = "daystore.file.ensure"

	unlock := s.locks.lock(m.Tag)
	defer unlock()

	_, err := os.Stat(m.Path0Day)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return apperror.Storage(op, err)
	}
	if err := os.MkdirAll(filepath.Dir(m.Path0Day), 0o755); err != nil {
		return apperror.Storage(op, err)
	}
	if err := writeDayFile(m.Path0Day, Day{}); err != nil {
		return apperror.Storage(op, err)
	}
	return nil
}

func readDayFile(path string) (Day, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	day := Day{}
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if day == nil {
		day = Day{}
	}
	for ts, rec := range day {
		if !rec.Status.Valid() {
			return nil, fmt.Errorf("parse %s: record %d has no status", path, ts)
		}
	}
	return day, nil
}

func writeDayFile(path string, day Day) error {
	raw, err := json.Marshal(day)
	if err != nil {
		return err
	}
	return atomicwriter.WriteFile(path, raw, filePerm)
}
