package daystore

import (
	"context"
	"encoding/json"
	"fmt"
	"statusboard/internals/modules/monitor"
	"statusboard/pkg/apperror"
	"statusboard/pkg/redisstore"
	"strconv"

	"github.com/rs/zerolog"
)

// DayHashes is the slice of the redis client the RedisStore needs.
type DayHashes interface {
	PutMinute(ctx context.Context, key string, ts int64, record []byte) error
	GetDay(ctx context.Context, key string) (map[string]string, error)
	ArchiveDay(ctx context.Context, key, archiveKey string) error
}

// RedisStore keeps each monitor's day in one redis hash. HSET replaces a
// single field atomically, so no per-monitor lock is needed for writes.
// Redis cannot tell an empty hash from a missing one, so a monitor without
// records reads as an empty day.
type RedisStore struct {
	client DayHashes
	logger *zerolog.Logger
}

func NewRedisStore(client DayHashes, logger *zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func (s *RedisStore) ReadDay(ctx context.Context, m monitor.Monitor) (Day, error) {
	const op string = "daystore.redis.read_day"

	raw, err := s.client.GetDay(ctx, redisstore.DayKey(m.Tag))
	if err != nil {
		return nil, apperror.Storage(op, err)
	}

	day := make(Day, len(raw))
	for field, value := range raw {
		ts, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, apperror.Storage(op, fmt.Errorf("field %q: %w", field, err))
		}
		var rec Record
		if err := json.Unmarshal([]byte(value), &rec); err != nil {
			return nil, apperror.Storage(op, fmt.Errorf("field %q: %w", field, err))
		}
		if !rec.Status.Valid() {
			return nil, apperror.Storage(op, fmt.Errorf("field %q has no status", field))
		}
		day[ts] = rec
	}
	return day, nil
}

func (s *RedisStore) WriteMinute(ctx context.Context, m monitor.Monitor, ts int64, rec Record) error {
	const op string = "daystore.redis.write_minute"

	if !rec.Status.Valid() {
		return apperror.Invalid(op, "invalid status")
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return apperror.Storage(op, err)
	}
	if err := s.client.PutMinute(ctx, redisstore.DayKey(m.Tag), MinuteStart(ts), raw); err != nil {
		return apperror.Storage(op, err)
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context, m monitor.Monitor, suffix string) error {
	const op string = "daystore.redis.reset"

	key := redisstore.DayKey(m.Tag)
	if err := s.client.ArchiveDay(ctx, key, key+":"+suffix); err != nil {
		return apperror.Storage(op, err)
	}
	s.logger.Info().Str("tag", m.Tag).Str("suffix", suffix).Msg("day hash rotated")
	return nil
}

func (s *RedisStore) Ensure(context.Context, monitor.Monitor) error {
	return nil
}
