package webhook

import (
	"context"
	"fmt"
	"net/http"
	"statusboard/internals/modules/daystore"
	"statusboard/internals/modules/monitor"
	"statusboard/internals/modules/status"
	"statusboard/internals/modules/timeline"
	"statusboard/pkg/apperror"
	"statusboard/pkg/metrics"
	"statusboard/pkg/utils"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Service struct {
	catalog   *monitor.Catalog
	store     daystore.Store
	engine    *timeline.Engine
	clock     timeline.Clock
	loc       *time.Location
	validator *validator.Validate
	logger    *zerolog.Logger
}

func NewService(
	catalog *monitor.Catalog,
	store daystore.Store,
	engine *timeline.Engine,
	clock timeline.Clock,
	loc *time.Location,
	validator *validator.Validate,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		catalog:   catalog,
		store:     store,
		engine:    engine,
		clock:     clock,
		loc:       loc,
		validator: validator,
		logger:    logger,
	}
}

// StoreStatus validates p and writes it as the record of its minute.
// Failures are reported in the result rather than returned.
func (s *Service) StoreStatus(ctx context.Context, p StatusPayload) StoreResult {
	const op string = "service.webhook.store_status"

	if err := s.validator.Struct(p); err != nil {
		return StoreResult{Status: http.StatusBadRequest, Error: utils.ValidationMessage(err)}
	}

	st, err := status.Parse(p.Status)
	if err != nil || !st.Observable() {
		return StoreResult{Status: http.StatusBadRequest, Error: "invalid status"}
	}

	m, ok := s.catalog.Current().Lookup(p.Tag)
	if !ok {
		return StoreResult{Status: http.StatusBadRequest, Error: "no monitor with tag found"}
	}

	ts := s.clock.Now().Unix()
	if p.TimestampInSeconds != nil {
		ts = *p.TimestampInSeconds
	}
	ts = daystore.MinuteStart(ts)

	err = s.store.WriteMinute(ctx, m, ts, daystore.Record{
		Status:  st,
		Latency: p.Latency,
		Type:    p.Type,
	})
	metrics.RecordStatusWrite(m.Tag, st.String(), err)
	if err != nil {
		s.logger.Error().Err(err).Str("op", op).Str("tag", m.Tag).Int64("timestamp", ts).Msg("status write failed")
		code := apperror.HTTPStatus(err)
		if code < http.StatusInternalServerError {
			code = http.StatusInternalServerError
		}
		return StoreResult{Status: code, Error: apperror.MessageOf(err, "storage error")}
	}

	s.logger.Debug().Str("tag", m.Tag).Str("status", st.String()).Int64("timestamp", ts).Msg("status stored")

	return StoreResult{
		Status:    http.StatusOK,
		Message:   fmt.Sprintf("success at %d", ts),
		Timestamp: ts,
	}
}

// GetStatusByTag reports the most recent record of today together with the
// day's uptime.
func (s *Service) GetStatusByTag(ctx context.Context, tag string) (StatusView, error) {
	const op string = "service.webhook.get_status_by_tag"

	m, err := s.catalog.Resolve(op, tag)
	if err != nil {
		return StatusView{}, err
	}

	day, err := s.store.ReadDay(ctx, m)
	if err != nil {
		return StatusView{}, err
	}

	ts, rec, ok := day.Latest()
	if !ok {
		return StatusView{}, apperror.Missing(op, "no status recorded")
	}

	entries, err := s.engine.BuildDayTimeline(ctx, m, s.loc)
	if err != nil {
		return StatusView{}, err
	}

	return StatusView{
		Tag:         m.Tag,
		Status:      rec.Status,
		Uptime:      timeline.Summarize(entries).Uptime,
		LastUpdated: ts,
	}, nil
}
