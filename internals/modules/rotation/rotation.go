// Package rotation archives every monitor's day at local midnight and starts
// an empty one.
package rotation

import (
	"context"
	"errors"
	"statusboard/internals/modules/monitor"
	"statusboard/internals/modules/timeline"
	"statusboard/pkg/metrics"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Resetter is the part of daystore.Store rotation depends on.
type Resetter interface {
	Reset(ctx context.Context, m monitor.Monitor, suffix string) error
}

type Rotator struct {
	cron    *cron.Cron
	store   Resetter
	catalog *monitor.Catalog
	loc     *time.Location
	clock   timeline.Clock
	timeout time.Duration
	logger  *zerolog.Logger
}

func New(store Resetter, catalog *monitor.Catalog, loc *time.Location, clock timeline.Clock, logger *zerolog.Logger) *Rotator {
	return &Rotator{
		cron:    cron.New(),
		store:   store,
		catalog: catalog,
		loc:     loc,
		clock:   clock,
		timeout: time.Minute,
		logger:  logger,
	}
}

// Spec is the cron line that fires at local midnight.
func (r *Rotator) Spec() string {
	return "CRON_TZ=" + r.loc.String() + " 0 0 * * *"
}

func (r *Rotator) Start() error {
	if _, err := r.cron.AddFunc(r.Spec(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.RunOnce(ctx); err != nil {
			r.logger.Error().Err(err).Msg("day rotation finished with errors")
		}
	}); err != nil {
		return err
	}

	r.cron.Start()
	r.logger.Info().Str("spec", r.Spec()).Msg("day rotation scheduled")
	return nil
}

// Stop waits for a running rotation to finish or ctx to expire.
func (r *Rotator) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
	r.logger.Info().Msg("day rotation stopped")
}

// ArchiveSuffix names the day that just ended, yyyy-mm-dd in the rotation
// timezone.
func (r *Rotator) ArchiveSuffix() string {
	return r.clock.Now().In(r.loc).AddDate(0, 0, -1).Format(time.DateOnly)
}

// RunOnce rotates every monitor. A failing monitor does not stop the others.
func (r *Rotator) RunOnce(ctx context.Context) error {
	suffix := r.ArchiveSuffix()

	var errs []error
	for _, m := range r.catalog.Current().All() {
		err := r.store.Reset(ctx, m, suffix)
		metrics.RecordDayRotation(m.Tag, err)
		if err != nil {
			r.logger.Error().Err(err).Str("tag", m.Tag).Str("suffix", suffix).Msg("day rotation failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
