package incident

import (
	"context"
	"statusboard/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const createLedgerTable = `
CREATE TABLE IF NOT EXISTS incident_ledger (
	number          INTEGER PRIMARY KEY,
	title           TEXT NOT NULL,
	state           TEXT NOT NULL,
	html_url        TEXT,
	impact          TEXT,
	labels          TEXT[] NOT NULL DEFAULT '{}',
	tags            TEXT[] NOT NULL DEFAULT '{}',
	start_datetime  BIGINT,
	end_datetime    BIGINT,
	is_maintenance  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at      TIMESTAMPTZ,
	closed_at       TIMESTAMPTZ,
	recorded_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertLedgerEntry = `
INSERT INTO incident_ledger (
	number, title, state, html_url, impact, labels, tags,
	start_datetime, end_datetime, is_maintenance, created_at, closed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (number) DO UPDATE SET
	title = EXCLUDED.title,
	state = EXCLUDED.state,
	html_url = EXCLUDED.html_url,
	impact = EXCLUDED.impact,
	labels = EXCLUDED.labels,
	tags = EXCLUDED.tags,
	start_datetime = EXCLUDED.start_datetime,
	end_datetime = EXCLUDED.end_datetime,
	is_maintenance = EXCLUDED.is_maintenance,
	closed_at = EXCLUDED.closed_at,
	recorded_at = now()`

type Repository struct {
	db     DBTX
	logger *zerolog.Logger
}

func NewRepository(db DBTX, logger *zerolog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	const op string = "repo.incident.ensure_schema"

	if _, err := r.db.Exec(ctx, createLedgerTable); err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	return nil
}

func (r *Repository) Record(ctx context.Context, inc Incident) error {
	const op string = "repo.incident.record"

	_, err := r.db.Exec(ctx, upsertLedgerEntry,
		inc.Number,
		inc.Title,
		inc.State,
		utils.ToPgText(inc.HTMLURL),
		utils.ToPgText(string(inc.Impact)),
		inc.Labels,
		inc.Tags,
		utils.ToPgInt8Ptr(inc.StartDatetime),
		utils.ToPgInt8Ptr(inc.EndDatetime),
		inc.IsMaintenance,
		utils.ToPgTimestamptz(inc.CreatedAt),
		utils.ToPgTimestamptzPtr(inc.ClosedAt),
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	return nil
}
