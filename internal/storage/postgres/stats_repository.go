package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gatelink/gatelink/internal/infrastructure/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClickStatsRepository maintains the per-day aggregate table fed by the
// click consumer.
type ClickStatsRepository struct {
	pool *pgxpool.Pool
}

func NewClickStatsRepository(pg *db.Postgres) (*ClickStatsRepository, error) {
	if pg == nil || pg.Pool == nil {
		return nil, errors.New("postgres pool is nil")
	}
	if err := ensureSchema(pg, createClicksDailyTable); err != nil {
		return nil, err
	}
	return &ClickStatsRepository{pool: pg.Pool}, nil
}

func (r *ClickStatsRepository) IncDaily(ctx context.Context, code string, at time.Time) error {
	const query = `
INSERT INTO clicks_daily (code, day, count)
VALUES ($1, $2, 1)
ON CONFLICT (code, day) DO UPDATE SET count = clicks_daily.count + 1`

	day := at.UTC().Truncate(24 * time.Hour)
	_, err := r.pool.Exec(ctx, query, code, day)
	return err
}
