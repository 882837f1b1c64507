package postgres

import (
	"context"
	"errors"

	"github.com/gatelink/gatelink/internal/infrastructure/db"
	"github.com/gatelink/gatelink/internal/processing/redirect"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventsRepository appends click and bypass events. Both tables are
// append-only from the application's point of view; rows only disappear via
// the cascade when a link is deleted.
type EventsRepository struct {
	pool *pgxpool.Pool
}

func NewEventsRepository(pg *db.Postgres) (*EventsRepository, error) {
	if pg == nil || pg.Pool == nil {
		return nil, errors.New("postgres pool is nil")
	}
	err := ensureSchema(pg,
		createClickEventsTable,
		createClickEventsIndex,
		createBypassEventsTable,
		createBypassEventsIndex,
	)
	if err != nil {
		return nil, err
	}
	return &EventsRepository{pool: pg.Pool}, nil
}

func (r *EventsRepository) InsertClick(ctx context.Context, event *redirect.ClickEvent) error {
	const query = `
INSERT INTO click_events (code, ip_address, country, city, region, user_agent, device, browser, os, referrer, clicked_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		event.Code,
		event.IP,
		event.Location.Country,
		event.Location.City,
		event.Location.Region,
		event.UserAgent,
		event.Class.Device,
		event.Class.Browser,
		event.Class.OS,
		event.Referrer,
		event.ClickedAt.UTC(),
	)
	return err
}

func (r *EventsRepository) InsertBypass(ctx context.Context, event *redirect.BypassEvent) error {
	const query = `
INSERT INTO bypass_events (code, referrer, ip_address, user_agent, detected_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		event.Code,
		event.Referrer,
		event.IP,
		event.UserAgent,
		event.DetectedAt.UTC(),
	)
	return err
}
