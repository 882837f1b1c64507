package postgres

import (
	"context"
	"time"

	"github.com/gatelink/gatelink/internal/infrastructure/db"
)

const schemaTimeout = 10 * time.Second

// ensureSchema runs idempotent DDL at repository construction, the same way
// index bootstrap works elsewhere: first process in wins, the rest no-op.
func ensureSchema(pg *db.Postgres, statements ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	for _, stmt := range statements {
		if _, err := pg.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

const (
	createPartnersTable = `
CREATE TABLE IF NOT EXISTS partners (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	domain     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	createLinksTable = `
CREATE TABLE IF NOT EXISTS links (
	code        VARCHAR(50) PRIMARY KEY,
	target_url  TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	click_count BIGINT NOT NULL DEFAULT 0,
	partner_id  BIGINT REFERENCES partners(id) ON DELETE SET NULL,
	expires_at  TIMESTAMPTZ
)`

	createClickEventsTable = `
CREATE TABLE IF NOT EXISTS click_events (
	id         BIGSERIAL PRIMARY KEY,
	code       VARCHAR(50) NOT NULL REFERENCES links(code) ON DELETE CASCADE,
	ip_address TEXT NOT NULL,
	country    TEXT NOT NULL,
	city       TEXT NOT NULL,
	region     TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	device     TEXT NOT NULL,
	browser    TEXT NOT NULL,
	os         TEXT NOT NULL,
	referrer   TEXT NOT NULL,
	clicked_at TIMESTAMPTZ NOT NULL
)`

	createClickEventsIndex = `
CREATE INDEX IF NOT EXISTS click_events_code_clicked_at ON click_events (code, clicked_at)`

	createBypassEventsTable = `
CREATE TABLE IF NOT EXISTS bypass_events (
	id          BIGSERIAL PRIMARY KEY,
	code        VARCHAR(50) NOT NULL REFERENCES links(code) ON DELETE CASCADE,
	referrer    TEXT NOT NULL,
	ip_address  TEXT NOT NULL,
	user_agent  TEXT NOT NULL DEFAULT '',
	detected_at TIMESTAMPTZ NOT NULL
)`

	createBypassEventsIndex = `
CREATE INDEX IF NOT EXISTS bypass_events_code_detected_at ON bypass_events (code, detected_at)`

	createClicksDailyTable = `
CREATE TABLE IF NOT EXISTS clicks_daily (
	code  VARCHAR(50) NOT NULL,
	day   DATE NOT NULL,
	count BIGINT NOT NULL DEFAULT 0,
	PRIMARY KEY (code, day)
)`
)
