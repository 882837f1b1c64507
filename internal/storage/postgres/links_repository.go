package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gatelink/gatelink/internal/infrastructure/db"
	"github.com/gatelink/gatelink/internal/processing/admin"
	"github.com/gatelink/gatelink/internal/processing/redirect"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// LinksRepository serves both sides of the link table: fresh reads for the
// redirect pipeline and mutations for the admin service.
type LinksRepository struct {
	pool *pgxpool.Pool
}

func NewLinksRepository(pg *db.Postgres) (*LinksRepository, error) {
	if pg == nil || pg.Pool == nil {
		return nil, errors.New("postgres pool is nil")
	}
	if err := ensureSchema(pg, createPartnersTable, createLinksTable); err != nil {
		return nil, err
	}
	return &LinksRepository{pool: pg.Pool}, nil
}

// FindWithPartner reads the link joined with its partner, if any. Always a
// fresh read: admin edits and deletions take effect on the next request.
func (r *LinksRepository) FindWithPartner(ctx context.Context, code string) (*redirect.ShortLink, error) {
	const query = `
SELECT l.code, l.target_url, l.created_at, l.click_count, l.expires_at,
       p.id, p.name, p.domain
FROM links l
LEFT JOIN partners p ON p.id = l.partner_id
WHERE l.code = $1`

	var (
		link          redirect.ShortLink
		partnerID     *int64
		partnerName   *string
		partnerDomain *string
	)
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&link.Code, &link.TargetURL, &link.CreatedAt, &link.ClickCount, &link.ExpiresAt,
		&partnerID, &partnerName, &partnerDomain,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, redirect.ErrNotFound
		}
		return nil, err
	}

	if partnerID != nil {
		link.Partner = &redirect.Partner{ID: *partnerID}
		if partnerName != nil {
			link.Partner.Name = *partnerName
		}
		if partnerDomain != nil {
			link.Partner.Domain = *partnerDomain
		}
	}

	return &link, nil
}

func (r *LinksRepository) InsertLink(ctx context.Context, link *redirect.ShortLink, partnerID *int64) error {
	const query = `
INSERT INTO links (code, target_url, created_at, partner_id, expires_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, link.Code, link.TargetURL, link.CreatedAt.UTC(), partnerID, link.ExpiresAt)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return admin.ErrCodeTaken
	}
	return err
}

func (r *LinksRepository) UpdateLink(ctx context.Context, code string, upd admin.LinkUpdate) (bool, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if upd.TargetURL != nil {
		addSet("target_url", *upd.TargetURL)
	}
	if upd.ClearPartner {
		sets = append(sets, "partner_id = NULL")
	} else if upd.PartnerID != nil {
		addSet("partner_id", *upd.PartnerID)
	}
	if upd.ClearExpiry {
		sets = append(sets, "expires_at = NULL")
	} else if upd.ExpiresAt != nil {
		addSet("expires_at", upd.ExpiresAt.UTC())
	}

	if len(sets) == 0 {
		// Nothing to change; still report whether the row exists.
		var exists bool
		err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM links WHERE code = $1)`, code).Scan(&exists)
		return exists, err
	}

	args = append(args, code)
	query := "UPDATE links SET " + strings.Join(sets, ", ") + " WHERE code = $" + strconv.Itoa(len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *LinksRepository) DeleteLink(ctx context.Context, code string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM links WHERE code = $1`, code)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *LinksRepository) ListLinks(ctx context.Context, limit, offset int) ([]*redirect.ShortLink, error) {
	const query = `
SELECT l.code, l.target_url, l.created_at, l.click_count, l.expires_at,
       p.id, p.name, p.domain
FROM links l
LEFT JOIN partners p ON p.id = l.partner_id
ORDER BY l.created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*redirect.ShortLink, 0, limit)
	for rows.Next() {
		var (
			link          redirect.ShortLink
			partnerID     *int64
			partnerName   *string
			partnerDomain *string
		)
		if err := rows.Scan(
			&link.Code, &link.TargetURL, &link.CreatedAt, &link.ClickCount, &link.ExpiresAt,
			&partnerID, &partnerName, &partnerDomain,
		); err != nil {
			return nil, err
		}
		if partnerID != nil {
			link.Partner = &redirect.Partner{ID: *partnerID}
			if partnerName != nil {
				link.Partner.Name = *partnerName
			}
			if partnerDomain != nil {
				link.Partner.Domain = *partnerDomain
			}
		}
		out = append(out, &link)
	}
	return out, rows.Err()
}

// IncrementClicks bumps the counter. Zero matched rows is success: the link
// may have been deleted while the background recording was in flight.
func (r *LinksRepository) IncrementClicks(ctx context.Context, code string) error {
	_, err := r.pool.Exec(ctx, `UPDATE links SET click_count = click_count + 1 WHERE code = $1`, code)
	return err
}
