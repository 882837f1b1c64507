package postgres

import (
	"context"
	"errors"

	"github.com/gatelink/gatelink/internal/infrastructure/db"
	"github.com/gatelink/gatelink/internal/processing/redirect"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PartnersRepository struct {
	pool *pgxpool.Pool
}

func NewPartnersRepository(pg *db.Postgres) (*PartnersRepository, error) {
	if pg == nil || pg.Pool == nil {
		return nil, errors.New("postgres pool is nil")
	}
	if err := ensureSchema(pg, createPartnersTable); err != nil {
		return nil, err
	}
	return &PartnersRepository{pool: pg.Pool}, nil
}

func (r *PartnersRepository) InsertPartner(ctx context.Context, partner *redirect.Partner) error {
	const query = `INSERT INTO partners (name, domain) VALUES ($1, $2) RETURNING id`
	return r.pool.QueryRow(ctx, query, partner.Name, partner.Domain).Scan(&partner.ID)
}

func (r *PartnersRepository) ListPartners(ctx context.Context) ([]*redirect.Partner, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, domain FROM partners ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*redirect.Partner, 0)
	for rows.Next() {
		var p redirect.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.Domain); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PartnersRepository) DeletePartner(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
