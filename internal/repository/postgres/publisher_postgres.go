package postgres

import (
	"context"
	"database/sql"

	"newshub/internal/model"
	"newshub/internal/repository"
)

// PublisherPostgres is a PostgreSQL implementation of repository.PublisherRepository.
type PublisherPostgres struct {
	db *sql.DB
}

// NewPublisherPostgres creates a new PublisherPostgres repository.
func NewPublisherPostgres(db *sql.DB) *PublisherPostgres {
	return &PublisherPostgres{db: db}
}

var _ repository.PublisherRepository = (*PublisherPostgres)(nil)

func (r *PublisherPostgres) Create(ctx context.Context, p *model.Publisher) (*model.Publisher, error) {
	const q = `
		INSERT INTO publishers (id, name, logo, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, logo, created_at
	`
	var out model.Publisher
	if err := r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.Logo, p.CreatedAt).
		Scan(&out.ID, &out.Name, &out.Logo, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PublisherPostgres) List(ctx context.Context) ([]model.Publisher, error) {
	const q = `SELECT id, name, logo, created_at FROM publishers ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Publisher, 0)
	for rows.Next() {
		var p model.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.Logo, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
