package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"newshub/internal/model"
	"newshub/internal/repository"
)

// PaymentPostgres is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentPostgres struct {
	db *sql.DB
}

// NewPaymentPostgres creates a new PaymentPostgres repository.
func NewPaymentPostgres(db *sql.DB) *PaymentPostgres {
	return &PaymentPostgres{db: db}
}

var _ repository.PaymentRepository = (*PaymentPostgres)(nil)

// Create appends a payment record.
func (r *PaymentPostgres) Create(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	meta := p.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode payment metadata: %w", err)
	}

	const q = `
		INSERT INTO payments (id, email, amount, currency, status, transaction_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, email, amount, currency, status, transaction_id, metadata, created_at
	`
	var (
		out     model.Payment
		rawMeta []byte
	)
	if err := r.db.QueryRowContext(ctx, q,
		p.ID, p.Email, p.Amount, p.Currency, p.Status, p.TransactionID, string(metaJSON), p.CreatedAt,
	).Scan(&out.ID, &out.Email, &out.Amount, &out.Currency, &out.Status, &out.TransactionID, &rawMeta, &out.CreatedAt); err != nil {
		return nil, err
	}
	if len(rawMeta) > 0 {
		if err := json.Unmarshal(rawMeta, &out.Metadata); err != nil {
			return nil, fmt.Errorf("decode payment metadata: %w", err)
		}
	}
	return &out, nil
}

// HasSucceeded reports whether email has at least one succeeded payment.
func (r *PaymentPostgres) HasSucceeded(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM payments WHERE email = $1 AND status = 'succeeded')`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
