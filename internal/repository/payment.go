package repository

import (
	"context"

	"newshub/internal/model"
)

// PaymentRepository is append-only: payments are never updated or deleted.
type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) (*model.Payment, error)
	// HasSucceeded reports whether email has any payment with status "succeeded".
	HasSucceeded(ctx context.Context, email string) (bool, error)
}
