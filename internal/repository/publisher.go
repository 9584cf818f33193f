package repository

import (
	"context"

	"newshub/internal/model"
)

// PublisherRepository defines data access for publishers.
type PublisherRepository interface {
	Create(ctx context.Context, p *model.Publisher) (*model.Publisher, error)
	List(ctx context.Context) ([]model.Publisher, error)
}
