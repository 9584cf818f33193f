package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/model"
)

type MockPublisherRepository struct {
	mock.Mock
}

func (m *MockPublisherRepository) Create(ctx context.Context, p *model.Publisher) (*model.Publisher, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publisher), args.Error(1)
}

func (m *MockPublisherRepository) List(ctx context.Context) ([]model.Publisher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publisher), args.Error(1)
}
