package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/model"
	"newshub/internal/service"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	args := m.Called(ctx, price)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentService) Record(ctx context.Context, email string, in service.RecordPaymentInput) (*model.Payment, error) {
	args := m.Called(ctx, email, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}
