package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/payment"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (payment.Intent, error) {
	args := m.Called(ctx, amount, currency)
	return args.Get(0).(payment.Intent), args.Error(1)
}
