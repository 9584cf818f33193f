package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"newshub/internal/model"
	"newshub/internal/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) userResult(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, in service.CreateUserInput) (*service.CreateUserResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateUserResult), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, page, limit int) (*service.UserListResult, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserListResult), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.userResult(m.Called(ctx, email))
}

func (m *MockUserService) Role(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, email string, name, photo *string) (*model.User, error) {
	return m.userResult(m.Called(ctx, email, name, photo))
}

func (m *MockUserService) SetPremium(ctx context.Context, email string, until *time.Time) (*model.User, error) {
	return m.userResult(m.Called(ctx, email, until))
}

func (m *MockUserService) MakeAdmin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) NormalizePremium(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserService) RequireAdmin(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserService) Stats(ctx context.Context) (*model.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserStats), args.Error(1)
}
