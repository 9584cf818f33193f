package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"newshub/internal/model"
	"newshub/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateIfAbsent(ctx context.Context, u *model.User) (*model.User, bool, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.User]), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, email string, name, photo *string) (*model.User, error) {
	args := m.Called(ctx, email, name, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetPremium(ctx context.Context, email string, until *time.Time) (*model.User, error) {
	args := m.Called(ctx, email, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id, role string) (int64, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ClearExpiredPremium(ctx context.Context, email string, now time.Time) (int64, error) {
	args := m.Called(ctx, email, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Stats(ctx context.Context, now time.Time) (*model.UserStats, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserStats), args.Error(1)
}
