package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"newshub/internal/model"
	"newshub/internal/service"
)

type MockPublisherService struct {
	mock.Mock
}

func (m *MockPublisherService) Create(ctx context.Context, name, logo string) (*model.Publisher, error) {
	args := m.Called(ctx, name, logo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publisher), args.Error(1)
}

func (m *MockPublisherService) List(ctx context.Context) ([]model.Publisher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publisher), args.Error(1)
}

func (m *MockPublisherService) UploadLogo(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*service.LogoUpload, error) {
	args := m.Called(ctx, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LogoUpload), args.Error(1)
}
