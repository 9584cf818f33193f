package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/model"
	repoMocks "newshub/internal/repository/mocks"
	"newshub/internal/storage"
	storeMocks "newshub/internal/storage/mocks"
)

func TestPublisherService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockPublisherRepository)
	s := NewPublisherService(repo, nil, time.Hour)

	repo.On("Create", ctx, mock.MatchedBy(func(p *model.Publisher) bool {
		return p.Name == "BBC" && p.Logo == "https://cdn/bbc.png" && p.ID != ""
	})).Return(&model.Publisher{ID: "p1", Name: "BBC"}, nil)

	got, err := s.Create(ctx, " BBC ", "https://cdn/bbc.png")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	_, err = s.Create(ctx, "  ", "")
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestPublisherService_UploadLogo(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		contentType string
		setupMocks  func(st *storeMocks.MockStorage)
		wantErr     error
		wantErrMsg  string
	}{
		{
			name:        "happy path",
			contentType: "image/png",
			setupMocks: func(st *storeMocks.MockStorage) {
				st.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "logos/") && strings.HasSuffix(key, "-bbc.png")
				}), mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
					return o.Size == 4 && o.ContentType == "image/png"
				})).Return(func(_ context.Context, key string, _ io.Reader, o storage.PutObjectOptions) storage.ObjectInfo {
					return storage.ObjectInfo{Key: key, Size: o.Size, ContentType: o.ContentType}
				}, nil)
				st.On("PresignGet", ctx, mock.AnythingOfType("string"), 2*time.Hour).Return("https://minio/logos/x?sig", nil)
			},
		},
		{
			name:        "not an image",
			contentType: "application/pdf",
			setupMocks:  func(st *storeMocks.MockStorage) {},
			wantErr:     ErrValidation,
		},
		{
			name:        "storage error",
			contentType: "image/png",
			setupMocks: func(st *storeMocks.MockStorage) {
				st.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:        "presign failure rolls back",
			contentType: "image/png",
			setupMocks: func(st *storeMocks.MockStorage) {
				st.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{Key: "logos/k.png"}, nil)
				st.On("PresignGet", ctx, "logos/k.png", 2*time.Hour).Return("", errors.New("no creds"))
				st.On("Delete", ctx, "logos/k.png").Return(nil)
			},
			wantErrMsg: "presign failed: no creds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := new(storeMocks.MockStorage)
			tt.setupMocks(st)
			s := NewPublisherService(new(repoMocks.MockPublisherRepository), st, 2*time.Hour)

			got, err := s.UploadLogo(ctx, strings.NewReader("\x89PNG"), "BBC.png", tt.contentType, 4)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, "https://minio/logos/x?sig", got.URL)
				assert.True(t, strings.HasPrefix(got.Key, "logos/"))
			}
			st.AssertExpectations(t)
		})
	}
}

func TestPublisherService_UploadLogo_Guards(t *testing.T) {
	ctx := context.Background()

	_, err := NewPublisherService(nil, nil, time.Hour).UploadLogo(ctx, strings.NewReader("x"), "a.png", "image/png", 1)
	assert.ErrorIs(t, err, ErrStorageOff)

	_, err = NewPublisherService(nil, new(storeMocks.MockStorage), time.Hour).UploadLogo(ctx, nil, "a.png", "image/png", 1)
	assert.ErrorIs(t, err, ErrReaderNil)
}
