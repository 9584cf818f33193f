package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"newshub/internal/model"
	"newshub/internal/repository"
	"newshub/internal/storage"
)

// LogoUpload locates an uploaded publisher logo.
type LogoUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type PublisherService interface {
	Create(ctx context.Context, name, logo string) (*model.Publisher, error)
	List(ctx context.Context) ([]model.Publisher, error)
	// UploadLogo stores an image and returns a presigned URL usable as a publisher logo.
	UploadLogo(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*LogoUpload, error)
}

type publisherService struct {
	repo          repository.PublisherRepository
	store         storage.Storage
	presignExpiry time.Duration
	now           func() time.Time
}

// NewPublisherService constructs a PublisherService. store may be nil, in
// which case logo uploads fail with ErrStorageOff.
func NewPublisherService(repo repository.PublisherRepository, store storage.Storage, presignExpiry time.Duration) PublisherService {
	return &publisherService{repo: repo, store: store, presignExpiry: presignExpiry, now: time.Now}
}

func (s *publisherService) Create(ctx context.Context, name, logo string) (*model.Publisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	p := &model.Publisher{
		ID:        uuid.NewString(),
		Name:      name,
		Logo:      strings.TrimSpace(logo),
		CreatedAt: s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	return stored, nil
}

func (s *publisherService) List(ctx context.Context) ([]model.Publisher, error) {
	return s.repo.List(ctx)
}

func (s *publisherService) UploadLogo(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*LogoUpload, error) {
	if s.store == nil {
		return nil, ErrStorageOff
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	key, err := storage.LogoKey(filename, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return nil, invalid("logo must be an image, got %q", contentType)
		}
		return nil, err
	}

	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.PresignGet(ctx, info.Key, s.presignExpiry)
	if err != nil {
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign failed: %w", err)
	}
	return &LogoUpload{Key: info.Key, URL: url}, nil
}
