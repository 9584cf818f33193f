package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("article not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidID      = errors.New("invalid id")
	ErrStatusRequired = errors.New("status required")
	ErrInvalidStatus  = errors.New("status must be one of pending, approved, declined")
	ErrValidation     = errors.New("validation failed")
	ErrReaderNil      = errors.New("reader is nil")
	ErrStorageOff     = errors.New("object storage is not configured")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// parseID normalizes a path identifier to canonical UUID form.
func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidID
	}
	return u.String(), nil
}
