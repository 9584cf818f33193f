package repository

import (
	"context"
	"time"

	"newshub/internal/model"
)

// UserRepository defines data access for users, keyed by email.
type UserRepository interface {
	// CreateIfAbsent inserts u unless a user with the same email exists.
	// It returns the stored user and whether a row was inserted.
	CreateIfAbsent(ctx context.Context, u *model.User) (*model.User, bool, error)

	// FindByEmail returns sql.ErrNoRows when no user has that email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns one page in insertion order with an approximate total.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.User], error)

	// UpdateProfile sets the non-nil name/photo and returns the updated user.
	UpdateProfile(ctx context.Context, email string, name, photo *string) (*model.User, error)

	// SetPremium sets or clears (nil) the premium expiry.
	SetPremium(ctx context.Context, email string, until *time.Time) (*model.User, error)

	// SetRole changes the role of the user with the given id.
	SetRole(ctx context.Context, id, role string) (int64, error)

	// ClearExpiredPremium nulls premium_info when it is not after now.
	ClearExpiredPremium(ctx context.Context, email string, now time.Time) (int64, error)

	// Stats counts all, non-premium (null) and currently premium users.
	Stats(ctx context.Context, now time.Time) (*model.UserStats, error)
}
