package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"newshub/internal/model"
	"newshub/internal/policy"
	"newshub/internal/repository"
)

// CreateUserInput is the schema accepted when registering a user.
type CreateUserInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// CreateUserResult reports whether the user was new.
type CreateUserResult struct {
	Created bool        `json:"created"`
	User    *model.User `json:"user"`
}

// UserListResult is one page of users. Total is approximate.
type UserListResult struct {
	Total int64        `json:"total"`
	Users []model.User `json:"users"`
}

type UserService interface {
	// Create registers email unless it already exists.
	Create(ctx context.Context, in CreateUserInput) (*CreateUserResult, error)
	List(ctx context.Context, page, limit int) (*UserListResult, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Role returns the user's role, or "user" for unknown emails.
	Role(ctx context.Context, email string) (string, error)
	UpdateProfile(ctx context.Context, email string, name, photo *string) (*model.User, error)
	// SetPremium grants premium until the given instant, which must be in the future; nil revokes it.
	SetPremium(ctx context.Context, email string, until *time.Time) (*model.User, error)
	MakeAdmin(ctx context.Context, id string) error
	// NormalizePremium clears an expired premium window.
	NormalizePremium(ctx context.Context, email string) error
	// RequireAdmin returns a policy error unless email belongs to an admin.
	RequireAdmin(ctx context.Context, email string) error
	Stats(ctx context.Context) (*model.UserStats, error)
}

type userService struct {
	users    repository.UserRepository
	payments repository.PaymentRepository
	now      func() time.Time
}

func NewUserService(users repository.UserRepository, payments repository.PaymentRepository) UserService {
	return &userService{users: users, payments: payments, now: time.Now}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*CreateUserResult, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.TrimSpace(in.Name),
		Photo:     strings.TrimSpace(in.Photo),
		Role:      model.RoleUser,
		CreatedAt: s.now().UTC(),
	}
	stored, created, err := s.users.CreateIfAbsent(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &CreateUserResult{Created: created, User: stored}, nil
}

func (s *userService) List(ctx context.Context, page, limit int) (*UserListResult, error) {
	if page < 0 {
		return nil, invalid("page must be >= 0")
	}
	if limit < 1 || limit > MaxPageLimit {
		return nil, invalid("limit must be between 1 and %d", MaxPageLimit)
	}
	res, err := s.users.List(ctx, repository.PageQuery{Limit: limit, Offset: page * limit})
	if err != nil {
		return nil, err
	}
	return &UserListResult{Total: res.Total, Users: res.Items}, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = canonicalEmail(email)
	if email == "" {
		return nil, invalid("email is required")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Role(ctx context.Context, email string) (string, error) {
	u, err := lookupUser(ctx, s.users, email)
	if err != nil {
		return "", err
	}
	if u == nil || u.Role == "" {
		return model.RoleUser, nil
	}
	return u.Role, nil
}

func (s *userService) UpdateProfile(ctx context.Context, email string, name, photo *string) (*model.User, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, invalid("name must not be empty")
	}
	u, err := s.users.UpdateProfile(ctx, canonicalEmail(email), name, photo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func (s *userService) SetPremium(ctx context.Context, email string, until *time.Time) (*model.User, error) {
	email = canonicalEmail(email)
	if until != nil {
		if !until.After(s.now()) {
			return nil, invalid("premiumInfo must be in the future")
		}
		paid, err := s.payments.HasSucceeded(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("check payments: %w", err)
		}
		if err := policy.AuthorizePremiumGrant(true, paid); err != nil {
			return nil, err
		}
		t := until.UTC()
		until = &t
	}
	u, err := s.users.SetPremium(ctx, email, until)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("set premium: %w", err)
	}
	return u, nil
}

func (s *userService) MakeAdmin(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	n, err := s.users.SetRole(ctx, id, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) NormalizePremium(ctx context.Context, email string) error {
	if _, err := s.users.ClearExpiredPremium(ctx, canonicalEmail(email), s.now()); err != nil {
		return fmt.Errorf("normalize premium: %w", err)
	}
	return nil
}

func (s *userService) Stats(ctx context.Context) (*model.UserStats, error) {
	return s.users.Stats(ctx, s.now())
}

func (s *userService) RequireAdmin(ctx context.Context, email string) error {
	u, err := lookupUser(ctx, s.users, email)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	return policy.AuthorizeAdmin(u)
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("email is required")
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", invalid("email is malformed")
	}
	return strings.ToLower(raw), nil
}

// canonicalEmail is the stored form of an address: trimmed and lowercased.
func canonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
