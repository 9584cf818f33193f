package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"newshub/internal/model"
	"newshub/internal/repository"
)

const userColumns = "id, email, name, photo, role, premium_info, created_at"

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// CreateIfAbsent inserts the user unless the email is already taken.
func (r *UserPostgres) CreateIfAbsent(ctx context.Context, u *model.User) (*model.User, bool, error) {
	const q = `
		INSERT INTO users (id, email, name, photo, role, premium_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO NOTHING
		RETURNING ` + userColumns
	stored, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.Name, u.Photo, u.Role, u.PremiumInfo, u.CreatedAt,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	existing, err := r.FindByEmail(ctx, u.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// FindByEmail fetches a single user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// List returns users using LIMIT/OFFSET pagination in insertion order.
func (r *UserPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	total, err := approximateCount(ctx, r.db, "users")
	if err != nil {
		return nil, err
	}

	const q = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.User]{Items: items, Total: total}, nil
}

// UpdateProfile changes the display name and/or photo.
func (r *UserPostgres) UpdateProfile(ctx context.Context, email string, name, photo *string) (*model.User, error) {
	set := map[string]any{}
	if name != nil {
		set["name"] = *name
	}
	if photo != nil {
		set["photo"] = *photo
	}
	if len(set) == 0 {
		return r.FindByEmail(ctx, email)
	}

	q, args, err := psql.Update("users").
		SetMap(set).
		Where(sq.Eq{"email": email}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRowContext(ctx, q, args...))
}

// SetPremium stores the end of the premium window; nil clears it.
func (r *UserPostgres) SetPremium(ctx context.Context, email string, until *time.Time) (*model.User, error) {
	const q = `UPDATE users SET premium_info = $1 WHERE email = $2 RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, until, email))
}

// SetRole changes a user's role by id.
func (r *UserPostgres) SetRole(ctx context.Context, id, role string) (int64, error) {
	const q = `UPDATE users SET role = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, q, role, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearExpiredPremium is a no-op unless the stored expiry has passed.
func (r *UserPostgres) ClearExpiredPremium(ctx context.Context, email string, now time.Time) (int64, error) {
	const q = `
		UPDATE users SET premium_info = NULL
		WHERE email = $1 AND premium_info IS NOT NULL AND premium_info <= $2
	`
	res, err := r.db.ExecContext(ctx, q, email, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats counts users by premium state relative to now.
func (r *UserPostgres) Stats(ctx context.Context, now time.Time) (*model.UserStats, error) {
	total, err := approximateCount(ctx, r.db, "users")
	if err != nil {
		return nil, err
	}

	const q = `
		SELECT COUNT(*) FILTER (WHERE premium_info IS NULL),
		       COUNT(*) FILTER (WHERE premium_info > $1)
		FROM users
	`
	stats := &model.UserStats{TotalUsers: total}
	if err := r.db.QueryRowContext(ctx, q, now).Scan(&stats.NormalUsers, &stats.PremiumUsers); err != nil {
		return nil, err
	}
	return stats, nil
}

func scanUser(s rowScanner) (*model.User, error) {
	var (
		u       model.User
		premium sql.NullTime
	)
	if err := s.Scan(&u.ID, &u.Email, &u.Name, &u.Photo, &u.Role, &premium, &u.CreatedAt); err != nil {
		return nil, err
	}
	if premium.Valid {
		t := premium.Time
		u.PremiumInfo = &t
	}
	return &u, nil
}
