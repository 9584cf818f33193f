package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/internal/model"
	"newshub/internal/repository"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(strings.Split(userColumns, ", "))
}

func TestUserPostgres_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	u := &model.User{ID: "u1", Email: "a@example.com", Name: "A", Role: model.RoleUser, CreatedAt: now}

	t.Run("inserted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserPostgres(db)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("u1", "a@example.com", "A", "", model.RoleUser, nil, now).
			WillReturnRows(userRows().AddRow("u1", "a@example.com", "A", "", model.RoleUser, nil, now))

		stored, inserted, err := repo.CreateIfAbsent(ctx, u)

		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, "u1", stored.ID)
		assert.Nil(t, stored.PremiumInfo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing email", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserPostgres(db)
		until := now.Add(time.Minute)

		mock.ExpectQuery("INSERT INTO users").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WithArgs("a@example.com").
			WillReturnRows(userRows().AddRow("u0", "a@example.com", "Old", "", model.RoleAdmin, until, now))

		stored, inserted, err := repo.CreateIfAbsent(ctx, u)

		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, "u0", stored.ID)
		assert.Equal(t, model.RoleAdmin, stored.Role)
		require.NotNil(t, stored.PremiumInfo)
		assert.True(t, stored.PremiumInfo.Equal(until))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserPostgres_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.FindByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)
	now := time.Now()

	mock.ExpectQuery("FROM pg_class").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(1, 1).
		WillReturnRows(userRows().AddRow("u2", "b@example.com", "B", "", model.RoleUser, nil, now))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 1, Offset: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "b@example.com", res.Items[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_UpdateProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)
	now := time.Now()
	name := "New Name"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET name = $1 WHERE email = $2 RETURNING id, email")).
		WithArgs(name, "a@example.com").
		WillReturnRows(userRows().AddRow("u1", "a@example.com", name, "", model.RoleUser, nil, now))

	u, err := repo.UpdateProfile(context.Background(), "a@example.com", &name, nil)

	require.NoError(t, err)
	assert.Equal(t, name, u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_SetPremium(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)
	now := time.Now().UTC()
	until := now.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET premium_info = $1 WHERE email = $2")).
		WithArgs(until, "a@example.com").
		WillReturnRows(userRows().AddRow("u1", "a@example.com", "A", "", model.RoleUser, until, now))

	u, err := repo.SetPremium(context.Background(), "a@example.com", &until)

	require.NoError(t, err)
	require.NotNil(t, u.PremiumInfo)
	assert.True(t, u.PremiumInfo.Equal(until))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_SetRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $1 WHERE id = $2")).
		WithArgs(model.RoleAdmin, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.SetRole(context.Background(), "u1", model.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_ClearExpiredPremium(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("premium_info IS NOT NULL AND premium_info <= $2")).
		WithArgs("a@example.com", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.ClearExpiredPremium(context.Background(), "a@example.com", now)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_Stats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM pg_class").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE premium_info IS NULL)")).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"normal", "premium"}).AddRow(7, 2))

	stats, err := repo.Stats(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, &model.UserStats{TotalUsers: 10, NormalUsers: 7, PremiumUsers: 2}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
