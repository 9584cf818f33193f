package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/model"
	"newshub/internal/policy"
	"newshub/internal/repository"
	repoMocks "newshub/internal/repository/mocks"
)

const userID = "5e0c2d0a-88b8-4d4e-b1a4-1f3c2a9d7e10"

func newTestUserService() (*userService, *repoMocks.MockUserRepository) {
	s, users, _ := newTestUserServiceWithPayments()
	return s, users
}

func newTestUserServiceWithPayments() (*userService, *repoMocks.MockUserRepository, *repoMocks.MockPaymentRepository) {
	users := new(repoMocks.MockUserRepository)
	payments := new(repoMocks.MockPaymentRepository)
	s := NewUserService(users, payments).(*userService)
	s.now = func() time.Time { return fixedNow }
	return s, users, payments
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new user", func(t *testing.T) {
		s, u := newTestUserService()
		u.On("CreateIfAbsent", ctx, mock.MatchedBy(func(x *model.User) bool {
			return x.Email == "a@example.com" && x.Role == model.RoleUser && x.PremiumInfo == nil && x.ID != ""
		})).Return(&model.User{Email: "a@example.com"}, true, nil)

		res, err := s.Create(ctx, CreateUserInput{Email: " a@example.com ", Name: "A"})

		require.NoError(t, err)
		assert.True(t, res.Created)
		u.AssertExpectations(t)
	})

	t.Run("existing user", func(t *testing.T) {
		s, u := newTestUserService()
		u.On("CreateIfAbsent", ctx, mock.Anything).Return(&model.User{Email: "a@example.com", Role: model.RoleAdmin}, false, nil)

		res, err := s.Create(ctx, CreateUserInput{Email: "a@example.com"})

		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, model.RoleAdmin, res.User.Role)
	})

	t.Run("mixed case stored lowercased", func(t *testing.T) {
		s, u := newTestUserService()
		u.On("CreateIfAbsent", ctx, mock.MatchedBy(func(x *model.User) bool {
			return x.Email == "reader@example.com"
		})).Return(&model.User{Email: "reader@example.com"}, true, nil)

		res, err := s.Create(ctx, CreateUserInput{Email: "Reader@Example.com"})

		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", res.User.Email)
		u.AssertExpectations(t)
	})

	for _, email := range []string{"", "not-an-email", "Ann <a@example.com>"} {
		s, u := newTestUserService()
		_, err := s.Create(ctx, CreateUserInput{Email: email})
		assert.ErrorIs(t, err, ErrValidation, email)
		u.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	}
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	s, u := newTestUserService()
	u.On("List", ctx, repository.PageQuery{Limit: 20, Offset: 40}).
		Return(&repository.PageResult[model.User]{Items: []model.User{{Email: "a@example.com"}}, Total: 3}, nil)

	res, err := s.List(ctx, 2, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Len(t, res.Users, 1)

	_, err = s.List(ctx, 0, 500)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_GetByEmail(t *testing.T) {
	ctx := context.Background()
	s, u := newTestUserService()
	u.On("FindByEmail", ctx, "a@example.com").Return(&model.User{Email: "a@example.com"}, nil)
	u.On("FindByEmail", ctx, "b@example.com").Return(nil, sql.ErrNoRows)

	got, err := s.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	got, err = s.GetByEmail(ctx, " A@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = s.GetByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.GetByEmail(ctx, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_Role(t *testing.T) {
	ctx := context.Background()
	s, u := newTestUserService()
	u.On("FindByEmail", ctx, "admin@example.com").Return(&model.User{Role: model.RoleAdmin}, nil)
	u.On("FindByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)

	role, err := s.Role(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	role, err = s.Role(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, role)
}

func TestUserService_RequireAdmin(t *testing.T) {
	ctx := context.Background()
	s, u := newTestUserService()
	u.On("FindByEmail", ctx, "admin@example.com").Return(&model.User{Role: model.RoleAdmin}, nil)
	u.On("FindByEmail", ctx, "reader@example.com").Return(&model.User{Role: model.RoleUser}, nil)
	u.On("FindByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)

	assert.NoError(t, s.RequireAdmin(ctx, "admin@example.com"))
	assert.ErrorIs(t, s.RequireAdmin(ctx, "reader@example.com"), policy.ErrNotAdmin)
	assert.ErrorIs(t, s.RequireAdmin(ctx, "ghost@example.com"), policy.ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	s, u := newTestUserService()
	name := "Ann"
	u.On("UpdateProfile", ctx, "a@example.com", &name, (*string)(nil)).Return(&model.User{Name: name}, nil)

	got, err := s.UpdateProfile(ctx, "a@example.com", &name, nil)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)

	blank := " "
	_, err = s.UpdateProfile(ctx, "a@example.com", &blank, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_SetPremium(t *testing.T) {
	ctx := context.Background()

	t.Run("future expiry", func(t *testing.T) {
		s, u, p := newTestUserServiceWithPayments()
		until := fixedNow.Add(30 * 24 * time.Hour)
		p.On("HasSucceeded", ctx, "a@example.com").Return(true, nil)
		u.On("SetPremium", ctx, "a@example.com", &until).Return(&model.User{PremiumInfo: &until}, nil)

		got, err := s.SetPremium(ctx, "A@Example.com", &until)

		require.NoError(t, err)
		assert.True(t, got.PremiumInfo.Equal(until))
		p.AssertExpectations(t)
	})

	t.Run("future expiry without payment", func(t *testing.T) {
		s, u, p := newTestUserServiceWithPayments()
		until := fixedNow.Add(30 * 24 * time.Hour)
		p.On("HasSucceeded", ctx, "a@example.com").Return(false, nil)

		_, err := s.SetPremium(ctx, "a@example.com", &until)

		assert.ErrorIs(t, err, policy.ErrPaymentRequired)
		u.AssertNotCalled(t, "SetPremium", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("payment lookup fails", func(t *testing.T) {
		s, u, p := newTestUserServiceWithPayments()
		until := fixedNow.Add(time.Hour)
		p.On("HasSucceeded", ctx, "a@example.com").Return(false, sql.ErrConnDone)

		_, err := s.SetPremium(ctx, "a@example.com", &until)

		assert.ErrorIs(t, err, sql.ErrConnDone)
		u.AssertNotCalled(t, "SetPremium", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("past expiry rejected", func(t *testing.T) {
		s, u := newTestUserService()
		past := fixedNow.Add(-time.Minute)

		_, err := s.SetPremium(ctx, "a@example.com", &past)

		assert.ErrorIs(t, err, ErrValidation)
		u.AssertNotCalled(t, "SetPremium", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("revoke", func(t *testing.T) {
		s, u, p := newTestUserServiceWithPayments()
		u.On("SetPremium", ctx, "a@example.com", (*time.Time)(nil)).Return(&model.User{}, nil)

		got, err := s.SetPremium(ctx, "a@example.com", nil)

		require.NoError(t, err)
		assert.Nil(t, got.PremiumInfo)
		p.AssertNotCalled(t, "HasSucceeded", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		s, u := newTestUserService()
		u.On("SetPremium", ctx, "ghost@example.com", (*time.Time)(nil)).Return(nil, sql.ErrNoRows)

		_, err := s.SetPremium(ctx, "ghost@example.com", nil)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_MakeAdmin(t *testing.T) {
	ctx := context.Background()
	s, u := newTestUserService()
	u.On("SetRole", ctx, userID, model.RoleAdmin).Return(int64(1), nil).Once()
	u.On("SetRole", ctx, userID, model.RoleAdmin).Return(int64(0), nil).Once()

	assert.NoError(t, s.MakeAdmin(ctx, userID))
	assert.ErrorIs(t, s.MakeAdmin(ctx, userID), ErrUserNotFound)
	assert.ErrorIs(t, s.MakeAdmin(ctx, "admin"), ErrInvalidID)
	u.AssertExpectations(t)
}

func TestUserService_NormalizePremium(t *testing.T) {
	ctx := context.Background()
	s, u := newTestUserService()
	u.On("ClearExpiredPremium", ctx, "a@example.com", fixedNow).Return(int64(1), nil)

	assert.NoError(t, s.NormalizePremium(ctx, "a@example.com"))
	u.AssertExpectations(t)
}

func TestUserService_Stats(t *testing.T) {
	ctx := context.Background()
	s, u := newTestUserService()
	want := &model.UserStats{TotalUsers: 3, NormalUsers: 1, PremiumUsers: 1}
	u.On("Stats", ctx, fixedNow).Return(want, nil)

	got, err := s.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
