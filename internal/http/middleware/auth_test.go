package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/auth"
	"newshub/internal/policy"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Principal, error) {
	switch token {
	case "reader-token":
		return auth.Principal{Email: "reader@example.com"}, nil
	case "admin-token":
		return auth.Principal{Email: "admin@example.com"}, nil
	}
	return auth.Principal{}, auth.ErrInvalidToken
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) NormalizePremium(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockUsers) RequireAdmin(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func newAuthApp(users *mockUsers) *fiber.App {
	app := fiber.New()
	verify := VerifyToken(stubVerifier{}, users)
	app.Get("/me", verify, func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(p.Email)
	})
	app.Get("/admin", verify, VerifyAdmin(users), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestVerifyToken(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setupMocks func(u *mockUsers)
		wantStatus int
	}{
		{
			name:   "valid token",
			header: "Bearer reader-token",
			setupMocks: func(u *mockUsers) {
				u.On("NormalizePremium", mock.Anything, "reader@example.com").Return(nil).Once()
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "missing header",
			setupMocks: func(u *mockUsers) {},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			setupMocks: func(u *mockUsers) {},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "bearer without token",
			header:     "Bearer ",
			setupMocks: func(u *mockUsers) {},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			header:     "Bearer forged",
			setupMocks: func(u *mockUsers) {},
			wantStatus: fiber.StatusForbidden,
		},
		{
			name:   "normalization failure",
			header: "Bearer reader-token",
			setupMocks: func(u *mockUsers) {
				u.On("NormalizePremium", mock.Anything, "reader@example.com").Return(errors.New("db down"))
			},
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUsers)
			tt.setupMocks(users)
			app := newAuthApp(users)

			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			users.AssertExpectations(t)
			if tt.wantStatus != fiber.StatusOK && tt.wantStatus != fiber.StatusInternalServerError {
				users.AssertNotCalled(t, "NormalizePremium", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestVerifyAdmin(t *testing.T) {
	users := new(mockUsers)
	users.On("NormalizePremium", mock.Anything, mock.Anything).Return(nil)
	users.On("RequireAdmin", mock.Anything, "admin@example.com").Return(nil)
	users.On("RequireAdmin", mock.Anything, "reader@example.com").Return(policy.ErrNotAdmin)
	app := newAuthApp(users)

	for token, want := range map[string]int{
		"admin-token":  fiber.StatusOK,
		"reader-token": fiber.StatusForbidden,
	} {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, token)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyAdmin_WithoutPrincipal(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", VerifyAdmin(new(mockUsers)), func(c *fiber.Ctx) error { return nil })

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
