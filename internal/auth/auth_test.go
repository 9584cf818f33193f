package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	token, err := NewIssuer("secret", "newshub", time.Hour).Issue("a@example.com")
	require.NoError(t, err)

	p, err := NewJWTVerifier("secret", "newshub").Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "a@example.com", p.Email)
	assert.Equal(t, "newshub", p.Claims["iss"])
}

func TestVerify_Rejects(t *testing.T) {
	ctx := context.Background()
	good, err := NewIssuer("secret", "newshub", time.Hour).Issue("a@example.com")
	require.NoError(t, err)

	expiredIssuer := NewIssuer("secret", "newshub", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue("a@example.com")
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@example.com",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifier *JWTVerifier
		token    string
	}{
		{"wrong secret", NewJWTVerifier("other", "newshub"), good},
		{"wrong issuer", NewJWTVerifier("secret", "someone-else"), good},
		{"expired", NewJWTVerifier("secret", "newshub"), expired},
		{"missing email", NewJWTVerifier("secret", ""), noEmail},
		{"missing exp", NewJWTVerifier("secret", ""), noExp},
		{"garbage", NewJWTVerifier("secret", ""), "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verifier.Verify(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerify_IssuerOptional(t *testing.T) {
	token, err := NewIssuer("secret", "", time.Hour).Issue("a@example.com")
	require.NoError(t, err)

	p, err := NewJWTVerifier("secret", "").Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "a@example.com", p.Email)
}

func TestVerify_LowercasesEmail(t *testing.T) {
	token, err := NewIssuer("secret", "newshub", time.Hour).Issue(" Reader@Example.COM ")
	require.NoError(t, err)

	p, err := NewJWTVerifier("secret", "newshub").Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", p.Email)
}
