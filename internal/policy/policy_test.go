package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"newshub/internal/model"
)

func at(t time.Time) *time.Time { return &t }

func TestIsPremium(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		user *model.User
		want bool
	}{
		{name: "nil user", user: nil, want: false},
		{name: "no premium info", user: &model.User{}, want: false},
		{name: "expired yesterday", user: &model.User{PremiumInfo: at(now.Add(-24 * time.Hour))}, want: false},
		{name: "expires exactly now", user: &model.User{PremiumInfo: at(now)}, want: false},
		{name: "expires tomorrow", user: &model.User{PremiumInfo: at(now.Add(24 * time.Hour))}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPremium(tt.user, now))
		})
	}
}

func TestPremiumExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, PremiumExpired(nil, now))
	assert.False(t, PremiumExpired(&model.User{}, now))
	assert.True(t, PremiumExpired(&model.User{PremiumInfo: at(now.Add(-time.Minute))}, now))
	assert.False(t, PremiumExpired(&model.User{PremiumInfo: at(now.Add(time.Minute))}, now))
}

func TestAuthorizeSubmission(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	normal := &model.User{Email: "a@example.com", Role: model.RoleUser}
	premium := &model.User{Email: "p@example.com", PremiumInfo: at(now.Add(time.Hour))}
	lapsed := &model.User{Email: "l@example.com", PremiumInfo: at(now.Add(-time.Hour))}

	tests := []struct {
		name       string
		user       *model.User
		hasArticle bool
		wantErr    error
	}{
		{name: "unknown user", user: nil, wantErr: ErrUserNotFound},
		{name: "normal user first article", user: normal, hasArticle: false},
		{name: "normal user second article", user: normal, hasArticle: true, wantErr: ErrOneArticleLimit},
		{name: "premium user unlimited", user: premium, hasArticle: true},
		{name: "lapsed premium is normal", user: lapsed, hasArticle: true, wantErr: ErrOneArticleLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeSubmission(tt.user, tt.hasArticle, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	assert.Contains(t, ErrOneArticleLimit.Error(), "one article")
}

func TestAuthorizeAdmin(t *testing.T) {
	assert.ErrorIs(t, AuthorizeAdmin(nil), ErrUserNotFound)
	assert.ErrorIs(t, AuthorizeAdmin(&model.User{Role: model.RoleUser}), ErrNotAdmin)
	assert.ErrorIs(t, AuthorizeAdmin(&model.User{}), ErrNotAdmin)
	assert.NoError(t, AuthorizeAdmin(&model.User{Role: model.RoleAdmin}))
}

func TestAuthorizeArticleEdit(t *testing.T) {
	article := &model.Article{AuthorEmail: "author@example.com"}

	assert.NoError(t, AuthorizeArticleEdit("author@example.com", nil, article))
	assert.NoError(t, AuthorizeArticleEdit("boss@example.com", &model.User{Role: model.RoleAdmin}, article))
	assert.ErrorIs(t, AuthorizeArticleEdit("other@example.com", &model.User{Role: model.RoleUser}, article), ErrNotAuthor)
	assert.ErrorIs(t, AuthorizeArticleEdit("", nil, article), ErrNotAuthor)
}

func TestAuthorizePremiumGrant(t *testing.T) {
	assert.NoError(t, AuthorizePremiumGrant(true, true))
	assert.ErrorIs(t, AuthorizePremiumGrant(true, false), ErrPaymentRequired)
	assert.NoError(t, AuthorizePremiumGrant(false, false))
}
