// Package policy holds the pure access decisions for article submission
// and admin-only actions. Nothing here touches a store.
package policy

import (
	"errors"
	"time"

	"newshub/internal/model"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrOneArticleLimit = errors.New("normal users can only post one article")
	ErrNotAdmin        = errors.New("admin access required")
	ErrNotAuthor       = errors.New("only the author or an admin can edit this article")
	ErrPaymentRequired = errors.New("premium requires a successful payment")
)

// IsPremium reports whether now falls inside the user's premium window.
func IsPremium(u *model.User, now time.Time) bool {
	return u != nil && u.PremiumInfo != nil && u.PremiumInfo.After(now)
}

// PremiumExpired reports whether the user holds a premium timestamp that is no longer in the future.
func PremiumExpired(u *model.User, now time.Time) bool {
	return u != nil && u.PremiumInfo != nil && !u.PremiumInfo.After(now)
}

// AuthorizeSubmission decides whether u may submit another article.
// hasArticle says whether an article authored by u's email already exists.
func AuthorizeSubmission(u *model.User, hasArticle bool, now time.Time) error {
	if u == nil {
		return ErrUserNotFound
	}
	if IsPremium(u, now) {
		return nil
	}
	if hasArticle {
		return ErrOneArticleLimit
	}
	return nil
}

// AuthorizeAdmin allows only users holding the admin role.
func AuthorizeAdmin(u *model.User) error {
	if u == nil {
		return ErrUserNotFound
	}
	if u.Role != model.RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}

// AuthorizeArticleEdit allows the article's author or any admin.
func AuthorizeArticleEdit(email string, u *model.User, a *model.Article) error {
	if a != nil && email != "" && a.AuthorEmail == email {
		return nil
	}
	if u != nil && u.Role == model.RoleAdmin {
		return nil
	}
	return ErrNotAuthor
}

// AuthorizePremiumGrant allows a future premium window only when the user
// has at least one successful payment on record. Revoking is always allowed.
func AuthorizePremiumGrant(granting, paid bool) error {
	if granting && !paid {
		return ErrPaymentRequired
	}
	return nil
}
