package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"newshub/internal/auth"
	"newshub/internal/policy"
)

// PrincipalLocalKey stores the verified auth.Principal in fiber locals.
const PrincipalLocalKey = "principal"

// PremiumNormalizer clears an expired premium window for a user.
type PremiumNormalizer interface {
	NormalizePremium(ctx context.Context, email string) error
}

// AdminChecker decides whether email may perform admin actions.
type AdminChecker interface {
	RequireAdmin(ctx context.Context, email string) error
}

// VerifyToken authenticates the bearer token and normalizes the caller's
// premium expiry before any handler runs.
// Missing or malformed credentials give 401, rejected tokens give 403.
func VerifyToken(v auth.Verifier, users PremiumNormalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized access")
		}

		p, err := v.Verify(c.UserContext(), token)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "forbidden access")
		}

		if err := users.NormalizePremium(c.UserContext(), p.Email); err != nil {
			return err
		}

		c.Locals(PrincipalLocalKey, p)
		return c.Next()
	}
}

// VerifyAdmin must run after VerifyToken.
func VerifyAdmin(users AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized access")
		}

		err := users.RequireAdmin(c.UserContext(), p.Email)
		switch {
		case errors.Is(err, policy.ErrNotAdmin), errors.Is(err, policy.ErrUserNotFound):
			return fiber.NewError(fiber.StatusForbidden, "forbidden access")
		case err != nil:
			return err
		}
		return c.Next()
	}
}

// PrincipalFrom returns the principal stored by VerifyToken.
func PrincipalFrom(c *fiber.Ctx) (auth.Principal, bool) {
	p, ok := c.Locals(PrincipalLocalKey).(auth.Principal)
	return p, ok
}
