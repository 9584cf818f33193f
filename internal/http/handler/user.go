package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"newshub/internal/service"
)

type profileRequest struct {
	Name  *string `json:"name"`
	Photo *string `json:"photo"`
}

type premiumRequest struct {
	PremiumInfo *time.Time `json:"premiumInfo"`
}

// CreateUser registers a user on first sign-in. Existing users are returned as-is.
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param body body service.CreateUserInput true "user"
// @Success 200 {object} service.CreateUserResult "already registered"
// @Success 201 {object} service.CreateUserResult "created"
// @Failure 400 {object} errorPayload
// @Router /users [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateUserInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "malformed request body")
		}
		res, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		status := fiber.StatusOK
		if res.Created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(res)
	}
}

// @Summary List users (admin)
// @Tags users
// @Produce json
// @Param page query int false "zero-based page"
// @Param limit query int false "page size, 1-100"
// @Success 200 {object} service.UserListResult
// @Security BearerAuth
// @Router /users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, msg := pageParams(c)
		if msg != "" {
			return badRequest(c, msg)
		}
		res, err := svc.List(c.UserContext(), page, limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// @Summary Get a user by email
// @Tags users
// @Produce json
// @Param email query string true "user email"
// @Success 200 {object} model.User
// @Failure 400,404 {object} errorPayload
// @Security BearerAuth
// @Router /user [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.GetByEmail(c.UserContext(), c.Query("email"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

// GetUserRole answers "user" for unknown emails.
// @Summary Role of a user
// @Tags users
// @Produce json
// @Param email path string true "user email"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /users/{email}/role [get]
func GetUserRole(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := svc.Role(c.UserContext(), c.Params("email"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"role": role})
	}
}

// UpdateProfile edits the caller's own name and photo.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param body body profileRequest true "fields to change"
// @Success 200 {object} model.User
// @Failure 400,404 {object} errorPayload
// @Security BearerAuth
// @Router /users [patch]
func UpdateProfile(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req profileRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "malformed request body")
		}
		u, err := svc.UpdateProfile(c.UserContext(), principal(c).Email, req.Name, req.Photo)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

// SetPremium records the end of the caller's premium window after a purchase.
// A null premiumInfo revokes it.
// @Summary Set premium expiry
// @Description Granting a future expiry requires a succeeded payment on record. Null revokes.
// @Tags users
// @Accept json
// @Produce json
// @Param email path string true "user email, must be the caller (case-insensitive)"
// @Param body body premiumRequest true "RFC 3339 expiry or null"
// @Success 200 {object} model.User
// @Failure 400,403,404 {object} errorPayload
// @Security BearerAuth
// @Router /users/{email} [patch]
func SetPremium(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := principal(c).Email
		if !strings.EqualFold(c.Params("email"), email) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "forbidden access")
		}
		var req premiumRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "premiumInfo must be an RFC 3339 timestamp or null")
		}
		u, err := svc.SetPremium(c.UserContext(), email, req.PremiumInfo)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

// @Summary Promote a user to admin (admin)
// @Tags users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} map[string]string
// @Failure 400,403,404 {object} errorPayload
// @Security BearerAuth
// @Router /users/admin/{id} [patch]
func MakeAdmin(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.MakeAdmin(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "user promoted to admin"})
	}
}

// @Summary User counts
// @Tags users
// @Produce json
// @Success 200 {object} model.UserStats
// @Router /user-stats [get]
func UserStats(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(stats)
	}
}
