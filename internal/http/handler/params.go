package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"newshub/internal/auth"
	"newshub/internal/http/middleware"
)

const defaultPageLimit = 10

// pageParams reads ?page and ?limit. Range checks are left to the services.
func pageParams(c *fiber.Ctx) (page, limit int, msg string) {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil {
		return 0, 0, "page must be an integer"
	}
	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil {
		return 0, 0, "limit must be an integer"
	}
	return page, limit, ""
}

// principal returns the caller verified by middleware.VerifyToken.
// Routes using it are always mounted behind that middleware.
func principal(c *fiber.Ctx) auth.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}
