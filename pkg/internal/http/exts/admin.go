package exts

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken guards the maintenance routes. An empty token turns them
// off entirely.
func RequireAdminToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(token) == 0 {
			return fiber.NewError(fiber.StatusForbidden, "admin routes are disabled")
		}
		given := c.Get(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid admin token")
		}
		return c.Next()
	}
}
