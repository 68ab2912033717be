package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/classpulse/classpulse/internal/services"
)

// RequireAuth guards admin routes with a Bearer token issued by the auth
// service. The verified admin ID is stored in locals for handlers.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "authorization required"})
		}
		adminID, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return respondError(c, err)
		}
		c.Locals("adminID", adminID)
		return c.Next()
	}
}
