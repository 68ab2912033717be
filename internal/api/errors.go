package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classpulse/classpulse/internal/services"
)

// respondError maps a service error onto the uniform {message} envelope.
// Unexpected errors are redacted to a generic message on every endpoint.
func respondError(c *fiber.Ctx, err error) error {
	if se, ok := services.AsServiceError(err); ok {
		body := fiber.Map{"message": se.Message}
		if len(se.Fields) > 0 {
			body["errors"] = se.Fields
		}
		return c.Status(statusFor(se.Code)).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
}

func statusFor(code services.ErrorCode) int {
	switch code {
	case services.ErrorInvalid, services.ErrorConflict:
		// Duplicate submissions surface as 400 like any other rejected input.
		return fiber.StatusBadRequest
	case services.ErrorNotFound:
		return fiber.StatusNotFound
	case services.ErrorUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
