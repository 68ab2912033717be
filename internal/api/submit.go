package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classpulse/classpulse/internal/services"
)

func handleSubmit(svc *services.ResponseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req services.SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		rec, err := svc.Submit(req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "feedback submitted",
			"response": rec,
		})
	}
}

func handleLogin(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		result, err := svc.Login(req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	}
}
