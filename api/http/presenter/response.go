package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the single error shape every endpoint returns.
// Messages are user-facing and written in Portuguese.
type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// Error writes a uniform error body.
func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}
