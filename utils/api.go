package utils

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders errors that escape handlers (panics turned into errors
// by the recover middleware, unknown routes, oversized bodies) as {"error": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("Unhandled request error")
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
