package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error shape every endpoint returns
type ErrorBody struct {
	Error string `json:"error"`
}

// PhoneErrorBody is the failure shape of the phone verification endpoint
type PhoneErrorBody struct {
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

// Success returns a 200 JSON response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// CreatedText returns a 201 Created response with a plain text body
func CreatedText(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusCreated).SendString(message)
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// InvalidPhone returns a 400 phone verification failure
func InvalidPhone(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(PhoneErrorBody{Valid: false, Error: message})
}

// ServiceUnavailable returns a 503 Service Unavailable response
func ServiceUnavailable(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(data)
}
