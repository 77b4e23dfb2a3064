package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/discharge-parser/services/health"
	"github.com/sahilchouksey/discharge-parser/utils/response"
)

// StatusReporter exposes the latest health probe result
type StatusReporter interface {
	Status() health.Status
}

// HandlePing handles GET /ping
func HandlePing(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// HandleCheckHealth handles GET /api/health. A degraded store answers 503.
func HandleCheckHealth(monitor StatusReporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := monitor.Status()
		if status.State == health.StateDegraded {
			return response.ServiceUnavailable(c, status)
		}
		return response.Success(c, status)
	}
}
