package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/discharge-parser/handlers"
	discharge_handlers "github.com/sahilchouksey/discharge-parser/handlers/discharge"
	phone_handlers "github.com/sahilchouksey/discharge-parser/handlers/phone"
	"github.com/sahilchouksey/discharge-parser/utils/middleware"
)

// Dependencies are the handlers and settings the routes are built from
type Dependencies struct {
	DischargeHandler  *discharge_handlers.DischargeHandler
	PhoneHandler      *phone_handlers.PhoneHandler
	Health            handlers.StatusReporter
	AllowedOrigins    string
	RateLimitRequests int
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	// Apply security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    deps.AllowedOrigins,
		RateLimitRequests: deps.RateLimitRequests,
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoints (public)
	app.Get("/ping", handlers.HandlePing)

	api := app.Group("/api")
	api.Get("/health", handlers.HandleCheckHealth(deps.Health))

	// Extraction
	api.Post("/parse", deps.DischargeHandler.ParsePDF)

	// Phone verification
	api.Post("/verify-phone", deps.PhoneHandler.VerifyPhone)

	// Reviewed discharges
	api.Post("/discharges", deps.DischargeHandler.SaveDischarges)
	api.Get("/discharges", deps.DischargeHandler.ListDischarges)
}
