package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/sahilchouksey/discharge-parser/utils"
)

// bodyLimitSlack leaves room for multipart framing around the largest accepted upload
const bodyLimitSlack = 1 << 20

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

// NewAPIServer creates the fiber app. maxUploadMB bounds request bodies.
func NewAPIServer(listenAddress string, maxUploadMB int) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "discharge-parser",
			BodyLimit:    maxUploadMB*1024*1024 + bodyLimitSlack,
			ErrorHandler: utils.ErrorHandler,
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Info().Str("address", s.listenAddress).Msg("Starting API Server")

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}
