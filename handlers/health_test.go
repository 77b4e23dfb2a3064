package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/discharge-parser/services/health"
)

type fixedStatus health.Status

func (f fixedStatus) Status() health.Status { return health.Status(f) }

func TestHandlePing(t *testing.T) {
	app := fiber.New()
	app.Get("/ping", HandlePing)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "pong", string(body))
}

func TestHandleCheckHealth(t *testing.T) {
	tests := []struct {
		name       string
		status     health.Status
		wantStatus int
	}{
		{name: "ok", status: health.Status{State: health.StateOK, Checks: map[string]string{"database": "ok"}}, wantStatus: fiber.StatusOK},
		{name: "unknown before first probe", status: health.Status{State: health.StateUnknown}, wantStatus: fiber.StatusOK},
		{name: "degraded", status: health.Status{State: health.StateDegraded, Checks: map[string]string{"database": "refused"}}, wantStatus: fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/api/health", HandleCheckHealth(fixedStatus(tt.status)))

			resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var got map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.status.State, got["status"])
		})
	}
}
