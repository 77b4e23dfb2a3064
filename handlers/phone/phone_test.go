package phone

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/discharge-parser/services"
)

type stubVerifier struct {
	got string
}

func (s *stubVerifier) Verify(_ context.Context, phone string) (*services.PhoneVerification, error) {
	s.got = phone
	if phone == "(415) 555-0100" {
		return &services.PhoneVerification{Valid: true, Formatted: "+14155550100"}, nil
	}
	return nil, &services.LookupFailure{Phone: phone, Err: errors.New("not found")}
}

func TestVerifyPhone(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "valid number",
			body:       `{"phone_number":"(415) 555-0100"}`,
			wantStatus: fiber.StatusOK,
			wantBody:   map[string]any{"valid": true, "formatted": "+14155550100"},
		},
		{
			name:       "lookup failure",
			body:       `{"phone_number":"12"}`,
			wantStatus: fiber.StatusBadRequest,
			wantBody:   map[string]any{"valid": false, "error": "Invalid phone number"},
		},
		{
			name:       "missing number",
			body:       `{}`,
			wantStatus: fiber.StatusBadRequest,
			wantBody:   map[string]any{"valid": false, "error": "PhoneNumber is required"},
		},
		{
			name:       "malformed body",
			body:       `{"phone_number":`,
			wantStatus: fiber.StatusBadRequest,
			wantBody:   map[string]any{"valid": false, "error": "Invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPhoneHandler(&stubVerifier{})
			app := fiber.New()
			app.Post("/api/verify-phone", h.VerifyPhone)

			req := httptest.NewRequest("POST", "/api/verify-phone", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var got map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestVerifyPhone_TrimsInput(t *testing.T) {
	verifier := &stubVerifier{}
	h := NewPhoneHandler(verifier)
	app := fiber.New()
	app.Post("/api/verify-phone", h.VerifyPhone)

	req := httptest.NewRequest("POST", "/api/verify-phone", strings.NewReader(`{"phone_number":"  (415) 555-0100 "}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "(415) 555-0100", verifier.got)
}
