package phone

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/sahilchouksey/discharge-parser/services"
	"github.com/sahilchouksey/discharge-parser/utils/response"
	"github.com/sahilchouksey/discharge-parser/utils/validation"
)

// invalidPhoneMessage is returned for every lookup failure
const invalidPhoneMessage = "Invalid phone number"

// Verifier checks a phone number against the lookup collaborator
type Verifier interface {
	Verify(ctx context.Context, phone string) (*services.PhoneVerification, error)
}

// PhoneHandler handles phone verification API endpoints
type PhoneHandler struct {
	verifier  Verifier
	validator *validation.Validator
}

// NewPhoneHandler creates a new phone handler
func NewPhoneHandler(verifier Verifier) *PhoneHandler {
	return &PhoneHandler{
		verifier:  verifier,
		validator: validation.NewValidator(),
	}
}

// VerifyPhoneRequest is the POST /api/verify-phone body
type VerifyPhoneRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
}

// VerifyPhone handles POST /api/verify-phone
func (h *PhoneHandler) VerifyPhone(c *fiber.Ctx) error {
	var req VerifyPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidPhone(c, "Invalid request body")
	}

	req.PhoneNumber = validation.SanitizeString(req.PhoneNumber)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.InvalidPhone(c, validation.FirstError(err))
	}

	result, err := h.verifier.Verify(c.UserContext(), req.PhoneNumber)
	if err != nil {
		var failure *services.LookupFailure
		if !errors.As(err, &failure) {
			log.Error().Err(err).Msg("Phone verification failed unexpectedly")
		}
		return response.InvalidPhone(c, invalidPhoneMessage)
	}

	return response.Success(c, result)
}
