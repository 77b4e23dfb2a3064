package discharge

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/sahilchouksey/discharge-parser/database"
	"github.com/sahilchouksey/discharge-parser/model"
	"github.com/sahilchouksey/discharge-parser/services"
	"github.com/sahilchouksey/discharge-parser/utils/pdfvalidation"
	"github.com/sahilchouksey/discharge-parser/utils/response"
	"github.com/sahilchouksey/discharge-parser/utils/validation"
)

const (
	savedMessage      = "Data saved successfully"
	saveFailedMessage = "Error saving data"
	listFailedMessage = "Error fetching data"
)

// Repository saves and pages through discharges
type Repository interface {
	Save(ctx context.Context, discharges []model.Discharge) error
	List(ctx context.Context, params services.ListParams) (*services.DischargePage, error)
}

// DischargeHandler handles discharge API endpoints
type DischargeHandler struct {
	parser    services.DischargeParser
	repo      Repository
	limits    pdfvalidation.PDFLimits
	validator *validation.Validator
}

// NewDischargeHandler creates a new discharge handler
func NewDischargeHandler(parser services.DischargeParser, repo Repository, limits pdfvalidation.PDFLimits) *DischargeHandler {
	return &DischargeHandler{
		parser:    parser,
		repo:      repo,
		limits:    limits,
		validator: validation.NewValidator(),
	}
}

// ParsePDF handles POST /api/parse
// Extracts discharge records from the uploaded "file" and returns them for review
func (h *DischargeHandler) ParsePDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "PDF file is required")
	}

	content, result, err := pdfvalidation.ReadPDFFile(fileHeader, h.limits)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to read upload")
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	if !result.Valid {
		return response.BadRequest(c, result.Error)
	}

	log.Info().
		Str("filename", fileHeader.Filename).
		Int64("size", result.FileSize).
		Str("request_id", requestID(c)).
		Msg("Parsing discharge report")

	records, err := h.parser.ParsePDF(c.UserContext(), content)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, records)
}

// SaveDischargesRequest is the POST /api/discharges body
type SaveDischargesRequest struct {
	Discharges []model.Discharge `json:"discharges" validate:"required"`
}

// SaveDischarges handles POST /api/discharges
func (h *DischargeHandler) SaveDischarges(c *fiber.Ctx) error {
	var req SaveDischargesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	if err := h.repo.Save(c.UserContext(), req.Discharges); err != nil {
		return response.InternalServerError(c, saveFailedMessage)
	}

	return response.CreatedText(c, savedMessage)
}

// ListDischargesQuery is the GET /api/discharges query string
type ListDischargesQuery struct {
	Page      int
	Limit     int
	SortField string `validate:"omitempty,oneof=name epic_id phone_number attending_physician date primary_care_provider insurance disposition"`
	SortOrder string `validate:"omitempty,oneof=asc desc ASC DESC"`
}

// ListDischarges handles GET /api/discharges?page&limit&sortField&sortOrder
func (h *DischargeHandler) ListDischarges(c *fiber.Ctx) error {
	var (
		query ListDischargesQuery
		err   error
	)

	if query.Page, err = intQuery(c, "page", services.DefaultPage); err != nil {
		return response.BadRequest(c, "page must be an integer")
	}
	if query.Limit, err = intQuery(c, "limit", services.DefaultLimit); err != nil {
		return response.BadRequest(c, "limit must be an integer")
	}
	query.SortField = c.Query("sortField", services.DefaultSortField)
	query.SortOrder = c.Query("sortOrder", services.SortAsc)

	if err := h.validator.ValidateStruct(query); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	page, err := h.repo.List(c.UserContext(), services.ListParams{
		Page:      query.Page,
		Limit:     query.Limit,
		SortField: query.SortField,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		if errors.Is(err, database.ErrInvalidSortField) || errors.Is(err, services.ErrInvalidSortOrder) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, listFailedMessage)
	}

	return response.Success(c, page)
}

func intQuery(c *fiber.Ctx, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
