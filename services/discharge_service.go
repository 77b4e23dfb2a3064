package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sahilchouksey/discharge-parser/database"
	"github.com/sahilchouksey/discharge-parser/model"
)

// Listing defaults and bounds
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultSortField = model.FieldName
	SortAsc          = "asc"
	SortDesc         = "desc"
)

var ErrInvalidSortOrder = errors.New("sortOrder must be asc or desc")

// ListParams is one page request as received from the client
type ListParams struct {
	Page      int
	Limit     int
	SortField string
	SortOrder string
}

// Normalize applies defaults and clamps page and limit
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortField == "" {
		p.SortField = DefaultSortField
	}
	p.SortOrder = strings.ToLower(p.SortOrder)
	if p.SortOrder == "" {
		p.SortOrder = SortAsc
	}
	return p
}

// DischargePage is the list response body
type DischargePage struct {
	Data       []model.Discharge `json:"data"`
	TotalPages int               `json:"totalPages"`
}

// DischargeService saves reviewed discharges and pages through stored ones
type DischargeService struct {
	store database.Storage
}

// NewDischargeService creates a new discharge service
func NewDischargeService(store database.Storage) *DischargeService {
	return &DischargeService{store: store}
}

// Save inserts every discharge as a new row. No dedup or upsert.
func (s *DischargeService) Save(ctx context.Context, discharges []model.Discharge) error {
	if len(discharges) == 0 {
		return nil
	}

	if err := s.store.InsertDischarges(ctx, discharges); err != nil {
		log.Error().Err(err).Int("count", len(discharges)).Msg("Failed to insert discharges")
		return &StoreFailure{Op: "insert", Err: err}
	}

	log.Info().Int("count", len(discharges)).Msg("Discharges saved")
	return nil
}

// List returns one page and the total page count, ceil(total / limit)
func (s *DischargeService) List(ctx context.Context, params ListParams) (*DischargePage, error) {
	params = params.Normalize()

	if !model.IsSortableField(params.SortField) {
		return nil, fmt.Errorf("%w: %q", database.ErrInvalidSortField, params.SortField)
	}
	if params.SortOrder != SortAsc && params.SortOrder != SortDesc {
		return nil, ErrInvalidSortOrder
	}

	total, err := s.store.CountDischarges(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count discharges")
		return nil, &StoreFailure{Op: "count", Err: err}
	}

	rows, err := s.store.ListDischarges(ctx, database.ListOptions{
		Offset:    (params.Page - 1) * params.Limit,
		Limit:     params.Limit,
		SortField: params.SortField,
		Ascending: params.SortOrder == SortAsc,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list discharges")
		return nil, &StoreFailure{Op: "list", Err: err}
	}

	totalPages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		totalPages++
	}

	return &DischargePage{Data: rows, TotalPages: totalPages}, nil
}
