package database

import (
	"context"

	"github.com/sahilchouksey/discharge-parser/model"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck(ctx context.Context) error

	// Discharge methods
	InsertDischarges(ctx context.Context, discharges []model.Discharge) error
	CountDischarges(ctx context.Context) (int64, error)
	ListDischarges(ctx context.Context, opts ListOptions) ([]model.Discharge, error)
}

// ListOptions selects one ordered window of the discharges table
type ListOptions struct {
	Offset    int
	Limit     int
	SortField string // must satisfy model.IsSortableField
	Ascending bool
}
