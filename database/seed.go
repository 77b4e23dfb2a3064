package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sahilchouksey/discharge-parser/model"
)

// SampleDischarges are the rows SeedSampleDischarges writes into an empty table
var SampleDischarges = []model.Discharge{
	{
		Name:                "Jane Doe",
		EpicID:              "E1001",
		PhoneNumber:         "(415) 555-0100",
		AttendingPhysician:  "Dr. Patel",
		Date:                "2024-03-01",
		PrimaryCareProvider: "Dr. Chen",
		Insurance:           "Aetna",
		Disposition:         "Home",
	},
	{
		Name:                "John Roe",
		EpicID:              "E1002",
		PhoneNumber:         "(415) 555-0101",
		AttendingPhysician:  "Dr. Alvarez",
		Date:                "2024-03-02",
		PrimaryCareProvider: "Dr. Okafor",
		Insurance:           "Medicare",
		Disposition:         "SNF",
	},
	{
		Name:                "Mary Major",
		EpicID:              "E1003",
		PhoneNumber:         "(415) 555-0102",
		AttendingPhysician:  "Dr. Patel",
		Date:                "2024-03-02",
		PrimaryCareProvider: "",
		Insurance:           "Blue Shield",
		Disposition:         "Home Health",
	},
}

// SeedSampleDischarges fills an empty discharges table for local development.
// It does nothing when rows already exist.
func SeedSampleDischarges(ctx context.Context, store Storage) (int, error) {
	total, err := store.CountDischarges(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count discharges: %w", err)
	}
	if total > 0 {
		log.Info().Int64("existing", total).Msg("Discharges table not empty, skipping seed")
		return 0, nil
	}

	rows := make([]model.Discharge, len(SampleDischarges))
	copy(rows, SampleDischarges)
	if err := store.InsertDischarges(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to seed discharges: %w", err)
	}

	log.Info().Int("inserted", len(rows)).Msg("Seeded sample discharges")
	return len(rows), nil
}
