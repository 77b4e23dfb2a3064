package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sahilchouksey/discharge-parser/config"
	"github.com/sahilchouksey/discharge-parser/database"
	"github.com/sahilchouksey/discharge-parser/utils"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run AutoMigrate and the health check without inserting sample rows")
	flag.Parse()

	// Load environment variables
	if err := config.LoadENV(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment variables: %v\n", err)
		os.Exit(1)
	}
	getEnv, err := config.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	utils.InitLogger("seed", getEnv.GO_ENV)

	// Initialize database connection using GORM
	store, err := database.StartGORM(getEnv)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer store.Close()

	ctx := context.Background()

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Discharge Parser - Database Setup")
	fmt.Println(separator)

	if err := store.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	if err := store.HealthCheck(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}

	if !*migrateOnly {
		inserted, err := database.SeedSampleDischarges(ctx, store)
		if err != nil {
			log.Fatal().Err(err).Msg("Seeding failed")
		}
		fmt.Printf("Inserted %d sample discharges\n", inserted)
	}

	fmt.Println(separator)
	fmt.Println("Done.")
	fmt.Println(separator)
}
