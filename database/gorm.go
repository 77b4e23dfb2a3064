package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/sahilchouksey/discharge-parser/config"
	"github.com/sahilchouksey/discharge-parser/model"
)

// insertBatchSize caps rows per INSERT statement
const insertBatchSize = 100

var ErrInvalidSortField = errors.New("invalid sort field")

type GORMStore struct {
	db *gorm.DB
}

var _ Storage = (*GORMStore)(nil)

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* values
func DSN(env *config.EnvironmentVariable) string {
	if env.DATABASE_URL != "" {
		return env.DATABASE_URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_PORT,
		env.DB_SSL_MODE,
	)
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(env *config.EnvironmentVariable) (*GORMStore, error) {
	store, err := OpenGORM(postgres.Open(DSN(env)), env.IsProduction())
	if err != nil {
		log.Error().Err(err).Msg("Unable to connect to PostgreSQL with GORM")
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := store.db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Msg("Successfully connected to PostgreSQL Database with GORM")
	return store, nil
}

// OpenGORM opens a store on any GORM dialector
func OpenGORM(dialector gorm.Dialector, production bool) (*GORMStore, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if production {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		return nil, err
	}
	return &GORMStore{db: db}, nil
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Info().Msg("Running GORM AutoMigrate")

	if err := s.db.AutoMigrate(&model.Discharge{}); err != nil {
		log.Error().Err(err).Msg("Error running AutoMigrate")
		return err
	}

	log.Info().Msg("GORM AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Info().Msg("Closing GORM connection")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// InsertDischarges bulk inserts rows in one transaction. An empty slice is a no-op.
func (s *GORMStore) InsertDischarges(ctx context.Context, discharges []model.Discharge) error {
	if len(discharges) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(discharges, insertBatchSize).Error
}

// CountDischarges returns the total number of stored rows
func (s *GORMStore) CountDischarges(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Discharge{}).Count(&total).Error
	return total, err
}

// ListDischarges returns one page ordered by the sort field, ties broken by id
func (s *GORMStore) ListDischarges(ctx context.Context, opts ListOptions) ([]model.Discharge, error) {
	if !model.IsSortableField(opts.SortField) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, opts.SortField)
	}

	var discharges []model.Discharge
	err := s.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: opts.SortField}, Desc: !opts.Ascending}).
		Order("id ASC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&discharges).Error
	if err != nil {
		return nil, err
	}
	if discharges == nil {
		discharges = []model.Discharge{}
	}
	return discharges, nil
}
