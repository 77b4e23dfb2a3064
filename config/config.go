package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadENV loads the environment variables from .env when GO_ENV is unset or "development".
// A missing .env file is not an error; the process environment is used as is.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string
	PORT   int

	// Store (hosted Postgres). DATABASE_URL wins over the discrete DB_* values.
	DATABASE_URL string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string

	// Extraction model
	OPENAI_API_KEY         string
	OPENAI_BASE_URL        string
	OPENAI_MODEL           string
	OPENAI_MAX_TOKENS      int
	EXTRACTION_BATCH_SIZE  int
	EXTRACTION_CONCURRENCY int

	// Phone lookup
	TWILIO_ACCOUNT_SID string
	TWILIO_AUTH_TOKEN  string
	REDIS_URL          string
	PHONE_CACHE_TTL    time.Duration

	// HTTP
	ALLOWED_ORIGINS       string
	RATE_LIMIT_REQUESTS   int
	MAX_UPLOAD_MB         int
	HEALTH_CHECK_SCHEDULE string
}

func Get() (*EnvironmentVariable, error) {
	sslMode := os.Getenv("DB_SSL_MODE")
	if sslMode == "" {
		sslMode = "require"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV: os.Getenv("GO_ENV"),
		PORT:   getEnvAsInt("PORT", 5000),
		// Store
		DATABASE_URL: os.Getenv("DATABASE_URL"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      getEnv("DB_NAME", "postgres"),
		DB_HOST:      getEnv("DB_HOST", "localhost"),
		DB_PORT:      getEnv("DB_PORT", "5432"),
		DB_SSL_MODE:  sslMode,
		// Extraction
		OPENAI_API_KEY:         os.Getenv("OPENAI_API_KEY"),
		OPENAI_BASE_URL:        os.Getenv("OPENAI_BASE_URL"),
		OPENAI_MODEL:           getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OPENAI_MAX_TOKENS:      getEnvAsInt("OPENAI_MAX_TOKENS", 1500),
		EXTRACTION_BATCH_SIZE:  getEnvAsInt("EXTRACTION_BATCH_SIZE", 10),
		EXTRACTION_CONCURRENCY: getEnvAsInt("EXTRACTION_CONCURRENCY", 1),
		// Phone lookup
		TWILIO_ACCOUNT_SID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TWILIO_AUTH_TOKEN:  os.Getenv("TWILIO_AUTH_TOKEN"),
		REDIS_URL:          os.Getenv("REDIS_URL"),
		PHONE_CACHE_TTL:    getEnvAsDuration("PHONE_CACHE_TTL", 24*time.Hour),
		// HTTP
		ALLOWED_ORIGINS:       getEnv("ALLOWED_ORIGINS", "*"),
		RATE_LIMIT_REQUESTS:   getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		MAX_UPLOAD_MB:         getEnvAsInt("MAX_UPLOAD_MB", 20),
		HEALTH_CHECK_SCHEDULE: getEnv("HEALTH_CHECK_SCHEDULE", "@every 30s"),
	}

	if envVariables.EXTRACTION_BATCH_SIZE <= 0 {
		return nil, errors.New("EXTRACTION_BATCH_SIZE must be positive")
	}
	if envVariables.EXTRACTION_CONCURRENCY <= 0 {
		envVariables.EXTRACTION_CONCURRENCY = 1
	}

	return envVariables, nil
}

// IsProduction reports whether GO_ENV is "production"
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
