package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/sahilchouksey/discharge-parser/api"
	"github.com/sahilchouksey/discharge-parser/config"
	"github.com/sahilchouksey/discharge-parser/database"
	discharge_handlers "github.com/sahilchouksey/discharge-parser/handlers/discharge"
	phone_handlers "github.com/sahilchouksey/discharge-parser/handlers/phone"
	"github.com/sahilchouksey/discharge-parser/router"
	"github.com/sahilchouksey/discharge-parser/services"
	"github.com/sahilchouksey/discharge-parser/services/health"
	"github.com/sahilchouksey/discharge-parser/services/llm"
	"github.com/sahilchouksey/discharge-parser/services/lookup"
	"github.com/sahilchouksey/discharge-parser/utils"
	"github.com/sahilchouksey/discharge-parser/utils/cache"
	"github.com/sahilchouksey/discharge-parser/utils/pdfvalidation"
)

// phoneCachePrefix namespaces lookup results in a shared Redis
const phoneCachePrefix = "discharge-parser:phone:"

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	utils.InitLogger("discharge-parser", getEnv.GO_ENV)

	// Initialize GORM database connection
	store, err := database.StartGORM(getEnv)
	if err != nil {
		log.Error().Msg("Check DATABASE_URL (or DB_HOST/DB_PORT/DB_USER_NAME/DB_PASSWORD/DB_NAME)")
		return err
	}

	if err := store.Init(); err != nil {
		log.Error().Msg("Failed to initialize database tables")
		_ = store.Close()
		return err
	}

	if getEnv.OPENAI_API_KEY == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; /api/parse requests will fail")
	}
	if getEnv.TWILIO_ACCOUNT_SID == "" || getEnv.TWILIO_AUTH_TOKEN == "" {
		log.Warn().Msg("Twilio credentials are not set; every phone lookup will fail")
	}

	// Phone lookup cache (optional)
	var (
		phoneCache services.PhoneCache
		redisCache *cache.RedisCache
	)
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL, phoneCachePrefix)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis. Phone lookup caching will be disabled.")
		} else {
			phoneCache = redisCache
		}
	}

	// Collaborators are built once and shared by every request
	completer := llm.NewClient(llm.Config{
		APIKey:    getEnv.OPENAI_API_KEY,
		BaseURL:   getEnv.OPENAI_BASE_URL,
		Model:     getEnv.OPENAI_MODEL,
		MaxTokens: getEnv.OPENAI_MAX_TOKENS,
	})
	extractor := services.NewDischargeExtractor(
		completer,
		services.NewPDFExtractor(services.DefaultMaxPages),
		services.ExtractorConfig{
			BatchSize:   getEnv.EXTRACTION_BATCH_SIZE,
			Concurrency: getEnv.EXTRACTION_CONCURRENCY,
		},
	)
	phoneService := services.NewPhoneService(
		lookup.NewTwilioLookup(lookup.Config{
			AccountSID: getEnv.TWILIO_ACCOUNT_SID,
			AuthToken:  getEnv.TWILIO_AUTH_TOKEN,
		}),
		phoneCache,
		getEnv.PHONE_CACHE_TTL,
	)
	dischargeService := services.NewDischargeService(store)

	// Health monitor
	monitor := health.NewMonitor(getEnv.HEALTH_CHECK_SCHEDULE)
	monitor.Register("database", store.HealthCheck)
	if redisCache != nil {
		monitor.Register("cache", redisCache.Ping)
	}
	if err := monitor.Start(); err != nil {
		// Don't fail the app, just log the warning
		log.Warn().Err(err).Msg("Failed to start health monitor")
	}

	// Defer Closing DB, Redis and stopping the monitor
	defer func() {
		monitor.Stop()
		if redisCache != nil {
			_ = redisCache.Close()
		}
		_ = store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), getEnv.MAX_UPLOAD_MB)
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, router.Dependencies{
		DischargeHandler: discharge_handlers.NewDischargeHandler(
			extractor,
			dischargeService,
			pdfvalidation.PDFLimits{MaxFileSizeMB: getEnv.MAX_UPLOAD_MB},
		),
		PhoneHandler:      phone_handlers.NewPhoneHandler(phoneService),
		Health:            monitor,
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
	})

	// Shut down on SIGINT/SIGTERM so deferred cleanup runs
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down API Server")
		if err := server.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()
}
