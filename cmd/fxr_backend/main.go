package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/devjsik/exchange_rate_app/internal/adapters/cache"
	"github.com/devjsik/exchange_rate_app/internal/adapters/database/pgsql"
	"github.com/devjsik/exchange_rate_app/internal/adapters/lock"
	"github.com/devjsik/exchange_rate_app/internal/adapters/source/koreaexim"
	portsrepo "github.com/devjsik/exchange_rate_app/internal/core/ports/repositories"
	"github.com/devjsik/exchange_rate_app/internal/core/services"
	"github.com/devjsik/exchange_rate_app/internal/handlers"
	"github.com/devjsik/exchange_rate_app/internal/middleware"
	"github.com/devjsik/exchange_rate_app/internal/platform/config"
	"github.com/devjsik/exchange_rate_app/internal/scheduler"
	"github.com/devjsik/exchange_rate_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Exchange Rate App API
// @version 1.0
// @description Exchange rate ingestion and bank conversion pricing service.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Shared Redis client backs both the scheduler locks and the rate cache
	redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("Redis connection established.")

	repos := &portsrepo.RepositoryProvider{
		RateRepo:    pgsql.NewRateRepository(dbPool),
		HistoryRepo: pgsql.NewHistoryRepository(dbPool),
		BankRepo:    pgsql.NewBankRepository(dbPool),
	}

	sourceClient := koreaexim.NewClient(
		cfg.SourceBaseURL,
		cfg.SourceAuthKey,
		cfg.SourceDataCode,
		cfg.SourceTimeout,
		cfg.SourceMaxRetries,
		cfg.SourceRetryDelay,
		logger,
	)

	serviceContainer := services.NewContainer(services.ContainerDeps{
		Repos:             repos,
		Source:            sourceClient,
		Cache:             cache.NewRedisRateCache(redisClient, logger),
		RateCacheTTL:      cfg.RateCacheTTL,
		BackfillCallDelay: cfg.BackfillCallDelay,
		Logger:            logger,
	})

	// Background ingestion runs until the process receives a stop signal
	schedCtx, stopScheduler := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopScheduler()

	lockProvider := lock.NewRedisLockProvider(redisClient, logger)
	sched := scheduler.New(serviceContainer, lockProvider, cfg, logger)
	sched.Start(schedCtx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted("60-M")
	if err != nil {
		logger.Error("Failed to parse rate limit", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	handlers.RegisterRoutes(r, cfg, serviceContainer, ipLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies pending schema migrations using a temporary
// database/sql connection on the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
