package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/Velocity-Explorations/concierge/internal/adapters/database/pgsql"
	"github.com/Velocity-Explorations/concierge/internal/adapters/ratesource"
	"github.com/Velocity-Explorations/concierge/internal/core/ports"
	"github.com/Velocity-Explorations/concierge/internal/core/services"
	"github.com/Velocity-Explorations/concierge/internal/handlers"
	"github.com/Velocity-Explorations/concierge/internal/middleware"
	"github.com/Velocity-Explorations/concierge/pkg/config"
	"github.com/Velocity-Explorations/concierge/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The exchange rate cache is optional: without a database URL the service
	// runs with live lookups only.
	var rateCache ports.ExchangeRateRepository
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		rateCache = pgsql.NewExchangeRateRepository(dbPool)
		logger.Info("Exchange rate cache enabled.")
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	container := buildServices(cfg, rateCache, logger)
	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires the rate source adapters into the service container.
func buildServices(cfg *config.Config, rateCache ports.ExchangeRateRepository, logger *slog.Logger) *services.Container {
	gsa := ratesource.NewGSAClient(cfg.GSAAPIKey, cfg.SourceTimeout, logger)
	if cfg.GSABaseURL != "" {
		gsa = ratesource.NewGSAClientWithBaseURL(cfg.GSABaseURL, cfg.GSAAPIKey, cfg.SourceTimeout, logger)
	}

	dssr := ratesource.NewDSSRClient(cfg.SourceTimeout, logger)
	if cfg.DSSRBaseURL != "" {
		dssr = ratesource.NewDSSRClientWithBaseURL(cfg.DSSRBaseURL, cfg.SourceTimeout, logger)
	}

	exchange := ratesource.NewExchangeRateClient(cfg.SourceTimeout)
	if cfg.ExchangeBaseURL != "" {
		exchange = ratesource.NewExchangeRateClientWithBaseURL(cfg.ExchangeBaseURL, cfg.SourceTimeout)
	}

	currency := services.NewCurrencyService(exchange, rateCache, logger)
	return &services.Container{
		PerDiem:     services.NewPerDiemService(gsa, dssr, currency, cfg.SourceTimeout, logger),
		Currency:    currency,
		Translation: services.NewTranslationService(logger),
	}
}

// runMigrations applies pending schema migrations over a short-lived
// database/sql connection, matching what the migrate driver expects.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
