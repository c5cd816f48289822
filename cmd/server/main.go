package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/backend/internal/config"
	delivery "github.com/coastwatch/backend/internal/delivery/http"
	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/location"
	"github.com/coastwatch/backend/internal/observability"
	"github.com/coastwatch/backend/internal/repository/postgres"
	"github.com/coastwatch/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("could not connect to database, running with in-memory storage", "error", err)
			pool = nil
		} else {
			defer pool.Close()
			log.Info("connected to PostgreSQL")
		}
	} else {
		log.Info("DATABASE_URL not set, running with in-memory storage")
	}

	// Dependency Injection: Repositories
	var repo domain.ObservationRepository
	if pool != nil {
		repo = postgres.NewPostgresRepository(pool)
	} else {
		repo = postgres.NewMockRepository()
	}

	// Dependency Injection: Services
	clock := clockwork.NewRealClock()
	rng := service.NewRand(time.Now().UnixNano())
	metrics := observability.NewMetrics()

	weatherSvc := service.NewWeatherService(cfg.OpenWeatherAPIKey, clock, rng, log, metrics)
	tideSvc := service.NewTideService(cfg.NOAAEnabled, clock, log, metrics)
	marineSvc := service.NewMarineService(cfg.StormglassAPIKey, clock, rng, log, metrics)
	pollutionSvc := service.NewPollutionService(cfg.WAQIAPIKey, cfg.SimulateDumpingFlag, clock, rng, log, metrics)

	aggregator := service.NewAggregator(
		location.NewResolver(),
		weatherSvc, tideSvc, marineSvc, pollutionSvc,
		repo, clock, log, metrics,
	)

	classifier := service.NewClassifierBridge(cfg.ClassifierURL, log)
	alertSvc := service.NewAlertService(classifier, cfg.DemoAlertChance, clock, rng, log, metrics)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "CoastWatch API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	delivery.SetupRoutes(app, aggregator, alertSvc, repo)

	// Graceful shutdown
	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warn("server forced to shutdown", "error", err)
	}

	// Let in-flight persistence writes finish before exit.
	aggregator.WaitBackground()
	log.Info("server exited gracefully")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
