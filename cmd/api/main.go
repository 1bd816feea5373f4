package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	analyticsHttp "conveymed-analytics/internal/analytics/adapters/http/fiber"
	analyticsRepoPg "conveymed-analytics/internal/analytics/adapters/postgres"
	analyticsUsecase "conveymed-analytics/internal/analytics/core/usecase"

	eventsHttp "conveymed-analytics/internal/events/adapters/http/fiber"
	eventsRepoPg "conveymed-analytics/internal/events/adapters/postgres"
	eventsUsecase "conveymed-analytics/internal/events/core/usecase"

	exportGuard "conveymed-analytics/internal/export/adapters/guard"
	exportHttp "conveymed-analytics/internal/export/adapters/http/fiber"
	exportPorts "conveymed-analytics/internal/export/core/ports"
	exportUsecase "conveymed-analytics/internal/export/core/usecase"

	"conveymed-analytics/internal/http/middleware"
	"conveymed-analytics/internal/platform/config"
	"conveymed-analytics/internal/platform/logger"
	"conveymed-analytics/internal/platform/postgres"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "conveymed-analytics/docs"
)

// @title ConveyMed Analytics API
// @version 1.0
// @description Dashboard sections, exports and event tracking for the ConveyMed app.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.ServiceEnvironment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	timeframes, err := cfg.Timeframes()
	if err != nil {
		zl.Fatal("failed to load timeframes", zap.Error(err))
	}

	// DB connection
	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := postgres.Open(startCtx, postgres.Options{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.PostgresMaxOpenConns,
		MaxIdleConns:    cfg.PostgresMaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	cancelStart()
	if err != nil {
		zl.Fatal("postgres unavailable", zap.Error(err))
	}
	defer db.Close()

	// Export guard: shared through redis when configured
	var guard exportPorts.ExportGuard = exportGuard.NewMemoryGuard()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			zl.Fatal("redis unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		guard = exportGuard.NewRedisGuard(rdb, cfg.ExportLockTTL())
	}

	// Adapter-level DB wrappers
	analyticsDB := analyticsRepoPg.NewSQLDB(db, cfg.QueryTimeout())
	eventsDB := eventsRepoPg.NewSQLDB(db, cfg.QueryTimeout())

	// Repositories
	analyticsRepository := analyticsRepoPg.NewAnalyticsRepository(analyticsDB)
	eventRepository := eventsRepoPg.NewEventRepository(eventsDB)

	// Usecases
	sectionsUC := analyticsUsecase.NewSectionsUseCase(analyticsRepository, timeframes, zl.Named("sections"))
	dashboard := analyticsUsecase.NewDashboard(sectionsUC, analyticsUsecase.NewTracker(), cfg.DashboardMaxConcurrency, zl.Named("dashboard"))
	exportUC := exportUsecase.NewExportUseCase(sectionsUC, dashboard, guard, cfg.DashboardMaxConcurrency, zl.Named("export"))
	storeEventUC := eventsUsecase.NewStoreEventUseCase(eventRepository, zl.Named("events"))

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               "conveymed-analytics",
		DisableStartupMessage: true,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	// events endpoints
	eventsHandler := eventsHttp.NewEventHandler(storeEventUC)
	app.Post("/events", eventsHandler.CreateEvent)
	app.Post("/events/bulk", eventsHandler.BulkCreateEvents)

	// analytics endpoints
	if cfg.JWTSecret == "" {
		zl.Warn("JWT_SECRET not set, viewer is taken from the X-Viewer-ID header")
	}
	analyticsGroup := app.Group("/analytics", middleware.Viewer(cfg.JWTSecret, zl.Named("auth")))

	analyticsHandler := analyticsHttp.NewAnalyticsHandler(sectionsUC, dashboard)
	analyticsGroup.Get("/timeframes", analyticsHandler.GetTimeframes)
	analyticsGroup.Get("/sections/:section", analyticsHandler.GetSection)
	analyticsGroup.Post("/dashboard/refresh", analyticsHandler.RefreshDashboard)
	analyticsGroup.Get("/dashboard", analyticsHandler.GetDashboard)

	// export endpoints
	exportHandler := exportHttp.NewExportHandler(exportUC)
	analyticsGroup.Get("/export/csv", exportHandler.ExportCSV)
	analyticsGroup.Get("/export/zip", exportHandler.ExportZip)
	analyticsGroup.Get("/export/user-report", exportHandler.ExportUserReport)
	analyticsGroup.Get("/export/status", exportHandler.GetStatus)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	addr := ":" + cfg.ServiceAPIPort
	go func() {
		if err := app.Listen(addr); err != nil {
			zl.Error("fiber stopped", zap.Error(err))
		}
	}()

	zl.Info("server started", zap.String("addr", addr), zap.String("environment", cfg.ServiceEnvironment))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	zl.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		zl.Error("fiber shutdown error", zap.Error(err))
	}

	zl.Info("server exiting")
}
