// Package app wires storage, services and HTTP handlers into a runnable Fiber application.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sporton/internal/config"
	"sporton/internal/gateway"
	"sporton/internal/handlers"
	"sporton/internal/middleware"
	"sporton/internal/repositories"
	"sporton/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// multipart overhead allowed on top of the proof size limit
const formOverhead = 1 << 20

// App is the assembled service.
type App struct {
	Fiber   *fiber.App
	Gateway gateway.Gateway
	closers []func() error
}

// New builds the application described by cfg. publisher may be nil.
func New(ctx context.Context, cfg config.Config, publisher services.EventPublisher) (*App, error) {
	a := &App{}

	slots, err := a.openSlots(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	gw := gateway.NewSlotGateway(slots, gateway.WithLatency(cfg.SimulatedLatency))
	a.Gateway = gw

	if cfg.SeedData {
		if err := gateway.Seed(ctx, gw, gateway.DefaultSeed()); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed storage: %w", err)
		}
	}

	// --- Repositories ---
	productRepo := repositories.NewGatewayProductRepository(gw)
	categoryRepo := repositories.NewGatewayCategoryRepository(gw)
	bankRepo := repositories.NewGatewayBankRepository(gw)
	cartRepo := repositories.NewGatewayCartRepository(gw)
	txRepo := repositories.NewGatewayTransactionRepository(gw)
	proofs := gateway.NewBlobStore(slots)

	// --- Services ---
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	bankService := services.NewBankService(bankRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(txRepo, bankRepo, cartService, proofs, publisher, services.OrderConfig{
		ShippingCost:  cfg.ShippingCost,
		MaxProofBytes: cfg.MaxProofBytes,
	})
	authProvider, err := services.NewStaticAuthProvider(cfg.AdminEmail, cfg.AdminPassword, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to set up admin auth: %w", err)
	}

	// --- Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	bankHandler := handlers.NewBankHandler(bankService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, cartService, proofs, func(ctx context.Context) error {
		return gateway.Reset(ctx, gw)
	})
	authHandler := handlers.NewAuthHandler(authProvider)

	app := fiber.New(fiber.Config{
		AppName:   "sporton",
		BodyLimit: int(cfg.MaxProofBytes) + formOverhead,
	})
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	admin := apiV1.Group("/admin", middleware.AuthRequired(authProvider))

	authHandler.RegisterRoutes(apiV1)
	catalogHandler.RegisterRoutes(apiV1, admin)
	bankHandler.RegisterRoutes(apiV1, admin)
	cartHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1, admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"storage":  cfg.StorageDriver,
			"rabbitMQ": publisher != nil,
		})
	})

	a.Fiber = app
	return a, nil
}

func (a *App) openSlots(cfg config.Config) (gateway.Slots, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return gateway.NewMemorySlots(), nil
	case config.DriverSQLite:
		return a.openGORMSlots(sqlite.Open(cfg.SQLitePath))
	case config.DriverPostgres:
		return a.openGORMSlots(postgres.Open(cfg.DatabaseDSN))
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		return gateway.NewRedisSlots(client, "sporton"), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func (a *App) openGORMSlots(dialector gorm.Dialector) (gateway.Slots, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	a.closers = append(a.closers, sqlDB.Close)

	slots, err := gateway.NewGORMSlots(db)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dialect", dialector.Name()).Msg("database slots ready")
	return slots, nil
}

// Close shuts down the HTTP app and releases storage connections.
func (a *App) Close() error {
	var errs []error
	if a.Fiber != nil {
		if err := a.Fiber.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
