package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-parts-inventory/internal/config"
	"go-parts-inventory/internal/handler"
	"go-parts-inventory/internal/logger"
	"go-parts-inventory/internal/metrics"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/service"
	"go-parts-inventory/internal/ws"
	"go-parts-inventory/pkg/database"
	"go-parts-inventory/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	appLog := logger.New(cfg)
	slog.SetDefault(appLog)

	// 2. Setup Database
	db, err := database.Connect(cfg)
	if err != nil {
		appLog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		appLog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// 3. Setup WebSocket Hub and metrics
	wsHub := ws.NewHub(appLog)
	go wsHub.Run()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics, err := metrics.New(registry)
	if err != nil {
		appLog.Error("metrics registration failed", "error", err)
		os.Exit(1)
	}

	// 4. Dependency Injection (Wiring Layers)
	componentRepo := repository.NewComponentRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	vendorRepo := repository.NewVendorRepo(db)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	ledgerService := service.NewLedgerService(db, wsHub, appMetrics, appLog)
	tagService := service.NewTagService(db, wsHub, appMetrics, appLog)
	invService := service.NewInventoryService(componentRepo, txRepo, wsHub, appLog)
	vendorService := service.NewVendorService(vendorRepo, appLog)
	orderService := service.NewPurchaseOrderService(db, appLog)
	dashService := service.NewDashboardService(txRepo, cfg.LowStockThreshold)
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, appLog)

	// 5. Seed admin user
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userService.EnsureAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		appLog.Warn("failed to seed admin user", "error", err)
	}
	cancel()

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// 7. Routes
	handler.RegisterRoutes(app, handler.Services{
		Auth:          authService,
		Users:         userService,
		Inventory:     invService,
		Ledger:        ledgerService,
		Tags:          tagService,
		Vendors:       vendorService,
		PurchaseOrder: orderService,
		Dashboard:     dashService,
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		appLog.Info("listening", "port", cfg.Port, "env", cfg.AppEnv, "db_driver", cfg.DBDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	appLog.Info("server exited")
}
