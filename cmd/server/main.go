package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"installment-backend/internal/auth"
	"installment-backend/internal/cache"
	"installment-backend/internal/config"
	"installment-backend/internal/database"
	"installment-backend/internal/db"
	"installment-backend/internal/handlers"
	"installment-backend/internal/health"
	h "installment-backend/internal/http"
	"installment-backend/internal/middleware"
	"installment-backend/internal/repositories"
	"installment-backend/internal/services"
	"installment-backend/migrations"
	"installment-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.Init(cfg.Log.Level, cfg.Log.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := cache.Init(); err != nil {
		zlog.Warn("Redis unavailable, continuing without cache", zap.Error(err))
	}
	defer cache.Close()

	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(ctx); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager, zlog)
	saleService := services.NewSaleService(saleRepo, userRepo, cfg.Auth.DefaultClientPassword, zlog)
	ledgerService := services.NewLedgerService(paymentRepo, saleRepo, zlog)
	portalService := services.NewClientPortalService(saleRepo, ledgerService)
	reportService := services.NewReportService(saleRepo, paymentRepo)

	// Bootstrap admin account from environment if provided
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		name := os.Getenv("ADMIN_NAME")
		if name == "" {
			name = "Administrator"
		}
		if err := userService.EnsureAdmin(ctx, name, email, os.Getenv("ADMIN_PASSWORD")); err != nil {
			zlog.Fatal("Failed to ensure admin account", zap.Error(err))
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, zlog)
	userHandler := handlers.NewUserHandler(userService)
	saleHandler := handlers.NewSaleHandler(saleService, ledgerService)
	paymentHandler := handlers.NewPaymentHandler(ledgerService)
	portalHandler := handlers.NewPortalHandler(portalService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		userHandler,
		saleHandler,
		paymentHandler,
		portalHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info("Server starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		zlog.Fatal("Server failed", zap.Error(err))
	}
}
