package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/application/service"
	"github.com/sangkips/cafe-api/internal/config"
	"github.com/sangkips/cafe-api/internal/infrastructure/database"
	"github.com/sangkips/cafe-api/internal/infrastructure/repository"
	"github.com/sangkips/cafe-api/internal/presentation/http/handler"
	"github.com/sangkips/cafe-api/internal/presentation/http/middleware"
	"github.com/sangkips/cafe-api/internal/presentation/http/routes"
	"github.com/sangkips/cafe-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.New(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	stockRepo := repository.NewStockItemRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	linkRepo := repository.NewRecipeLinkRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize the sales engine
	costs := service.NewCostCalculator(linkRepo, cfg.Sales.CostCacheTTL)
	recipes := service.NewRecipeGraph(linkRepo, menuRepo, stockRepo, costs)
	decrementer := service.NewStockDecrementer(stockRepo, cfg.Sales.NegativeStock)

	// Initialize services
	authService := service.NewAuthService(cfg.Auth, jwtManager)
	stockService := service.NewStockService(stockRepo, recipes, costs, cfg.Sales.LowStockThreshold)
	menuService := service.NewMenuService(transactor, menuRepo, linkRepo, orderItemRepo, recipes, costs)
	workerService := service.NewWorkerService(workerRepo, orderRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	salesService := service.NewSalesService(transactor, orderRepo, orderItemRepo, menuRepo, workerRepo, recipes, costs, decrementer)
	orderService := service.NewOrderService(orderRepo)
	profitService := service.NewProfitService(analyticsRepo, workerRepo, expenseRepo)
	dashboardService := service.NewDashboardService(profitService, stockService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Stock:     handler.NewStockHandler(stockService),
		Menu:      handler.NewMenuHandler(menuService, recipes),
		Worker:    handler.NewWorkerHandler(workerService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Sales:     handler.NewSalesHandler(salesService),
		Order:     handler.NewOrderHandler(orderService),
		Report:    handler.NewReportHandler(profitService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	rateLimiter := middleware.NewSessionRateLimiter(
		middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Sessions:        authService,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s, store: %s, negative stock policy: %s",
			cfg.App.Env, cfg.Database.Driver, cfg.Sales.NegativeStock)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server exited")
}
