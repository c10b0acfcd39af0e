package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/config"
	domainRepo "github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/internal/presentation/http/handler"
	"github.com/sangkips/cafe-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Stock     *handler.StockHandler
	Menu      *handler.MenuHandler
	Worker    *handler.WorkerHandler
	Expense   *handler.ExpenseHandler
	Sales     *handler.SalesHandler
	Order     *handler.OrderHandler
	Report    *handler.ReportHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Sessions        middleware.SessionValidator
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is owned by the caller, which stops it on shutdown
	RateLimiter *middleware.SessionRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Sessions))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/session", h.Auth.Session)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Inventory
	registerStockRoutes(protected, h)

	// Menu and recipes
	registerMenuRoutes(protected, h)

	// Staff and expenses
	registerStaffRoutes(protected, h)

	// Sales and orders
	registerSalesRoutes(protected, h, deps)

	// Reports
	registerReportRoutes(protected, h)
}

func registerStockRoutes(protected *gin.RouterGroup, h *Handlers) {
	stock := protected.Group("/stock-items")
	{
		stock.GET("", h.Stock.List)
		stock.POST("", h.Stock.Create)
		stock.GET("/low-stock", h.Stock.GetLowStock)
		stock.GET("/:id", h.Stock.Get)
		stock.POST("/:id/restock", h.Stock.Restock)
		stock.POST("/:id/run-out", h.Stock.RunOut)
		stock.PUT("/:id/cost", h.Stock.UpdateCost)
		stock.DELETE("/:id", h.Stock.Delete)
	}
}

func registerMenuRoutes(protected *gin.RouterGroup, h *Handlers) {
	menu := protected.Group("/menu-items")
	{
		menu.GET("", h.Menu.List)
		menu.POST("", h.Menu.Create)
		menu.GET("/:id", h.Menu.Get)
		menu.PUT("/:id/price", h.Menu.UpdatePrice)
		menu.GET("/:id/cost", h.Menu.Cost)
		menu.DELETE("/:id", h.Menu.Delete)
		menu.GET("/:id/recipe", h.Menu.Recipe)
		menu.POST("/:id/recipe", h.Menu.AddIngredient)
	}

	protected.DELETE("/recipe-links/:id", h.Menu.RemoveIngredient)
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers) {
	workers := protected.Group("/workers")
	{
		workers.GET("", h.Worker.List)
		workers.POST("", h.Worker.Create)
		workers.DELETE("/:id", h.Worker.Delete)
	}

	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerSalesRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Sales submission uses idempotency middleware to prevent duplicates
	protected.POST("/sales", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Sales.Submit)

	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.DELETE("/:id", h.Order.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/range", h.Report.Range)
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/monthly", h.Report.Monthly)
		reports.GET("/monthly/export", h.Report.ExportMonthly)
	}
}
