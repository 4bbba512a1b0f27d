package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartbudget/internal/config"
	"smartbudget/internal/database"
	"smartbudget/internal/handlers"
	"smartbudget/internal/middleware"
	"smartbudget/internal/repositories"
	"smartbudget/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService(&cfg.Security)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, metrics, logger)
	categoryService := services.NewCategoryService(categoryRepo, budgetRepo, expenseRepo, logger)
	budgetService := services.NewBudgetService(budgetRepo, categoryRepo, expenseRepo, cfg.Budget, metrics, logger)
	expenseService := services.NewExpenseService(expenseRepo, categoryRepo, metrics, logger)
	dashboardService := services.NewDashboardService(budgetRepo, expenseRepo, cfg.Budget, metrics, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.GetProfile, middleware.RequireAuth(tokenService))

	protected := api.Group("", middleware.RequireAuth(tokenService))

	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.GET("/categories", categoryHandler.ListCategories)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	protected.POST("/budgets", budgetHandler.CreateBudget)
	protected.GET("/budgets", budgetHandler.ListBudgets)
	protected.GET("/budgets/:id", budgetHandler.GetBudget)
	protected.PUT("/budgets/:id", budgetHandler.UpdateBudget)
	protected.DELETE("/budgets/:id", budgetHandler.DeleteBudget)

	protected.POST("/expenses", expenseHandler.CreateExpense)
	protected.GET("/expenses", expenseHandler.ListExpenses)
	protected.GET("/expenses/:id", expenseHandler.GetExpense)
	protected.PUT("/expenses/:id", expenseHandler.UpdateExpense)
	protected.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	if cfg.IsDevelopment() {
		devHandler := handlers.NewDevHandler(categoryRepo, budgetRepo, expenseRepo)
		protected.POST("/dev/sample-data", devHandler.GenerateSampleData)
		logger.Info("Development endpoints enabled")
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Error("Failed to close database connection", "error", closeErr)
		}
	}

	logger.Info("Server stopped")
}
