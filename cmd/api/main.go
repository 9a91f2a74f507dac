package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"finsight/internal/config"
	"finsight/internal/handlers"
	"finsight/internal/ledger"
	"finsight/internal/logger"
	"finsight/internal/middleware"
	"finsight/internal/services"
	"finsight/internal/validator"

	_ "finsight/internal/docs" // Import swagger docs
)

// @title           finsight API
// @version         1.0
// @description     finsight is a personal finance tracking backend that records expenses, computes spending insights, and forecasts next-month spending.

// @host      localhost:8080
// @BasePath  /api

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Uploads are spooled here before processing
	if err := os.MkdirAll(appConfig.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Register custom binding validations
	validator.Register()

	// Initialize the ledger store and services
	store := ledger.NewStore(appConfig.DataFile)
	expenseService := services.NewExpenseService(store)
	insightsService := services.NewInsightsService(store)

	// Initialize handlers
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	insightsHandler := handlers.NewInsightsHandler(insightsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.MaxMultipartMemory = appConfig.MaxUploadBytes

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API group
	api := router.Group("/api")

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.POST("/upload_csv", expenseHandler.UploadCSV)

	// Insight routes
	insights := api.Group("/insights")
	insights.GET("/summary", insightsHandler.Summary)
	insights.GET("/spending_by_category", insightsHandler.SpendingByCategory)
	insights.GET("/monthly_spending", insightsHandler.MonthlySpending)

	// Prediction routes
	predict := api.Group("/predict")
	predict.GET("/next_month_total", insightsHandler.ForecastNextMonth)

	log.Infof("Starting finsight backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
