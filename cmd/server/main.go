package main

import (
	"log"
	"time"

	_ "cryptodash/docs" // Import generated docs
	"cryptodash/internal/cache/redis"
	"cryptodash/internal/config"
	"cryptodash/internal/dao/history"
	"cryptodash/internal/dao/preferences"
	"cryptodash/internal/database"
	"cryptodash/internal/engines/liveupdate"
	"cryptodash/internal/handlers"
	"cryptodash/internal/integrations/binance"
	"cryptodash/internal/integrations/coincap"
	"cryptodash/internal/integrations/optimizer"
	"cryptodash/internal/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title CryptoDash API
// @version 1.0
// @description Crypto market dashboard API: filtered asset views, top rankings, live update stats and portfolio simulation flows
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@cryptodash.dev
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	if err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run database migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS middleware for development
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Upstream clients
	coincapClient := coincap.NewClient(cfg.CoinCapBaseURL, cfg.CoinCapAPIKey, cfg.RequestTimeout, cfg.RetryAttempts)
	binanceService := binance.NewService()
	optimizerClient := optimizer.NewClient(cfg.OptimizerBaseURL, cfg.RequestTimeout)

	// Snapshot cache is optional; with no Redis URL configured the service
	// falls back to direct upstream fetches.
	snapshotCache := redis.NewSnapshotCache(cfg.RedisURL, 2*time.Minute)
	if snapshotCache != nil {
		defer snapshotCache.Close()
	}

	// DAOs
	historyDAO := history.NewHistoryDAO(database.GetDB())
	preferencesDAO := preferences.NewPreferencesDAO(database.GetDB())

	// Initialize services
	tracker := liveupdate.NewTracker(cfg.LiveUpdateInterval)
	marketService := services.NewMarketService(coincapClient, binanceService, snapshotCache, tracker)
	prefsService := services.NewPreferencesService(preferencesDAO)
	simulationService := services.NewSimulationService(optimizerClient, historyDAO, prefsService)

	if err := simulationService.RestoreWizardState(); err != nil {
		log.Printf("Warning: failed to restore wizard state: %v", err)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	marketHandler := handlers.NewMarketHandler(marketService, prefsService)
	simulationHandler := handlers.NewSimulationHandler(simulationService)
	preferencesHandler := handlers.NewPreferencesHandler(prefsService)

	// Health check endpoint
	r.GET("/health", healthHandler.Health)

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandler.Health)

		handlers.RegisterMarketRoutes(api, marketHandler)
		handlers.RegisterSimulationRoutes(api, simulationHandler)
		handlers.RegisterPreferencesRoutes(api, preferencesHandler)
	}

	// Live update loop
	poller := liveupdate.NewPoller(tracker, cfg.LiveUpdateInterval, marketService.FetchFresh, marketService.OnSnapshot)
	if cfg.LiveUpdateEnabled {
		poller.Start()
		defer poller.Stop()
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
