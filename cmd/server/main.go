package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/haibh/airisk-dashboard-sub002/internal/api"
	"github.com/haibh/airisk-dashboard-sub002/internal/database"
	"github.com/haibh/airisk-dashboard-sub002/internal/logger"
	"github.com/haibh/airisk-dashboard-sub002/internal/middleware"
	"github.com/haibh/airisk-dashboard-sub002/pkg/config"
)

func main() {
	log := logger.NewSimpleLogger()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()
	if cfg.DatabaseURL == "" {
		log.Fatal("Configuration error", nil, "reason", "DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("Configuration error", nil, "reason", "JWT_SECRET is required")
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()

	if proxies := cfg.GetTrustedProxies(); len(proxies) > 0 {
		if err := r.SetTrustedProxies(proxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", err)
		}
	}

	// Add security middleware
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg))

	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware())
	}

	// Add recovery middleware
	r.Use(gin.Recovery())

	// Setup API routes
	api.SetupRoutes(r, db, cfg, log)

	// Start server
	log.Info("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server", err)
	}
}
