package main

import (
	"github.com/gin-gonic/gin"
	"log"
	"socialgram-api/config"
	"socialgram-api/database"
	"socialgram-api/middleware"
	"socialgram-api/routes"
	"socialgram-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// File storage for post images
	storage, err := services.NewFileStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize file storage:", err)
	}

	emailService := services.NewEmailService(cfg)

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Request logging middleware
	router.Use(middleware.RequestLogger())

	// Recovery middleware
	router.Use(gin.Recovery())

	// Security headers and per-IP rate limiting
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(300, 30))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService, storage)

	// Start server
	log.Printf("Starting Socialgram API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
