package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/platefeed/feedback-backend/internal/api/routes"
	"github.com/platefeed/feedback-backend/internal/config"
	"github.com/platefeed/feedback-backend/internal/database"
	"github.com/platefeed/feedback-backend/internal/ws"
	"github.com/platefeed/feedback-backend/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}

	// One-time startup sequence: bootstrap account + role canonicalization.
	if err := database.SeedHeadAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("Failed to seed head admin", err)
	}
	if err := database.NormalizeLegacyRoles(db); err != nil {
		logger.Fatal("Failed to normalize legacy roles", err)
	}

	// Notification hub
	hub := ws.NewHub()
	go hub.Run()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Setup routes
	routes.SetupRoutes(router, db, cfg, hub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Server starting on port " + port)
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", err)
	}
}
