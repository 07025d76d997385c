package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hospital-feedback-server/config"
	"hospital-feedback-server/database"
	"hospital-feedback-server/middleware"
	"hospital-feedback-server/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed department reference data for fresh installs
	if err := seedDepartments(); err != nil {
		log.Printf("⚠️ Department seeding failed: %v", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())
	middleware.StartRateLimiterCleanup()

	// CORS
	router.Use(middleware.CORSMiddleware())

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hospital Feedback Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// API routes
	api := router.Group("/bloom/v1/api")
	{
		// Patient routes: registration/login public with strict rate limits,
		// submission endpoints behind patient auth
		patient := api.Group("/patient")
		patient.Use(middleware.AuthRateLimitMiddleware())

		patientProtected := api.Group("/patient")
		patientProtected.Use(middleware.AuthMiddleware())

		routes.RegisterPatientRoutes(patient, patientProtected)

		// Admin routes: auth endpoints public, dashboard behind admin auth
		// (registered inside RegisterAdminRoutes)
		admin := api.Group("/admin")
		routes.RegisterAdminRoutes(admin)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
