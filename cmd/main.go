package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"clubhouse/docs/swagger"
	"clubhouse/internal/api"
	"clubhouse/internal/config"
	"clubhouse/internal/db"
	"clubhouse/internal/models"
	"clubhouse/internal/services"
	"clubhouse/internal/session"
	"clubhouse/internal/utils/logger"
)

// @title Clubhouse API
// @version 1.0
// @description Content and membership backend for the club website
// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	logger := logger.New("clubhouse")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		logger.Info("No .env file found, skipping environment variable loading")
	} else {
		logger.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database connection: %v", err)
		}
	}()

	dbInstance := db.GetDB()

	// Profile cache backing the session middleware
	profileCache, err := session.NewProfileCache(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	// File storage
	s3Service, err := services.NewS3Service(cfg.Storage.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	// Gallery images resolve their URLs through the file store
	models.RegisterFileURLGenerator(s3Service)

	// Swagger documentation
	swagger.SwaggerInfo.Title = "Clubhouse API"
	swagger.SwaggerInfo.Description = "Content and membership backend for the club website"
	swagger.SwaggerInfo.Version = "1.0"

	// Initialize API server
	apiServer := api.NewServer(cfg, dbInstance, profileCache, s3Service)
	go func() {
		logger.Success("API server started")
		if err := apiServer.Start(); err != nil {
			logger.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown API server", err)
	}

	logger.Info("Server shutdown gracefully")
}
