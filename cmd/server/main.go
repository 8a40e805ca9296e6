package main

import (
	"log"

	"task-tracker/internal/api"
	"task-tracker/internal/config"
	"task-tracker/internal/database"
	"task-tracker/internal/logger"
	"task-tracker/internal/services"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Initialize MongoDB client
	mongoClient, err := database.NewMongoDBClient(cfg.MongoDB, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() { _ = mongoClient.Close() }()

	// Initialize services and handlers
	taskService := services.NewTaskService(mongoClient)
	handlers := api.NewHandlers(taskService, zlog)

	// Setup routes
	router := api.SetupRoutes(handlers, zlog)

	// Start server
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	zlog.Info("Server starting", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
