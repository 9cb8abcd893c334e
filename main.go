// main.go
package main

import (
	"context"
	"log"

	"event-booking/cmd"
	"event-booking/internal/data/repository"
	"event-booking/internal/feed"
	"event-booking/internal/wire"
	"event-booking/pkg/cache"
	"event-booking/pkg/database"
	"event-booking/pkg/middleware"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Identity provider key set
	jwks, err := middleware.NewJWKS(config.Auth)
	if err != nil {
		logger.Fatal("Failed to fetch identity provider JWKS", zap.Error(err))
	}
	defer jwks.EndBackground()

	// Redis cache for the upcoming events listing
	redisClient := cache.NewClient(config.Redis)
	defer redisClient.Close()

	eventCache := cache.NewEventCache(redisClient, config.Cache.UpcomingTTL, logger)

	// Realtime change feed
	bus := feed.NewBus(logger)
	defer bus.Close()

	if err := feed.RunCacheInvalidator(context.Background(), bus, eventCache, logger); err != nil {
		logger.Fatal("Failed to start cache invalidator", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, bus, eventCache, jwks, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
