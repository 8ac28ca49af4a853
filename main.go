// main.go
package main

import (
	"context"
	"log"

	"movie-booking/cmd"
	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/wire"
	"movie-booking/migrations"
	"movie-booking/pkg/clock"
	"movie-booking/pkg/database"
	"movie-booking/pkg/utils"

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

	if err := migrations.Apply(context.Background(), db.Pool(), logger); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Redis is optional, seat availability is read straight from the database without it
	redisClient := cache.NewRedisClient(config.Redis)
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	} else {
		logger.Warn("Redis unavailable, seat availability cache disabled")
	}
	seats := cache.NewSeatAvailabilityCache(redisClient, config.Redis.SeatTTL, logger)

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, seats, clock.NewSystem(), db, config, logger)

	cmd.APIServer(app.Router, config, logger)
}
