package main

import (
	"context"
	"label-batch-service/internal/adapters/repositories"
	"label-batch-service/internal/config"
	"label-batch-service/internal/platform/obs"
	"log"

	"go.uber.org/zap"
)

func main() {
	if !config.LoadEnv() {
		log.Println("No .env file found (using environment variables)")
	}
	cfg := config.FromEnv()

	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	obs.SetLogger(logger)

	logger.Info("initializing database schema", zap.String("db_driver", cfg.DBDriver))
	conn, store, err := repositories.OpenStore(cfg)
	if err != nil {
		logger.Fatal("schema initialization failed", zap.Error(err))
	}
	defer conn.Close()
	logger.Info("schema ready")

	logger.Info("seeding database", zap.String("seed_path", cfg.SeedPath))
	if err := repositories.SeedFromFile(context.Background(), store, cfg.SeedPath); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seeding complete")
}
