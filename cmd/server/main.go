package main

import (
	"label-batch-service/internal/adapters/document"
	"label-batch-service/internal/adapters/repositories"
	"label-batch-service/internal/api"
	"label-batch-service/internal/config"
	"label-batch-service/internal/labels"
	"label-batch-service/internal/platform/obs"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, etree documents) behind ports and starts the HTTP server.
func main() {
	foundEnv := config.LoadEnv()
	cfg := config.FromEnv()

	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	obs.SetLogger(logger)

	if !foundEnv {
		logger.Info("no .env file found (using environment variables)")
	}

	conn, store, err := repositories.OpenStore(cfg)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer conn.Close()

	var defaults labels.Request
	if cfg.DefaultsPath != "" {
		f, err := labels.Load(cfg.DefaultsPath)
		if err != nil {
			logger.Fatal("load defaults", zap.Error(err))
		}
		defaults = f.Defaults
	}

	router := api.NewRouter(store, store, document.Factory, defaults)

	logger.Info("server listening", zap.String("addr", ":"+cfg.Port), zap.String("db_driver", cfg.DBDriver))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
