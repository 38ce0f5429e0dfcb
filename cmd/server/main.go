package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/storage"

	"github.com/album-index-api/internal/api"
	"github.com/album-index-api/internal/blobstore"
	"github.com/album-index-api/internal/config"
	"github.com/album-index-api/internal/repository"
	"github.com/album-index-api/internal/service"
	"github.com/album-index-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting album index API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Auth.Secret == "" {
		log.Warn().Msg("ADMIN_JWT_SECRET is not set, all mutating endpoints are disabled")
	}

	// Initialize object store
	ctx := context.Background()
	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create storage client")
	}
	defer gcsClient.Close()

	store, err := blobstore.NewGCS(gcsClient, cfg.Store.Bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object store")
	}
	log.Info().Str("bucket", cfg.Store.Bucket).Str("prefix", cfg.Store.KeyPrefix).Msg("Object store ready")

	// Initialize repositories
	repos := repository.New(store, cfg.Store.KeyPrefix, log)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
