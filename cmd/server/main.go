package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"invoice-bookkeeping-backend/internal/app"
	"invoice-bookkeeping-backend/internal/config"
	"invoice-bookkeeping-backend/internal/logging"
	"invoice-bookkeeping-backend/internal/routes"
	"invoice-bookkeeping-backend/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logCloser, err := logging.New(cfg.LogLevel, cfg.LogFilePath)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	a, err := app.New(cfg, logger, logCloser)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open invoice storage")
	}
	defer a.Close()

	gin.SetMode(gin.ReleaseMode)
	r := routes.NewRouter(cfg.AllowedOrigins, a.Service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.Addr(), r, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}
