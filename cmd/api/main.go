package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"snapapp/internal/config"
	"snapapp/internal/database"
	"snapapp/internal/logging"
	"snapapp/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error(ctx, "db connect failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Error(ctx, "migrations failed", "error", err)
		os.Exit(1)
	}

	app := server.New(cfg, db, logger)
	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped with error", "error", err)
		os.Exit(1)
	}
}
