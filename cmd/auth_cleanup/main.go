package main

import (
	"context"
	"log"
	"os"

	"snapapp/internal/config"
	"snapapp/internal/database"
	"snapapp/internal/domain/auth"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/password"
	"snapapp/internal/repository"

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
	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error(ctx, "db connect failed", "error", err)
		os.Exit(1)
	}

	svc := auth.NewService(
		repository.NewUserRepository(db),
		repository.NewLoginRepository(db),
		password.NewHasher(cfg.PasswordIterations),
		auth.Settings{
			AccessTokenTTL:  cfg.AccessTokenTTL,
			RefreshTokenTTL: cfg.RefreshTokenTTL,
			SessionKeyBits:  cfg.SessionKeyBits,
		},
		logger,
	)

	n, err := svc.PurgeStaleLogins(ctx)
	if err != nil {
		logger.Error(ctx, "auth cleanup failed", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "auth cleanup completed", "logins", n)
}
