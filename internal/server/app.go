package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"snapapp/internal/config"
	"snapapp/internal/domain/auth"
	"snapapp/internal/domain/realty"
	"snapapp/internal/logging"
	"snapapp/internal/middleware"
	"snapapp/internal/pkg/jwt"
	"snapapp/internal/pkg/password"
	"snapapp/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	httpServer *http.Server
	log        logging.Logger
}

// Wire builds repositories, services and handlers over db.
func Wire(cfg config.Config, db *gorm.DB, log logging.Logger) Deps {
	users := repository.NewUserRepository(db)
	logins := repository.NewLoginRepository(db)
	properties := repository.NewPropertyRepository(db)
	hasher := password.NewHasher(cfg.PasswordIterations)

	authService := auth.NewService(users, logins, hasher, auth.Settings{
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		SessionKeyBits:  cfg.SessionKeyBits,
	}, log)
	realtyService := realty.NewService(users, properties, hasher, log)

	return Deps{
		Auth:        auth.NewHandler(authService, log),
		Realty:      realty.NewHandler(realtyService, log),
		Gate:        middleware.NewGate(logins, middleware.DefaultPolicy(), log),
		OpsTokens:   jwt.New(cfg.InternalTokenSecret, cfg.InternalTokenTTL),
		Log:         log,
		CORSOrigins: cfg.CORSAllowedOrigins,
	}
}

func New(cfg config.Config, db *gorm.DB, log logging.Logger) *App {
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &App{
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           NewRouter(Wire(cfg, db, log)),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "http server listening", "addr", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info(context.Background(), "shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	a.log.Info(context.Background(), "http server stopped")
	return nil
}
