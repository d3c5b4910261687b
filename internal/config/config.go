package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr            = ":8080"
	defaultDatabaseURL         = "snapapp.db"
	defaultPasswordIterations  = "100000"
	defaultAccessTokenTTL      = "15m"
	defaultRefreshTokenTTL     = "168h"
	defaultSessionKeyBits      = "2048"
	defaultInternalTokenSecret = "change-me-internal-secret"
	defaultInternalTokenTTL    = "5m"
	defaultLogLevel            = "info"

	minPasswordIterations = 1000
	minSessionKeyBits     = 2048
)

// Config is built once at startup and passed by value afterwards.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	LogLevel    string

	PasswordIterations int
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	SessionKeyBits     int

	InternalTokenSecret string
	InternalTokenTTL    time.Duration

	CORSAllowedOrigins []string
}

func Load() (Config, error) {
	var cfg Config
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.InternalTokenSecret = strings.TrimSpace(getEnv("INTERNAL_TOKEN_SECRET", defaultInternalTokenSecret))
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	var err error
	if cfg.PasswordIterations, err = parseIntEnv("PASSWORD_ITERATIONS", defaultPasswordIterations); err != nil {
		return Config{}, err
	}
	if cfg.SessionKeyBits, err = parseIntEnv("SESSION_KEY_BITS", defaultSessionKeyBits); err != nil {
		return Config{}, err
	}
	if cfg.AccessTokenTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTokenTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.InternalTokenTTL, err = parseDurationEnv("INTERNAL_TOKEN_TTL", defaultInternalTokenTTL); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.PasswordIterations < minPasswordIterations {
		return fmt.Errorf("PASSWORD_ITERATIONS must be >= %d", minPasswordIterations)
	}
	if c.SessionKeyBits < minSessionKeyBits {
		return fmt.Errorf("SESSION_KEY_BITS must be >= %d", minSessionKeyBits)
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be >= ACCESS_TOKEN_TTL")
	}
	if c.InternalTokenTTL <= 0 {
		return fmt.Errorf("INTERNAL_TOKEN_TTL must be > 0")
	}

	if c.IsProdLike() && isEmptyOrDefault(c.InternalTokenSecret, defaultInternalTokenSecret) {
		return fmt.Errorf("in prod/release INTERNAL_TOKEN_SECRET must be set and not default")
	}
	return nil
}

func (c Config) IsProdLike() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

// CORS_ALLOWED_ORIGINS=https://app.com,https://admin.app.com
func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
