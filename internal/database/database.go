package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	stdlog "log"
	"os"
	"strings"
	"time"

	"snapapp/internal/logging"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

const (
	pgUniqueViolation = "23505"

	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func Connect(dsn string, log logging.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(stdlog.New(os.Stderr, "\r\n", stdlog.LstdFlags), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	if IsPostgres(dsn) {
		log.Info(context.Background(), "connecting to postgres")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info(context.Background(), "using sqlite", "dsn", dsn)
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate applies the embedded migrations for the dialect db was opened with.
func Migrate(ctx context.Context, db *gorm.DB, log logging.Logger) error {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch name := db.Dialector.Name(); name {
	case "postgres":
		dialect, dir = goose.DialectPostgres, "migrations/postgres"
	case "sqlite":
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	default:
		return fmt.Errorf("migrate: unsupported dialect %q", name)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, r := range results {
		log.Info(ctx, "migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// IsUniqueViolation reports whether err comes from a unique or primary key
// constraint, whichever driver produced it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		code := coded.Code()
		return code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey
	}
	return false
}
