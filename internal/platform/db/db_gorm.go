// Package db opens the GORM connection used by the SQL credential store.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config holds SQL connection settings.
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQL instance; takes precedence over Host/Port
	SQLitePath   string

	ConnectTimeout time.Duration
	RunMigrations  bool
}

// Opener opens a *gorm.DB for a DSN. It exists so tests can replace the real dialer.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN renders the driver specific connection string for cfg.
func BuildDSN(cfg Config) (string, error) {
	switch cfg.Driver {
	case DriverMySQL:
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name), nil
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.Host, valueOr(cfg.Port, "3306"), cfg.Name), nil
	case DriverPostgres:
		host := cfg.Host
		if cfg.InstanceName != "" {
			host = "/cloudsql/" + cfg.InstanceName
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			host, cfg.User, cfg.Password, cfg.Name, valueOr(cfg.Port, "5432"), valueOr(cfg.SSLMode, "disable")), nil
	case DriverSQLite:
		return valueOr(cfg.SQLitePath, "./job_backend.db"), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewOpener returns the Opener for a driver. Errors are translated by GORM so
// unique violations surface as gorm.ErrDuplicatedKey on every backend.
func NewOpener(driver string) (Opener, error) {
	var dialect func(string) gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialect = gmysql.Open
	case DriverPostgres:
		dialect = postgres.Open
	case DriverSQLite:
		dialect = sqlite.Open
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialect(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Warn),
		})
	}, nil
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
// Databases started alongside the service (docker compose, Cloud SQL proxy) are often not ready yet.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects using cfg and, when cfg.RunMigrations is set, auto-migrates models.
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}
	open, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	db, err := ConnectWithRetry(dsn, timeout, open)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	slog.Info("database connected", "driver", cfg.Driver, "target", redact(cfg))
	return db, nil
}

// Ping checks that the underlying connection pool can reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// redact describes the connection target without credentials.
func redact(cfg Config) string {
	switch {
	case cfg.Driver == DriverSQLite:
		return valueOr(cfg.SQLitePath, "./job_backend.db")
	case cfg.InstanceName != "":
		return "cloudsql:" + cfg.InstanceName + "/" + cfg.Name
	default:
		return strings.Join([]string{cfg.Host, valueOr(cfg.Port, "default")}, ":") + "/" + cfg.Name
	}
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
