// Package config loads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"job_backend/internal/platform/db"
)

// InsecureDevSecret is the publicly known development literal from earlier
// deployments. Tokens signed with it are forgeable, so it is refused.
const InsecureDevSecret = "dev-secret-change-in-production"

// Store drivers.
const (
	StoreMongo    = "mongo"
	StorePostgres = db.DriverPostgres
	StoreMySQL    = db.DriverMySQL
	StoreSQLite   = db.DriverSQLite
)

// Password schemes.
const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
)

// Config is the validated process configuration.
type Config struct {
	HTTPAddr       string
	GinMode        string
	LogLevel       string
	LogFormat      string
	CORSOrigins    []string
	RequestTimeout time.Duration

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	SQL           db.Config

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	PasswordScheme string
	BcryptCost     int

	JWTSecret    string
	JWTAlgorithm string
	JWTTTL       time.Duration

	JobsFeedBaseURL   string
	JobsFeedLimit     int
	JobsFeedTimeout   time.Duration
	JobsFeedRateLimit int
}

// Load reads .env when present and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not loaded; using process environment", "error", err)
	}
	return FromEnv(env.ToMap(os.Environ()))
}

// environment is the raw variable set. Empty values fall back to envDefault.
type environment struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8000"`
	GinMode        string        `env:"GIN_MODE"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`
	CORSOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"job_ecosystem"`

	DBUser           string        `env:"DB_USER"`
	DBPassword       string        `env:"DB_PASSWORD"`
	DBName           string        `env:"DB_NAME" envDefault:"job_backend"`
	DBHost           string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort           string        `env:"DB_PORT"`
	DBSSLMode        string        `env:"DB_SSLMODE" envDefault:"disable"`
	DBInstanceName   string        `env:"INSTANCE_CONNECTION_NAME"`
	SQLitePath       string        `env:"SQLITE_PATH" envDefault:"./job_backend.db"`
	DBConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"60s"`
	RunMigrations    bool          `env:"RUN_MIGRATIONS" envDefault:"false"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	PasswordScheme string `env:"PASSWORD_SCHEME" envDefault:"bcrypt"`
	BcryptCost     int    `env:"BCRYPT_COST" envDefault:"12"`

	JWTSecret        string `env:"JWT_SECRET"`
	JWTAlgorithm     string `env:"JWT_ALGORITHM" envDefault:"HS256"`
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"10080"`

	JobsFeedBaseURL   string        `env:"JOBS_FEED_BASE_URL" envDefault:"https://remotive.com/api"`
	JobsFeedLimit     int           `env:"JOBS_FEED_LIMIT" envDefault:"12"`
	JobsFeedTimeout   time.Duration `env:"JOBS_FEED_TIMEOUT" envDefault:"10s"`
	JobsFeedRateLimit int           `env:"JOBS_FEED_RATE_LIMIT" envDefault:"30"`
}

// FromEnv builds and validates a Config from the given variables.
// Every malformed variable is reported, not just the first.
func FromEnv(environ map[string]string) (*Config, error) {
	var raw environment
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ}); err != nil {
		return nil, err
	}

	driver := strings.ToLower(strings.TrimSpace(raw.StoreDriver))
	cfg := &Config{
		HTTPAddr:       raw.HTTPAddr,
		GinMode:        raw.GinMode,
		LogLevel:       raw.LogLevel,
		LogFormat:      raw.LogFormat,
		CORSOrigins:    trimList(raw.CORSOrigins, []string{"*"}),
		RequestTimeout: raw.RequestTimeout,

		StoreDriver:   driver,
		MongoURI:      raw.MongoURI,
		MongoDatabase: raw.MongoDatabase,
		SQL: db.Config{
			Driver:         driver,
			User:           raw.DBUser,
			Password:       raw.DBPassword,
			Name:           raw.DBName,
			Host:           raw.DBHost,
			Port:           raw.DBPort,
			SSLMode:        raw.DBSSLMode,
			InstanceName:   raw.DBInstanceName,
			SQLitePath:     raw.SQLitePath,
			ConnectTimeout: raw.DBConnectTimeout,
			RunMigrations:  raw.RunMigrations,
		},

		RedisHost:     raw.RedisHost,
		RedisPort:     raw.RedisPort,
		RedisPassword: raw.RedisPassword,
		RedisDB:       raw.RedisDB,

		PasswordScheme: strings.ToLower(strings.TrimSpace(raw.PasswordScheme)),
		BcryptCost:     raw.BcryptCost,

		JWTSecret:    raw.JWTSecret,
		JWTAlgorithm: raw.JWTAlgorithm,
		JWTTTL:       time.Duration(raw.JWTExpireMinutes) * time.Minute,

		JobsFeedBaseURL:   raw.JobsFeedBaseURL,
		JobsFeedLimit:     raw.JobsFeedLimit,
		JobsFeedTimeout:   raw.JobsFeedTimeout,
		JobsFeedRateLimit: raw.JobsFeedRateLimit,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch {
	case c.JWTSecret == "":
		errs = append(errs, errors.New("JWT_SECRET is required"))
	case c.JWTSecret == InsecureDevSecret:
		errs = append(errs, errors.New("JWT_SECRET must not be the published development secret"))
	case len(c.JWTSecret) < 32:
		slog.Warn("JWT_SECRET is shorter than 32 bytes")
	}

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required when STORE_DRIVER=mongo"))
		}
	case StorePostgres, StoreMySQL:
		if c.SQL.User == "" {
			errs = append(errs, fmt.Errorf("DB_USER is required when STORE_DRIVER=%s", c.StoreDriver))
		}
	case StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.PasswordScheme {
	case SchemeBcrypt, SchemeArgon2id:
	default:
		errs = append(errs, fmt.Errorf("unsupported PASSWORD_SCHEME %q", c.PasswordScheme))
	}

	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE_MINUTES must be positive"))
	}
	if c.JobsFeedLimit <= 0 {
		errs = append(errs, errors.New("JOBS_FEED_LIMIT must be positive"))
	}
	return errors.Join(errs...)
}

// RedisEnabled reports whether a Redis denylist was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// trimList drops blanks around and between comma separated entries.
func trimList(in, def []string) []string {
	var out []string
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
