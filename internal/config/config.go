package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every setting the API server reads from the environment.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"money-tracker.db"`

	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	CORSOrigin        string `env:"CORS_ORIGIN" envDefault:"*"`
	RateLimitAuthMax  int    `env:"RATE_LIMIT_AUTH_MAX" envDefault:"10"`
	RateLimitWriteMax int    `env:"RATE_LIMIT_WRITE_MAX" envDefault:"60"`

	// LegacyEmptyListMessages makes the spend, lend and borrow lists answer
	// with a {message} object instead of [] when there are no rows.
	LegacyEmptyListMessages bool          `env:"LEGACY_EMPTY_LIST_MESSAGES" envDefault:"false"`
	RequestTimeout          time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}

// Database holds the settings cmd/migrate needs.
type Database struct {
	DatabaseURL string `env:"DATABASE_URL"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	return Parse()
}

// LoadDatabase reads an optional .env file and then parses the database
// settings.
func LoadDatabase() (Database, error) {
	if err := loadDotEnv(); err != nil {
		return Database{}, err
	}
	return ParseDatabase()
}

// ParseDatabase builds a Database from the current environment.
func ParseDatabase() (Database, error) {
	var db Database
	if err := env.Parse(&db); err != nil {
		return Database{}, fmt.Errorf("parse env: %w", err)
	}
	db.DatabaseURL = strings.TrimSpace(db.DatabaseURL)
	if db.DatabaseURL == "" {
		return Database{}, errors.New("DATABASE_URL is not set")
	}
	return db, nil
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Parse builds a Config from the current environment and validates it.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements env tags cannot express.
func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	switch c.StoreDriver {
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is not set")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("SQLITE_PATH is not set")
		}
	default:
		return fmt.Errorf("STORE_DRIVER %q is not supported", c.StoreDriver)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d is out of range", c.BcryptCost)
	}
	if c.RateLimitAuthMax < 0 || c.RateLimitWriteMax < 0 {
		return errors.New("rate limits must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}
