package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the service.
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	AppName string `envconfig:"APP_NAME" default:"Parts Inventory v1.0"`
	Port    string `envconfig:"PORT" default:"3000"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// DBDriver selects the store: "postgres" for deployments, "sqlite" for local runs.
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"inventory"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBTimeZone  string `envconfig:"DB_TIMEZONE" default:"UTC"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"dev.sqlite"`
	DBLogLevel  string `envconfig:"DB_LOG_LEVEL" default:"warn"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"your-super-secret-key-change-in-production"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@example.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

const defaultJWTSecret = "your-super-secret-key-change-in-production"

// Load reads .env (when present) into the environment and then decodes the
// environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD cannot be negative")
	}
	return nil
}

// IsProduction returns true when the service runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// PostgresDSN returns DATABASE_URL, or builds a key/value DSN from the DB_* parts.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBTimeZone,
	)
}
