// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	ServerPort      string
	Environment     string
	DBBackend       string // "sqlite" or "postgres"
	SQLitePath      string
	DatabaseURL     string
	JWTSecretKey    string
	AppPasswordHash string // bcrypt hash of the archive password
	DisplayTimezone string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     env,
		DBBackend:       strings.ToLower(getEnv("DB_BACKEND", BackendSQLite)),
		SQLitePath:      getEnv("SQLITE_PATH", "data/chatvault.sqlite"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecretKey:    getEnv("JWT_SECRET_KEY", ""),
		AppPasswordHash: getEnv("APP_PASSWORD_HASH", ""),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "Europe/Kyiv"),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.AppPasswordHash == "" {
			missing = append(missing, "APP_PASSWORD_HASH")
		}
		if cfg.DBBackend == BackendPostgres && cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// Validate checks that the backend selection is usable.
func (c *Config) Validate() error {
	switch c.DBBackend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown DB_BACKEND %q (expected sqlite or postgres)", c.DBBackend)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
