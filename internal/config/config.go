package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application. All process-wide
// settings are resolved here once and passed down explicitly.
type Config struct {
	// JWTSecret signs and verifies access tokens.
	JWTSecret string

	// DatabaseURL selects a networked Postgres instance when set.
	// When empty the service falls back to a local SQLite file.
	DatabaseURL string

	// SQLitePath is the path of the embedded database file used when
	// no DatabaseURL is provided.
	SQLitePath string

	// HTTPAddr is the listen address of the API server.
	HTTPAddr string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "database.db"
	}

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	return &Config{
		JWTSecret:   jwtSecret,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  sqlitePath,
		HTTPAddr:    httpAddr,
	}, nil
}
