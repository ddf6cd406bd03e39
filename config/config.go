package config

import (
	"errors"
	"os"
	"strings"
)

const defaultPort = "8080"

type Config struct {
	DatabaseURL string
	Port        string
}

// Load reads the service configuration from the process environment.
// DATABASE_URL is required; the service cannot run without durable storage.
func Load() (*Config, error) {
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = defaultPort
	}

	return &Config{DatabaseURL: dbURL, Port: port}, nil
}
