// Package config loads server configuration from the environment,
// optionally seeded from a .env file in development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is the full set of values the server reads at startup.
type Config struct {
	BindAddress  string
	EndpointPath string
	PersistDSN   string // empty disables the optional persistence sink
}

// Load reads configuration from the environment. If a .env file is
// present in the working directory it is loaded first (missing is not
// an error — godotenv is a development convenience, not a requirement).
func Load() Config {
	_ = godotenv.Load()

	return Config{
		BindAddress:  getEnv("BIND_ADDRESS", "0.0.0.0:3001"),
		EndpointPath: getEnv("ENDPOINT_PATH", "/ws"),
		PersistDSN:   os.Getenv("PERSIST_DSN"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
