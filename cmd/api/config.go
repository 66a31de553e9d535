package main

import "os"

// Config holds the process configuration, read from the environment.
type Config struct {
	HTTPAddr    string
	Env         string
	LogLevel    string
	SeedOnStart bool
	Tracing     bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadConfig reads configuration from the environment with defaults suited
// to local development.
func LoadConfig() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		Env:         getenv("APP_ENV", "dev"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		SeedOnStart: getenv("SEED_ON_START", "true") == "true",
		Tracing:     getenv("OTEL_ENABLED", "true") == "true",
	}
}
