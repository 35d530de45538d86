package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Wavespeed API
	WavespeedAPIKey  string
	WavespeedBaseURL string

	// Storage
	DatabasePath string

	// Auth. Empty disables the bearer check (local single-user mode).
	AuthSecret string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := &Config{
		WavespeedAPIKey:  getEnv("WAVESPEED_API_KEY", ""),
		WavespeedBaseURL: getEnv("WAVESPEED_API_BASE_URL", "https://api.wavespeed.ai"),

		DatabasePath: getEnv("HYPERREEL_DB_PATH", "hyper-reel.db"),

		AuthSecret: getEnv("HYPERREEL_AUTH_SECRET", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
