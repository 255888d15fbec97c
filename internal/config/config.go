// Package config holds the runtime configuration for the web frontend.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	Port        string
	Environment string // development, staging, production

	// Domains
	PlatformDomain string // serves the dashboard and homepage
	PublicDomain   string // serves project docs on subdomains
	ExternalDomain string // serves pull request builds on subdomains

	// Session
	SessionSecret string
	SessionMaxAge time.Duration

	// Rendering
	DefaultLanguage string
	DonateURL       string
	CachePath       string // fragment cache backend, ":memory:" or a file
}

// Load reads configuration from environment variables. In development, it
// will also load from a .env file if present.
func Load() (*Config, error) {
	// ignore errors if the .env file doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		PlatformDomain: getEnv("PLATFORM_DOMAIN", "docshore.org"),
		PublicDomain:   getEnv("PUBLIC_DOMAIN", "docshore.io"),
		ExternalDomain: getEnv("EXTERNAL_DOMAIN", "docshore.build"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionMaxAge: 14 * 24 * time.Hour,

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		DonateURL:       getEnv("DONATE_URL", "/sustainability/"),
		CachePath:       getEnv("CACHE_PATH", ":memory:"),
	}

	// securecookie needs 32 bytes of hash key plus 32 bytes of block key
	if len(cfg.SessionSecret) < 64 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 64 characters, got %d", len(cfg.SessionSecret))
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
