// Package config loads process configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-wide settings for the auth service.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// JWTSecret signs session tokens.
	JWTSecret string
	// TokenLifetime is the session token validity window.
	TokenLifetime time.Duration
	// ResetTokenLifetime is the password-reset token validity window.
	ResetTokenLifetime time.Duration
	// FrontendURL is the base URL used to build reset links.
	FrontendURL string
	// MailFrom is the sender address for reset emails.
	MailFrom string
}

// Load reads the configuration from the environment. A .env file is
// loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	tokenLifetime := 24 * time.Hour
	if raw := os.Getenv("TOKEN_LIFETIME"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			tokenLifetime = d
		}
	}

	resetLifetime := 30 * time.Minute
	if raw := os.Getenv("RESET_TOKEN_LIFETIME"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			resetLifetime = d
		}
	}

	return &Config{
		Addr:               getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenLifetime:      tokenLifetime,
		ResetTokenLifetime: resetLifetime,
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		MailFrom:           getEnv("EMAIL_USER", "noreply@localhost"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
