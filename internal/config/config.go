package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled                 bool
	AuthRequestsPerWindow   int
	AuthWindowMinutes       int
	VerifyRequestsPerWindow int
	VerifyWindowMinutes     int
}

// Config holds application configuration.
type Config struct {
	// Server
	ServerAddr         string
	ServerPort         int
	MaxRequestBodySize int64

	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session tokens
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	// Google sign-in
	GoogleClientID        string
	GoogleMobileClientIDs []string

	// Rate limiting
	RateLimit RateLimitConfig
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		// Server defaults
		ServerAddr:         getEnv("SERVER_ADDR", "0.0.0.0"),
		ServerPort:         getEnvInt("SERVER_PORT", 5000),
		MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_SIZE", 1<<20)),

		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "smartparking"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Token defaults: 7-day sessions
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "smartparking"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 7*24*time.Hour),

		// Google sign-in (optional)
		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleMobileClientIDs: getEnvList("GOOGLE_MOBILE_CLIENT_IDS"),

		RateLimit: RateLimitConfig{
			Enabled:                 getEnvBool("RATE_LIMIT_ENABLED", true),
			AuthRequestsPerWindow:   getEnvInt("RATE_LIMIT_AUTH_REQUESTS", 10),
			AuthWindowMinutes:       getEnvInt("RATE_LIMIT_AUTH_WINDOW_MINUTES", 1),
			VerifyRequestsPerWindow: getEnvInt("RATE_LIMIT_VERIFY_REQUESTS", 60),
			VerifyWindowMinutes:     getEnvInt("RATE_LIMIT_VERIFY_WINDOW_MINUTES", 1),
		},
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// HasGoogleSignIn returns true if Google sign-in is configured.
func (c *Config) HasGoogleSignIn() bool {
	return c.GoogleClientID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
