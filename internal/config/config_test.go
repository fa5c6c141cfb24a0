package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Set required JWT_SECRET
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	// Clear any other env vars that might interfere
	envVars := []string{"SERVER_ADDR", "SERVER_PORT", "MAX_REQUEST_BODY_SIZE", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "TOKEN_TTL", "GOOGLE_CLIENT_ID", "GOOGLE_MOBILE_CLIENT_IDS"}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Check defaults
	if cfg.ServerAddr != "0.0.0.0" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, "0.0.0.0")
	}
	if cfg.ServerPort != 5000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 5000)
	}
	if cfg.MaxRequestBodySize != 1<<20 {
		t.Errorf("MaxRequestBodySize = %d, want %d", cfg.MaxRequestBodySize, 1<<20)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, want %q", cfg.DBHost, "localhost")
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, want %q", cfg.DBSSLMode, "disable")
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, 7*24*time.Hour)
	}
	if cfg.HasGoogleSignIn() {
		t.Error("HasGoogleSignIn should be false without GOOGLE_CLIENT_ID")
	}
	if !cfg.RateLimit.Enabled {
		t.Error("rate limiting should default to enabled")
	}
}

func TestLoad_RequiredJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	if err == nil {
		t.Error("Load should fail when JWT_SECRET is not set")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("JWT_SECRET", "custom-secret")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("TOKEN_TTL", "24h")
	os.Setenv("GOOGLE_CLIENT_ID", "web-client-id")
	os.Setenv("GOOGLE_MOBILE_CLIENT_IDS", "ios-client, android-client")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("TOKEN_TTL")
		os.Unsetenv("GOOGLE_CLIENT_ID")
		os.Unsetenv("GOOGLE_MOBILE_CLIENT_IDS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 9090)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, 24*time.Hour)
	}
	if !cfg.HasGoogleSignIn() {
		t.Error("HasGoogleSignIn should be true")
	}
	if len(cfg.GoogleMobileClientIDs) != 2 || cfg.GoogleMobileClientIDs[0] != "ios-client" || cfg.GoogleMobileClientIDs[1] != "android-client" {
		t.Errorf("GoogleMobileClientIDs = %v, want [ios-client android-client]", cfg.GoogleMobileClientIDs)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	os.Setenv("SERVER_PORT", "not-a-number")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("SERVER_PORT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != 5000 {
		t.Errorf("ServerPort = %d, want default %d", cfg.ServerPort, 5000)
	}
}
