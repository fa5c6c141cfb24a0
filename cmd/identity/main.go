package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/smartparking/identity/internal/config"
	httpserver "github.com/smartparking/identity/internal/http"
	"github.com/smartparking/identity/internal/metrics"
	"github.com/smartparking/identity/pkg/auth"
	"github.com/smartparking/identity/pkg/directory"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Connect to the user directory
	db, err := directory.NewDB(directory.DBConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	userDirectory := directory.NewPostgres(db)

	// Initialize services
	tokenService := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
		Issuer: cfg.JWTIssuer,
	})

	googleVerifier := auth.NewGoogleVerifier(auth.GoogleConfig{
		ClientID:        cfg.GoogleClientID,
		MobileClientIDs: cfg.GoogleMobileClientIDs,
	}, auth.NewGoogleKeySource())
	if cfg.HasGoogleSignIn() {
		logger.Info("google sign-in enabled")
	} else {
		logger.Warn("google sign-in not configured; /api/auth/google will reject requests")
	}

	identityService := auth.NewIdentityService(userDirectory, tokenService, googleVerifier)

	m := metrics.New()

	// Create router
	router := httpserver.NewRouter(httpserver.RouterConfig{
		Logger:             logger,
		Identity:           identityService,
		Metrics:            m,
		RateLimitConfig:    cfg.RateLimit,
		GoogleEnabled:      cfg.HasGoogleSignIn(),
		DirectoryPing:      db.PingContext,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
