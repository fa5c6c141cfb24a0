package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smartparking/identity/internal/config"
	"github.com/smartparking/identity/internal/http/features/google"
	"github.com/smartparking/identity/internal/http/features/me"
	"github.com/smartparking/identity/internal/http/features/password"
	"github.com/smartparking/identity/internal/http/features/session"
	"github.com/smartparking/identity/internal/http/middleware"
	"github.com/smartparking/identity/internal/httputil"
	"github.com/smartparking/identity/internal/metrics"
	"github.com/smartparking/identity/pkg/auth"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger          *slog.Logger
	Identity        *auth.IdentityService
	Metrics         *metrics.Metrics
	RateLimitConfig config.RateLimitConfig
	GoogleEnabled   bool

	// DirectoryPing reports whether the user directory is reachable.
	// Nil means the directory needs no connectivity check.
	DirectoryPing func(ctx context.Context) error

	// MaxRequestBodySize caps request bodies; zero means the default.
	MaxRequestBodySize int64
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	maxBody := cfg.MaxRequestBodySize
	if maxBody <= 0 {
		maxBody = middleware.DefaultMaxRequestBodySize
	}

	// Apply global middleware
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.RequestSizeLimit(maxBody))

	googleStatus := "not configured"
	if cfg.GoogleEnabled {
		googleStatus = "configured"
	}

	directoryStatus := func(ctx context.Context) string {
		if cfg.DirectoryPing == nil {
			return "connected"
		}
		if err := cfg.DirectoryPing(ctx); err != nil {
			return "disconnected"
		}
		return "connected"
	}

	// Service info
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]any{
			"message":      "SmartParking API is running",
			"version":      "1.0.0",
			"status":       "active",
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"database":     directoryStatus(r.Context()),
			"google_oauth": googleStatus,
			"endpoints": map[string]string{
				"health":       "GET /health",
				"signup":       "POST /api/auth/signup",
				"login":        "POST /api/auth/login",
				"google_login": "POST /api/auth/google",
				"verify":       "POST /api/auth/verify",
				"profile":      "GET /api/auth/profile",
			},
		})
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]any{
			"status":       "healthy",
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"service":      "SmartParking API",
			"database":     directoryStatus(r.Context()),
			"google_oauth": googleStatus,
		})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Create rate limiters for different endpoint types
	rateLimiters := middleware.CreateRateLimiters(cfg.RateLimitConfig, cfg.Logger)

	passwordHandler := password.NewHandler(cfg.Logger, cfg.Identity, cfg.Metrics)
	googleHandler := google.NewHandler(cfg.Logger, cfg.Identity, cfg.Metrics)
	sessionHandler := session.NewHandler(cfg.Logger, cfg.Identity, cfg.Metrics)
	meHandler := me.NewHandler()

	// Credential-presenting endpoints
	r.Group(func(r chi.Router) {
		r.Use(rateLimiters["auth"])
		r.Post("/api/auth/signup", passwordHandler.Signup)
		r.Post("/api/auth/login", passwordHandler.Login)
		r.Post("/api/auth/google", googleHandler.Login)
	})

	// Token verification and profile
	r.Group(func(r chi.Router) {
		r.Use(rateLimiters["verify"])
		r.Post("/api/auth/verify", sessionHandler.Verify)
		r.With(middleware.Auth(cfg.Identity)).Get("/api/auth/profile", meHandler.Profile)
	})

	return r
}
