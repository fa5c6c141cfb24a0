package google

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/smartparking/identity/internal/http/features/common"
	"github.com/smartparking/identity/internal/httputil"
	"github.com/smartparking/identity/internal/metrics"
	"github.com/smartparking/identity/pkg/auth"
	"github.com/smartparking/identity/pkg/domain"
)

// Handler handles the Google sign-in endpoint.
type Handler struct {
	logger   *slog.Logger
	identity *auth.IdentityService
	metrics  *metrics.Metrics
}

// NewHandler creates a new Google handler.
func NewHandler(logger *slog.Logger, identity *auth.IdentityService, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		identity: identity,
		metrics:  m,
	}
}

// LoginRequest represents a Google sign-in request carrying the ID token
// obtained by the mobile app.
type LoginRequest struct {
	IDToken string `json:"idToken"`
}

// AuthResponse represents a successful Google sign-in.
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    common.User `json:"user"`
	Token   string      `json:"token"`
}

// Login handles Google sign-in, provisioning an account on first login.
// POST /api/auth/google
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IDToken == "" {
		httputil.Error(w, http.StatusBadRequest, "ID token is required")
		return
	}

	result, err := h.identity.FederatedLogin(r.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProviderNotConfigured):
			httputil.Error(w, http.StatusBadRequest, "google sign-in not configured")
		case errors.Is(err, domain.ErrFederatedVerification):
			httputil.Error(w, http.StatusBadRequest, "invalid google token")
		case errors.Is(err, domain.ErrAccountDeactivated):
			httputil.Error(w, http.StatusUnauthorized, "account has been deactivated")
		case errors.Is(err, domain.ErrDirectoryUnavailable):
			h.logger.Error("google login failed", "error", err)
			httputil.Error(w, http.StatusServiceUnavailable, "database connection not available")
		default:
			h.logger.Error("google login failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.metrics.RecordLogin(domain.ProviderGoogle)
	h.logger.Info("google login successful",
		"user_id", result.User.ID,
		"login_count", result.User.LoginCount,
	)

	httputil.JSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Google login successful",
		User:    common.Sanitize(result.User),
		Token:   result.Token,
	})
}
