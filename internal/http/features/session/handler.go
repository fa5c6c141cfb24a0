package session

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

// Handler handles session token verification.
type Handler struct {
	logger   *slog.Logger
	identity *auth.IdentityService
	metrics  *metrics.Metrics
}

// NewHandler creates a new session handler.
func NewHandler(logger *slog.Logger, identity *auth.IdentityService, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		identity: identity,
		metrics:  m,
	}
}

// VerifyRequest represents a token verification request.
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyResponse represents a successful verification.
type VerifyResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    common.User `json:"user"`
}

// Verify validates a session token and returns the account it belongs to.
// POST /api/auth/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		httputil.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	user, err := h.identity.VerifyAndFetch(r.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			h.metrics.RecordVerification("user_not_found")
			httputil.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, domain.ErrAccountDeactivated):
			h.metrics.RecordVerification("deactivated")
			httputil.Error(w, http.StatusUnauthorized, "account has been deactivated")
		case errors.Is(err, domain.ErrDirectoryUnavailable):
			h.logger.Error("verify failed", "error", err)
			httputil.Error(w, http.StatusServiceUnavailable, "database connection not available")
		default:
			h.metrics.RecordVerification("invalid")
			httputil.Error(w, http.StatusUnauthorized, "invalid or expired token")
		}
		return
	}

	h.metrics.RecordVerification("ok")

	httputil.JSON(w, http.StatusOK, VerifyResponse{
		Success: true,
		Message: "Token is valid",
		User:    common.Sanitize(user),
	})
}
