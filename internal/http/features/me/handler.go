package me

import (
	"net/http"

	"github.com/smartparking/identity/internal/http/features/common"
	"github.com/smartparking/identity/internal/http/middleware"
	"github.com/smartparking/identity/internal/httputil"
)

// Handler handles the authenticated profile endpoint.
type Handler struct{}

// NewHandler creates a new profile handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ProfileResponse represents the profile payload.
type ProfileResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    common.User `json:"user"`
}

// Profile returns the authenticated user's profile. The auth middleware
// has already verified the bearer token and loaded the account.
// GET /api/auth/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	httputil.JSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		Message: "Profile retrieved successfully",
		User:    common.Sanitize(user),
	})
}
