package password

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

// Handler handles password registration and login endpoints.
type Handler struct {
	logger   *slog.Logger
	identity *auth.IdentityService
	metrics  *metrics.Metrics
}

// NewHandler creates a new password handler.
func NewHandler(logger *slog.Logger, identity *auth.IdentityService, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		identity: identity,
		metrics:  m,
	}
}

// SignupRequest represents a registration request.
type SignupRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a successful registration or login.
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    common.User `json:"user"`
	Token   string      `json:"token"`
}

// Signup handles user registration.
// POST /api/auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.identity.Register(r.Context(), req.FullName, req.Email, req.PhoneNumber, req.Password)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			httputil.Error(w, http.StatusBadRequest, ve.Error())
		case errors.Is(err, domain.ErrDuplicateEmail):
			httputil.Error(w, http.StatusBadRequest, "email is already registered")
		case errors.Is(err, domain.ErrDirectoryUnavailable):
			h.logger.Error("signup failed", "error", err)
			httputil.Error(w, http.StatusServiceUnavailable, "database connection not available")
		default:
			h.logger.Error("signup failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.metrics.RecordRegistration()
	h.logger.Info("new user registered", "user_id", result.User.ID, "email", result.User.Email)

	httputil.JSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "User created successfully",
		User:    common.Sanitize(result.User),
		Token:   result.Token,
	})
}

// Login handles password login.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.identity.PasswordLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			httputil.Error(w, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, domain.ErrAccountDeactivated):
			httputil.Error(w, http.StatusUnauthorized, "account has been deactivated")
		case errors.Is(err, domain.ErrDirectoryUnavailable):
			h.logger.Error("login failed", "error", err)
			httputil.Error(w, http.StatusServiceUnavailable, "database connection not available")
		default:
			h.logger.Error("login failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.metrics.RecordLogin(domain.ProviderPassword)
	h.logger.Info("user logged in", "user_id", result.User.ID, "login_count", result.User.LoginCount)

	httputil.JSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    common.Sanitize(result.User),
		Token:   result.Token,
	})
}
