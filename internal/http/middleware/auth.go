package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/smartparking/identity/internal/httputil"
	"github.com/smartparking/identity/pkg/auth"
	"github.com/smartparking/identity/pkg/domain"
)

type contextKey string

// UserKey is the context key for the authenticated user.
const UserKey contextKey = "user"

// Auth creates middleware that requires a valid bearer session token and
// loads the account it was issued for. The directory lookup and active
// check re-run on every request, so deactivation takes effect immediately.
func Auth(identity *auth.IdentityService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httputil.BearerToken(r)
			if !ok {
				httputil.Error(w, http.StatusUnauthorized, "authorization header is required (Bearer token)")
				return
			}

			user, err := identity.VerifyAndFetch(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUserNotFound):
					httputil.Error(w, http.StatusNotFound, "user not found")
				case errors.Is(err, domain.ErrAccountDeactivated):
					httputil.Error(w, http.StatusUnauthorized, "account has been deactivated")
				case errors.Is(err, domain.ErrDirectoryUnavailable):
					httputil.Error(w, http.StatusServiceUnavailable, "database connection not available")
				default:
					httputil.Error(w, http.StatusUnauthorized, "invalid or expired token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated user from the request context.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}
