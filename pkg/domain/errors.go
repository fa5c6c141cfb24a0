package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account has been deactivated")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("invalid token")
)

// Federated verification errors
var (
	ErrProviderNotConfigured = errors.New("google sign-in not configured")
	ErrInvalidAssertion      = errors.New("invalid google token")
	// ErrFederatedVerification is the normalized failure surfaced to callers.
	// Individual verifier failure reasons are not distinguished.
	ErrFederatedVerification = errors.New("google sign-in verification failed")
)

// ErrDirectoryUnavailable marks failures of the user directory itself,
// the only error class treated as transient rather than a client problem.
var ErrDirectoryUnavailable = errors.New("user directory unavailable")

// ValidationError reports a single invalid registration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
