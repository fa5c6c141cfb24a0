package domain

import (
	"time"

	"github.com/google/uuid"
)

// Auth provider constants.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// User represents one SmartParking account.
//
// PasswordHash is nil for accounts provisioned through Google sign-in that
// never registered a password. GoogleID is set once the account has
// authenticated through the federated path.
type User struct {
	ID                uuid.UUID
	FullName          string
	Email             string
	PhoneNumber       string
	PasswordHash      *string
	GoogleID          *string
	ProfilePictureURL *string
	EmailVerified     bool
	AuthProvider      string
	IsActive          bool
	LoginCount        int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	LastLogin         *time.Time
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// FederatedIdentity is the normalized claim extracted from a verified
// Google ID token.
type FederatedIdentity struct {
	Subject       string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}
