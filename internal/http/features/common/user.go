package common

import (
	"time"

	"github.com/smartparking/identity/pkg/domain"
)

// User is the sanitized account representation returned by every endpoint.
// It never carries the password hash. Field names match what the mobile
// app expects.
type User struct {
	ID             string  `json:"id"`
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phoneNumber"`
	ProfilePicture string  `json:"profilePicture,omitempty"`
	EmailVerified  bool    `json:"emailVerified"`
	AuthProvider   string  `json:"authProvider"`
	IsActive       bool    `json:"isActive"`
	LoginCount     int     `json:"loginCount"`
	CreatedAt      string  `json:"createdAt"`
	LastLogin      *string `json:"lastLogin,omitempty"`
}

// Sanitize converts a domain user to its caller-visible representation.
func Sanitize(u *domain.User) User {
	out := User{
		ID:            u.ID.String(),
		FullName:      u.FullName,
		Email:         u.Email,
		PhoneNumber:   u.PhoneNumber,
		EmailVerified: u.EmailVerified,
		AuthProvider:  u.AuthProvider,
		IsActive:      u.IsActive,
		LoginCount:    u.LoginCount,
		CreatedAt:     u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.ProfilePictureURL != nil {
		out.ProfilePicture = *u.ProfilePictureURL
	}
	if u.LastLogin != nil {
		last := u.LastLogin.UTC().Format(time.RFC3339)
		out.LastLogin = &last
	}
	return out
}
