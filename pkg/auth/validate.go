package auth

import (
	"strings"
	"unicode"

	"github.com/smartparking/identity/pkg/domain"
)

// Field length requirements for password registration.
const (
	minEmailLength    = 6
	minPasswordLength = 6
	minFullNameLength = 2
	minPhoneLength    = 10
)

// NormalizeEmail normalizes an email address by lowercasing and trimming.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeName trims a display name and strips control characters.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
}

// ValidateEmail checks the email format used by the mobile app: it must
// contain '@' and '.' and be longer than 5 characters.
func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return &domain.ValidationError{Field: "email", Reason: "is required and cannot be empty"}
	}
	if len(email) < minEmailLength || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return &domain.ValidationError{Field: "email", Reason: "invalid email format"}
	}
	return nil
}

// ValidateRegistration validates all registration fields. Each field is
// checked after trimming; the first violation wins.
func ValidateRegistration(fullName, email, phoneNumber, password string) error {
	if strings.TrimSpace(fullName) == "" {
		return &domain.ValidationError{Field: "fullName", Reason: "is required and cannot be empty"}
	}
	if strings.TrimSpace(phoneNumber) == "" {
		return &domain.ValidationError{Field: "phoneNumber", Reason: "is required and cannot be empty"}
	}
	if strings.TrimSpace(password) == "" {
		return &domain.ValidationError{Field: "password", Reason: "is required and cannot be empty"}
	}

	if err := ValidateEmail(email); err != nil {
		return err
	}

	if len(password) < minPasswordLength {
		return &domain.ValidationError{Field: "password", Reason: "must be at least 6 characters long"}
	}
	if len(strings.TrimSpace(fullName)) < minFullNameLength {
		return &domain.ValidationError{Field: "fullName", Reason: "must be at least 2 characters long"}
	}
	if len(strings.TrimSpace(phoneNumber)) < minPhoneLength {
		return &domain.ValidationError{Field: "phoneNumber", Reason: "must be at least 10 digits"}
	}

	return nil
}
