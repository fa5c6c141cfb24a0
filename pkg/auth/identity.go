package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartparking/identity/pkg/directory"
	"github.com/smartparking/identity/pkg/domain"
)

// FederatedVerifier validates a third-party identity assertion and returns
// the normalized claim. Implemented by GoogleVerifier.
type FederatedVerifier interface {
	Verify(ctx context.Context, assertion string) (*domain.FederatedIdentity, error)
}

// AuthResult is a successful authentication: the account and a fresh
// session token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// IdentityService orchestrates registration, login, federated login and
// token verification over the user directory. It is stateless per request;
// all durable state lives in the directory.
type IdentityService struct {
	dir    directory.UserDirectory
	tokens *TokenService
	google FederatedVerifier
	now    func() time.Time
}

// NewIdentityService creates a new identity service.
func NewIdentityService(dir directory.UserDirectory, tokens *TokenService, google FederatedVerifier) *IdentityService {
	return &IdentityService{
		dir:    dir,
		tokens: tokens,
		google: google,
		now:    time.Now,
	}
}

// Register creates a password account and issues a session token.
func (s *IdentityService) Register(ctx context.Context, fullName, email, phoneNumber, password string) (*AuthResult, error) {
	if err := ValidateRegistration(fullName, email, phoneNumber, password); err != nil {
		return nil, err
	}

	email = NormalizeEmail(email)

	// Pre-check for a friendlier failure; the directory's unique-email
	// constraint still closes the check-then-create race.
	_, err := s.dir.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, directoryFailure(err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user, err := s.dir.Create(ctx, &domain.User{
		FullName:     SanitizeName(fullName),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		PasswordHash: &hash,
		AuthProvider: domain.ProviderPassword,
		IsActive:     true,
		LoginCount:   0,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, directoryFailure(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// PasswordLogin authenticates an email/password pair and issues a session
// token. Unknown email, wrong password and a federated-only account all
// fail with domain.ErrInvalidCredentials so account existence never leaks.
func (s *IdentityService) PasswordLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)

	user, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, directoryFailure(err)
	}

	if !user.HasPassword() || !VerifyPassword(password, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	if err := s.recordLogin(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// FederatedLogin authenticates a Google ID token, auto-provisioning the
// account on first sign-in, and issues a session token. Existing accounts
// get the Google subject, picture and verified-email claim backfilled only
// where those fields are currently unset.
func (s *IdentityService) FederatedLogin(ctx context.Context, assertion string) (*AuthResult, error) {
	identity, err := s.google.Verify(ctx, assertion)
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotConfigured) {
			return nil, domain.ErrProviderNotConfigured
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFederatedVerification, err)
	}

	email := NormalizeEmail(identity.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: assertion carries no email", domain.ErrFederatedVerification)
	}

	user, err := s.dir.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !user.IsActive {
			return nil, domain.ErrAccountDeactivated
		}
		if err := s.backfillAndRecordLogin(ctx, user, identity); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = s.provisionFederated(ctx, email, identity)
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// Lost a concurrent first-login race; link to the account
			// the winning request created.
			user, err = s.dir.FindByEmail(ctx, email)
			if err != nil {
				return nil, directoryFailure(err)
			}
			if !user.IsActive {
				return nil, domain.ErrAccountDeactivated
			}
			err = s.backfillAndRecordLogin(ctx, user, identity)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, directoryFailure(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// VerifyAndFetch validates a session token and returns the account it was
// issued for. The active check re-runs on every call, so deactivation
// invalidates previously issued tokens immediately.
func (s *IdentityService) VerifyAndFetch(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.dir.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, directoryFailure(err)
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	return user, nil
}

// recordLogin bumps the login counter and timestamps, mutating user to
// match what was persisted.
func (s *IdentityService) recordLogin(ctx context.Context, user *domain.User) error {
	now := s.now()
	count := user.LoginCount + 1

	err := s.dir.Update(ctx, user.ID, directory.UserPatch{
		LoginCount: &count,
		LastLogin:  &now,
	})
	if err != nil {
		return directoryFailure(err)
	}

	user.LoginCount = count
	user.LastLogin = &now
	return nil
}

func (s *IdentityService) backfillAndRecordLogin(ctx context.Context, user *domain.User, identity *domain.FederatedIdentity) error {
	now := s.now()
	count := user.LoginCount + 1

	patch := directory.UserPatch{
		LoginCount: &count,
		LastLogin:  &now,
	}
	if user.GoogleID == nil && identity.Subject != "" {
		patch.GoogleID = &identity.Subject
	}
	if user.ProfilePictureURL == nil && identity.Picture != "" {
		patch.ProfilePictureURL = &identity.Picture
	}
	if !user.EmailVerified && identity.EmailVerified {
		verified := true
		patch.EmailVerified = &verified
	}

	if err := s.dir.Update(ctx, user.ID, patch); err != nil {
		return directoryFailure(err)
	}

	if patch.GoogleID != nil {
		user.GoogleID = patch.GoogleID
	}
	if patch.ProfilePictureURL != nil {
		user.ProfilePictureURL = patch.ProfilePictureURL
	}
	if patch.EmailVerified != nil {
		user.EmailVerified = true
	}
	user.LoginCount = count
	user.LastLogin = &now
	return nil
}

func (s *IdentityService) provisionFederated(ctx context.Context, email string, identity *domain.FederatedIdentity) (*domain.User, error) {
	now := s.now()
	user := &domain.User{
		FullName:      SanitizeName(identity.Name),
		Email:         email,
		PhoneNumber:   "", // Google does not provide a phone number
		GoogleID:      &identity.Subject,
		EmailVerified: identity.EmailVerified,
		AuthProvider:  domain.ProviderGoogle,
		IsActive:      true,
		LoginCount:    1,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastLogin:     &now,
	}
	if identity.Picture != "" {
		user.ProfilePictureURL = &identity.Picture
	}

	created, err := s.dir.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, directoryFailure(err)
	}
	return created, nil
}

func directoryFailure(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
}
