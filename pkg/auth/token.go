package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/smartparking/identity/pkg/domain"
)

// DefaultTokenTTL matches the mobile app's 7-day session horizon.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenConfig holds session token configuration. The secret is process-wide
// and immutable after startup.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// TokenService issues and verifies signed session tokens. Tokens are
// stateless: a token is valid iff its signature checks out and it has not
// expired. Whether the embedded user id still refers to a live, active
// account is the caller's decision.
type TokenService struct {
	config TokenConfig
}

// NewTokenService creates a new token service.
func NewTokenService(config TokenConfig) *TokenService {
	if config.TTL == 0 {
		config.TTL = DefaultTokenTTL
	}
	return &TokenService{config: config}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.config.TTL
}

// Issue creates a signed session token for the given user id, expiring
// TTL from now.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
		Issuer:    s.config.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.config.Secret)
}

// Verify validates a session token and returns the embedded user id.
// Returns domain.ErrTokenExpired past the embedded expiry and
// domain.ErrTokenMalformed for anything that fails to parse or whose
// signature does not validate.
func (s *TokenService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return s.config.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, domain.ErrTokenExpired
		}
		return uuid.Nil, domain.ErrTokenMalformed
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, domain.ErrTokenMalformed
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrTokenMalformed
	}

	return userID, nil
}
