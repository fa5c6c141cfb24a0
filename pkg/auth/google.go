package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smartparking/identity/pkg/domain"
)

const (
	googleIssuer    = "https://accounts.google.com"
	googleIssuerAlt = "accounts.google.com"
)

// GoogleConfig holds Google sign-in configuration.
type GoogleConfig struct {
	// ClientID is the OAuth client the ID token must be issued for.
	ClientID string
	// MobileClientIDs are additional accepted audiences for tokens obtained
	// through the iOS/Android Google Sign-In SDKs.
	MobileClientIDs []string
}

// GoogleClaims represents the claims from a Google ID token.
type GoogleClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// KeySource resolves a token signing key by key id. It is the trust anchor
// for federated verification; production deployments use Google's JWKS
// endpoint (see NewGoogleKeySource).
type KeySource interface {
	Key(ctx context.Context, kid string) (any, error)
}

// GoogleVerifier validates Google ID tokens: signature and expiry against
// the key source, audience against the configured client ids, and issuer
// against Google's canonical issuer strings. It holds no user state and
// never touches the directory.
type GoogleVerifier struct {
	config GoogleConfig
	keys   KeySource
}

// NewGoogleVerifier creates a new Google ID token verifier.
func NewGoogleVerifier(config GoogleConfig, keys KeySource) *GoogleVerifier {
	return &GoogleVerifier{config: config, keys: keys}
}

// Configured reports whether a client id has been configured.
func (v *GoogleVerifier) Configured() bool {
	return v != nil && v.config.ClientID != ""
}

// Verify validates an ID token and returns the normalized identity claim.
// Returns domain.ErrProviderNotConfigured when no client id is configured
// and domain.ErrInvalidAssertion for any signature, expiry, audience or
// issuer failure.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*domain.FederatedIdentity, error) {
	if !v.Configured() {
		return nil, domain.ErrProviderNotConfigured
	}

	token, err := jwt.ParseWithClaims(idToken, &GoogleClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		kid, _ := token.Header["kid"].(string)
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAssertion, err)
	}

	claims, ok := token.Claims.(*GoogleClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidAssertion
	}

	// Validate audience (web client id or any mobile client id)
	if !v.validAudience(claims.Audience) {
		return nil, fmt.Errorf("%w: invalid audience", domain.ErrInvalidAssertion)
	}

	// Validate issuer
	if claims.Issuer != googleIssuer && claims.Issuer != googleIssuerAlt {
		return nil, fmt.Errorf("%w: invalid issuer %q", domain.ErrInvalidAssertion, claims.Issuer)
	}

	return &domain.FederatedIdentity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		Name:          claims.Name,
		Picture:       claims.Picture,
		EmailVerified: claims.EmailVerified,
	}, nil
}

func (v *GoogleVerifier) validAudience(audience jwt.ClaimStrings) bool {
	for _, aud := range audience {
		if aud == v.config.ClientID {
			return true
		}
		for _, mobileID := range v.config.MobileClientIDs {
			if mobileID != "" && aud == mobileID {
				return true
			}
		}
	}
	return false
}
