package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

const (
	googleJWKSURL   = "https://www.googleapis.com/oauth2/v3/certs"
	jwksRefreshTTL  = time.Hour
	jwksHTTPTimeout = 10 * time.Second
)

// jwk is a single RSA key from a JWKS document.
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

// JWKSKeySource fetches and caches RSA public keys from a JWKS endpoint.
// Keys are cached for a bounded interval and refetched when an unknown
// key id shows up (Google rotates its signing keys regularly).
type JWKSKeySource struct {
	url        string
	httpClient *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewGoogleKeySource creates a key source backed by Google's JWKS endpoint.
func NewGoogleKeySource() *JWKSKeySource {
	return NewJWKSKeySource(googleJWKSURL)
}

// NewJWKSKeySource creates a key source backed by the given JWKS URL.
func NewJWKSKeySource(url string) *JWKSKeySource {
	return &JWKSKeySource{
		url:        url,
		httpClient: &http.Client{Timeout: jwksHTTPTimeout},
		keys:       make(map[string]*rsa.PublicKey),
	}
}

// Key returns the public key for the given key id, refreshing the cached
// key set when it is stale or the kid is unknown.
func (s *JWKSKeySource) Key(ctx context.Context, kid string) (any, error) {
	s.mu.RLock()
	key, ok := s.keys[kid]
	fresh := time.Since(s.fetchedAt) < jwksRefreshTTL
	s.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := s.refresh(ctx); err != nil {
		// Fall back to a stale cached key rather than failing outright.
		if ok {
			return key, nil
		}
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok = s.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key id %q", kid)
	}
	return key, nil
}

func (s *JWKSKeySource) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks fetch failed: %s", resp.Status)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return err
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(k)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return fmt.Errorf("jwks document contains no usable RSA keys")
	}

	s.mu.Lock()
	s.keys = keys
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return nil
}

func parseRSAKey(k jwk) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	if e <= 1 {
		return nil, fmt.Errorf("invalid RSA exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}

// StaticKeySource resolves keys from a fixed map. Useful for tests and
// air-gapped deployments with pinned provider keys.
type StaticKeySource map[string]any

// Key implements KeySource.
func (s StaticKeySource) Key(_ context.Context, kid string) (any, error) {
	key, ok := s[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key id %q", kid)
	}
	return key, nil
}
