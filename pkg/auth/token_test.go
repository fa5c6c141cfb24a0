package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartparking/identity/pkg/domain"
)

var testSecret = []byte("test-secret-key-for-tokens")

func newTestTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		Secret: testSecret,
		TTL:    ttl,
		Issuer: "smartparking-test",
	})
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService(0) // default TTL

	userID := uuid.New()
	token, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got != userID {
		t.Errorf("Verify returned %v, want %v", got, userID)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := newTestTokenService(0)
	if svc.TTL() != 7*24*time.Hour {
		t.Errorf("TTL = %v, want %v", svc.TTL(), 7*24*time.Hour)
	}
}

func TestTokenService_Expired(t *testing.T) {
	// A negative TTL produces a token that is already past its expiry,
	// like one issued 8 days ago.
	svc := newTestTokenService(-time.Hour)

	token, err := svc.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("Verify error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := newTestTokenService(0)

	token, err := svc.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %q", token)
	}

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Errorf("Verify error = %v, want ErrTokenMalformed", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc := newTestTokenService(0)
	other := NewTokenService(TokenConfig{Secret: []byte("a-different-secret"), Issuer: "smartparking-test"})

	token, err := other.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Errorf("Verify error = %v, want ErrTokenMalformed", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := newTestTokenService(0)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "not-a-token"},
		{name: "two segments", token: "aaaa.bbbb"},
		{name: "unsigned", token: "eyJhbGciOiJub25lIn0.eyJzdWIiOiJ4In0."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(tt.token); !errors.Is(err, domain.ErrTokenMalformed) {
				t.Errorf("Verify(%q) error = %v, want ErrTokenMalformed", tt.token, err)
			}
		})
	}
}
