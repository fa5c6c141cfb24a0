package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
)

func jwksJSON(t *testing.T, kid string, pub *rsa.PublicKey) []byte {
	t.Helper()

	e := big.NewInt(int64(pub.E))
	doc := jwksDocument{Keys: []jwk{
		{
			Kty: "RSA",
			Kid: kid,
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(e.Bytes()),
		},
		// Non-RSA keys are skipped, not an error.
		{Kty: "EC", Kid: "ec-key"},
	}}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestJWKSKeySource_FetchAndCache(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Header().Set("Content-Type", "application/json")
		w.Write(jwksJSON(t, testKeyID, &testRSAKey.PublicKey))
	}))
	defer server.Close()

	source := NewJWKSKeySource(server.URL)
	ctx := context.Background()

	key, err := source.Key(ctx, testKeyID)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		t.Fatalf("Key returned %T, want *rsa.PublicKey", key)
	}
	if pub.N.Cmp(testRSAKey.PublicKey.N) != 0 {
		t.Error("returned key does not match the served key")
	}

	// Second lookup hits the cache.
	if _, err := source.Key(ctx, testKeyID); err != nil {
		t.Fatalf("cached Key failed: %v", err)
	}
	if fetches != 1 {
		t.Errorf("fetches = %d, want 1 (second lookup should be cached)", fetches)
	}
}

func TestJWKSKeySource_UnknownKid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(jwksJSON(t, testKeyID, &testRSAKey.PublicKey))
	}))
	defer server.Close()

	source := NewJWKSKeySource(server.URL)

	if _, err := source.Key(context.Background(), "no-such-kid"); err == nil {
		t.Error("unknown kid should fail")
	}
}

func TestJWKSKeySource_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewJWKSKeySource(server.URL)

	if _, err := source.Key(context.Background(), testKeyID); err == nil {
		t.Error("fetch failure with an empty cache should fail")
	}
}
