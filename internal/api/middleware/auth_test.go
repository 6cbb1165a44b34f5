package middleware_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/drawvault/workspace-api/internal/api/middleware"
	"github.com/drawvault/workspace-api/internal/security"
	"github.com/golang-jwt/jwt/v5"
)

type staticKeyFetcher struct {
	key *rsa.PublicKey
}

func (f *staticKeyFetcher) FetchKey(ctx context.Context) (*rsa.PublicKey, error) {
	return f.key, nil
}

func newAuthFixture(t *testing.T) (*rsa.PrivateKey, *middleware.AuthMiddleware) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	cache := security.NewKeyCache(&staticKeyFetcher{key: &priv.PublicKey}, time.Hour, 5*time.Minute)
	return priv, middleware.NewAuthMiddleware(security.NewTokenValidator(cache))
}

func signTestToken(t *testing.T, priv *rsa.PrivateKey, subject string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":                subject,
		"preferred_username": "alice",
		"email":              "alice@example.com",
		"exp":                time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(priv)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestAuthenticate(t *testing.T) {
	priv, authMiddleware := newAuthFixture(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.GetIdentity(r.Context())
		if !ok {
			t.Error("expected identity in context")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if identity.SubjectID != "user-1" {
			t.Errorf("expected subject 'user-1', got %q", identity.SubjectID)
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid bearer", "Bearer " + signTestToken(t, priv, "user-1"), http.StatusOK},
		{"case-insensitive scheme", "bearer " + signTestToken(t, priv, "user-1"), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/collections", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			authMiddleware.Authenticate(next).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
