package security

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

func newSigningPair(t *testing.T) (*rsa.PrivateKey, *TokenValidator) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	cache := NewKeyCache(&stubFetcher{key: &priv.PublicKey}, time.Hour, 5*time.Minute)
	return priv, NewTokenValidator(cache)
}

func signToken(t *testing.T, priv *rsa.PrivateKey, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(priv)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func standardClaims(subject string, expiresIn time.Duration) Claims {
	return Claims{
		Username: "alice",
		Email:    "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestTokenValidator_ValidToken(t *testing.T) {
	priv, validator := newSigningPair(t)
	token := signToken(t, priv, standardClaims("user-1", time.Hour))

	identity, err := validator.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if identity.SubjectID != "user-1" {
		t.Errorf("expected subject 'user-1', got %q", identity.SubjectID)
	}
	if identity.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", identity.Username)
	}
	if identity.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", identity.Email)
	}
	if identity.ExpiresAt.IsZero() {
		t.Error("expected expiry to be carried onto the identity")
	}
}

func TestTokenValidator_ExpiredToken(t *testing.T) {
	priv, validator := newSigningPair(t)
	token := signToken(t, priv, standardClaims("user-1", -time.Minute))

	if _, err := validator.Validate(context.Background(), token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenValidator_WrongKeySignature(t *testing.T) {
	_, validator := newSigningPair(t)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	token := signToken(t, otherKey, standardClaims("user-1", time.Hour))

	if _, err := validator.Validate(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenValidator_MalformedTokens(t *testing.T) {
	_, validator := newSigningPair(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := validator.Validate(context.Background(), tt.token); !errors.Is(err, domain.ErrTokenMalformed) {
				t.Errorf("expected ErrTokenMalformed, got %v", err)
			}
		})
	}
}

func TestTokenValidator_RejectsNonRS256(t *testing.T) {
	_, validator := newSigningPair(t)

	// An HMAC token signed with the public key bytes must never verify;
	// accepting it would let anyone mint tokens from public material.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, standardClaims("user-1", time.Hour)).
		SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := validator.Validate(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenValidator_MissingSubject(t *testing.T) {
	priv, validator := newSigningPair(t)
	token := signToken(t, priv, standardClaims("", time.Hour))

	if _, err := validator.Validate(context.Background(), token); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenValidator_MissingExpiry(t *testing.T) {
	priv, validator := newSigningPair(t)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}
	token := signToken(t, priv, claims)

	if _, err := validator.Validate(context.Background(), token); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenValidator_KeyUnavailable(t *testing.T) {
	cache := NewKeyCache(&stubFetcher{err: errors.New("idp unreachable")}, time.Hour, 5*time.Minute)
	validator := NewTokenValidator(cache)

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	token := signToken(t, priv, standardClaims("user-1", time.Hour))

	if _, err := validator.Validate(context.Background(), token); !errors.Is(err, domain.ErrKeyUnavailable) {
		t.Errorf("expected ErrKeyUnavailable, got %v", err)
	}
}
