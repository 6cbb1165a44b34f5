package security

import (
	"context"
	"errors"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the IdP token claims this service consumes.
type Claims struct {
	Username string `json:"preferred_username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenValidator verifies bearer tokens issued by the external IdP.
// The signing algorithm is pinned to RS256; the token's own alg header
// is never trusted for anything beyond matching the pin.
type TokenValidator struct {
	cache *KeyCache
}

// NewTokenValidator creates a token validator backed by the key cache.
func NewTokenValidator(cache *KeyCache) *TokenValidator {
	return &TokenValidator{cache: cache}
}

// Validate verifies signature and expiry and returns the caller's
// identity. Failures map onto the closed domain.AuthError set; the
// validator never retries on its own.
func (v *TokenValidator) Validate(ctx context.Context, tokenString string) (*domain.Identity, error) {
	if tokenString == "" {
		return nil, domain.ErrTokenMalformed
	}

	var keyErr error
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		key, err := v.cache.Current(ctx)
		if err != nil {
			keyErr = err
			return nil, err
		}
		return key, nil
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case keyErr != nil:
			return nil, domain.ErrKeyUnavailable
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	// Fail closed on tokens without a subject instead of propagating an
	// empty identity.
	if claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}

	identity := &domain.Identity{
		SubjectID: claims.Subject,
		Username:  claims.Username,
		Email:     claims.Email,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	return identity, nil
}
