package security

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RealmKeyFetcher fetches the realm's current public key from a
// Keycloak-style realm endpoint.
type RealmKeyFetcher struct {
	realmURL string
	client   *http.Client
}

// NewRealmKeyFetcher creates a fetcher with a bounded request timeout.
func NewRealmKeyFetcher(realmURL string, timeout time.Duration) *RealmKeyFetcher {
	return &RealmKeyFetcher{
		realmURL: realmURL,
		client:   &http.Client{Timeout: timeout},
	}
}

type realmInfo struct {
	PublicKey string `json:"public_key"`
}

// FetchKey retrieves and parses the realm's RSA public key.
func (f *RealmKeyFetcher) FetchKey(ctx context.Context) (*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.realmURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build realm request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch realm info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("realm endpoint returned status %d", resp.StatusCode)
	}

	var info realmInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode realm info: %w", err)
	}
	if info.PublicKey == "" {
		return nil, fmt.Errorf("realm info has no public key")
	}

	pem := fmt.Sprintf("-----BEGIN PUBLIC KEY-----\n%s\n-----END PUBLIC KEY-----", info.PublicKey)
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("failed to parse realm public key: %w", err)
	}

	return key, nil
}
