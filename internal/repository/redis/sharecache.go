package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/drawvault/workspace-api/internal/domain"
)

const (
	sharedListPrefix = "shared:"
	sharedListTTL    = 2 * time.Minute
)

// SharedListCache caches the collections shared to a user. The list is
// read on every workspace load and changes only on redeem, revoke or
// permission updates, so those paths invalidate it.
type SharedListCache struct {
	client *Client
}

// NewSharedListCache creates a new shared-collection list cache
func NewSharedListCache(client *Client) *SharedListCache {
	return &SharedListCache{client: client}
}

// Get retrieves the cached shared-collection list for a user
func (c *SharedListCache) Get(ctx context.Context, userID string) ([]domain.SharedCollection, error) {
	key := sharedListPrefix + userID

	data, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var shared []domain.SharedCollection
	if err := json.Unmarshal(data, &shared); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shared collections: %w", err)
	}

	return shared, nil
}

// Set caches the shared-collection list for a user
func (c *SharedListCache) Set(ctx context.Context, userID string, shared []domain.SharedCollection) error {
	key := sharedListPrefix + userID

	data, err := json.Marshal(shared)
	if err != nil {
		return fmt.Errorf("failed to marshal shared collections: %w", err)
	}

	return c.client.rdb.Set(ctx, key, data, sharedListTTL).Err()
}

// Invalidate drops the cached list for a user
func (c *SharedListCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.rdb.Del(ctx, sharedListPrefix+userID).Err()
}
