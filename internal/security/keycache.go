package security

import (
	"context"
	"crypto/rsa"
	"sync"
	"sync/atomic"
	"time"

	"github.com/drawvault/workspace-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// KeyState describes the key cache's position in its lifecycle.
type KeyState int

const (
	// KeyStateEmpty means no usable key; validation fails closed.
	KeyStateEmpty KeyState = iota
	// KeyStateFresh means the cached key is within its TTL.
	KeyStateFresh
	// KeyStateStaleFallback means the TTL elapsed and the last refresh
	// failed; the old key is served for a bounded grace window.
	KeyStateStaleFallback
)

func (s KeyState) String() string {
	switch s {
	case KeyStateFresh:
		return "fresh"
	case KeyStateStaleFallback:
		return "stale-fallback"
	default:
		return "empty"
	}
}

// KeyFetcher retrieves the IdP's current signing key.
type KeyFetcher interface {
	FetchKey(ctx context.Context) (*rsa.PublicKey, error)
}

type keySnapshot struct {
	key       *rsa.PublicKey
	fetchedAt time.Time
	stale     bool
}

// KeyCache caches the IdP signing key across requests. Reads load an
// immutable snapshot through an atomic pointer so validation never
// blocks on a refresh in progress; the refresh path itself is
// serialized by a mutex. An IdP outage keeps the last key usable for a
// grace window after its TTL, after which the cache empties and every
// validation fails with ErrKeyUnavailable until a fetch succeeds.
type KeyCache struct {
	fetcher KeyFetcher
	ttl     time.Duration
	grace   time.Duration
	now     func() time.Time

	snap atomic.Pointer[keySnapshot]
	mu   sync.Mutex
}

// NewKeyCache creates a key cache. The cache starts empty and fills
// lazily on the first validation; there is no separate warm-up step.
func NewKeyCache(fetcher KeyFetcher, ttl, grace time.Duration) *KeyCache {
	return &KeyCache{
		fetcher: fetcher,
		ttl:     ttl,
		grace:   grace,
		now:     time.Now,
	}
}

// Current returns a signing key usable right now, refreshing if the
// cached one is past its TTL. Returns domain.ErrKeyUnavailable when no
// key can be served.
func (c *KeyCache) Current(ctx context.Context) (*rsa.PublicKey, error) {
	now := c.now()
	if s := c.snap.Load(); s != nil && !s.stale && now.Before(s.fetchedAt.Add(c.ttl)) {
		return s.key, nil
	}
	return c.refresh(ctx, now)
}

func (c *KeyCache) refresh(ctx context.Context, now time.Time) (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another request may have refreshed while we waited for the lock.
	if s := c.snap.Load(); s != nil && !s.stale && now.Before(s.fetchedAt.Add(c.ttl)) {
		return s.key, nil
	}

	key, err := c.fetcher.FetchKey(ctx)
	if err == nil {
		c.snap.Store(&keySnapshot{key: key, fetchedAt: now})
		return key, nil
	}

	if s := c.snap.Load(); s != nil && now.Before(s.fetchedAt.Add(c.ttl+c.grace)) {
		if !s.stale {
			log.Warn().Err(err).Msg("signing key refresh failed, serving stale key for grace window")
			c.snap.Store(&keySnapshot{key: s.key, fetchedAt: s.fetchedAt, stale: true})
		}
		return s.key, nil
	}

	// Grace exhausted (or never had a key): fail closed.
	log.Error().Err(err).Msg("signing key unavailable, failing closed")
	c.snap.Store(nil)
	return nil, domain.ErrKeyUnavailable
}

// State reports the cache's current state.
func (c *KeyCache) State() KeyState {
	s := c.snap.Load()
	switch {
	case s == nil:
		return KeyStateEmpty
	case s.stale:
		return KeyStateStaleFallback
	default:
		return KeyStateFresh
	}
}
