package security

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/drawvault/workspace-api/internal/domain"
)

type stubFetcher struct {
	mu    sync.Mutex
	key   *rsa.PublicKey
	err   error
	calls int
}

func (f *stubFetcher) FetchKey(ctx context.Context) (*rsa.PublicKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.key, f.err
}

func (f *stubFetcher) set(key *rsa.PublicKey, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.key = key
	f.err = err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testKey(t *testing.T) *rsa.PublicKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return &priv.PublicKey
}

func newTestCache(fetcher *stubFetcher, ttl, grace time.Duration) (*KeyCache, *time.Time) {
	cache := NewKeyCache(fetcher, ttl, grace)
	now := time.Now()
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestKeyCache_StartsEmptyAndFillsLazily(t *testing.T) {
	key := testKey(t)
	fetcher := &stubFetcher{key: key}
	cache, _ := newTestCache(fetcher, time.Hour, 5*time.Minute)

	if cache.State() != KeyStateEmpty {
		t.Fatalf("expected empty state, got %v", cache.State())
	}

	got, err := cache.Current(context.Background())
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got != key {
		t.Error("expected fetched key")
	}
	if cache.State() != KeyStateFresh {
		t.Errorf("expected fresh state, got %v", cache.State())
	}
}

func TestKeyCache_ServesCachedKeyWithinTTL(t *testing.T) {
	fetcher := &stubFetcher{key: testKey(t)}
	cache, now := newTestCache(fetcher, time.Hour, 5*time.Minute)

	ctx := context.Background()
	if _, err := cache.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	*now = now.Add(59 * time.Minute)
	for i := 0; i < 10; i++ {
		if _, err := cache.Current(ctx); err != nil {
			t.Fatalf("Current() error = %v", err)
		}
	}

	if got := fetcher.callCount(); got != 1 {
		t.Errorf("expected 1 fetch, got %d", got)
	}
}

func TestKeyCache_RotatesAfterTTL(t *testing.T) {
	oldKey := testKey(t)
	fetcher := &stubFetcher{key: oldKey}
	cache, now := newTestCache(fetcher, time.Hour, 5*time.Minute)

	ctx := context.Background()
	if _, err := cache.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	newKey := testKey(t)
	fetcher.set(newKey, nil)
	*now = now.Add(time.Hour + time.Second)

	got, err := cache.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got != newKey {
		t.Error("expected rotated key after TTL")
	}
	if cache.State() != KeyStateFresh {
		t.Errorf("expected fresh state after rotation, got %v", cache.State())
	}
}

func TestKeyCache_StaleFallbackWithinGrace(t *testing.T) {
	key := testKey(t)
	fetcher := &stubFetcher{key: key}
	cache, now := newTestCache(fetcher, time.Hour, 5*time.Minute)

	ctx := context.Background()
	if _, err := cache.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	fetcher.set(nil, errors.New("idp unreachable"))
	*now = now.Add(time.Hour + time.Minute)

	got, err := cache.Current(ctx)
	if err != nil {
		t.Fatalf("Current() during grace error = %v", err)
	}
	if got != key {
		t.Error("expected stale key during grace window")
	}
	if cache.State() != KeyStateStaleFallback {
		t.Errorf("expected stale-fallback state, got %v", cache.State())
	}
}

func TestKeyCache_RecoversFromStaleFallback(t *testing.T) {
	fetcher := &stubFetcher{key: testKey(t)}
	cache, now := newTestCache(fetcher, time.Hour, 5*time.Minute)

	ctx := context.Background()
	if _, err := cache.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	fetcher.set(nil, errors.New("idp unreachable"))
	*now = now.Add(time.Hour + time.Minute)
	if _, err := cache.Current(ctx); err != nil {
		t.Fatalf("Current() during grace error = %v", err)
	}

	recovered := testKey(t)
	fetcher.set(recovered, nil)

	got, err := cache.Current(ctx)
	if err != nil {
		t.Fatalf("Current() after recovery error = %v", err)
	}
	if got != recovered {
		t.Error("expected recovered key")
	}
	if cache.State() != KeyStateFresh {
		t.Errorf("expected fresh state after recovery, got %v", cache.State())
	}
}

func TestKeyCache_FailsClosedAfterGrace(t *testing.T) {
	fetcher := &stubFetcher{key: testKey(t)}
	cache, now := newTestCache(fetcher, time.Hour, 5*time.Minute)

	ctx := context.Background()
	if _, err := cache.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	fetcher.set(nil, errors.New("idp unreachable"))
	*now = now.Add(time.Hour + 6*time.Minute)

	if _, err := cache.Current(ctx); !errors.Is(err, domain.ErrKeyUnavailable) {
		t.Errorf("expected ErrKeyUnavailable, got %v", err)
	}
	if cache.State() != KeyStateEmpty {
		t.Errorf("expected empty state after grace exhausted, got %v", cache.State())
	}
}

func TestKeyCache_FailsClosedWhenNeverFetched(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("idp unreachable")}
	cache, _ := newTestCache(fetcher, time.Hour, 5*time.Minute)

	if _, err := cache.Current(context.Background()); !errors.Is(err, domain.ErrKeyUnavailable) {
		t.Errorf("expected ErrKeyUnavailable, got %v", err)
	}
}

func TestKeyCache_ConcurrentReadsSingleFetch(t *testing.T) {
	key := testKey(t)
	fetcher := &stubFetcher{key: key}
	cache, _ := newTestCache(fetcher, time.Hour, 5*time.Minute)

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.Current(ctx)
			if err != nil {
				t.Errorf("Current() error = %v", err)
				return
			}
			if got != key {
				t.Error("expected cached key")
			}
		}()
	}
	wg.Wait()

	// The refresh path is serialized; every call after the first hit
	// either the fast path or the recheck under the lock.
	if got := fetcher.callCount(); got != 1 {
		t.Errorf("expected 1 fetch, got %d", got)
	}
}
