// Package cache implements the §6 Cache contract (SetTTL/Get/Delete/
// Overwrite), grounded on FACorreiaa's github.com/patrickmn/go-cache usage
// (cache.New(ttl, cleanupInterval)). Used as the H3 cell cache (C3) backend
// and the default per-user route cache (C8) backend, per configuration.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"routeplanner/internal/domain/repository"
)

// MemoryCache is an in-process key-value store with per-key TTL.
type MemoryCache struct {
	c *gocache.Cache
}

// New builds a cache with defaultTTL applied when a caller writes with
// SetTTL(..., 0), and cleanupEvery controlling the expired-entry sweep
// interval.
func New(defaultTTL, cleanupEvery time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(defaultTTL, cleanupEvery)}
}

var _ repository.Cache = (*MemoryCache)(nil)

func (m *MemoryCache) SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.Set(key, value, ttlOrDefault(ttl))
	return nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	raw, ok := v.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("memory cache: unexpected value type for key %q", key)
	}
	return raw, true, nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// Overwrite is SetTTL for this backend: go-cache's Set already replaces
// any existing value and refreshes its expiry, which is exactly the
// last-write-wins/refresh-TTL semantics §3/§4.8 require.
func (m *MemoryCache) Overwrite(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.SetTTL(ctx, key, value, ttl)
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return gocache.DefaultExpiration
	}
	return ttl
}
