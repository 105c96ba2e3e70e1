// Package usercache implements C8, the per-user route cache: a
// key-value-backed store of (route_id -> ordered POI list), the pool of
// unused alternative POI ids per category, and the set of already-
// substituted ids, per spec.md §3/§4.8.
package usercache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"routeplanner/internal/domain/model"
	"routeplanner/internal/domain/repository"
)

const keyPrefix = "user:"

// DefaultTTL is the per-user cache entry's bounded lifetime (§3, §6):
// renewed on every write.
const DefaultTTL = time.Hour

// Store is C8: a key-value store keyed by user-id string, values
// serialized to the JSON shape of model.UserCacheEntry.
type Store struct {
	cache repository.Cache
	ttl   time.Duration
}

func NewStore(cache repository.Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: cache, ttl: ttl}
}

func cacheKey(userID string) string {
	return keyPrefix + userID
}

// TTL returns the bounded lifetime applied to every Save, letting callers
// stamp a freshly-constructed entry with the same value before writing it.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get reads the user's cache entry. ok is false on a cache miss.
func (s *Store) Get(ctx context.Context, userID string) (*model.UserCacheEntry, bool, error) {
	raw, ok, err := s.cache.Get(ctx, cacheKey(userID))
	if err != nil {
		return nil, false, fmt.Errorf("usercache get: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	var entry model.UserCacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("usercache decode: %w", err)
	}
	if entry.ExpireAt.Before(time.Now()) {
		return nil, false, nil
	}
	return &entry, true, nil
}

// Save writes the entry atomically, refreshing its TTL, satisfying
// invariant (iv): exactly one entry per user, overwrites replace the prior
// entry atomically (§3).
func (s *Store) Save(ctx context.Context, entry *model.UserCacheEntry) error {
	entry.ExpireAt = time.Now().Add(s.ttl)
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("usercache encode: %w", err)
	}
	if err := s.cache.Overwrite(ctx, cacheKey(entry.UserID), raw, s.ttl); err != nil {
		return fmt.Errorf("usercache save: %w", err)
	}
	return nil
}

// Delete drops the user's entry, used by the orchestrator's delete_cache
// path (§4.10).
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.cache.Delete(ctx, cacheKey(userID)); err != nil {
		return fmt.Errorf("usercache delete: %w", err)
	}
	return nil
}
