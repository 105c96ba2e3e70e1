package model

import "time"

// UserCacheEntry is the single per-user cache object described in §3.
// Exactly one entry exists per user; overwrites replace it atomically.
type UserCacheEntry struct {
	UserID             string                      `json:"user_id"`
	Mode               TransportMode               `json:"mode"`
	Routes             map[string][]RouteMember    `json:"routes"`              // route_id -> ordered (poi_id, category)
	Available          map[Category]map[string]bool `json:"available"`          // category -> available alt POI ids
	AlreadySubstituted map[Category]map[string]bool `json:"already_substituted"` // category -> swapped-out ids
	NextRouteID        int                         `json:"next_route_id"`
	ExpireAt           time.Time                   `json:"expire_at"`
}

// RouteMember is one (poi_id, category) pair tracked inside a cached route.
type RouteMember struct {
	POIID    string   `json:"poi_id"`
	Category Category `json:"category"`
}

// NewUserCacheEntry builds an empty entry with initialized maps.
func NewUserCacheEntry(userID string, mode TransportMode, ttl time.Duration) *UserCacheEntry {
	return &UserCacheEntry{
		UserID:             userID,
		Mode:               mode,
		Routes:             make(map[string][]RouteMember),
		Available:          make(map[Category]map[string]bool),
		AlreadySubstituted: make(map[Category]map[string]bool),
		NextRouteID:        1,
		ExpireAt:           time.Now().Add(ttl),
	}
}

// AllMemberIDs returns the set of POI ids present in any route, used to
// enforce cache invariant (i): any POI in a route is absent from the
// corresponding category's available set.
func (e *UserCacheEntry) AllMemberIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, members := range e.Routes {
		for _, m := range members {
			ids[m.POIID] = true
		}
	}
	return ids
}

// AvailableSet returns (creating if absent) the mutable available-id set
// for a category.
func (e *UserCacheEntry) AvailableSet(cat Category) map[string]bool {
	if e.Available[cat] == nil {
		e.Available[cat] = make(map[string]bool)
	}
	return e.Available[cat]
}

// SubstitutedSet returns (creating if absent) the already-substituted set.
func (e *UserCacheEntry) SubstitutedSet(cat Category) map[string]bool {
	if e.AlreadySubstituted[cat] == nil {
		e.AlreadySubstituted[cat] = make(map[string]bool)
	}
	return e.AlreadySubstituted[cat]
}

// CellCacheEntry is an H3 cell cache value (§3): a list of POI summaries
// for one hexagonal cell.
type CellCacheEntry struct {
	CellID string `json:"cell_id"`
	POIs   []POI  `json:"pois"`
}
