package usercache

import (
	"strconv"
	"time"

	"routeplanner/internal/domain/model"
)

// BuildEntry assembles a fresh per-user cache entry from a set of newly
// built routes plus the full candidate pool they were drawn from. The
// available-alternatives set per category is the pool's POIs of that
// category minus every POI already placed in a route, satisfying
// invariant (i) in §3.
func BuildEntry(userID string, mode model.TransportMode, routes []model.Route, pool []model.POI, ttl time.Duration) *model.UserCacheEntry {
	entry := model.NewUserCacheEntry(userID, mode, ttl)
	for _, r := range routes {
		members := make([]model.RouteMember, 0, len(r.Stops))
		for _, s := range r.Stops {
			members = append(members, model.RouteMember{POIID: s.POIID, Category: s.Category})
		}
		entry.Routes[RouteIDKey(r.ID)] = members
	}
	if n := maxRouteID(routes); n >= entry.NextRouteID {
		entry.NextRouteID = n + 1
	}

	inRoute := entry.AllMemberIDs()
	for _, p := range pool {
		if inRoute[p.ID] {
			continue
		}
		entry.AvailableSet(p.Category)[p.ID] = true
	}
	return entry
}

// SetRoute installs/overwrites one route's member list under routeID,
// refreshing the available-set bookkeeping so invariant (i) still holds:
// members of the new route are removed from their category's available
// set; members of any route being replaced are returned to it (unless
// still used elsewhere or already substituted-out).
func SetRoute(entry *model.UserCacheEntry, routeID string, members []model.RouteMember, pool []model.POI) {
	old := entry.Routes[routeID]
	entry.Routes[routeID] = members

	stillUsed := entry.AllMemberIDs()
	byID := make(map[string]model.POI, len(pool))
	for _, p := range pool {
		byID[p.ID] = p
	}

	for _, m := range old {
		if stillUsed[m.POIID] {
			continue
		}
		if entry.SubstitutedSet(m.Category)[m.POIID] {
			continue
		}
		if p, ok := byID[m.POIID]; ok {
			entry.AvailableSet(p.Category)[p.ID] = true
		} else {
			entry.AvailableSet(m.Category)[m.POIID] = true
		}
	}
	for _, m := range members {
		delete(entry.AvailableSet(m.Category), m.POIID)
	}
}

// DeleteRoute drops one cached route, releasing its members back to the
// available pool under the same rules as SetRoute's replacement branch,
// and removes the route id from the entry. The planner's replace_route
// path does not call it; it overwrites the route through SetRoute.
func DeleteRoute(entry *model.UserCacheEntry, routeID string, pool []model.POI) {
	SetRoute(entry, routeID, nil, pool)
	delete(entry.Routes, routeID)
}

// ReplaceStop atomically swaps oldID for newID at the same order index and
// category in a cached route, moving oldID into already_substituted and
// removing newID from available (§4.9's confirm_replace, §8 invariant).
// Returns (model.RouteMember{}, false) when routeID/oldID aren't
// found at the expected position, letting the caller signal a conflict.
func ReplaceStop(entry *model.UserCacheEntry, routeID, oldID, newID string) (model.RouteMember, bool) {
	members, ok := entry.Routes[routeID]
	if !ok {
		return model.RouteMember{}, false
	}
	for i, m := range members {
		if m.POIID != oldID {
			continue
		}
		newMember := model.RouteMember{POIID: newID, Category: m.Category}
		members[i] = newMember
		entry.Routes[routeID] = members

		entry.SubstitutedSet(m.Category)[oldID] = true
		delete(entry.AvailableSet(m.Category), oldID)
		delete(entry.AvailableSet(newMember.Category), newID)
		return newMember, true
	}
	return model.RouteMember{}, false
}

// FindStop locates a POI inside a cached route, returning its order index
// and category. Used by C9 to resolve old_poi_id before substitution.
func FindStop(entry *model.UserCacheEntry, routeID, poiID string) (index int, category model.Category, ok bool) {
	members, exists := entry.Routes[routeID]
	if !exists {
		return 0, "", false
	}
	for i, m := range members {
		if m.POIID == poiID {
			return i, m.Category, true
		}
	}
	return 0, "", false
}

// RouteIDKey stringifies a route's integer id for use as a map key, per
// §3's "route_id (stringified integer, monotonically increasing per user)".
func RouteIDKey(id int) string {
	return strconv.Itoa(id)
}

func maxRouteID(routes []model.Route) int {
	max := 0
	for _, r := range routes {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}
