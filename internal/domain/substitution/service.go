// Package substitution implements C9, the substitution service:
// replace_poi (rank candidates of the same category) and confirm_replace
// (atomically mutate the cached route). replace_full_route is implemented
// in internal/domain/planner instead — spec.md §4.10 lists "full route
// replacement" as a C10 responsibility, and housing it there lets it reuse
// the orchestrator's own pipeline composition without an import cycle
// between substitution and planner (see DESIGN.md).
package substitution

import (
	"context"
	"sort"
	"time"

	"routeplanner/internal/domain/apperr"
	"routeplanner/internal/domain/geo"
	"routeplanner/internal/domain/hours"
	"routeplanner/internal/domain/model"
	"routeplanner/internal/domain/repository"
	"routeplanner/internal/domain/usercache"
)

// Service is C9.
type Service struct {
	cache repository.Cache
	store repository.POIStore
	ttl   time.Duration
}

func NewService(cache repository.Cache, store repository.POIStore, ttl time.Duration) *Service {
	return &Service{cache: cache, store: store, ttl: ttl}
}

func (s *Service) userStore() *usercache.Store {
	return usercache.NewStore(s.cache, s.ttl)
}

// ReplacePOI implements §4.9's replace_poi operation.
func (s *Service) ReplacePOI(ctx context.Context, req model.ReplacePOIRequest) (model.ReplacePOIResponse, error) {
	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		return model.ReplacePOIResponse{}, apperr.Input("mode", err.Error())
	}
	if req.TopK <= 0 {
		return model.ReplacePOIResponse{}, apperr.Input("top_k", "must be > 0")
	}

	us := s.userStore()
	entry, ok, err := us.Get(ctx, req.UserID)
	if err != nil {
		return model.ReplacePOIResponse{}, apperr.Upstream("cache", err)
	}
	if !ok {
		return model.ReplacePOIResponse{}, apperr.CacheMiss("user_entry", req.UserID)
	}

	members, hasRoute := entry.Routes[req.RouteID]
	if !hasRoute {
		return model.ReplacePOIResponse{}, apperr.CacheMiss("route_id", req.RouteID)
	}
	index, category, found := usercache.FindStop(entry, req.RouteID, req.OldPOIID)
	if !found {
		return model.ReplacePOIResponse{}, apperr.CacheMiss("old_poi_id", req.OldPOIID)
	}

	// Step 2: substitution pool = available[category] - (substituted[category] ∪ every id in any route).
	inAnyRoute := entry.AllMemberIDs()
	substituted := entry.SubstitutedSet(category)
	candidateIDs := make([]string, 0, len(entry.AvailableSet(category)))
	for id := range entry.AvailableSet(category) {
		if substituted[id] || inAnyRoute[id] {
			continue
		}
		candidateIDs = append(candidateIDs, id)
	}
	if len(candidateIDs) == 0 {
		return model.ReplacePOIResponse{}, apperr.Exhausted("available_pool", string(category))
	}

	// Step 3: hydrate.
	candidates, err := s.store.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return model.ReplacePOIResponse{}, apperr.Upstream("poi_store", err)
	}

	// Hydrate the route's own members so we can compute incident-leg
	// deltas and the reference distance for scoring.
	routeIDs := make([]string, 0, len(members))
	for _, m := range members {
		routeIDs = append(routeIDs, m.POIID)
	}
	routePOIs, err := s.store.GetByIDs(ctx, routeIDs)
	if err != nil {
		return model.ReplacePOIResponse{}, apperr.Upstream("poi_store", err)
	}
	routeByID := make(map[string]model.POI, len(routePOIs))
	for _, p := range routePOIs {
		routeByID[p.ID] = p
	}

	old, hasOld := routeByID[req.OldPOIID]
	var prev, next *model.POI
	if index > 0 {
		if p, ok := routeByID[members[index-1].POIID]; ok {
			prev = &p
		}
	}
	if index < len(members)-1 {
		if p, ok := routeByID[members[index+1].POIID]; ok {
			next = &p
		}
	}

	// Step 3 continued: open-at-arrival filter, approximated with
	// current_time (§4.9.3's cheaper fallback — walking the whole route
	// per candidate is the exact form but too costly to run once per
	// candidate in this path).
	if req.CurrentTime != nil {
		filtered := candidates[:0:0]
		for _, c := range candidates {
			if hours.IsOpenAt(c.Hours, *req.CurrentTime) {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) == 0 {
			return model.ReplacePOIResponse{}, apperr.Exhausted("open_at_arrival", string(category))
		}
		candidates = filtered
	}

	maxDist := maxDistanceToReference(candidates, prev, next)

	scored := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		distRef := distanceToReference(c, prev, next)
		normDist := 0.0
		if maxDist > 0 {
			normDist = geo.Clamp01(distRef / maxDist)
		}
		score := 0.6*c.RatingOrDefault() + 0.4*(1-normDist)

		cand := model.Candidate{POI: c, Score: score}
		if hasOld {
			cand.OldDistanceDeltaKm = 0
			if prev != nil {
				cand.OldDistanceDeltaKm += geo.HaversineKm(prev.Location, old.Location)
				cand.NewDistanceDeltaKm += geo.HaversineKm(prev.Location, c.Location)
				cand.OldTimeDeltaMin += mode.TravelTimeMinutes(geo.HaversineKm(prev.Location, old.Location))
				cand.NewTimeDeltaMin += mode.TravelTimeMinutes(geo.HaversineKm(prev.Location, c.Location))
			}
			if next != nil {
				cand.OldDistanceDeltaKm += geo.HaversineKm(old.Location, next.Location)
				cand.NewDistanceDeltaKm += geo.HaversineKm(c.Location, next.Location)
				cand.OldTimeDeltaMin += mode.TravelTimeMinutes(geo.HaversineKm(old.Location, next.Location))
				cand.NewTimeDeltaMin += mode.TravelTimeMinutes(geo.HaversineKm(c.Location, next.Location))
			}
		}
		scored = append(scored, cand)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].POI.ID < scored[j].POI.ID
	})
	if len(scored) > req.TopK {
		scored = scored[:req.TopK]
	}

	return model.ReplacePOIResponse{Candidates: scored}, nil
}

// ConfirmReplace implements §4.9's confirm_replace operation.
func (s *Service) ConfirmReplace(ctx context.Context, req model.ConfirmReplaceRequest) (model.ConfirmReplaceResponse, error) {
	us := s.userStore()
	entry, ok, err := us.Get(ctx, req.UserID)
	if err != nil {
		return model.ConfirmReplaceResponse{}, apperr.Upstream("cache", err)
	}
	if !ok {
		return model.ConfirmReplaceResponse{}, apperr.CacheMiss("user_entry", req.UserID)
	}
	if _, hasRoute := entry.Routes[req.RouteID]; !hasRoute {
		return model.ConfirmReplaceResponse{}, apperr.CacheMiss("route_id", req.RouteID)
	}

	if _, swapped := usercache.ReplaceStop(entry, req.RouteID, req.OldPOIID, req.NewPOIID); !swapped {
		return model.ConfirmReplaceResponse{}, apperr.Conflict(req.RouteID, req.OldPOIID)
	}

	if err := us.Save(ctx, entry); err != nil {
		return model.ConfirmReplaceResponse{}, apperr.Upstream("cache", err)
	}

	return model.ConfirmReplaceResponse{
		Status:       "ok",
		UpdatedRoute: entry.Routes[req.RouteID],
	}, nil
}

// distanceToReference is the mean of distance-from-prev and
// distance-to-next for candidate c, per §4.9.4.
func distanceToReference(c model.POI, prev, next *model.POI) float64 {
	var sum, n float64
	if prev != nil {
		sum += geo.HaversineKm(prev.Location, c.Location)
		n++
	}
	if next != nil {
		sum += geo.HaversineKm(c.Location, next.Location)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

func maxDistanceToReference(candidates []model.POI, prev, next *model.POI) float64 {
	max := 0.0
	for _, c := range candidates {
		if d := distanceToReference(c, prev, next); d > max {
			max = d
		}
	}
	return max
}
