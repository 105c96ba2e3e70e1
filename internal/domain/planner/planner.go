// Package planner implements C10, the orchestrator: the end-to-end
// search_routes handler (candidate acquisition -> expansion -> building ->
// validation -> caching), plus the "replace_route N" and "delete_cache"
// paths, and replace_full_route (named under C9 in spec.md §4.9 but housed
// here — see substitution package doc comment for why).
package planner

import (
	"context"
	"strconv"
	"sync"
	"time"

	"routeplanner/internal/domain/apperr"
	"routeplanner/internal/domain/arrival"
	"routeplanner/internal/domain/expand"
	"routeplanner/internal/domain/model"
	"routeplanner/internal/domain/repository"
	"routeplanner/internal/domain/routebuilder"
	"routeplanner/internal/domain/semantic"
	"routeplanner/internal/domain/spatial"
	"routeplanner/internal/domain/usercache"
)

// Orchestrator is C10.
type Orchestrator struct {
	spatialSrc  *spatial.Source
	semanticSrc *semantic.Source
	builder     *routebuilder.Builder
	pool        *routebuilder.WorkerPool
	poiStore    repository.POIStore
	userCache   *usercache.Store
	topKDefault int
}

// Config bundles the orchestrator's collaborators, all process-wide
// singletons per §5's shared-resource policy.
type Config struct {
	SpatialSource  *spatial.Source
	SemanticSource *semantic.Source
	Builder        *routebuilder.Builder
	Pool           *routebuilder.WorkerPool
	POIStore       repository.POIStore
	Cache          repository.Cache
	UserCacheTTL   time.Duration
}

func New(cfg Config) *Orchestrator {
	return &Orchestrator{
		spatialSrc:  cfg.SpatialSource,
		semanticSrc: cfg.SemanticSource,
		builder:     cfg.Builder,
		pool:        cfg.Pool,
		poiStore:    cfg.POIStore,
		userCache:   usercache.NewStore(cfg.Cache, cfg.UserCacheTTL),
		topKDefault: 20,
	}
}

// SearchRoutes implements the search_routes inbound operation (§6).
func (o *Orchestrator) SearchRoutes(ctx context.Context, req model.SearchRoutesRequest) (model.SearchRoutesResponse, error) {
	start := time.Now()
	var timing model.TimingBreakdown

	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		return model.SearchRoutesResponse{}, apperr.Input("mode", err.Error())
	}
	if err := validateLatLon(req.Lat, req.Lon); err != nil {
		return model.SearchRoutesResponse{}, err
	}
	if req.TargetPlaces < 0 {
		return model.SearchRoutesResponse{}, apperr.Input("target_places", "must be >= 0")
	}
	if req.MaxRoutes <= 0 {
		req.MaxRoutes = 1
	}

	if req.DeleteCache && req.UserID != "" {
		if err := o.userCache.Delete(ctx, req.UserID); err != nil {
			return model.SearchRoutesResponse{}, apperr.Upstream("cache", err)
		}
	}

	t0 := time.Now()
	expansion := expand.Expand(req.Query, req.CustomerLike, req.CurrentTime, req.MaxTimeMinutes)
	timing.ExpansionMs = time.Since(t0).Milliseconds()

	t0 = time.Now()
	pool, err := o.acquireCandidates(ctx, req, mode, expansion)
	timing.CandidateAcquisitionMs = time.Since(t0).Milliseconds()
	if err != nil {
		return model.SearchRoutesResponse{}, err
	}

	var warnings []string
	if len(pool) == 0 {
		timing.TotalMs = time.Since(start).Milliseconds()
		return model.SearchRoutesResponse{Routes: nil, TimingBreakdown: timing, Warnings: []string{"no candidates found for this query and location"}}, nil
	}

	buildReq := routebuilder.Request{
		User:        model.LatLng{Lat: req.Lat, Lng: req.Lon},
		Pool:        pool,
		Mode:        mode,
		MaxMinutes:  float64(req.MaxTimeMinutes),
		TargetStops: req.TargetPlaces,
		MaxRoutes:   req.MaxRoutes,
		CurrentTime: req.CurrentTime,
		MealAnchor:  expansion.MealAnchor,
	}

	t0 = time.Now()
	out := o.runBuild(buildReq)
	timing.BuildMs = time.Since(t0).Milliseconds()
	warnings = append(warnings, out.Warnings...)

	poisByID := make(map[string]model.POI, len(pool))
	for _, p := range pool {
		poisByID[p.ID] = p
	}

	t0 = time.Now()
	arrival.ValidateAll(out.Routes, poisByID, req.CurrentTime)
	timing.ValidationMs = time.Since(t0).Milliseconds()

	if req.UserID != "" {
		if err := o.writeCache(ctx, req.UserID, mode, out.Routes, pool, req.ReplaceRoute); err != nil {
			return model.SearchRoutesResponse{}, apperr.Upstream("cache", err)
		}
	}

	timing.TotalMs = time.Since(start).Milliseconds()
	return model.SearchRoutesResponse{Routes: out.Routes, TimingBreakdown: timing, Warnings: warnings}, nil
}

// ReplaceFullRoute implements §4.9's replace_full_route operation: run the
// full pipeline (C5 -> C3+C4 -> C6 -> C7) with the new query, then
// overwrite the specified route_id in the user's entry; every other cached
// route is left untouched (§4.10 names this a C10 responsibility; see the
// substitution package doc comment for why it's housed here instead).
func (o *Orchestrator) ReplaceFullRoute(ctx context.Context, req model.ReplaceFullRouteRequest) (model.ReplaceFullRouteResponse, error) {
	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		return model.ReplaceFullRouteResponse{}, apperr.Input("mode", err.Error())
	}
	if err := validateLatLon(req.UserLocation.Lat, req.UserLocation.Lng); err != nil {
		return model.ReplaceFullRouteResponse{}, err
	}

	entry, ok, err := o.userCache.Get(ctx, req.UserID)
	if err != nil {
		return model.ReplaceFullRouteResponse{}, apperr.Upstream("cache", err)
	}
	if !ok {
		return model.ReplaceFullRouteResponse{}, apperr.CacheMiss("user_entry", req.UserID)
	}
	if _, hasRoute := entry.Routes[req.RouteID]; !hasRoute {
		return model.ReplaceFullRouteResponse{}, apperr.CacheMiss("route_id", req.RouteID)
	}

	expansion := expand.Expand(req.NewQuery, false, req.CurrentTime, req.MaxTimeMinutes)

	searchReq := model.SearchRoutesRequest{
		Lat:            req.UserLocation.Lat,
		Lon:            req.UserLocation.Lng,
		Mode:           req.Mode,
		Query:          req.NewQuery,
		CurrentTime:    req.CurrentTime,
		MaxTimeMinutes: req.MaxTimeMinutes,
		TargetPlaces:   req.TargetPlaces,
		MaxRoutes:      1,
	}
	pool, err := o.acquireCandidates(ctx, searchReq, mode, expansion)
	if err != nil {
		return model.ReplaceFullRouteResponse{}, err
	}
	if len(pool) == 0 {
		return model.ReplaceFullRouteResponse{}, apperr.Exhausted("candidate_pool", "no candidates for new_query")
	}

	buildReq := routebuilder.Request{
		User:        req.UserLocation,
		Pool:        pool,
		Mode:        mode,
		MaxMinutes:  float64(req.MaxTimeMinutes),
		TargetStops: req.TargetPlaces,
		MaxRoutes:   1,
		CurrentTime: req.CurrentTime,
		MealAnchor:  expansion.MealAnchor,
	}
	out := o.runBuild(buildReq)
	if len(out.Routes) == 0 {
		return model.ReplaceFullRouteResponse{}, apperr.Exhausted("route_builder", "no route could be built from new_query")
	}
	newRoute := out.Routes[0]
	if id, err := strconv.Atoi(req.RouteID); err == nil {
		newRoute.ID = id
	}

	poisByID := make(map[string]model.POI, len(pool))
	for _, p := range pool {
		poisByID[p.ID] = p
	}
	arrival.Validate(&newRoute, poisByID, req.CurrentTime)

	usercache.SetRoute(entry, req.RouteID, routeMembers(newRoute), pool)
	if err := o.userCache.Save(ctx, entry); err != nil {
		return model.ReplaceFullRouteResponse{}, apperr.Upstream("cache", err)
	}

	return model.ReplaceFullRouteResponse{Route: newRoute}, nil
}

// runBuild picks the fixed-N or duration-mode entry point (§4.6.10) and
// offloads it to the CPU-bound worker pool (§5's suspension point 6).
func (o *Orchestrator) runBuild(req routebuilder.Request) routebuilder.Output {
	if req.TargetStops <= 0 {
		return o.pool.Submit(func() routebuilder.Output { return o.builder.BuildUntilBudget(req) })
	}
	return o.pool.Submit(func() routebuilder.Output { return o.builder.Build(req) })
}

// acquireCandidates runs C3 and C4 concurrently and unions their hits,
// deduplicated by POI id (§4.6's Inputs paragraph resolves the data-flow
// summary's looser "intersection" wording in favor of this precise
// definition — see DESIGN.md).
func (o *Orchestrator) acquireCandidates(ctx context.Context, req model.SearchRoutesRequest, mode model.TransportMode, expansion expand.Result) ([]model.POI, error) {
	var wg sync.WaitGroup
	var spatialRes spatial.Result
	var spatialErr error
	var semanticRes []model.POI
	var semanticErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		var windowStart, windowEnd *time.Time
		if req.CurrentTime != nil {
			end := req.CurrentTime.Add(time.Duration(req.MaxTimeMinutes) * time.Minute)
			windowStart, windowEnd = req.CurrentTime, &end
		}
		spatialRes, spatialErr = o.spatialSrc.Find(ctx, req.Lat, req.Lon, mode, windowStart, windowEnd)
	}()
	go func() {
		defer wg.Done()
		topK := req.TopKSemantic
		if topK <= 0 {
			topK = o.topKDefault
		}
		semanticRes, semanticErr = o.searchCategories(ctx, categoryQueries(expansion.Categories, req.Query), topK)
	}()
	wg.Wait()

	if spatialErr != nil {
		return nil, apperr.Upstream("spatial_source", spatialErr)
	}
	if semanticErr != nil {
		return nil, apperr.Upstream("semantic_source", semanticErr)
	}

	seen := make(map[string]bool, len(spatialRes.POIs)+len(semanticRes))
	union := make([]model.POI, 0, len(spatialRes.POIs)+len(semanticRes))
	for _, p := range spatialRes.POIs {
		if !seen[p.ID] {
			seen[p.ID] = true
			union = append(union, p)
		}
	}
	for _, p := range semanticRes {
		if !seen[p.ID] {
			seen[p.ID] = true
			union = append(union, p)
		} else {
			// already present from the spatial pass; carry the semantic
			// score over since spatial hits default to similarity 0.
			for i := range union {
				if union[i].ID == p.ID {
					union[i].Similarity = p.Similarity
					break
				}
			}
		}
	}

	return union, nil
}

// categoryQueries returns one search string per category C5 expanded the
// query into (food-alias split, customer-like culture injection, meal-anchor
// restaurant injection), falling back to the raw query when expansion
// produced no categories at all (e.g. an empty query string).
func categoryQueries(categories []model.Category, rawQuery string) []string {
	if len(categories) == 0 {
		return []string{rawQuery}
	}
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

// searchCategories runs one semantic search per expanded category and unions
// the hits by POI id, grounded on original_source's
// search_multi_queries_and_find_locations, which embeds and searches each
// expanded category separately rather than the raw joined query string.
func (o *Orchestrator) searchCategories(ctx context.Context, queries []string, topK int) ([]model.POI, error) {
	type result struct {
		pois []model.POI
		err  error
	}
	results := make([]result, len(queries))
	var wg sync.WaitGroup
	wg.Add(len(queries))
	for i, q := range queries {
		go func(i int, q string) {
			defer wg.Done()
			pois, err := o.semanticSrc.Find(ctx, q, topK, nil)
			results[i] = result{pois: pois, err: err}
		}(i, q)
	}
	wg.Wait()

	seen := make(map[string]bool)
	out := make([]model.POI, 0, topK*len(queries))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		for _, p := range r.pois {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// writeCache implements §4.10's "replace_route N bounds memory" path: when
// replaceRouteID is set, only the single built route is installed under
// that id in the existing entry (discarding whatever was there before);
// otherwise the full set of newly built routes replaces the entry wholesale.
func (o *Orchestrator) writeCache(ctx context.Context, userID string, mode model.TransportMode, routes []model.Route, pool []model.POI, replaceRouteID int) error {
	if replaceRouteID > 0 {
		entry, ok, err := o.userCache.Get(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			entry = model.NewUserCacheEntry(userID, mode, o.userCache.TTL())
		}
		if len(routes) > 0 {
			members := routeMembers(routes[0])
			usercache.SetRoute(entry, usercache.RouteIDKey(replaceRouteID), members, pool)
			if replaceRouteID >= entry.NextRouteID {
				entry.NextRouteID = replaceRouteID + 1
			}
		}
		return o.userCache.Save(ctx, entry)
	}

	entry := usercache.BuildEntry(userID, mode, routes, pool, o.userCache.TTL())
	return o.userCache.Save(ctx, entry)
}

func routeMembers(r model.Route) []model.RouteMember {
	members := make([]model.RouteMember, 0, len(r.Stops))
	for _, s := range r.Stops {
		members = append(members, model.RouteMember{POIID: s.POIID, Category: s.Category})
	}
	return members
}

func validateLatLon(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return apperr.Input("lat", "must be in [-90, 90]")
	}
	if lon < -180 || lon > 180 {
		return apperr.Input("lon", "must be in [-180, 180]")
	}
	return nil
}
