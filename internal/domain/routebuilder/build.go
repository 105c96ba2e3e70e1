package routebuilder

import (
	"time"

	"routeplanner/internal/domain/geo"
	"routeplanner/internal/domain/model"
)

// Builder is C6, the route-construction kernel. A Builder is immutable
// after construction and safe to call concurrently from the worker pool.
type Builder struct {
	cfg Config
}

func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Request bundles the inputs to a planning pass (§4.6, opening paragraph).
type Request struct {
	User          model.LatLng
	Pool          []model.POI
	Mode          model.TransportMode
	MaxMinutes    float64
	TargetStops   int  // N; 0 means "duration mode" (BuildUntilBudget semantics)
	MaxRoutes     int  // R
	CurrentTime   *time.Time
	MealAnchor    bool
}

// Output is the up-to-R routes produced by one planning pass, plus
// construction warnings (fallback notices, not errors per §7).
type Output struct {
	Routes   []model.Route
	Warnings []string
}

// Build implements §4.6.6's per-route loop for a fixed target stop count N,
// run up to R times, disjoint in POIs where the pool allows it.
func (b *Builder) Build(req Request) Output {
	return b.run(req, false)
}

// BuildUntilBudget implements the duration-mode entry point (§4.6.10 in
// SPEC_FULL.md): grow the route until remaining time drops below 30% of
// the budget, ignoring TargetStops.
func (b *Builder) BuildUntilBudget(req Request) Output {
	return b.run(req, true)
}

const durationModeThreshold = 0.30

func (b *Builder) run(req Request, durationMode bool) Output {
	out := Output{}
	if req.MaxMinutes <= 0 || len(req.Pool) == 0 || req.MaxRoutes <= 0 {
		return out
	}

	radiusKm := req.Mode.Profile().RadiusKm
	workingPool := append([]model.POI(nil), req.Pool...)
	globalExcluded := make(map[string]bool)

	for r := 1; r <= req.MaxRoutes; r++ {
		available := excludeIDs(workingPool, globalExcluded)
		if len(available) == 0 {
			// Pool exhausted: policy is to prefer disjointness but allow
			// repetition as a last resort to reach R routes (§4.6.6 step 6).
			available = append([]model.POI(nil), req.Pool...)
			out.Warnings = append(out.Warnings, "candidate pool exhausted; repeating earlier selections to reach max_routes")
		}

		route, used, warnings := b.buildOneRoute(req, available, radiusKm, durationMode)
		out.Warnings = append(out.Warnings, warnings...)
		if len(route.Stops) == 0 {
			continue
		}
		route.ID = r
		out.Routes = append(out.Routes, route)
		for id := range used {
			globalExcluded[id] = true
		}
	}
	return out
}

func excludeIDs(pool []model.POI, excluded map[string]bool) []model.POI {
	out := make([]model.POI, 0, len(pool))
	for _, p := range pool {
		if !excluded[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// buildOneRoute runs the full per-route loop (§4.6.6 steps 1-5) against one
// candidate pool, returning the built route, the set of POI ids it used,
// and any construction warnings.
func (b *Builder) buildOneRoute(req Request, pool []model.POI, radiusKm float64, durationMode bool) (model.Route, map[string]bool, []string) {
	var warnings []string
	visited := make(map[string]bool)
	byID := make(map[string]model.POI, len(pool))
	for _, p := range pool {
		byID[p.ID] = p
	}

	targetStops := req.TargetStops
	singleStop := !durationMode && targetStops == 1

	// Step 1: first stop.
	first, ok := b.pickFirst(pool, req.User, radiusKm)
	if !ok {
		return model.Route{}, visited, warnings
	}
	visited[first.ID] = true

	matrix := BuildMatrix(req.User, pool)
	indexOf := make(map[string]int, len(pool))
	for i, p := range pool {
		indexOf[p.ID] = i + 1
	}

	route := model.Route{IsValidTiming: true}
	var cursor time.Time
	hasClock := req.CurrentTime != nil
	if hasClock {
		cursor = *req.CurrentTime
	}

	firstTravel := matrix.TravelTimeMinutes(0, indexOf[first.ID], req.Mode)
	firstStay := stayMinutesFor(first.Category)
	route.Stops = append(route.Stops, model.Stop{
		POIID: first.ID, Name: first.Name, Category: first.Category,
		OrderIndex: 0, TravelFromPrevMin: firstTravel, StayMinutes: firstStay,
	})
	route.TravelMinutes += firstTravel
	route.StayMinutes += firstStay
	route.TotalScore += b.scoreCandidate(first, kindFirst, req.User, radiusKm, 0, false, req.CurrentTime != nil)

	if hasClock {
		cursor = cursor.Add(time.Duration(firstTravel * float64(time.Minute)))
	}

	currentPos := indexOf[first.ID]
	q := first.Location
	prevBearing := geo.Bearing(req.User, first.Location)
	dirState := directionState{}
	mealInserted := false

	if hasClock {
		cursor = cursor.Add(time.Duration(firstStay * float64(time.Minute)))
	}

	middleCount := 0
	maxMiddleIterations := len(pool) // duration-mode iteration cap

	for {
		if !singleStop {
			if durationMode {
				remaining := req.MaxMinutes - (route.TravelMinutes + route.StayMinutes)
				if remaining < req.MaxMinutes*durationModeThreshold || middleCount >= maxMiddleIterations {
					break
				}
			} else if middleCount >= targetStops-2 {
				break
			}
		} else {
			break
		}

		candidates := unvisitedOf(pool, visited)
		if len(candidates) == 0 {
			break
		}

		// Meal-anchor override (§4.6.4 exception; single code path per
		// SPEC_FULL.md §4.6.8).
		forcedRestaurant := false
		if req.MealAnchor && hasClock && !mealInserted {
			if arrivalWouldOverlapMeal(cursor, matrix, currentPos, candidates, indexOf, req.Mode) {
				restaurantOnly := filterCategory(candidates, model.CategoryRestaurant)
				if len(restaurantOnly) > 0 {
					candidates = restaurantOnly
					forcedRestaurant = true
				}
			}
		}

		if !forcedRestaurant {
			lastCategory := route.Stops[len(route.Stops)-1].Category
			interleaved := excludeCategoryGroup(candidates, lastCategory)
			if len(interleaved) > 0 {
				candidates = interleaved
			}
			// else: other-category pool empty, fall back to full pool
			// (interleaving exception in §4.6.4).

			if b.cfg.CircularRouting {
				dir := dirState.direction
				if !dirState.locked {
					dir = b.resolveDirection(candidates, q, prevBearing)
				}
				coned := filterByCone(candidates, q, prevBearing, dir, b.cfg.AngleTolerance)
				if len(coned) > 0 {
					candidates = coned
					if !dirState.locked {
						dirState.locked = true
						dirState.direction = dir
					}
				} else {
					warnings = append(warnings, "no candidate in the locked turn cone; used unconstrained pool for one step")
				}
			}
		}

		best, bestScore, ok := b.pickBest(candidates, kindMiddle, q, radiusKm, prevBearing, true, b.cfg.CircularRouting)
		if !ok {
			break
		}

		travel := matrix.TravelTimeMinutes(currentPos, indexOf[best.ID], req.Mode)
		stay := stayMinutesFor(best.Category)
		estReturn := matrix.TravelTimeMinutes(indexOf[best.ID], 0, req.Mode)
		if route.TravelMinutes+travel+route.StayMinutes+stay+estReturn > req.MaxMinutes {
			break
		}

		visited[best.ID] = true
		route.Stops = append(route.Stops, model.Stop{
			POIID: best.ID, Name: best.Name, Category: best.Category,
			OrderIndex: len(route.Stops), TravelFromPrevMin: travel, StayMinutes: stay,
			CombinedScore: bestScore, MealAnchored: forcedRestaurant,
		})
		route.TravelMinutes += travel
		route.StayMinutes += stay
		route.TotalScore += bestScore
		if forcedRestaurant {
			mealInserted = true
		}

		if hasClock {
			cursor = cursor.Add(time.Duration(travel * float64(time.Minute)))
			cursor = cursor.Add(time.Duration(stay * float64(time.Minute)))
		}
		prevBearing = geo.Bearing(q, best.Location)
		q = best.Location
		currentPos = indexOf[best.ID]
		middleCount++
	}

	// Step 3: closing stop, skipped for a single-stop route (§8 boundary).
	if !singleStop {
		closingReq := req
		closingReq.MaxMinutes = req.MaxMinutes - (route.TravelMinutes + route.StayMinutes)
		closing, travel, stay, score, ok := b.pickClosing(pool, visited, closingReq, matrix, currentPos, radiusKm)
		if ok {
			visited[closing.ID] = true
			route.Stops = append(route.Stops, model.Stop{
				POIID: closing.ID, Name: closing.Name, Category: closing.Category,
				OrderIndex: len(route.Stops), TravelFromPrevMin: travel, StayMinutes: stay,
				CombinedScore: score,
			})
			route.TravelMinutes += travel
			route.StayMinutes += stay
			route.TotalScore += score
			currentPos = indexOf[closing.ID]
		}
	}

	returnLeg := matrix.TravelTimeMinutes(currentPos, 0, req.Mode)
	route.TravelMinutes += returnLeg
	route.Recompute()

	if route.TotalMinutes > req.MaxMinutes {
		warnings = append(warnings, "route truncated to fit the time budget")
	}

	return route, visited, warnings
}

func (b *Builder) pickFirst(pool []model.POI, user model.LatLng, radiusKm float64) (model.POI, bool) {
	var best model.POI
	var bestScore float64
	found := false
	for _, c := range pool {
		score := b.scoreCandidate(c, kindFirst, user, radiusKm, 0, false, false)
		if !found || betterCandidate(score, c, bestScore, best) {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}

func (b *Builder) pickBest(candidates []model.POI, kind stopKind, q model.LatLng, radiusKm float64, prevBearing float64, hasPrevBearing bool, circular bool) (model.POI, float64, bool) {
	var best model.POI
	var bestScore float64
	found := false
	for _, c := range candidates {
		score := b.scoreCandidate(c, kind, q, radiusKm, prevBearing, hasPrevBearing, circular)
		if !found || betterCandidate(score, c, bestScore, best) {
			best, bestScore, found = c, score, true
		}
	}
	return best, bestScore, found
}

func (b *Builder) resolveDirection(candidates []model.POI, q model.LatLng, prevBearing float64) Direction {
	if b.cfg.DirectionPref != DirectionAuto {
		return b.cfg.DirectionPref
	}
	return resolveAutoDirection(candidates, q, prevBearing, b.cfg.AngleTolerance)
}

// pickClosing implements §4.6.5: try increasing radius thresholds until a
// qualifying candidate is found, scored under the "last" weight bucket.
func (b *Builder) pickClosing(pool []model.POI, visited map[string]bool, req Request, matrix Matrix, currentPos int, radiusKm float64) (model.POI, float64, float64, float64, bool) {
	indexOf := make(map[string]int, len(pool))
	for i, p := range pool {
		indexOf[p.ID] = i + 1
	}

	for _, rho := range b.cfg.ClosingRadiusThresholds {
		threshold := rho * radiusKm
		var best model.POI
		var bestScore float64
		var bestTravel, bestStay float64
		found := false

		for _, c := range unvisitedOf(pool, visited) {
			distToUser := matrix.DistancesKm[indexOf[c.ID]][0]
			if distToUser > threshold {
				continue
			}
			travel := matrix.TravelTimeMinutes(currentPos, indexOf[c.ID], req.Mode)
			stay := stayMinutesFor(c.Category)
			returnTime := matrix.TravelTimeMinutes(indexOf[c.ID], 0, req.Mode)
			if travel+stay+returnTime > req.MaxMinutes {
				continue
			}
			score := b.scoreCandidate(c, kindLast, req.User, radiusKm, 0, false, b.cfg.CircularRouting)
			if !found || betterCandidate(score, c, bestScore, best) {
				best, bestScore, bestTravel, bestStay, found = c, score, travel, stay, true
			}
		}
		if found {
			return best, bestTravel, bestStay, bestScore, true
		}
	}
	return model.POI{}, 0, 0, 0, false
}

func unvisitedOf(pool []model.POI, visited map[string]bool) []model.POI {
	out := make([]model.POI, 0, len(pool))
	for _, p := range pool {
		if !visited[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

func filterCategory(pool []model.POI, cat model.Category) []model.POI {
	out := make([]model.POI, 0, len(pool))
	for _, p := range pool {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// excludeCategoryGroup drops candidates sharing lastCategory's interleaving
// group (§4.6.9 folds the food subtypes into one group).
func excludeCategoryGroup(pool []model.POI, lastCategory model.Category) []model.POI {
	sameGroup := func(c model.Category) bool {
		if c == lastCategory {
			return true
		}
		return model.IsFoodCategory(c) && model.IsFoodCategory(lastCategory)
	}
	out := make([]model.POI, 0, len(pool))
	for _, p := range pool {
		if !sameGroup(p.Category) {
			out = append(out, p)
		}
	}
	return out
}

func stayMinutesFor(_ model.Category) float64 {
	return model.DefaultStayMinutes
}

// arrivalWouldOverlapMeal approximates whether the next arrival (via the
// nearest remaining candidate) lands inside a meal window, cheap enough to
// call at every step without walking the whole remaining route.
func arrivalWouldOverlapMeal(cursor time.Time, matrix Matrix, currentPos int, candidates []model.POI, indexOf map[string]int, mode model.TransportMode) bool {
	if len(candidates) == 0 {
		return false
	}
	minTravel := matrix.TravelTimeMinutes(currentPos, indexOf[candidates[0].ID], mode)
	for _, c := range candidates[1:] {
		t := matrix.TravelTimeMinutes(currentPos, indexOf[c.ID], mode)
		if t < minTravel {
			minTravel = t
		}
	}
	arrival := cursor.Add(time.Duration(minTravel * float64(time.Minute)))
	return overlapsMealWindow(arrival)
}

func overlapsMealWindow(t time.Time) bool {
	lunchStart := atClock(t, 11, 30)
	lunchEnd := atClock(t, 13, 30)
	dinnerStart := atClock(t, 18, 0)
	dinnerEnd := atClock(t, 20, 0)
	return (!t.Before(lunchStart) && t.Before(lunchEnd)) || (!t.Before(dinnerStart) && t.Before(dinnerEnd))
}

func atClock(t time.Time, h, m int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), h, m, 0, 0, t.Location())
}
