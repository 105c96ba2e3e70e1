package routebuilder

import (
	"routeplanner/internal/domain/geo"
	"routeplanner/internal/domain/model"
)

// directionState tracks the circular-direction lock for one route under
// construction (§4.6.3). It is route-local, never shared across goroutines.
type directionState struct {
	locked    bool
	direction Direction // right or left, once locked
}

// targetBearing returns the ideal next bearing given the previous bearing
// and the locked direction.
func targetBearing(prevBearing float64, dir Direction) float64 {
	if dir == DirectionLeft {
		return normalizeDeg(prevBearing - 90)
	}
	return normalizeDeg(prevBearing + 90)
}

func normalizeDeg(d float64) float64 {
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}

// inCone reports whether bearing falls within tolerance degrees of target.
func inCone(bearing, target, tolerance float64) bool {
	return geo.BearingDiff(bearing, target) <= tolerance
}

// filterByCone restricts candidates to those whose bearing from q lies
// within the locked direction's cone. Returns the filtered slice; caller
// falls back to the unconstrained pool when this is empty (§4.6.3's
// per-step fallback rule).
func filterByCone(candidates []model.POI, q model.LatLng, prevBearing float64, dir Direction, tolerance float64) []model.POI {
	target := targetBearing(prevBearing, dir)
	out := make([]model.POI, 0, len(candidates))
	for _, c := range candidates {
		b := geo.Bearing(q, c.Location)
		if inCone(b, target, tolerance) {
			out = append(out, c)
		}
	}
	return out
}

// resolveAutoDirection partitions candidates by which cone (right or left)
// their bearing from q falls into and picks the side with more candidates,
// tying to right (§4.6.3's "auto" rule).
func resolveAutoDirection(candidates []model.POI, q model.LatLng, prevBearing float64, tolerance float64) Direction {
	rightTarget := targetBearing(prevBearing, DirectionRight)
	leftTarget := targetBearing(prevBearing, DirectionLeft)

	rightCount, leftCount := 0, 0
	for _, c := range candidates {
		b := geo.Bearing(q, c.Location)
		if inCone(b, rightTarget, tolerance) {
			rightCount++
		}
		if inCone(b, leftTarget, tolerance) {
			leftCount++
		}
	}
	if leftCount > rightCount {
		return DirectionLeft
	}
	return DirectionRight
}
