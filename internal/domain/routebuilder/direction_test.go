package routebuilder

import (
	"testing"

	"routeplanner/internal/domain/model"
)

func TestTargetBearing_RightIsPlus90(t *testing.T) {
	if got := targetBearing(90, DirectionRight); got != 180 {
		t.Errorf("got %v, want 180", got)
	}
}

func TestTargetBearing_LeftIsMinus90(t *testing.T) {
	if got := targetBearing(90, DirectionLeft); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestTargetBearing_WrapsAroundZero(t *testing.T) {
	if got := targetBearing(350, DirectionRight); got != 80 {
		t.Errorf("got %v, want 80", got)
	}
	if got := targetBearing(10, DirectionLeft); got != 280 {
		t.Errorf("got %v, want 280", got)
	}
}

func TestResolveAutoDirection_PicksSideWithMoreCandidates(t *testing.T) {
	q := model.LatLng{Lat: 0, Lng: 0}
	prevBearing := 90.0 // heading east; right cone centers on south(180), left on north(0)
	south1 := model.POI{ID: "s1", Location: model.LatLng{Lat: -0.01, Lng: 0}}
	south2 := model.POI{ID: "s2", Location: model.LatLng{Lat: -0.02, Lng: 0}}
	north1 := model.POI{ID: "n1", Location: model.LatLng{Lat: 0.01, Lng: 0}}

	dir := resolveAutoDirection([]model.POI{south1, south2, north1}, q, prevBearing, 10)
	if dir != DirectionRight {
		t.Errorf("expected the side with two candidates (south/right) to win, got %v", dir)
	}
}

func TestResolveAutoDirection_TiesToRight(t *testing.T) {
	q := model.LatLng{Lat: 0, Lng: 0}
	prevBearing := 90.0
	south := model.POI{ID: "s", Location: model.LatLng{Lat: -0.01, Lng: 0}}
	north := model.POI{ID: "n", Location: model.LatLng{Lat: 0.01, Lng: 0}}

	dir := resolveAutoDirection([]model.POI{south, north}, q, prevBearing, 10)
	if dir != DirectionRight {
		t.Errorf("expected an exact left/right tie to resolve to right, got %v", dir)
	}
}

func TestFilterByCone_DropsCandidatesOutsideTolerance(t *testing.T) {
	q := model.LatLng{Lat: 0, Lng: 0}
	prevBearing := 90.0
	inCone := model.POI{ID: "in", Location: model.LatLng{Lat: -0.01, Lng: 0}}    // south, matches right target
	outOfCone := model.POI{ID: "out", Location: model.LatLng{Lat: 0, Lng: 0.01}} // east, a straight continuation

	kept := filterByCone([]model.POI{inCone, outOfCone}, q, prevBearing, DirectionRight, 10)
	if len(kept) != 1 || kept[0].ID != "in" {
		t.Errorf("got %v, want only the in-cone candidate", kept)
	}
}
