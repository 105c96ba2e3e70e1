package routebuilder

import (
	"testing"

	"routeplanner/internal/domain/model"
)

func TestBuildMatrix_DiagonalIsZero(t *testing.T) {
	user := model.LatLng{Lat: 0, Lng: 0}
	pool := []model.POI{{ID: "a", Location: model.LatLng{Lat: 0.01, Lng: 0.01}}}
	m := BuildMatrix(user, pool)
	for i := range m.DistancesKm {
		if m.DistancesKm[i][i] != 0 {
			t.Errorf("expected zero self-distance at index %d, got %f", i, m.DistancesKm[i][i])
		}
	}
}

func TestBuildMatrix_MaxDistanceIsThePoolDiameter(t *testing.T) {
	user := model.LatLng{Lat: 0, Lng: 0}
	near := model.POI{ID: "near", Location: model.LatLng{Lat: 0.01, Lng: 0}}
	far := model.POI{ID: "far", Location: model.LatLng{Lat: 1.0, Lng: 0}}
	m := BuildMatrix(user, []model.POI{near, far})

	// the pool's diameter spans user-to-far (index 0 to 2), not user-to-near
	// or near-to-far.
	want := m.DistancesKm[0][2]
	if m.MaxDistance != want {
		t.Errorf("MaxDistance = %.4f, want the user-far distance %.4f", m.MaxDistance, want)
	}
}

func TestMatrix_TravelTimeMinutes_ScalesWithMode(t *testing.T) {
	user := model.LatLng{Lat: 0, Lng: 0}
	poi := model.POI{ID: "a", Location: model.LatLng{Lat: 0, Lng: 0.1}} // ~11km east
	m := BuildMatrix(user, []model.POI{poi})

	walking := m.TravelTimeMinutes(0, 1, model.ModeWalking)
	driving := m.TravelTimeMinutes(0, 1, model.ModeDriving)
	if driving >= walking {
		t.Errorf("expected driving to cover the same distance faster than walking, got driving=%.2f walking=%.2f", driving, walking)
	}
}
