package routebuilder

import (
	"testing"
	"time"

	"routeplanner/internal/domain/model"
)

// TestBuild_CircularAutoDirectionLock_RightAngleClockwiseLoop grounds §8's
// "every middle-stop turn lies within tau of 90 degrees" invariant and the
// auto-direction-lock scenario: a pool laid out as a clockwise rectangle
// should be walked corner by corner, locking onto a right turn at the first
// middle stop and holding it through the rest of the route. CurrentTime is
// deliberately left nil to pin the regression this guards against: cone
// filtering must run purely off CircularRouting, not off clock presence.
func TestBuild_CircularAutoDirectionLock_RightAngleClockwiseLoop(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	a := model.POI{ID: "poi_a", Name: "A", Location: model.LatLng{Lat: 0, Lng: 0.02}, Category: model.CategoryCulture, Rating: 1.0, Similarity: 1.0}
	bb := model.POI{ID: "poi_b", Name: "B", Location: model.LatLng{Lat: -0.02, Lng: 0.02}, Category: model.CategoryNatureView, Rating: 0.3, Similarity: 0.3}
	c := model.POI{ID: "poi_c", Name: "C", Location: model.LatLng{Lat: -0.02, Lng: 0.00}, Category: model.CategoryEntertain, Rating: 0.3, Similarity: 0.3}
	d := model.POI{ID: "poi_d", Name: "D", Location: model.LatLng{Lat: 0.001, Lng: 0.00}, Category: model.CategoryShopping, Rating: 0.3, Similarity: 0.3}

	req := Request{
		User:        model.LatLng{Lat: 0, Lng: 0},
		Pool:        []model.POI{a, bb, c, d},
		Mode:        model.ModeWalking,
		MaxMinutes:  300,
		TargetStops: 4,
		MaxRoutes:   1,
	}

	out := b.Build(req)
	if len(out.Routes) != 1 {
		t.Fatalf("expected exactly one route, got %d", len(out.Routes))
	}
	route := out.Routes[0]
	if len(route.Stops) != 4 {
		t.Fatalf("expected 4 stops, got %d: %+v", len(route.Stops), route.Stops)
	}

	wantOrder := []string{"poi_a", "poi_b", "poi_c", "poi_d"}
	for i, id := range wantOrder {
		if route.Stops[i].POIID != id {
			t.Errorf("stop %d: got %q, want %q", i, route.Stops[i].POIID, id)
		}
	}
}

// TestBuild_MealAnchorForcesRestaurantStop grounds the meal-injection
// scenario (§4.6.4/§8 scenario 2): when MealAnchor is set and the next
// arrival lands inside a meal window, the builder must restrict the next
// pick to Restaurant candidates even though another candidate would
// otherwise win on score.
func TestBuild_MealAnchorForcesRestaurantStop(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	anchor := model.POI{ID: "poi_a", Name: "Anchor", Location: model.LatLng{Lat: 0, Lng: 0.0001}, Category: model.CategoryCulture, Rating: 1.0, Similarity: 1.0}
	restaurant := model.POI{ID: "poi_r", Name: "Restaurant", Location: model.LatLng{Lat: 0, Lng: 0.0002}, Category: model.CategoryRestaurant, Rating: 0.1, Similarity: 0.1}
	nature := model.POI{ID: "poi_n", Name: "Nature", Location: model.LatLng{Lat: 0, Lng: 0.00025}, Category: model.CategoryNatureView, Rating: 0.9, Similarity: 0.9}
	closing := model.POI{ID: "poi_d", Name: "Closing", Location: model.LatLng{Lat: 0, Lng: 0.00005}, Category: model.CategoryShopping, Rating: 0.1, Similarity: 0.1}

	current := time.Date(2026, 2, 2, 11, 0, 0, 0, time.UTC) // Monday; first stop's 30-minute stay lands the cursor at 11:30, inside lunch

	req := Request{
		User:        model.LatLng{Lat: 0, Lng: 0},
		Pool:        []model.POI{anchor, restaurant, nature, closing},
		Mode:        model.ModeWalking,
		MaxMinutes:  300,
		TargetStops: 3,
		MaxRoutes:   1,
		CurrentTime: &current,
		MealAnchor:  true,
	}

	out := b.Build(req)
	if len(out.Routes) != 1 {
		t.Fatalf("expected exactly one route, got %d", len(out.Routes))
	}
	route := out.Routes[0]
	if len(route.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d: %+v", len(route.Stops), route.Stops)
	}

	if route.Stops[0].POIID != "poi_a" {
		t.Errorf("first stop = %q, want poi_a", route.Stops[0].POIID)
	}
	if route.Stops[1].POIID != "poi_r" {
		t.Errorf("middle stop = %q, want poi_r (forced by the meal window despite lower score)", route.Stops[1].POIID)
	}
	if !route.Stops[1].MealAnchored {
		t.Error("expected the forced restaurant stop to carry MealAnchored=true")
	}
	if route.Stops[2].POIID == "poi_a" || route.Stops[2].POIID == "poi_r" {
		t.Errorf("closing stop = %q, expected a distinct third POI", route.Stops[2].POIID)
	}
}

// TestPickClosing_UsesSearchRadiusNotPoolDiameterForThreshold is a
// regression test for §4.6.5's closing threshold: rho * R_max, where R_max
// is the mode's search radius, not the candidate pool's pairwise max
// distance. poi_y is visited (excluded from consideration) but still widens
// the matrix's MaxDistance to 20km; poi_z sits 3km from the user, outside
// every rho*radiusKm threshold at a 2km search radius, and must never
// qualify as a closing stop.
func TestPickClosing_UsesSearchRadiusNotPoolDiameterForThreshold(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	user := model.LatLng{Lat: 0, Lng: 0}
	z := model.POI{ID: "poi_z", Name: "Z", Location: model.LatLng{Lat: 3.0 / 110.574, Lng: 0}, Category: model.CategoryShopping, Rating: 0.5, Similarity: 0.5}
	y := model.POI{ID: "poi_y", Name: "Y", Location: model.LatLng{Lat: 20.0 / 110.574, Lng: 0}, Category: model.CategoryShopping, Rating: 0.5, Similarity: 0.5}
	pool := []model.POI{z, y}
	visited := map[string]bool{"poi_y": true}

	matrix := BuildMatrix(user, pool)
	if matrix.MaxDistance < 15 {
		t.Fatalf("expected a wide pool diameter to set up the regression, got MaxDistance=%.2f", matrix.MaxDistance)
	}

	req := Request{User: user, Mode: model.ModeWalking, MaxMinutes: 1000}
	radiusKm := model.ModeWalking.Profile().RadiusKm // 2.0km

	_, _, _, _, ok := b.pickClosing(pool, visited, req, matrix, 0, radiusKm)
	if ok {
		t.Fatal("expected no closing candidate within radiusKm-based thresholds; poi_z sits 3km out against a 2km search radius")
	}
}
