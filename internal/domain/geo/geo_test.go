package geo

import (
	"math"
	"testing"

	"routeplanner/internal/domain/model"
)

func TestHaversineSymmetric(t *testing.T) {
	a := model.LatLng{Lat: 10.80, Lng: 106.77}
	b := model.LatLng{Lat: 10.81, Lng: 106.78}
	if math.Abs(HaversineKm(a, b)-HaversineKm(b, a)) > 1e-9 {
		t.Fatal("haversine must be symmetric")
	}
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	a := model.LatLng{Lat: 10.80, Lng: 106.77}
	if HaversineKm(a, a) > 1e-9 {
		t.Fatalf("expected ~0, got %f", HaversineKm(a, a))
	}
}

func TestBearingCardinalDirections(t *testing.T) {
	origin := model.LatLng{Lat: 10.80, Lng: 106.77}
	north := model.LatLng{Lat: 10.81, Lng: 106.77}
	b := Bearing(origin, north)
	if b > 2 && b < 358 {
		t.Fatalf("expected bearing near 0 degrees going north, got %f", b)
	}
}

func TestBearingDiffRange(t *testing.T) {
	cases := [][2]float64{{0, 170}, {10, 350}, {0, 0}, {350, 10}}
	for _, c := range cases {
		d := BearingDiff(c[0], c[1])
		if d < 0 || d > 180 {
			t.Fatalf("bearing_diff(%v, %v) = %f out of [0,180]", c[0], c[1], d)
		}
	}
}

func TestZigzagAndCircularPeaks(t *testing.T) {
	if z := ZigzagScore(90, 90); math.Abs(z-1) > 1e-9 {
		t.Fatalf("zigzag should peak at 0 degree diff, got %f", z)
	}
	if c := CircularScore(0, 90); math.Abs(c-1) > 1e-9 {
		t.Fatalf("circular should peak at 90 degree diff, got %f", c)
	}
}
