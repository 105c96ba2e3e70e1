// Package geo implements C2, the geography kernel: great-circle distance,
// initial bearing, bearing-difference normalization, and the bearing-score
// functions used by the route builder's direction heuristics.
package geo

import (
	"math"

	"routeplanner/internal/domain/model"
)

// earthRadiusKm mirrors the original source's EARTH_RADIUS_KM and the
// teacher's poi_helper.go earthRadiusKm constant.
const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between a and b in
// kilometers. haversine(a,b) == haversine(b,a) by construction.
func HaversineKm(a, b model.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinDLat := math.Sin(dLat / 2)
	sinDLng := math.Sin(dLng / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLng*sinDLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// HaversineMeters is HaversineKm expressed in meters, matching §4.2's unit.
func HaversineMeters(a, b model.LatLng) float64 {
	return HaversineKm(a, b) * 1000.0
}

// Bearing returns the initial compass bearing from a to b, in [0, 360).
func Bearing(a, b model.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	theta := math.Atan2(y, x)
	deg := theta * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// BearingDiff returns the normalized absolute difference between two
// bearings, in [0, 180]: differences over 180 collapse to 360-d.
func BearingDiff(b1, b2 float64) float64 {
	d := math.Abs(b1 - b2)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ZigzagScore peaks at 0 degrees (straight-line continuation): 1 - d/180.
func ZigzagScore(prevBearing, nowBearing float64) float64 {
	d := BearingDiff(prevBearing, nowBearing)
	return 1 - d/180
}

// CircularScore peaks at 90 degrees (a right-angle turn): 1 - |d-90|/90.
func CircularScore(prevBearing, nowBearing float64) float64 {
	d := BearingDiff(prevBearing, nowBearing)
	return 1 - math.Abs(d-90)/90
}

// Clamp01 restricts x to [0, 1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
