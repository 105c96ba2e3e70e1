package routebuilder

import (
	"routeplanner/internal/domain/geo"
	"routeplanner/internal/domain/model"
)

// Matrix is the (|P|+1)x(|P|+1) great-circle distance matrix from §4.6.1,
// with index 0 reserved for the user position U. It is built once and
// reused across all R routes for a single planning request.
type Matrix struct {
	DistancesKm [][]float64
	MaxDistance float64
}

// BuildMatrix constructs the distance matrix for user position u against
// candidate pool p.
func BuildMatrix(u model.LatLng, p []model.POI) Matrix {
	n := len(p) + 1
	points := make([]model.LatLng, n)
	points[0] = u
	for i, poi := range p {
		points[i+1] = poi.Location
	}

	dist := make([][]float64, n)
	maxDist := 0.0
	for i := 0; i < n; i++ {
		dist[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := geo.HaversineKm(points[i], points[j])
			dist[i][j] = d
			if d > maxDist {
				maxDist = d
			}
		}
	}
	return Matrix{DistancesKm: dist, MaxDistance: maxDist}
}

// TravelTimeMinutes converts the (i,j) distance entry to travel-time
// minutes under mode's fixed speed.
func (m Matrix) TravelTimeMinutes(i, j int, mode model.TransportMode) float64 {
	return mode.TravelTimeMinutes(m.DistancesKm[i][j])
}
