package spatial

import (
	"fmt"
	"math"
)

// No H3 binding exists anywhere in the grounding corpus (only DuckDB SQL
// references to H3 in other_examples, no Go library import), so this is a
// small hand-rolled axial hex grid over a local equirectangular projection,
// addressed the same way the teacher's model.GridCell is addressed (an
// integer/string cell id plus a resolution), at a fixed resolution
// controlled by configuration (§6's H3_RESOLUTION). See DESIGN.md.

// cellSizeKmAtResolution maps the configured resolution to an approximate
// hex cell "radius" in kilometers, coarser at lower resolutions, mirroring
// H3's own resolution/edge-length relationship closely enough for this
// engine's candidate-bucketing purpose (it never needs true H3
// interoperability, only a stable, enumerable k-ring).
func cellSizeKmAtResolution(resolution int) float64 {
	base := 10.0 // resolution 0 ~= 10km cells
	for i := 0; i < resolution; i++ {
		base /= 1.6
	}
	if base < 0.05 {
		base = 0.05
	}
	return base
}

// axial is an axial coordinate in a pointy-top hex grid.
type axial struct {
	q, r int
}

// CellID identifies one hex cell at a fixed resolution.
type CellID struct {
	Resolution int
	Q, R       int
}

// String renders the cache-key form "h3:<resolution>:<cell_id>" from §6.
func (c CellID) String() string {
	return fmt.Sprintf("h3:%d:%d_%d", c.Resolution, c.Q, c.R)
}

// toAxial projects (lat, lon) onto the axial grid at the given resolution.
func toAxial(lat, lon float64, resolution int) axial {
	size := cellSizeKmAtResolution(resolution)
	// Equirectangular projection to local kilometers, centered at the
	// equator/meridian; adequate for bucketing purposes at city scale.
	x := lon * 111.320 * math.Cos(lat*math.Pi/180)
	y := lat * 110.574

	// Standard axial-from-pointy-hex-pixel formula (size = hex "radius").
	q := (math.Sqrt(3)/3*x - 1.0/3*y) / size
	r := (2.0 / 3 * y) / size
	return roundAxial(q, r)
}

func roundAxial(qf, rf float64) axial {
	x := qf
	z := rf
	y := -x - z
	rx, ry, rz := math.Round(x), math.Round(y), math.Round(z)
	dx, dy, dz := math.Abs(rx-x), math.Abs(ry-y), math.Abs(rz-z)
	if dx > dy && dx > dz {
		rx = -ry - rz
	} else if dy > dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return axial{q: int(rx), r: int(rz)}
}

// CellFor returns the cell id containing (lat, lon) at the given resolution.
func CellFor(lat, lon float64, resolution int) CellID {
	a := toAxial(lat, lon, resolution)
	return CellID{Resolution: resolution, Q: a.q, R: a.r}
}

// KRing enumerates all cells within k hex-steps of center, inclusive.
func KRing(center CellID, k int) []CellID {
	if k < 0 {
		k = 0
	}
	results := make([]CellID, 0, 1+3*k*(k+1))
	for q := -k; q <= k; q++ {
		r1 := max(-k, -q-k)
		r2 := min(k, -q+k)
		for r := r1; r <= r2; r++ {
			results = append(results, CellID{
				Resolution: center.Resolution,
				Q:          center.Q + q,
				R:          center.R + r,
			})
		}
	}
	return results
}

// BoundingBox returns the approximate lat/lon bounding box covered by a
// cell, used by the POI store query when a cache miss requires a
// source-of-truth lookup (mirrors the teacher's CreateBoundingBoxPolygon
// use, generalized from a two-point box to a single-cell box).
func BoundingBox(c CellID) (minLat, minLon, maxLat, maxLon float64) {
	size := cellSizeKmAtResolution(c.Resolution)
	x := float64(c.Q)*size*math.Sqrt(3) + float64(c.R)*size*math.Sqrt(3)/2
	y := float64(c.R) * size * 1.5

	lat := y / 110.574
	lon := x / (111.320 * math.Cos(lat*math.Pi/180))

	// Half-width padding of one cell size in each direction, converted back
	// to degrees.
	dLat := size / 110.574
	dLon := size / (111.320 * math.Cos(lat*math.Pi/180))
	return lat - dLat, lon - dLon, lat + dLat, lon + dLon
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
