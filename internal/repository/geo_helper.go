// Package repository holds the concrete §6 adapters for the POI store, the
// vector index, and (in internal/infrastructure) the embedding service and
// caches. This file is adapted from the teacher's geo_helper.go: a small
// orb.Point/orb.Bound wrapper for building a padded cell bounding box.
// The C3 cache-miss path does not call it: internal/domain/spatial uses
// hexgrid.BoundingBox for its source-of-truth query.
package repository

import (
	"github.com/paulmach/orb"

	"routeplanner/internal/domain/model"
)

// GeoPoint is the PostGIS-style JSON point shape used when logging or
// round-tripping a query center through the store layer.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// LocationToGeoPoint converts a LatLng to the PostGIS POINT JSON shape.
func LocationToGeoPoint(loc model.LatLng) GeoPoint {
	p := orb.Point{loc.Lng, loc.Lat}
	return GeoPoint{Type: "Point", Coordinates: []float64{p.Lon(), p.Lat()}}
}

// BoundingBox is a lat/lon rectangle around a cell.
type BoundingBox struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

// CellBoundingBox builds the padded bounding box around a cell's four
// corners, mirroring the teacher's CreateBoundingBoxPolygon (there built
// from two trip endpoints; here from a single cell's corners).
func CellBoundingBox(minLat, minLon, maxLat, maxLon float64) BoundingBox {
	bound := orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}
	bound = bound.Pad(0.0005) // ~50m, absorbs projection rounding at cell edges
	return BoundingBox{
		MinLat: bound.Min.Lat(), MinLon: bound.Min.Lon(),
		MaxLat: bound.Max.Lat(), MaxLon: bound.Max.Lon(),
	}
}

// Center returns the bounding box's midpoint as (lat, lon).
func (b BoundingBox) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}
