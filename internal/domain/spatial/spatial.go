// Package spatial implements C3, the spatial candidate source: given
// (lat, lon, mode), return a POI set within a mode-dependent radius,
// cached per hexagonal cell.
package spatial

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"routeplanner/internal/domain/geo"
	"routeplanner/internal/domain/hours"
	"routeplanner/internal/domain/model"
	"routeplanner/internal/domain/repository"
)

// Config controls the resolution, floor-expansion, and cell-cache TTL
// behavior of the spatial candidate source (§6's defaults).
type Config struct {
	Resolution          int
	CellTTL             time.Duration
	CandidatesFloor     int
	ProgressiveExpand   bool
	MaxKRingExpansion   int
}

// DefaultConfig mirrors §6: H3_RESOLUTION=9 (mapped to this package's own
// resolution scale; see hexgrid.go), MAX_CANDIDATES_FLOOR=50.
func DefaultConfig() Config {
	return Config{
		Resolution:        9,
		CellTTL:           10 * time.Minute,
		CandidatesFloor:   50,
		ProgressiveExpand: true,
		MaxKRingExpansion: 4,
	}
}

// Source is the C3 spatial candidate source.
type Source struct {
	store repository.POIStore
	cache repository.Cache
	cfg   Config
}

func NewSource(store repository.POIStore, cache repository.Cache, cfg Config) *Source {
	return &Source{store: store, cache: cache, cfg: cfg}
}

// Result is the contract output: spatial_candidates(lat, lon, mode, [window]).
type Result struct {
	POIs            []model.POI
	EffectiveRadius float64 // km
}

// Find implements the C3 contract. window, when non-nil, filters results by
// C1's overlaps_window; a and b must satisfy a <= b.
func (s *Source) Find(ctx context.Context, lat, lon float64, mode model.TransportMode, windowStart, windowEnd *time.Time) (Result, error) {
	profile := mode.Profile()
	center := model.LatLng{Lat: lat, Lng: lon}

	k := profile.KRing
	var pool []model.POI
	seen := make(map[string]bool)

	for attempt := 0; attempt <= s.cfg.MaxKRingExpansion; attempt++ {
		pool = pool[:0]
		seen = make(map[string]bool)

		centerCell := CellFor(lat, lon, s.cfg.Resolution)
		for _, cell := range KRing(centerCell, k) {
			cellPOIs, err := s.readOrFillCell(ctx, cell)
			if err != nil {
				return Result{}, err
			}
			for _, p := range cellPOIs {
				if seen[p.ID] {
					continue
				}
				dist := geo.HaversineKm(center, p.Location)
				if dist > profile.RadiusKm {
					continue
				}
				seen[p.ID] = true
				pool = append(pool, p)
			}
		}

		if !s.cfg.ProgressiveExpand || len(pool) >= s.cfg.CandidatesFloor || attempt == s.cfg.MaxKRingExpansion {
			break
		}
		k++
	}

	if windowStart != nil && windowEnd != nil {
		filtered := pool[:0:0]
		for _, p := range pool {
			if hours.OverlapsWindow(p.Hours, *windowStart, *windowEnd) {
				filtered = append(filtered, p)
			}
		}
		pool = filtered
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return geo.HaversineKm(center, pool[i].Location) < geo.HaversineKm(center, pool[j].Location)
	})

	return Result{POIs: pool, EffectiveRadius: profile.RadiusKm}, nil
}

// readOrFillCell reads the cell cache, falling back to the POI store and
// caching the result under a TTL, per §4.3's algorithm.
func (s *Source) readOrFillCell(ctx context.Context, cell CellID) ([]model.POI, error) {
	key := cell.String()
	if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var entry model.CellCacheEntry
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
			return entry.POIs, nil
		}
	}

	minLat, minLon, maxLat, maxLon := BoundingBox(cell)
	centerLat := (minLat + maxLat) / 2
	centerLon := (minLon + maxLon) / 2
	radiusMeters := geo.HaversineMeters(
		model.LatLng{Lat: minLat, Lng: minLon},
		model.LatLng{Lat: maxLat, Lng: maxLon},
	) / 2

	pois, err := s.store.FindNearby(ctx, centerLat, centerLon, radiusMeters, nil, 500)
	if err != nil {
		return nil, err
	}

	entry := model.CellCacheEntry{CellID: key, POIs: pois}
	if raw, err := json.Marshal(entry); err == nil {
		_ = s.cache.SetTTL(ctx, key, raw, s.cfg.CellTTL)
	}
	return pois, nil
}
