package config

import (
	"routeplanner/internal/domain/expand"
	"routeplanner/internal/domain/model"
	"routeplanner/internal/domain/routebuilder"
	"routeplanner/internal/domain/spatial"
)

// ApplyGlobals pushes the config-file-overridable package-level defaults
// (mode profiles, meal windows) into the domain packages that hold them as
// process-wide state, mirroring the teacher's pattern of reading
// configuration once at startup rather than threading it through every
// call.
func (c Config) ApplyGlobals() {
	model.DefaultModeProfiles = c.ResolvedModeProfiles()
	expand.SetMealWindows(c.LunchWindow.Start, c.LunchWindow.End, c.DinnerWindow.Start, c.DinnerWindow.End)
}

// ResolvedModeProfiles merges the configured per-mode table onto the
// compiled-in defaults, overriding any mode present in config.yml. The
// caller assigns the result to model.DefaultModeProfiles at startup.
func (c Config) ResolvedModeProfiles() map[model.TransportMode]model.ModeProfile {
	out := make(map[model.TransportMode]model.ModeProfile, len(model.DefaultModeProfiles))
	for mode, profile := range model.DefaultModeProfiles {
		out[mode] = profile
	}
	for mode, p := range c.ModeProfiles {
		out[model.TransportMode(mode)] = model.ModeProfile{SpeedKmh: p.SpeedKmh, KRing: p.KRing, RadiusKm: p.RadiusKm}
	}
	return out
}

// RouteBuilderConfig converts the scoring/direction section into
// routebuilder.Config.
func (c Config) RouteBuilderConfig() routebuilder.Config {
	toWeights := func(w WeightsConfig) routebuilder.Weights {
		return routebuilder.Weights{Distance: w.Distance, Similarity: w.Similarity, Rating: w.Rating, Bearing: w.Bearing}
	}
	return routebuilder.Config{
		CircularRouting:     c.CircularRouting,
		AngleTolerance:      c.CircularAngleTolerance,
		DirectionPref:       routebuilder.Direction(c.CircularDirectionPref),
		SimilarityThreshold: c.Scoring.SimilarityThreshold,

		FirstWeights:        toWeights(c.Scoring.First),
		MiddleHighSimZigzag: toWeights(c.Scoring.MiddleHighSimZigzag),
		MiddleLowSimZigzag:  toWeights(c.Scoring.MiddleLowSimZigzag),
		MiddleCircular:      toWeights(c.Scoring.MiddleCircular),
		LastZigzag:          toWeights(c.Scoring.LastZigzag),
		LastCircular:        toWeights(c.Scoring.LastCircular),

		ClosingRadiusThresholds: []float64{0.2, 0.4, 0.6, 0.8, 1.0},
		MaxGoroutines:           c.Workers.RouteBuilderPoolSize,
	}
}

// SpatialConfig converts the H3/floor-expansion section into
// spatial.Config.
func (c Config) SpatialConfig() spatial.Config {
	return spatial.Config{
		Resolution:        c.H3Resolution,
		CellTTL:           c.Cache.CellTTL,
		CandidatesFloor:   c.MaxCandidatesFloor,
		ProgressiveExpand: c.ProgressiveExpand,
		MaxKRingExpansion: c.MaxKRingExpansion,
	}
}
