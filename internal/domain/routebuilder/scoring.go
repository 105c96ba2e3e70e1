package routebuilder

import (
	"routeplanner/internal/domain/geo"
	"routeplanner/internal/domain/model"
)

// stopKind identifies which weight bucket applies to a candidate under
// evaluation (§4.6.2's table).
type stopKind int

const (
	kindFirst stopKind = iota
	kindMiddle
	kindLast
)

// scoreCandidate computes the combined score for candidate c at position
// kind, from current position q with search radius radiusKm (R_max) and
// previous bearing prevBearing (only meaningful for middle/last stops).
// circular selects the circular vs zigzag weight rows and bearing-score
// function. Builder is read-only here so a single Builder can score
// candidates for many routes concurrently.
func (b *Builder) scoreCandidate(c model.POI, kind stopKind, q model.LatLng, radiusKm float64, prevBearing float64, hasPrevBearing bool, circular bool) float64 {
	distFromQKm := geo.HaversineKm(q, c.Location)
	distScore := 1 - geo.Clamp01(distFromQKm/radiusKm)
	simScore := c.Similarity
	ratingScore := c.RatingOrDefault()

	var bearingScore float64
	hasBearing := hasPrevBearing && kind != kindFirst
	if hasBearing {
		nowBearing := geo.Bearing(q, c.Location)
		if circular {
			bearingScore = geo.CircularScore(prevBearing, nowBearing)
		} else {
			bearingScore = geo.ZigzagScore(prevBearing, nowBearing)
		}
	} else {
		bearingScore = 0.5 // DEFAULT_BEARING_SCORE, neutral fallback
	}

	w := b.weightsFor(kind, simScore, circular)
	return w.Distance*distScore + w.Similarity*simScore + w.Rating*ratingScore + w.Bearing*bearingScore
}

func (b *Builder) weightsFor(kind stopKind, similarity float64, circular bool) Weights {
	switch kind {
	case kindFirst:
		return b.cfg.FirstWeights
	case kindLast:
		if circular {
			return b.cfg.LastCircular
		}
		return b.cfg.LastZigzag
	default: // kindMiddle
		if circular {
			return b.cfg.MiddleCircular
		}
		if similarity >= b.cfg.SimilarityThreshold {
			return b.cfg.MiddleHighSimZigzag
		}
		return b.cfg.MiddleLowSimZigzag
	}
}

// betterCandidate implements the tie-break order from §4.6.2: higher
// combined score first, then higher similarity, then higher rating, then
// lexicographically smaller id. Scores compare with strict '>' (no
// epsilon), per §4.6.7.
func betterCandidate(scoreA float64, a model.POI, scoreB float64, b model.POI) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	if a.Similarity != b.Similarity {
		return a.Similarity > b.Similarity
	}
	if a.RatingOrDefault() != b.RatingOrDefault() {
		return a.RatingOrDefault() > b.RatingOrDefault()
	}
	return a.ID < b.ID
}
