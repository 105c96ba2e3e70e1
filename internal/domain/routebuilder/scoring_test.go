package routebuilder

import (
	"testing"

	"routeplanner/internal/domain/model"
)

func TestScoreCandidate_CloserCandidateScoresHigherAllElseEqual(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	q := model.LatLng{Lat: 0, Lng: 0}
	near := model.POI{ID: "near", Location: model.LatLng{Lat: 0.005, Lng: 0}, Rating: 0.6, Similarity: 0.6}
	far := model.POI{ID: "far", Location: model.LatLng{Lat: 0.015, Lng: 0}, Rating: 0.6, Similarity: 0.6}

	nearScore := b.scoreCandidate(near, kindFirst, q, 2.0, 0, false, false)
	farScore := b.scoreCandidate(far, kindFirst, q, 2.0, 0, false, false)
	if nearScore <= farScore {
		t.Errorf("expected the closer candidate to score higher, near=%.4f far=%.4f", nearScore, farScore)
	}
}

func TestScoreCandidate_CircularPrefersRightAngleTurn(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	q := model.LatLng{Lat: 0, Lng: 0}
	rightAngle := model.POI{ID: "right", Location: model.LatLng{Lat: -0.01, Lng: 0}, Rating: 0.5, Similarity: 0.5}  // south: 90-degree turn from east
	straight := model.POI{ID: "straight", Location: model.LatLng{Lat: 0, Lng: 0.01}, Rating: 0.5, Similarity: 0.5} // east: a straight continuation

	prevBearing := 90.0 // heading east
	rightScore := b.scoreCandidate(rightAngle, kindMiddle, q, 2.0, prevBearing, true, true)
	straightScore := b.scoreCandidate(straight, kindMiddle, q, 2.0, prevBearing, true, true)
	if rightScore <= straightScore {
		t.Errorf("expected the right-angle turn to score higher under circular weighting, right=%.4f straight=%.4f", rightScore, straightScore)
	}
}

func TestBetterCandidate_TieBreaksBySimilarityThenRatingThenID(t *testing.T) {
	a := model.POI{ID: "a", Similarity: 0.9, Rating: 0.5}
	b := model.POI{ID: "b", Similarity: 0.8, Rating: 0.9}
	if !betterCandidate(1.0, a, 1.0, b) {
		t.Error("expected equal scores to break the tie in favor of higher similarity")
	}

	c := model.POI{ID: "c", Similarity: 0.5, Rating: 0.9}
	d := model.POI{ID: "d", Similarity: 0.5, Rating: 0.5}
	if !betterCandidate(1.0, c, 1.0, d) {
		t.Error("expected equal score and similarity to break the tie in favor of higher rating")
	}

	e := model.POI{ID: "e", Similarity: 0.5, Rating: 0.5}
	f := model.POI{ID: "f", Similarity: 0.5, Rating: 0.5}
	if !betterCandidate(1.0, e, 1.0, f) {
		t.Error("expected equal score, similarity, and rating to break the tie toward the lexicographically smaller id")
	}
}
