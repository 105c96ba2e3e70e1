package model

import "time"

// SearchRoutesRequest is the search_routes inbound shape (§6).
type SearchRoutesRequest struct {
	UserID          string     `json:"user_id"`
	Lat             float64    `json:"lat"`
	Lon             float64    `json:"lon"`
	Mode            string     `json:"mode"`
	Query           string     `json:"query"`
	CurrentTime     *time.Time `json:"current_time,omitempty"`
	MaxTimeMinutes  int        `json:"max_time_minutes"`
	TargetPlaces    int        `json:"target_places"`
	MaxRoutes       int        `json:"max_routes"`
	TopKSemantic    int        `json:"top_k_semantic"`
	CustomerLike    bool       `json:"customer_like,omitempty"`
	DeleteCache     bool       `json:"delete_cache,omitempty"`
	ReplaceRoute    int        `json:"replace_route,omitempty"`
}

// SearchRoutesResponse is the search_routes response shape.
type SearchRoutesResponse struct {
	Routes          []Route  `json:"routes"`
	TimingBreakdown TimingBreakdown `json:"timing_breakdown"`
	Warnings        []string `json:"warnings,omitempty"`
}

// TimingBreakdown reports how long each pipeline stage took, a diagnostic
// surface naturally implied by §5's suspension-point list.
type TimingBreakdown struct {
	CandidateAcquisitionMs int64 `json:"candidate_acquisition_ms"`
	ExpansionMs            int64 `json:"expansion_ms"`
	BuildMs                int64 `json:"build_ms"`
	ValidationMs           int64 `json:"validation_ms"`
	TotalMs                int64 `json:"total_ms"`
}

// ReplacePOIRequest is the replace_poi inbound shape.
type ReplacePOIRequest struct {
	UserID       string     `json:"user_id"`
	RouteID      string     `json:"route_id"`
	OldPOIID     string     `json:"old_poi_id"`
	UserLocation LatLng     `json:"user_location"`
	Mode         string     `json:"mode"`
	TopK         int        `json:"top_k"`
	CurrentTime  *time.Time `json:"current_time,omitempty"`
}

// Candidate is one ranked substitution candidate.
type Candidate struct {
	POI               POI     `json:"poi"`
	Score             float64 `json:"score"`
	OldDistanceDeltaKm float64 `json:"old_distance_delta_km"`
	NewDistanceDeltaKm float64 `json:"new_distance_delta_km"`
	OldTimeDeltaMin    float64 `json:"old_time_delta_min"`
	NewTimeDeltaMin    float64 `json:"new_time_delta_min"`
}

// ReplacePOIResponse is the replace_poi response shape.
type ReplacePOIResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// ConfirmReplaceRequest is the confirm_replace inbound shape.
type ConfirmReplaceRequest struct {
	UserID   string `json:"user_id"`
	RouteID  string `json:"route_id"`
	OldPOIID string `json:"old_poi_id"`
	NewPOIID string `json:"new_poi_id"`
}

// ConfirmReplaceResponse is the confirm_replace response shape.
type ConfirmReplaceResponse struct {
	Status        string `json:"status"`
	UpdatedRoute  []RouteMember `json:"updated_route"`
}

// ReplaceFullRouteRequest is the replace_full_route inbound shape.
type ReplaceFullRouteRequest struct {
	UserID         string     `json:"user_id"`
	RouteID        string     `json:"route_id"`
	NewQuery       string     `json:"new_query"`
	UserLocation   LatLng     `json:"user_location"`
	Mode           string     `json:"mode"`
	MaxTimeMinutes int        `json:"max_time_minutes"`
	TargetPlaces   int        `json:"target_places"`
	CurrentTime    *time.Time `json:"current_time,omitempty"`
}

// ReplaceFullRouteResponse is the replace_full_route response shape.
type ReplaceFullRouteResponse struct {
	Route Route `json:"route"`
}
