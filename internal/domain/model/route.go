package model

import "time"

// DefaultStayMinutes is the fixed default stay time per stop (§3).
const DefaultStayMinutes = 30.0

// Stop is one entry in a built route.
type Stop struct {
	POIID            string      `json:"poi_id"`
	Name             string      `json:"name"`
	Category         Category    `json:"category"`
	OrderIndex       int         `json:"order_index"`
	TravelFromPrevMin float64    `json:"travel_from_prev_minutes"`
	StayMinutes      float64     `json:"stay_minutes"`
	CombinedScore    float64     `json:"combined_score"`
	ArrivalTime      *time.Time  `json:"arrival_time,omitempty"`
	HoursSummary     *DaySummary `json:"hours_summary,omitempty"`
	ClosedWarning    string      `json:"closed_warning,omitempty"`
	MealAnchored     bool        `json:"meal_anchored,omitempty"`
	FallbackStep     bool        `json:"fallback_step,omitempty"`
}

// DaySummary is the per-day opening-hours summary attached to a stop's
// arrival (C1's summary_for_date operation).
type DaySummary struct {
	DayName string     `json:"day_name"`
	Date    string     `json:"date"`
	IsOpen  bool       `json:"is_open"`
	Hours   []Interval `json:"hours"`
	Note    string     `json:"note,omitempty"`
}

// Route is an ordered sequence of stops plus aggregate totals.
type Route struct {
	ID             int     `json:"id"`
	Stops          []Stop  `json:"stops"`
	TravelMinutes  float64 `json:"travel_minutes"`
	StayMinutes    float64 `json:"stay_minutes"`
	TotalMinutes   float64 `json:"total_minutes"`
	TotalScore     float64 `json:"total_score"`
	Efficiency     float64 `json:"efficiency"` // score / (total_minutes/100)
	IsValidTiming  bool    `json:"is_valid_timing"`
	Warnings       []string `json:"warnings,omitempty"`
}

// Recompute derives TotalMinutes and Efficiency from the current stops and
// accumulated travel/stay totals. Keeping this as an explicit step (rather
// than computing inline everywhere) makes the invariant in §8 ("sum of leg
// travel times + sum of stay times = total route time") trivially true by
// construction.
func (r *Route) Recompute() {
	r.TotalMinutes = r.TravelMinutes + r.StayMinutes
	if r.TotalMinutes > 0 {
		r.Efficiency = r.TotalScore / (r.TotalMinutes / 100.0)
	} else {
		r.Efficiency = 0
	}
}
