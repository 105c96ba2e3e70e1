// Package arrival implements C7, the arrival validator: walking a built
// route against the starting wall-clock time, annotating each stop with
// its projected arrival and opening-hours summary, and flagging stops that
// are closed on arrival.
package arrival

import (
	"fmt"
	"time"

	"routeplanner/internal/domain/hours"
	"routeplanner/internal/domain/model"
)

// Validate implements §4.7: walk stops in order starting at currentTime,
// accumulate travel + stay time into a cursor, record the arrival and
// opening-hours summary on each stop, and flag the route invalid if any
// stop is closed on arrival.
//
// When currentTime is nil (no clock supplied), no arrival times are
// computed and the stops are left untouched; the route is only marked
// valid — per §3, ArrivalTime is only populated "when a current time was
// supplied".
func Validate(route *model.Route, poisByID map[string]model.POI, currentTime *time.Time) {
	if currentTime == nil {
		route.IsValidTiming = true
		return
	}

	cursor := *currentTime
	route.IsValidTiming = true
	route.Warnings = nil

	for i := range route.Stops {
		stop := &route.Stops[i]
		cursor = cursor.Add(time.Duration(stop.TravelFromPrevMin * float64(time.Minute)))
		arrival := cursor
		stop.ArrivalTime = &arrival

		poi, ok := poisByID[stop.POIID]
		var h model.OpeningHours
		name := stop.Name
		if ok {
			h = poi.Hours
			if name == "" {
				name = poi.Name
			}
		}

		summary := hours.DaySummary(h, arrival)
		stop.HoursSummary = &summary

		if !hours.IsOpenAt(h, arrival) {
			warning := fmt.Sprintf("POI '%s' is closed at %s %s", name, summary.DayName, arrival.Format("15:04"))
			stop.ClosedWarning = warning
			route.Warnings = append(route.Warnings, warning)
			route.IsValidTiming = false
		}

		cursor = cursor.Add(time.Duration(stop.StayMinutes * float64(time.Minute)))
	}
}

// ValidateAll runs Validate over a batch of routes, the "batched C7 pass"
// named as a suspension point in §5.
func ValidateAll(routes []model.Route, poisByID map[string]model.POI, currentTime *time.Time) {
	for i := range routes {
		Validate(&routes[i], poisByID, currentTime)
	}
}
