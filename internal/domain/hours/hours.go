// Package hours implements C1, the time-window evaluator: testing opening
// hours records for "open at instant t" and "overlaps window [a,b]".
package hours

import (
	"fmt"
	"time"

	"routeplanner/internal/domain/model"
)

// parseClock parses an "HH:MM" wall-clock string into minutes since
// midnight. A malformed string returns ok=false so callers can treat the
// record as malformed (→ always open, per §3's absent-hours policy).
func parseClock(s string) (minutes int, ok bool) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func minutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// intervalContains reports whether probeMinutes falls within [start, end)
// of an interval that began on the day of dayOffset relative to the probe's
// day (0 = same day, -1 = the interval started the previous day and
// crosses midnight into the probe's day).
func intervalContains(iv model.Interval, probeMinutes, dayOffset int) bool {
	start, ok1 := parseClock(iv.Start)
	end, ok2 := parseClock(iv.End)
	if !ok1 || !ok2 {
		return false
	}
	crossesMidnight := end <= start

	if dayOffset == 0 {
		if !crossesMidnight {
			return probeMinutes >= start && probeMinutes < end
		}
		// Crosses midnight: only the [start, 24:00) portion applies on the
		// interval's own day.
		return probeMinutes >= start
	}
	if dayOffset == -1 && crossesMidnight {
		// The [00:00, end) portion spills into the next day.
		return probeMinutes < end
	}
	return false
}

// IsOpenAt implements is_open_at(hours, t): true iff any interval on the
// probe's day or the previous day (to catch overnight spillover) contains
// t. Absent or malformed hours -> true.
func IsOpenAt(h model.OpeningHours, t time.Time) bool {
	if h.IsAbsent() {
		return true
	}
	probe := minutesSinceMidnight(t)
	today := model.WeekdayName(int(t.Weekday()))
	yesterday := model.WeekdayName(int(t.Weekday()) - 1)

	for _, iv := range h[today] {
		if intervalContains(iv, probe, 0) {
			return true
		}
	}
	for _, iv := range h[yesterday] {
		if intervalContains(iv, probe, -1) {
			return true
		}
	}
	return false
}

// OverlapsWindow implements overlaps_window(hours, a, b), a <= b: true iff
// some open interval on any day touched by [a,b] intersects [a,b]. Absent
// hours -> true.
func OverlapsWindow(h model.OpeningHours, a, b time.Time) bool {
	if h.IsAbsent() {
		return true
	}
	if b.Before(a) {
		a, b = b, a
	}
	// Walk each calendar day touched by [a, b] inclusive.
	for day := truncateToDay(a); !day.After(b); day = day.AddDate(0, 0, 1) {
		dayName := model.WeekdayName(int(day.Weekday()))
		for _, iv := range h[dayName] {
			start, ok1 := parseClock(iv.Start)
			end, ok2 := parseClock(iv.End)
			if !ok1 || !ok2 {
				continue
			}
			ivStart := day.Add(time.Duration(start) * time.Minute)
			ivEnd := day.Add(time.Duration(end) * time.Minute)
			if end <= start {
				// Crosses midnight: extends into the next calendar day.
				ivEnd = ivEnd.AddDate(0, 0, 1)
			}
			if ivStart.Before(b) && ivEnd.After(a) {
				return true
			}
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaySummary implements summary_for_date(hours, date): is_open reflects
// whether the POI is open at the exact instant date, not merely whether its
// day has any listed intervals.
func DaySummary(h model.OpeningHours, date time.Time) model.DaySummary {
	dayName := model.WeekdayName(int(date.Weekday()))
	summary := model.DaySummary{
		DayName: dayName,
		Date:    date.Format("2006-01-02"),
	}
	if h.IsAbsent() {
		summary.IsOpen = true
		summary.Note = "opening hours unknown; treated as always open"
		return summary
	}
	summary.Hours = h[dayName]
	summary.IsOpen = IsOpenAt(h, date)
	return summary
}
