package hours

import (
	"testing"
	"time"

	"routeplanner/internal/domain/model"
)

func at(day time.Weekday, hh, mm int) time.Time {
	// 2026-02-02 is a Monday; offset from there to land on the requested weekday.
	base := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	offset := (int(day) - int(time.Monday) + 7) % 7
	return base.AddDate(0, 0, offset).Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func TestIsOpenAt_AbsentHoursAlwaysOpen(t *testing.T) {
	if !IsOpenAt(nil, at(time.Monday, 3, 0)) {
		t.Fatal("absent hours must be treated as always open")
	}
}

func TestIsOpenAt_PlainInterval(t *testing.T) {
	h := model.OpeningHours{"Monday": {{Start: "08:00", End: "18:00"}}}
	if !IsOpenAt(h, at(time.Monday, 12, 0)) {
		t.Fatal("expected open at noon Monday")
	}
	if IsOpenAt(h, at(time.Monday, 7, 59)) {
		t.Fatal("expected closed before opening")
	}
	if IsOpenAt(h, at(time.Monday, 18, 0)) {
		t.Fatal("expected closed at closing instant")
	}
}

func TestIsOpenAt_OvernightInterval(t *testing.T) {
	h := model.OpeningHours{"Friday": {{Start: "22:00", End: "02:00"}}}
	if !IsOpenAt(h, at(time.Friday, 23, 30)) {
		t.Fatal("expected open late Friday night")
	}
	if !IsOpenAt(h, at(time.Saturday, 1, 0)) {
		t.Fatal("expected open into Saturday early hours via Friday's overnight interval")
	}
	if IsOpenAt(h, at(time.Saturday, 3, 0)) {
		t.Fatal("expected closed past the overnight interval's end")
	}
}

func TestOverlapsWindow_Basic(t *testing.T) {
	h := model.OpeningHours{"Monday": {{Start: "11:30", End: "13:30"}}}
	a := at(time.Monday, 11, 0)
	b := at(time.Monday, 11, 45)
	if !OverlapsWindow(h, a, b) {
		t.Fatal("expected overlap with lunch window")
	}
}

func TestOverlapsWindow_AbsentAlwaysTrue(t *testing.T) {
	a := at(time.Monday, 11, 0)
	b := at(time.Monday, 12, 0)
	if !OverlapsWindow(nil, a, b) {
		t.Fatal("absent hours must overlap any window")
	}
}

func TestDaySummary_ClosedDay(t *testing.T) {
	h := model.OpeningHours{"Monday": {{Start: "08:00", End: "18:00"}}}
	s := DaySummary(h, at(time.Tuesday, 0, 0))
	if s.IsOpen {
		t.Fatal("Tuesday has no entries, expected closed")
	}
	if s.DayName != "Tuesday" {
		t.Fatalf("expected Tuesday, got %s", s.DayName)
	}
}

func TestDaySummary_BeforeOpeningIsClosedEvenThoughDayHasHours(t *testing.T) {
	h := model.OpeningHours{"Monday": {{Start: "08:00", End: "18:00"}}}
	s := DaySummary(h, at(time.Monday, 7, 30))
	if s.IsOpen {
		t.Fatal("expected is_open=false for an arrival before the day's listed opening time")
	}
	if len(s.Hours) == 0 {
		t.Fatal("expected the day's intervals to still be reported even though closed at this instant")
	}
}

func TestDaySummary_DuringOpenIntervalIsOpen(t *testing.T) {
	h := model.OpeningHours{"Monday": {{Start: "08:00", End: "18:00"}}}
	s := DaySummary(h, at(time.Monday, 12, 0))
	if !s.IsOpen {
		t.Fatal("expected is_open=true for an arrival inside the day's listed interval")
	}
}
