package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/kaykas/alexandra-schedule/internal/custody"
)

func TestBuild_TwelveMonthWindow(t *testing.T) {
	eng := custody.NewEngine(custody.DefaultFacts())

	// Mid-month input normalizes to the 1st.
	cal := Build(eng, time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC), 12)
	out := Serialize(cal)

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatal("missing calendar envelope")
	}
	if !strings.Contains(out, "METHOD:PUBLISH") {
		t.Error("missing METHOD:PUBLISH")
	}

	// 2026-01-05 is a Mother day (winter break holiday extension), so the
	// window's first days must be present even though we passed the 15th.
	if !strings.Contains(out, "UID:2026-01-05-custody@alexandra-schedule") {
		t.Error("missing all-day custody event for 2026-01-05")
	}
	// The window ends before 2027-01-01.
	if strings.Contains(out, "UID:2027-01-05-custody@alexandra-schedule") {
		t.Error("event beyond the 12-month window")
	}
}

func TestBuild_MotherDaysAndExchanges(t *testing.T) {
	eng := custody.NewEngine(custody.DefaultFacts())

	cal := Build(eng, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), 1)
	out := Serialize(cal)

	// No all-day event for a Father day.
	if strings.Contains(out, "UID:2026-01-07-custody@") { // Wednesday
		t.Error("unexpected custody event on a Father day")
	}

	// 2026-01-06 carries the return-to-school drop-off at 8:20 AM.
	if !strings.Contains(out, "UID:2026-01-06-exchange-0@alexandra-schedule") {
		t.Fatal("missing exchange event for 2026-01-06")
	}
	if !strings.Contains(out, "DTSTART:20260106T082000Z") {
		t.Error("exchange event not at 8:20 AM")
	}
	if !strings.Contains(out, "LOCATION:School") {
		t.Error("missing school location")
	}
}

func TestBuild_DescriptionCarriesMatchedRule(t *testing.T) {
	eng := custody.NewEngine(custody.DefaultFacts())

	cal := Build(eng, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), 1)
	out := Serialize(cal)

	// Mother's Day is a level-0 match and the description says so.
	if !strings.Contains(out, "Level 0 / mothers_day") {
		t.Error("description does not expose the matched level and rule")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	eng := custody.NewEngine(custody.DefaultFacts())
	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	a := Serialize(Build(eng, from, 2))
	b := Serialize(Build(eng, from, 2))
	if a != b {
		t.Error("feed generation is not deterministic")
	}
}

func TestClockTime(t *testing.T) {
	day := time.Date(2026, time.February, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		hour int
		min  int
		ok   bool
	}{
		{"8:20 AM", 8, 20, true},
		{"12:00 PM", 12, 0, true},
		{"4:00 PM", 16, 0, true},
		{"2:15 PM (Child A) / 2:50 PM (Child B)", 14, 15, true},
		{"sometime", 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := clockTime(day, tt.in)
		if ok != tt.ok {
			t.Errorf("clockTime(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (got.Hour() != tt.hour || got.Minute() != tt.min) {
			t.Errorf("clockTime(%q) = %02d:%02d, want %02d:%02d", tt.in, got.Hour(), got.Minute(), tt.hour, tt.min)
		}
	}
}
