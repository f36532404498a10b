// Package custody implements the custody rule-evaluation engine.
//
// The engine maps a calendar date to a custody assignment (which parent has
// the children) plus the exchange events that occur on that date. Rules are
// organized in five precedence levels, evaluated strictly in order with the
// first match winning:
//
//	0: super-overrides (Mother's Day, Father's Day, parent birthdays)
//	1: fixed one-time dates (the hand-authored 2025-26 winter break)
//	2: recurring holiday overrides (Halloween, Thanksgiving, Spring Break)
//	3: seasonal summer rotation
//	4: standard weekly rotation (total; always matches)
//
// Evaluation is a pure function of (date, Facts, Options). Facts is built once
// at startup and never mutated afterwards, so any number of evaluations may
// run concurrently.
package custody

import "time"

// DateSet is a membership set of calendar days keyed by YYYY-MM-DD.
// Time-of-day and timezone never participate in membership tests.
type DateSet map[string]bool

// Contains reports whether the set includes the given date.
func (s DateSet) Contains(t time.Time) bool {
	return s[DateKey(t)]
}

// Add inserts the date into the set.
func (s DateSet) Add(t time.Time) {
	s[DateKey(t)] = true
}

// Window is an inclusive calendar date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date falls inside the window, inclusive.
func (w Window) Contains(t time.Time) bool {
	d := Midnight(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Facts holds the static calendar tables the engine evaluates against.
// Build it with DefaultFacts (optionally layering district revisions via
// the Apply* methods) before serving; treat it as read-only afterwards.
type Facts struct {
	// InstructionWindows are the in-session ranges of each school year.
	InstructionWindows []Window

	// NoInstructionDays are weekdays inside an instruction window with no
	// school (holidays, breaks, staff development days).
	NoInstructionDays DateSet

	// MinimumDays are instruction days with early dismissal.
	MinimumDays DateSet

	// WeekendAnchor is the Friday that starts the reference weekend
	// assigned to Mother. Weekend parity counts whole weeks from here.
	WeekendAnchor time.Time

	// SummerStart and SummerEnd bound the summer rotation (level 3).
	SummerStart time.Time
	SummerEnd   time.Time

	// MotherBirthdayMonth/Day and FatherBirthdayMonth/Day are the fixed
	// birthday dates recognized by level 0.
	MotherBirthdayMonth time.Month
	MotherBirthdayDay   int
	FatherBirthdayMonth time.Month
	FatherBirthdayDay   int
}

// date is shorthand for a midnight UTC calendar date.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultFacts returns the canonical calendar tables: the 2025-26 and 2026-27
// school years of the district calendar plus the fixed dates from the custody
// order. The returned value is freshly built on each call so callers may layer
// revisions onto it before freezing it.
func DefaultFacts() *Facts {
	f := &Facts{
		InstructionWindows: []Window{
			{Start: date(2025, time.August, 13), End: date(2026, time.June, 11)},
			{Start: date(2026, time.August, 17), End: date(2027, time.June, 10)},
		},
		NoInstructionDays: DateSet{},
		MinimumDays:       DateSet{},

		WeekendAnchor: date(2025, time.December, 12),

		SummerStart: date(2026, time.June, 12),
		SummerEnd:   date(2026, time.August, 16),

		MotherBirthdayMonth: time.March,
		MotherBirthdayDay:   14,
		FatherBirthdayMonth: time.December,
		FatherBirthdayDay:   21,
	}

	for _, d := range noSchoolDays {
		f.NoInstructionDays.Add(d)
	}
	for _, d := range minimumDays {
		f.MinimumDays.Add(d)
	}
	return f
}

// ApplyNoInstructionDay records a district-added non-instruction day
// (e.g. a snow day or added staff development day).
func (f *Facts) ApplyNoInstructionDay(t time.Time) {
	f.NoInstructionDays.Add(t)
}

// ApplyMinimumDay records a district-added minimum day.
func (f *Facts) ApplyMinimumDay(t time.Time) {
	f.MinimumDays.Add(t)
}

// ApplyInstructionDay removes a date from the non-instruction set,
// reinstating it as a regular school day.
func (f *Facts) ApplyInstructionDay(t time.Time) {
	delete(f.NoInstructionDays, DateKey(t))
}

// noSchoolDays lists the published non-instruction weekdays of the
// 2025-26 and 2026-27 school years.
var noSchoolDays = []time.Time{
	// 2025-26
	date(2025, time.September, 1),  // Labor Day
	date(2025, time.October, 20),   // staff development day
	date(2025, time.November, 11),  // Veterans Day
	date(2025, time.November, 26),  // Thanksgiving break
	date(2025, time.November, 27),  // Thanksgiving
	date(2025, time.November, 28),  // Thanksgiving break
	date(2025, time.December, 22),  // winter break
	date(2025, time.December, 23),  // winter break
	date(2025, time.December, 24),  // winter break
	date(2025, time.December, 25),  // Christmas
	date(2025, time.December, 26),  // winter break
	date(2025, time.December, 29),  // winter break
	date(2025, time.December, 30),  // winter break
	date(2025, time.December, 31),  // winter break
	date(2026, time.January, 1),    // New Year's Day
	date(2026, time.January, 2),    // winter break
	date(2026, time.January, 5),    // staff development day
	date(2026, time.January, 19),   // MLK Day
	date(2026, time.February, 16),  // Presidents Day
	date(2026, time.April, 6),      // spring break
	date(2026, time.April, 7),      // spring break
	date(2026, time.April, 8),      // spring break
	date(2026, time.April, 9),      // spring break
	date(2026, time.April, 10),     // spring break
	date(2026, time.May, 25),       // Memorial Day

	// 2026-27
	date(2026, time.September, 7),  // Labor Day
	date(2026, time.October, 19),   // staff development day
	date(2026, time.November, 11),  // Veterans Day
	date(2026, time.November, 25),  // Thanksgiving break
	date(2026, time.November, 26),  // Thanksgiving
	date(2026, time.November, 27),  // Thanksgiving break
	date(2026, time.December, 21),  // winter break
	date(2026, time.December, 22),  // winter break
	date(2026, time.December, 23),  // winter break
	date(2026, time.December, 24),  // winter break
	date(2026, time.December, 25),  // Christmas
	date(2026, time.December, 28),  // winter break
	date(2026, time.December, 29),  // winter break
	date(2026, time.December, 30),  // winter break
	date(2026, time.December, 31),  // winter break
	date(2027, time.January, 1),    // New Year's Day
	date(2027, time.January, 18),   // MLK Day
	date(2027, time.February, 15),  // Presidents Day
	date(2027, time.March, 29),     // spring break
	date(2027, time.March, 30),     // spring break
	date(2027, time.March, 31),     // spring break
	date(2027, time.April, 1),      // spring break
	date(2027, time.April, 2),      // spring break
	date(2027, time.May, 31),       // Memorial Day
}

// minimumDays lists the published early-dismissal days.
var minimumDays = []time.Time{
	date(2025, time.August, 13),   // first day of school
	date(2025, time.November, 25), // day before Thanksgiving break
	date(2025, time.December, 19), // last day before winter break
	date(2026, time.March, 13),    // end of trimester
	date(2026, time.April, 3),     // day before spring break
	date(2026, time.June, 11),     // last day of school
	date(2026, time.August, 17),   // first day of school
	date(2026, time.December, 18), // last day before winter break
	date(2027, time.June, 10),     // last day of school
}
