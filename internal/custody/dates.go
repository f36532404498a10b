package custody

import "time"

// Parity labels which parent owns a weekend. Odd weekends are Mother's,
// Even weekends are Father's.
type Parity string

const (
	ParityOdd  Parity = "odd"
	ParityEven Parity = "even"
)

// DateKey returns the canonical YYYY-MM-DD key for a date.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Midnight strips the time-of-day, returning the calendar date at
// 00:00 UTC. All rule evaluation happens on normalized dates.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// IsInstructionDay reports whether school is in session on the given date:
// a weekday inside an instruction window that is not a declared
// non-instruction day.
func (f *Facts) IsInstructionDay(t time.Time) bool {
	d := Midnight(t)
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	inWindow := false
	for _, w := range f.InstructionWindows {
		if w.Contains(d) {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return false
	}
	return !f.NoInstructionDays.Contains(d)
}

// IsMinimumDay reports whether the date is an early-dismissal day.
func (f *Facts) IsMinimumDay(t time.Time) bool {
	return f.MinimumDays.Contains(t)
}

// WeekendFriday normalizes a date to the Friday that begins its weekend.
// Monday through Thursday map back to the preceding Friday, so a weekday's
// parity refers to the weekend that just ended.
func WeekendFriday(t time.Time) time.Time {
	d := Midnight(t)
	back := (int(d.Weekday()) + 2) % 7
	return d.AddDate(0, 0, -back)
}

// WeekendParity computes the Odd/Even label of the weekend containing (or,
// for Mon-Thu, preceding) the given date. Whole weeks are counted from the
// anchor Friday by floor division, so the anchor weekend itself is Odd and
// parity flips every seven days in both directions. This is plain elapsed-day
// arithmetic, not ISO week numbering.
func (f *Facts) WeekendParity(t time.Time) Parity {
	friday := WeekendFriday(t)
	days := int(friday.Sub(Midnight(f.WeekendAnchor)).Hours() / 24)
	weeks := floorDiv(days, 7)
	if weeks%2 == 0 {
		return ParityOdd
	}
	return ParityEven
}

// floorDiv divides rounding toward negative infinity, so week counting
// behaves the same for dates before and after the anchor.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// NthWeekdayOfMonth returns the day-of-month of the nth occurrence of the
// given weekday, or false if the month has no nth occurrence.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) (int, bool) {
	last := date(year, month, 1).AddDate(0, 1, -1).Day()
	count := 0
	for day := 1; day <= last; day++ {
		if date(year, month, day).Weekday() == weekday {
			count++
			if count == n {
				return day, true
			}
		}
	}
	return 0, false
}

// FifthWeekend reports whether the date belongs to a fifth weekend: the
// Friday that is the month's 5th Friday, or the Saturday/Sunday immediately
// after it (which may spill into the next month). A month has a fifth
// weekend only when it contains five Fridays.
func FifthWeekend(t time.Time) bool {
	d := Midnight(t)
	var friday time.Time
	switch d.Weekday() {
	case time.Friday:
		friday = d
	case time.Saturday:
		friday = d.AddDate(0, 0, -1)
	case time.Sunday:
		friday = d.AddDate(0, 0, -2)
	default:
		return false
	}
	fifth, ok := NthWeekdayOfMonth(friday.Year(), friday.Month(), time.Friday, 5)
	return ok && friday.Day() == fifth
}

// PickupTime returns the after-school pickup time string for the date:
// the early-dismissal times on minimum days, the regular times otherwise.
func (f *Facts) PickupTime(t time.Time) string {
	if f.IsMinimumDay(t) {
		return MinimumDayPickup
	}
	return RegularPickup
}
