package custody

import "time"

// Level 0: super-overrides. These beat every other layer. Each sub-rule is
// tried in order; the first match wins. A sub-rule returning nil means
// "no match here", which sends the date to the next sub-rule and finally
// down to level 1.

// LevelSuperOverride through LevelWeekly identify which precedence layer
// produced a Result.
const (
	LevelSuperOverride = 0
	LevelFixedDates    = 1
	LevelHolidays      = 2
	LevelSummer        = 3
	LevelWeekly        = 4
)

type subRule struct {
	name string
	eval func(e *Engine, d time.Time) *Result
}

var level0Rules = []subRule{
	{name: "mothers_day", eval: evalMothersDay},
	{name: "mothers_day_monday", eval: evalMothersDayMonday},
	{name: "fathers_day", eval: evalFathersDay},
	{name: "mothers_birthday", eval: evalMothersBirthday},
	{name: "mothers_birthday_return", eval: evalMothersBirthdayReturn},
	{name: "fathers_birthday", eval: evalFathersBirthday},
}

func (e *Engine) level0(d time.Time) *Result {
	for _, r := range level0Rules {
		if res := r.eval(e, d); res != nil {
			res.MatchedLevel = LevelSuperOverride
			res.MatchedRule = r.name
			return res
		}
	}
	return nil
}

// isNthSunday reports whether d is the nth Sunday of the given month.
func isNthSunday(d time.Time, month time.Month, n int) bool {
	if d.Month() != month {
		return false
	}
	day, ok := NthWeekdayOfMonth(d.Year(), month, time.Sunday, n)
	return ok && d.Day() == day
}

// Mother's Day: the 2nd Sunday of May, always with Mother.
func evalMothersDay(e *Engine, d time.Time) *Result {
	if !isNthSunday(d, time.May, 2) {
		return nil
	}
	return &Result{Date: d, Parent: Mother, Note: "Mother's Day"}
}

// The day after Mother's Day. When Mother's Day landed on her own (Odd)
// weekend custody simply continues; otherwise she returns the children in
// the morning, at school on instruction days and curbside at Father's home
// otherwise.
func evalMothersDayMonday(e *Engine, d time.Time) *Result {
	if !isNthSunday(d.AddDate(0, 0, -1), time.May, 2) {
		return nil
	}
	if e.facts.WeekendParity(d) == ParityOdd {
		return &Result{Date: d, Parent: Mother, Note: "Mother's Day weekend continues"}
	}
	return &Result{
		Date:   d,
		Parent: Mother,
		Note:   "Return after Mother's Day",
		Events: []ExchangeEvent{e.facts.returnEvent(d, Father)},
	}
}

// Father's Day: the 3rd Sunday of June, always with Father. No day-after
// logic; the summer rotation picks up the Monday.
func evalFathersDay(e *Engine, d time.Time) *Result {
	if !isNthSunday(d, time.June, 3) {
		return nil
	}
	return &Result{Date: d, Parent: Father, Note: "Father's Day"}
}

func evalMothersBirthday(e *Engine, d time.Time) *Result {
	if d.Month() != e.facts.MotherBirthdayMonth || d.Day() != e.facts.MotherBirthdayDay {
		return nil
	}
	return &Result{Date: d, Parent: Mother, Note: "Mother's birthday"}
}

// The day after Mother's birthday mirrors the Mother's Day return logic.
func evalMothersBirthdayReturn(e *Engine, d time.Time) *Result {
	prev := d.AddDate(0, 0, -1)
	if prev.Month() != e.facts.MotherBirthdayMonth || prev.Day() != e.facts.MotherBirthdayDay {
		return nil
	}
	if e.facts.WeekendParity(d) == ParityOdd {
		return &Result{Date: d, Parent: Mother, Note: "Mother's birthday weekend continues"}
	}
	return &Result{
		Date:   d,
		Parent: Mother,
		Note:   "Return after Mother's birthday",
		Events: []ExchangeEvent{e.facts.returnEvent(d, Father)},
	}
}

// Father's birthday falls inside the fixed winter break, which already
// places the children with him, so this branch deliberately defers to
// level 1 instead of producing its own result.
func evalFathersBirthday(e *Engine, d time.Time) *Result {
	return nil
}
