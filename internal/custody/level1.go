package custody

import "time"

// Level 1: fixed one-time dates. The 2025-26 winter break is governed by a
// hand-authored day-by-day schedule from the custody order rather than by
// the recurring-break machinery of level 2: the order spells out this break
// explicitly, down to the staff-development Monday tacked onto its end.
//
// Shape of the break:
//
//	Dec 20 - Dec 26  first half with Father
//	Dec 27           midpoint exchange, 12:00 PM at Mother's curbside
//	Dec 28 - Jan 4   second half with Mother
//	Jan 5            staff development day; Mother holds through the Monday
//	Jan 6            return to school (8:20 AM drop-off)

// fixedDay is one hand-authored schedule entry.
type fixedDay struct {
	parent Parent
	note   string
	rule   string
	// events, when set, builds the day's exchange events.
	events func(f *Facts, d time.Time) []ExchangeEvent
	// extension marks the entry as a holiday extension.
	extension bool
}

// winterBreakExchangeTime is the midpoint hand-off time fixed by the order.
const winterBreakExchangeTime = "12:00 PM"

var winterBreak2025 = buildWinterBreak2025()

func buildWinterBreak2025() map[string]fixedDay {
	days := map[string]fixedDay{}

	firstHalf := fixedDay{
		parent: Father,
		note:   "Winter break: first half with Father",
		rule:   "winter_break_2025_first_half",
	}
	for d := date(2025, time.December, 20); d.Day() <= 26 && d.Month() == time.December; d = d.AddDate(0, 0, 1) {
		days[DateKey(d)] = firstHalf
	}

	days["2025-12-27"] = fixedDay{
		parent: Mother,
		note:   "Winter break: midpoint exchange",
		rule:   "winter_break_2025_exchange",
		events: func(f *Facts, d time.Time) []ExchangeEvent {
			return []ExchangeEvent{{
				Kind:     KindReceive,
				Title:    "EXCHANGE curbside",
				Time:     winterBreakExchangeTime,
				Location: LocationMotherHome,
			}}
		},
	}

	secondHalf := fixedDay{
		parent: Mother,
		note:   "Winter break: second half with Mother",
		rule:   "winter_break_2025_second_half",
	}
	for d := date(2025, time.December, 28); d.Before(date(2026, time.January, 5)); d = d.AddDate(0, 0, 1) {
		days[DateKey(d)] = secondHalf
	}

	// The Monday after the break is a staff development day, so Mother's
	// block extends through it and the children go back to school Tuesday.
	days["2026-01-05"] = fixedDay{
		parent:    Mother,
		note:      "Winter break holiday extension (staff development day)",
		rule:      "winter_break_2025_holiday_extension",
		extension: true,
	}
	days["2026-01-06"] = fixedDay{
		parent: Mother,
		note:   "Winter break: return to school",
		rule:   "winter_break_2025_return",
		events: func(f *Facts, d time.Time) []ExchangeEvent {
			return []ExchangeEvent{f.returnEvent(d, Father)}
		},
	}

	return days
}

func (e *Engine) level1(d time.Time) *Result {
	entry, ok := winterBreak2025[DateKey(d)]
	if !ok {
		return nil
	}
	res := &Result{
		Date:         d,
		Parent:       entry.parent,
		Note:         entry.note,
		MatchedLevel: LevelFixedDates,
		MatchedRule:  entry.rule,
	}
	if entry.events != nil {
		res.Events = entry.events(e.facts, d)
	}
	if entry.extension {
		res.setFlag(FlagHolidayExtension, "custody extends through the non-instruction Monday")
	}
	return res
}
