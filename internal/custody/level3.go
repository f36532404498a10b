package custody

import (
	"fmt"
	"time"
)

// Level 3: the summer rotation. Between SummerStart (a Friday) and SummerEnd
// the children alternate week-on/week-off: odd-numbered weeks with Mother,
// even-numbered weeks with Father, exchanging at 4:00 PM on the Friday that
// starts each new week. The rotation runs eight weeks; after that the
// schedule transitions back to the weekly rotation, anchored on the first
// Friday at or after the end of week 8, but is still reported as a level-3
// match so the audit trail shows the summer window owned the date.

func (e *Engine) level3(d time.Time) *Result {
	f := e.facts
	if d.Before(f.SummerStart) || d.After(f.SummerEnd) {
		return nil
	}

	days := int(d.Sub(f.SummerStart).Hours() / 24)
	week := days/7 + 1

	if week > 8 {
		// First Friday at or after the end of week 8.
		transition := f.SummerStart.AddDate(0, 0, 8*7-1)
		for transition.Weekday() != time.Friday {
			transition = transition.AddDate(0, 0, 1)
		}
		if !d.Before(transition) {
			res := e.level4(d)
			res.MatchedLevel = LevelSummer
			res.MatchedRule = "post_summer_transition"
			res.Note = "Post-summer transition: " + res.Note
			return res
		}
		// Days between the last full week and the transition Friday stay
		// with the week-8 parent.
		week = 8
	}

	parent := Father
	if week%2 != 0 {
		parent = Mother
	}
	res := &Result{
		Date:         d,
		Parent:       parent,
		Note:         fmt.Sprintf("Summer week %d with %s", week, parentName(parent)),
		MatchedLevel: LevelSummer,
		MatchedRule:  "summer_week_rotation",
	}

	// A new week starts every 7th day; the incoming parent receives the
	// children at 4:00 PM on that Friday.
	if days > 0 && days%7 == 0 {
		res.Events = []ExchangeEvent{{
			Kind:     KindReceive,
			Title:    "SUMMER EXCHANGE",
			Time:     SummerExchange,
			Location: LocationCampHisHouse,
		}}
	}
	return res
}
