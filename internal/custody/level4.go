package custody

import (
	"fmt"
	"time"
)

// Level 4: the standard weekly rotation. This layer is total: one of its
// sub-rules matches every date, which is what makes the whole evaluator a
// total function. The weekly template is:
//
//	Mon      the weekend parent; Mother keeps non-instruction Mondays
//	Tue      Father, unless Monday was a Mother holiday extension
//	Wed      Father
//	Thu      Mother (school pickup)
//	Fri-Sun  fifth-weekend override, else weekend parity
var level4Rules = []subRule{
	{name: "weekly_monday", eval: evalWeeklyMonday},
	{name: "weekly_tuesday", eval: evalWeeklyTuesday},
	{name: "weekly_wednesday", eval: evalWeeklyWednesday},
	{name: "weekly_thursday", eval: evalWeeklyThursday},
	{name: "weekly_weekend", eval: evalWeeklyWeekend},
	{name: "weekly_unreachable", eval: evalWeeklyFallback},
}

func (e *Engine) level4(d time.Time) *Result {
	for _, r := range level4Rules {
		if res := r.eval(e, d); res != nil {
			res.MatchedLevel = LevelWeekly
			if res.MatchedRule == "" {
				res.MatchedRule = r.name
			}
			return res
		}
	}
	// level4 is total; the caller's fallback handles the impossible case.
	return nil
}

// weekendOwner decides who owns the weekend beginning on the given Friday:
// a fifth weekend is always Mother's, otherwise Odd parity is Mother and
// Even is Father.
func (e *Engine) weekendOwner(friday time.Time) (Parent, string) {
	if FifthWeekend(friday) {
		return Mother, "weekly_fifth_weekend"
	}
	if e.facts.WeekendParity(friday) == ParityOdd {
		return Mother, "weekly_weekend_parity"
	}
	return Father, "weekly_weekend_parity"
}

// Monday belongs to whichever parent had the preceding Sunday. When that was
// Mother's weekend and Monday has no school, she keeps the children through
// the holiday and returns them Tuesday instead.
func evalWeeklyMonday(e *Engine, d time.Time) *Result {
	if d.Weekday() != time.Monday {
		return nil
	}
	owner, _ := e.weekendOwner(WeekendFriday(d))
	if owner == Mother && !e.facts.IsInstructionDay(d) {
		res := &Result{
			Date:        d,
			Parent:      Mother,
			Note:        "Holiday Monday: Mother's weekend extends through today",
			MatchedRule: "weekly_monday_holiday_extension",
		}
		res.setFlag(FlagHolidayExtension, "custody extends through the non-instruction Monday")
		return res
	}
	res := &Result{
		Date:   d,
		Parent: owner,
		Note:   fmt.Sprintf("Monday after %s's weekend", parentName(owner)),
	}
	if e.facts.IsInstructionDay(d) {
		res.Events = []ExchangeEvent{e.facts.returnEvent(d, Father)}
	}
	return res
}

// Tuesday is Father's day, except when the preceding Monday was a Mother
// holiday extension: then Tuesday is her return day.
func evalWeeklyTuesday(e *Engine, d time.Time) *Result {
	if d.Weekday() != time.Tuesday {
		return nil
	}
	monday := d.AddDate(0, 0, -1)
	owner, _ := e.weekendOwner(WeekendFriday(monday))
	if owner == Mother && !e.facts.IsInstructionDay(monday) {
		return &Result{
			Date:        d,
			Parent:      Mother,
			Note:        "Tuesday return after Mother's holiday Monday",
			MatchedRule: "weekly_tuesday_mother_return",
			Events:      []ExchangeEvent{e.facts.returnEvent(d, Father)},
		}
	}
	return &Result{Date: d, Parent: Father, Note: "Tuesday with Father"}
}

func evalWeeklyWednesday(e *Engine, d time.Time) *Result {
	if d.Weekday() != time.Wednesday {
		return nil
	}
	return &Result{Date: d, Parent: Father, Note: "Wednesday with Father"}
}

// Thursday is Mother's day; on school days she picks up after class.
func evalWeeklyThursday(e *Engine, d time.Time) *Result {
	if d.Weekday() != time.Thursday {
		return nil
	}
	res := &Result{Date: d, Parent: Mother, Note: "Thursday with Mother"}
	if e.facts.IsInstructionDay(d) {
		res.Events = []ExchangeEvent{e.facts.pickupEvent(d)}
	}
	return res
}

// Friday through Sunday belong to the weekend owner. Friday carries the
// hand-off events: on school days the children move via school (Mother
// drops off in the morning, the weekend parent picks up after class);
// otherwise Father receives curbside at 9:00 AM when the weekend is his.
// When the weekend is Mother's she already has the children from Thursday,
// so only the school pickup remains.
func evalWeeklyWeekend(e *Engine, d time.Time) *Result {
	wd := d.Weekday()
	if wd != time.Friday && wd != time.Saturday && wd != time.Sunday {
		return nil
	}
	friday := WeekendFriday(d)
	owner, rule := e.weekendOwner(friday)

	note := fmt.Sprintf("%s weekend with %s", paritiesLabel(e, friday), parentName(owner))
	res := &Result{Date: d, Parent: owner, Note: note, MatchedRule: rule}

	if wd != time.Friday {
		return res
	}

	switch {
	case e.facts.IsInstructionDay(d) && owner == Father:
		res.Events = []ExchangeEvent{
			{Kind: KindDropOff, Title: "DROP OFF at school", Time: SchoolDropOff, Location: LocationSchool},
			{Kind: KindPickUp, Title: "PICK UP from school", Time: e.facts.PickupTime(d), Location: LocationSchool},
		}
	case e.facts.IsInstructionDay(d):
		res.Events = []ExchangeEvent{e.facts.pickupEvent(d)}
	case owner == Father:
		res.Events = []ExchangeEvent{{
			Kind:     KindReceive,
			Title:    "RECEIVE curbside",
			Time:     CurbsideExchange,
			Location: LocationFatherHome,
		}}
	}
	return res
}

// paritiesLabel renders the weekend label used in notes.
func paritiesLabel(e *Engine, friday time.Time) string {
	if FifthWeekend(friday) {
		return "Fifth"
	}
	if e.facts.WeekendParity(friday) == ParityOdd {
		return "Odd"
	}
	return "Even"
}

// evalWeeklyFallback should never run: every date has a weekday covered
// above. It exists so a logic regression surfaces as a distinct rule in
// the audit trail instead of a nil result.
func evalWeeklyFallback(e *Engine, d time.Time) *Result {
	return &Result{
		Date:        d,
		Parent:      Father,
		Note:        "Unreachable weekly fallback",
		MatchedRule: "weekly_unreachable",
	}
}
