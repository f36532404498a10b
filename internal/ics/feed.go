// Package ics renders the custody schedule as an iCalendar feed.
//
// The feed covers a rolling 12-month window starting on the 1st of the
// current month: one all-day VEVENT for every day the children are with
// Mother, plus one timed VEVENT per exchange event. Every VEVENT carries
// the matched rule level in its DESCRIPTION so a subscriber can audit why
// a day was assigned the way it was.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/kaykas/alexandra-schedule/internal/custody"
)

// uidDomain namespaces feed UIDs. UIDs are stable across regenerations so
// calendar clients update events in place instead of duplicating them.
const uidDomain = "alexandra-schedule"

// Build evaluates every day in the window [from, from+months) and returns
// the assembled calendar. from is normalized to the first of its month.
func Build(eng *custody.Engine, from time.Time, months int) *ical.Calendar {
	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, months, 0)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//alexandra-schedule//custody feed//EN")
	cal.SetXWRCalName("Custody Schedule")

	// Sequential by design: each day is independent, so this could be
	// parallelized, but a year of evaluations is cheap.
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		res := eng.Evaluate(d, custody.Options{})
		audit := fmt.Sprintf("Level %d / %s: %s", res.MatchedLevel, res.MatchedRule, res.Note)

		if res.Parent == custody.Mother {
			ev := cal.AddEvent(fmt.Sprintf("%s-custody@%s", custody.DateKey(d), uidDomain))
			ev.SetDtStampTime(start)
			ev.SetAllDayStartAt(d)
			ev.SetAllDayEndAt(d.AddDate(0, 0, 1))
			ev.SetSummary("Kids with Mother")
			ev.SetDescription(audit)
		}

		for i, ex := range res.Events {
			at, ok := clockTime(d, ex.Time)
			if !ok {
				// Unparseable time constants are a programming error in
				// the rule tables; skip the event rather than emit a
				// bogus timestamp.
				continue
			}
			ev := cal.AddEvent(fmt.Sprintf("%s-exchange-%d@%s", custody.DateKey(d), i, uidDomain))
			ev.SetDtStampTime(start)
			ev.SetStartAt(at)
			ev.SetEndAt(at.Add(15 * time.Minute))
			ev.SetSummary(ex.Title)
			ev.SetLocation(ex.Location)
			ev.SetDescription(audit)
		}
	}

	return cal
}

// Serialize renders the feed for the HTTP response.
func Serialize(cal *ical.Calendar) string {
	return cal.Serialize()
}

// clockTime combines a date with a wall-clock string such as "8:20 AM".
// Pickup times carry per-child suffixes ("2:15 PM (Child A) / ..."); only
// the leading clock time is used for the event start.
func clockTime(day time.Time, s string) (time.Time, bool) {
	clock := s
	if i := strings.Index(clock, " ("); i > 0 {
		clock = clock[:i]
	}
	t, err := time.Parse("3:04 PM", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
}
