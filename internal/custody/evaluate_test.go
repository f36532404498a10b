package custody

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func testEngine() *Engine {
	return NewEngine(DefaultFacts())
}

func TestEvaluate_TotalOverLongRange(t *testing.T) {
	e := testEngine()

	start := date(2025, time.January, 1)
	for i := 0; i < 3*365; i++ {
		d := start.AddDate(0, 0, i)
		res := e.Evaluate(d, Options{})
		if res.Parent != Mother && res.Parent != Father {
			t.Fatalf("%s: parent = %q, want mother or father", DateKey(d), res.Parent)
		}
		if res.MatchedRule == "" {
			t.Fatalf("%s: empty matched rule", DateKey(d))
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := testEngine()

	days := []time.Time{
		date(2025, time.October, 31),
		date(2025, time.December, 27),
		date(2026, time.January, 5),
		date(2026, time.May, 10),
		date(2026, time.July, 3),
	}
	opts := Options{CheckRightOfFirstRefusal: true}
	for _, d := range days {
		first := e.Evaluate(d, opts)
		second := e.Evaluate(d, opts)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: repeated evaluation differs:\n%+v\n%+v", DateKey(d), first, second)
		}
	}
}

func TestEvaluate_TimeOfDayIgnored(t *testing.T) {
	e := testEngine()

	d := date(2026, time.February, 11)
	late := d.Add(23*time.Hour + 59*time.Minute)
	if !reflect.DeepEqual(e.Evaluate(d, Options{}), e.Evaluate(late, Options{})) {
		t.Error("evaluation depends on time of day")
	}
}

func TestEvaluate_SuperOverrideBeatsWeeklyRotation(t *testing.T) {
	e := testEngine()

	// Mother's Day 2026 falls on an Even (Father) weekend, so the weekly
	// rotation alone would hand the day to Father. Level 0 must win.
	d := date(2026, time.May, 10)
	if weekly := e.level4(d); weekly.Parent != Father {
		t.Fatalf("precondition: weekly rotation should give %s to father, got %s", DateKey(d), weekly.Parent)
	}

	res := e.Evaluate(d, Options{})
	if res.Parent != Mother || res.MatchedLevel != LevelSuperOverride || res.MatchedRule != "mothers_day" {
		t.Errorf("Evaluate(%s) = %s level %d rule %q, want mother level 0 mothers_day",
			DateKey(d), res.Parent, res.MatchedLevel, res.MatchedRule)
	}
}

func TestEvaluate_MothersDayReturnMonday(t *testing.T) {
	e := testEngine()

	// 2026-05-11 follows Mother's Day on an Even weekend: she returns the
	// children at school in the morning.
	res := e.Evaluate(date(2026, time.May, 11), Options{})
	if res.Parent != Mother || res.MatchedRule != "mothers_day_monday" {
		t.Fatalf("got %s rule %q", res.Parent, res.MatchedRule)
	}
	if len(res.Events) != 1 || res.Events[0].Time != SchoolDropOff || res.Events[0].Location != LocationSchool {
		t.Errorf("events = %+v, want a single 8:20 AM school drop-off", res.Events)
	}
}

func TestEvaluate_FathersDay(t *testing.T) {
	e := testEngine()

	res := e.Evaluate(date(2026, time.June, 21), Options{})
	if res.Parent != Father || res.MatchedLevel != LevelSuperOverride || res.MatchedRule != "fathers_day" {
		t.Errorf("got %s level %d rule %q", res.Parent, res.MatchedLevel, res.MatchedRule)
	}
}

func TestEvaluate_FathersBirthdayDefersToWinterBreak(t *testing.T) {
	e := testEngine()

	// December 21 sits inside the fixed winter break; level 0 passes and
	// the break schedule answers.
	res := e.Evaluate(date(2025, time.December, 21), Options{})
	if res.MatchedLevel != LevelFixedDates || res.Parent != Father {
		t.Errorf("got level %d parent %s, want level 1 father", res.MatchedLevel, res.Parent)
	}
}

func TestEvaluate_WinterBreakSchedule(t *testing.T) {
	e := testEngine()

	tests := []struct {
		day        time.Time
		parent     Parent
		rule       string
		eventCount int
	}{
		{date(2025, time.December, 20), Father, "winter_break_2025_first_half", 0},
		{date(2025, time.December, 26), Father, "winter_break_2025_first_half", 0},
		{date(2025, time.December, 27), Mother, "winter_break_2025_exchange", 1},
		{date(2025, time.December, 28), Mother, "winter_break_2025_second_half", 0},
		{date(2026, time.January, 4), Mother, "winter_break_2025_second_half", 0},
		{date(2026, time.January, 5), Mother, "winter_break_2025_holiday_extension", 0},
		{date(2026, time.January, 6), Mother, "winter_break_2025_return", 1},
	}
	for _, tt := range tests {
		res := e.Evaluate(tt.day, Options{})
		if res.MatchedLevel != LevelFixedDates || res.Parent != tt.parent || res.MatchedRule != tt.rule {
			t.Errorf("%s: got (%s, level %d, %q), want (%s, level 1, %q)",
				DateKey(tt.day), res.Parent, res.MatchedLevel, res.MatchedRule, tt.parent, tt.rule)
		}
		if len(res.Events) != tt.eventCount {
			t.Errorf("%s: %d events, want %d", DateKey(tt.day), len(res.Events), tt.eventCount)
		}
	}
}

func TestEvaluate_HolidayExtensionMonday(t *testing.T) {
	e := testEngine()

	// The staff development Monday after winter break: Mother keeps the
	// children and the result says so.
	res := e.Evaluate(date(2026, time.January, 5), Options{})
	if res.Parent != Mother || res.MatchedLevel != 1 {
		t.Fatalf("got %s level %d", res.Parent, res.MatchedLevel)
	}
	if !strings.Contains(strings.ToLower(res.Note), "holiday extension") {
		t.Errorf("note %q does not mention the holiday extension", res.Note)
	}
	if _, ok := res.Flags[FlagHolidayExtension]; !ok {
		t.Errorf("missing %s flag", FlagHolidayExtension)
	}
}

func TestEvaluate_ReturnToSchoolTuesday(t *testing.T) {
	e := testEngine()

	res := e.Evaluate(date(2026, time.January, 6), Options{})
	if res.Parent != Mother {
		t.Fatalf("parent = %s, want mother", res.Parent)
	}
	if len(res.Events) != 1 {
		t.Fatalf("events = %+v, want exactly one", res.Events)
	}
	ev := res.Events[0]
	if !strings.Contains(strings.ToUpper(ev.Title), "DROP OFF") || ev.Time != "8:20 AM" || ev.Location != "School" {
		t.Errorf("event = %+v, want DROP OFF at 8:20 AM at School", ev)
	}
}

func TestEvaluate_HalloweenParity(t *testing.T) {
	e := testEngine()

	odd := e.Evaluate(date(2025, time.October, 31), Options{})
	if odd.Parent != Mother || odd.MatchedLevel != LevelHolidays || odd.MatchedRule != "halloween_odd_year" {
		t.Errorf("2025: got %s level %d rule %q", odd.Parent, odd.MatchedLevel, odd.MatchedRule)
	}

	even := e.Evaluate(date(2026, time.October, 31), Options{})
	if even.Parent != Father || even.MatchedRule != "halloween_even_year" {
		t.Errorf("2026: got %s rule %q", even.Parent, even.MatchedRule)
	}
}

func TestEvaluate_ThanksgivingBreak2025(t *testing.T) {
	e := testEngine()

	tests := []struct {
		day    time.Time
		parent Parent
	}{
		{date(2025, time.November, 26), Father},
		{date(2025, time.November, 27), Father},
		{date(2025, time.November, 28), Mother}, // exchange day
		{date(2025, time.November, 30), Mother},
	}
	for _, tt := range tests {
		res := e.Evaluate(tt.day, Options{})
		if res.MatchedLevel != LevelHolidays || res.Parent != tt.parent {
			t.Errorf("%s: got %s level %d, want %s level 2", DateKey(tt.day), res.Parent, res.MatchedLevel, tt.parent)
		}
	}

	exchange := e.Evaluate(date(2025, time.November, 28), Options{})
	if len(exchange.Events) != 1 || exchange.Events[0].Time != "12:00 PM" || exchange.Events[0].Location != LocationMotherHome {
		t.Errorf("exchange events = %+v", exchange.Events)
	}
}

func TestEvaluate_SpringBreak2026(t *testing.T) {
	e := testEngine()

	first := e.Evaluate(date(2026, time.April, 5), Options{})
	if first.Parent != Mother || first.MatchedLevel != LevelHolidays {
		t.Errorf("first half: got %s level %d", first.Parent, first.MatchedLevel)
	}

	exchange := e.Evaluate(date(2026, time.April, 8), Options{})
	if exchange.Parent != Father || len(exchange.Events) != 1 || exchange.Events[0].Time != "11:00 AM" {
		t.Errorf("exchange day: got %s events %+v", exchange.Parent, exchange.Events)
	}

	second := e.Evaluate(date(2026, time.April, 11), Options{})
	if second.Parent != Father {
		t.Errorf("second half: got %s", second.Parent)
	}
}

// Breaks are only scheduled for the years the order covers; an uncovered
// year falls through to the weekly rotation.
func TestEvaluate_UncoveredBreakYearFallsThrough(t *testing.T) {
	e := testEngine()

	// Thanksgiving 2026 has no break entry.
	res := e.Evaluate(date(2026, time.November, 26), Options{})
	if res.MatchedLevel != LevelWeekly {
		t.Errorf("got level %d, want weekly fall-through", res.MatchedLevel)
	}
}

func TestEvaluate_FifthWeekendOverride(t *testing.T) {
	e := testEngine()

	for _, day := range []time.Time{date(2026, time.January, 30), date(2026, time.January, 31)} {
		res := e.Evaluate(day, Options{})
		if res.Parent != Mother || res.MatchedRule != "weekly_fifth_weekend" {
			t.Errorf("%s: got %s rule %q, want mother weekly_fifth_weekend", DateKey(day), res.Parent, res.MatchedRule)
		}
	}
}

func TestEvaluate_WeeklyTemplate(t *testing.T) {
	e := testEngine()

	// Week of Monday 2026-02-09. The preceding Friday 2026-02-06 is Odd
	// (Mother), the following Friday 2026-02-13 is Even (Father).
	tests := []struct {
		day    time.Time
		parent Parent
		rule   string
	}{
		{date(2026, time.February, 9), Mother, "weekly_monday"},
		{date(2026, time.February, 10), Father, "weekly_tuesday"},
		{date(2026, time.February, 11), Father, "weekly_wednesday"},
		{date(2026, time.February, 12), Mother, "weekly_thursday"},
		{date(2026, time.February, 13), Father, "weekly_weekend_parity"},
		{date(2026, time.February, 14), Father, "weekly_weekend_parity"},
		{date(2026, time.February, 15), Father, "weekly_weekend_parity"},
	}
	for _, tt := range tests {
		res := e.Evaluate(tt.day, Options{})
		if res.Parent != tt.parent || res.MatchedRule != tt.rule {
			t.Errorf("%s: got (%s, %q), want (%s, %q)", DateKey(tt.day), res.Parent, res.MatchedRule, tt.parent, tt.rule)
		}
	}
}

func TestEvaluate_WeeklyMotherHolidayMonday(t *testing.T) {
	e := testEngine()

	// 2025-10-20 is a staff development Monday after Mother's Odd weekend.
	mon := e.Evaluate(date(2025, time.October, 20), Options{})
	if mon.Parent != Mother || mon.MatchedRule != "weekly_monday_holiday_extension" {
		t.Fatalf("monday: got %s rule %q", mon.Parent, mon.MatchedRule)
	}
	if _, ok := mon.Flags[FlagHolidayExtension]; !ok {
		t.Error("monday: missing holiday extension flag")
	}

	// Tuesday becomes her return day instead of Father's regular day.
	tue := e.Evaluate(date(2025, time.October, 21), Options{})
	if tue.Parent != Mother || tue.MatchedRule != "weekly_tuesday_mother_return" {
		t.Fatalf("tuesday: got %s rule %q", tue.Parent, tue.MatchedRule)
	}
	if len(tue.Events) != 1 || tue.Events[0].Location != LocationSchool {
		t.Errorf("tuesday events = %+v, want a school drop-off", tue.Events)
	}
}

// A Father holiday Monday stays his: the extension only applies to Mother
// weekends.
func TestEvaluate_FatherHolidayMondayNoExtension(t *testing.T) {
	e := testEngine()

	// MLK Day 2026-01-19 follows the Even weekend of Friday 2026-01-16.
	res := e.Evaluate(date(2026, time.January, 19), Options{})
	if res.Parent != Father || res.MatchedRule != "weekly_monday" {
		t.Errorf("got %s rule %q", res.Parent, res.MatchedRule)
	}

	tue := e.Evaluate(date(2026, time.January, 20), Options{})
	if tue.Parent != Father || tue.MatchedRule != "weekly_tuesday" {
		t.Errorf("tuesday: got %s rule %q", tue.Parent, tue.MatchedRule)
	}
}

func TestEvaluate_ThursdayPickupOnSchoolDays(t *testing.T) {
	e := testEngine()

	school := e.Evaluate(date(2026, time.February, 12), Options{})
	if len(school.Events) != 1 || school.Events[0].Time != RegularPickup {
		t.Errorf("school thursday events = %+v", school.Events)
	}

	// A summer Thursday is level 3, so use a winter-break Thursday to hit
	// the weekly rule on a non-instruction day: 2026-12-24 falls in the
	// 2026-27 break, which has no level-2 schedule yet.
	offSchool := e.Evaluate(date(2026, time.December, 24), Options{})
	if offSchool.MatchedLevel != LevelWeekly || len(offSchool.Events) != 0 {
		t.Errorf("non-instruction thursday: level %d events %+v", offSchool.MatchedLevel, offSchool.Events)
	}
}

func TestEvaluate_FridayExchangeEvents(t *testing.T) {
	e := testEngine()

	// 2026-02-13: instruction Friday into Father's weekend -> school
	// drop-off plus school pickup.
	toFather := e.Evaluate(date(2026, time.February, 13), Options{})
	if len(toFather.Events) != 2 {
		t.Fatalf("events = %+v, want drop-off and pickup", toFather.Events)
	}
	if toFather.Events[0].Kind != KindDropOff || toFather.Events[1].Kind != KindPickUp {
		t.Errorf("event kinds = %v, %v", toFather.Events[0].Kind, toFather.Events[1].Kind)
	}

	// 2026-02-06: instruction Friday into Mother's weekend -> she already
	// has the children Thursday night, so only the school pickup remains.
	toMother := e.Evaluate(date(2026, time.February, 6), Options{})
	if len(toMother.Events) != 1 || toMother.Events[0].Kind != KindPickUp {
		t.Errorf("events = %+v, want a single pickup", toMother.Events)
	}

	// 2027-01-01: a non-instruction Friday (2026-27 winter break has no
	// level-2 schedule) into Father's Even weekend -> 9:00 AM curbside
	// receive at his home.
	curbside := e.Evaluate(date(2027, time.January, 1), Options{})
	if curbside.MatchedLevel != LevelWeekly || curbside.Parent != Father {
		t.Fatalf("got %s level %d, want father level 4", curbside.Parent, curbside.MatchedLevel)
	}
	if len(curbside.Events) != 1 || curbside.Events[0].Time != CurbsideExchange || curbside.Events[0].Location != LocationFatherHome {
		t.Errorf("curbside events = %+v", curbside.Events)
	}
}

func TestEvaluate_SummerRotation(t *testing.T) {
	e := testEngine()

	for _, tt := range []struct {
		day    time.Time
		parent Parent
	}{
		{date(2026, time.June, 12), Mother}, // week 1
		{date(2026, time.June, 18), Mother}, // week 1, last day
		{date(2026, time.June, 19), Father}, // week 2
		{date(2026, time.June, 26), Mother}, // week 3
		{date(2026, time.July, 31), Father}, // week 8
		{date(2026, time.August, 6), Father},
	} {
		res := e.Evaluate(tt.day, Options{})
		if res.MatchedLevel != LevelSummer || res.Parent != tt.parent {
			t.Errorf("%s: got %s level %d, want %s level 3", DateKey(tt.day), res.Parent, res.MatchedLevel, tt.parent)
		}
	}

	// Week-boundary Fridays carry the 4:00 PM exchange.
	boundary := e.Evaluate(date(2026, time.June, 19), Options{})
	if len(boundary.Events) != 1 || boundary.Events[0].Time != SummerExchange {
		t.Errorf("boundary events = %+v", boundary.Events)
	}
	if first := e.Evaluate(date(2026, time.June, 12), Options{}); len(first.Events) != 0 {
		t.Errorf("summer start should have no exchange, got %+v", first.Events)
	}
}

func TestEvaluate_PostSummerTransition(t *testing.T) {
	e := testEngine()

	// Week 9+ delegates to the weekly template but stays a level-3 match.
	res := e.Evaluate(date(2026, time.August, 7), Options{})
	if res.MatchedLevel != LevelSummer || res.MatchedRule != "post_summer_transition" {
		t.Fatalf("got level %d rule %q", res.MatchedLevel, res.MatchedRule)
	}
	// Friday 2026-08-07 is an Odd weekend.
	if res.Parent != Mother {
		t.Errorf("parent = %s, want mother", res.Parent)
	}

	// After SummerEnd the weekly rotation reports itself again.
	after := e.Evaluate(date(2026, time.August, 17), Options{})
	if after.MatchedLevel != LevelWeekly {
		t.Errorf("after summer: level %d, want 4", after.MatchedLevel)
	}
}

func TestEvaluate_RightOfFirstRefusalFlag(t *testing.T) {
	e := testEngine()

	d := date(2026, time.February, 11)
	plain := e.Evaluate(d, Options{})
	if _, ok := plain.Flags[FlagRightOfFirstRefusal]; ok {
		t.Error("flag present without the option")
	}

	flagged := e.Evaluate(d, Options{CheckRightOfFirstRefusal: true})
	if _, ok := flagged.Flags[FlagRightOfFirstRefusal]; !ok {
		t.Fatal("flag missing with the option set")
	}

	// The modifier never changes the assignment or the events.
	if flagged.Parent != plain.Parent || len(flagged.Events) != len(plain.Events) {
		t.Error("modifier altered parent or events")
	}
}
