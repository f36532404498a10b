package custody

import "time"

// Parent identifies who has custody on a given date.
type Parent string

const (
	Mother Parent = "mother"
	Father Parent = "father"
	// NoParent is only produced by the hardcoded evaluator fallback,
	// which should be unreachable because level 4 is total.
	NoParent Parent = "none"
)

// EventKind categorizes an exchange by who moves the children and in
// which direction.
type EventKind string

const (
	// KindDropOff: the current parent delivers the children.
	KindDropOff EventKind = "drop_off"
	// KindPickUp: the next parent collects the children.
	KindPickUp EventKind = "pick_up"
	// KindReceive: the receiving parent takes over at their own home.
	KindReceive EventKind = "receive"
)

// Exchange locations. The location of a transfer depends on whether the
// date is an instruction day: school-day transfers happen at school,
// everything else is curbside at the receiving parent's home (or at camp
// during the summer rotation).
const (
	LocationSchool       = "School"
	LocationMotherHome   = "Mother's Home (curbside)"
	LocationFatherHome   = "Father's Home (curbside)"
	LocationCampHisHouse = "Camp/His House"
)

// Exchange time constants from the custody order. These strings are
// rendered verbatim in the UI and the iCal feed.
const (
	RegularPickup    = "2:15 PM (Child A) / 2:50 PM (Child B)"
	MinimumDayPickup = "1:10 PM (Child A) / 1:25 PM (Child B)"
	SchoolDropOff    = "8:20 AM"
	CurbsideExchange = "9:00 AM"
	SummerExchange   = "4:00 PM"
)

// ExchangeEvent is a scheduled physical custody transfer on a date.
type ExchangeEvent struct {
	Kind     EventKind `json:"kind"`
	Title    string    `json:"title"`
	Time     string    `json:"time"`
	Location string    `json:"location"`
}

// Flag names attached by modifiers.
const (
	FlagRightOfFirstRefusal = "right_of_first_refusal"
	FlagHolidayExtension    = "holiday_extension"
)

// Result is the outcome of evaluating a single date. It is created fresh
// per evaluation and never mutated afterwards except by modifiers, which
// may only extend Flags.
type Result struct {
	Date         time.Time       `json:"date"`
	Parent       Parent          `json:"parent"`
	Events       []ExchangeEvent `json:"events,omitempty"`
	Note         string          `json:"note"`
	MatchedLevel int             `json:"matched_level"`
	MatchedRule  string          `json:"matched_rule"`
	Flags        map[string]string `json:"flags,omitempty"`
}

// setFlag attaches a modifier flag, allocating the map lazily.
func (r *Result) setFlag(name, payload string) {
	if r.Flags == nil {
		r.Flags = map[string]string{}
	}
	r.Flags[name] = payload
}

// homeOf returns the curbside location at the given parent's home.
func homeOf(p Parent) string {
	if p == Mother {
		return LocationMotherHome
	}
	return LocationFatherHome
}

// returnEvent builds the standard morning return transfer to the other
// parent: drop-off at school on instruction days, otherwise a 9:00 AM
// curbside hand-off at the receiving parent's home.
func (f *Facts) returnEvent(d time.Time, receiving Parent) ExchangeEvent {
	if f.IsInstructionDay(d) {
		return ExchangeEvent{
			Kind:     KindDropOff,
			Title:    "DROP OFF at school",
			Time:     SchoolDropOff,
			Location: LocationSchool,
		}
	}
	return ExchangeEvent{
		Kind:     KindDropOff,
		Title:    "DROP OFF curbside",
		Time:     CurbsideExchange,
		Location: homeOf(receiving),
	}
}

// pickupEvent builds an after-school pickup by the custodial parent.
func (f *Facts) pickupEvent(d time.Time) ExchangeEvent {
	return ExchangeEvent{
		Kind:     KindPickUp,
		Title:    "PICK UP from school",
		Time:     f.PickupTime(d),
		Location: LocationSchool,
	}
}
