package custody

import "time"

// Engine evaluates custody for calendar dates against an immutable Facts
// table. It is safe for concurrent use.
type Engine struct {
	facts *Facts
}

// NewEngine creates an engine over the given facts. The facts must not be
// mutated after this call.
func NewEngine(facts *Facts) *Engine {
	if facts == nil {
		facts = DefaultFacts()
	}
	return &Engine{facts: facts}
}

// Facts exposes the engine's calendar tables for consumers that need the
// date utilities (the feed builder, handlers).
func (e *Engine) Facts() *Facts {
	return e.facts
}

// Options carries per-evaluation flags. Unknown or malformed option input
// should be mapped to the zero value by callers; the engine itself treats
// the zero Options as "no modifiers".
type Options struct {
	// CheckRightOfFirstRefusal attaches the right-of-first-refusal
	// advisory to the result.
	CheckRightOfFirstRefusal bool
}

// rofrAdvisory is the static right-of-first-refusal reminder. There is no
// absence tracking behind it: the custody order grants the right, but the
// schedule has no data about when a parent is actually away, so the flag is
// advisory only and never changes the assignment or the events.
const rofrAdvisory = "If the custodial parent will be away for four hours or more, " +
	"the other parent must be offered that time first."

// Evaluate maps a date to its custody result. The date's time-of-day is
// stripped before any rule runs. Levels are tried strictly in order and the
// first match is adopted verbatim; modifiers may then extend its flags.
// Every date produces a result: level 4 is total, and a hardcoded Father
// fallback guards the impossible case where nothing matched.
func (e *Engine) Evaluate(t time.Time, opts Options) Result {
	d := Midnight(t)

	levels := []func(time.Time) *Result{
		e.level0,
		e.level1,
		e.level2,
		e.level3,
		e.level4,
	}

	var res *Result
	for _, level := range levels {
		if res = level(d); res != nil {
			break
		}
	}
	if res == nil {
		res = &Result{
			Date:         d,
			Parent:       Father,
			Note:         "Fallback assignment",
			MatchedLevel: LevelWeekly,
			MatchedRule:  "fallback",
		}
	}

	if opts.CheckRightOfFirstRefusal {
		res.setFlag(FlagRightOfFirstRefusal, rofrAdvisory)
	}
	return *res
}
