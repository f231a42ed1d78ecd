package rrecur

import (
	"iter"
	"time"

	"github.com/samber/mo"
)

// cursor is the iterator's mutable position: the tagged-union
// "Active(DateTime) | Exhausted" and "Counter::Known(u64) | ::Opaque"
// from spec.md §9's design notes, expressed with mo.Option instead of a
// nil/NaN sentinel so "no more occurrences" and "counter unknown after a
// coarse jump" can never be confused with a legitimate value.
type cursor struct {
	current  mo.Option[time.Time]
	counter  mo.Option[uint64]
	hourJump int
}

// Iterator walks the occurrence sequence a Rule anchored at a start
// instant generates. The cursor is owned exclusively by the Iterator;
// the Rule and start instant are immutable once construction succeeds,
// so two Iterators built from the same Rule are fully independent and
// need no locking, per spec.md §5.
type Iterator struct {
	rule  Rule
	start time.Time
	cfg   iteratorConfig
	cur   cursor
}

// NewIterator constructs an Iterator from a rule — a "KEY=VALUE;..."
// string or a RuleOptions value, per spec.md §6 — anchored at start.
// UNTIL earlier than start is repaired by clamping it to start, the
// "degenerate single occurrence" leniency spec.md §3 and §7 call for
// rather than a construction error.
func NewIterator(rule any, start time.Time, opts ...Option) (*Iterator, error) {
	var r Rule
	var err error
	switch v := rule.(type) {
	case string:
		r, err = ParseRule(v)
	case RuleOptions:
		r, err = NewRuleFromOptions(v)
	default:
		return nil, invalidRule("rule must be a string or RuleOptions")
	}
	if err != nil {
		return nil, err
	}
	if !r.Until.IsZero() && r.Until.Before(start) {
		r.Until = start
	}

	cfg := defaultIteratorConfig()
	for _, o := range opts {
		o(&cfg)
	}

	it := &Iterator{rule: r, start: start, cfg: cfg}
	it.Reset()
	return it, nil
}

// Rule returns a copy of the iterator's validated, normalised rule.
func (it *Iterator) Rule() Rule { return it.rule }

// Start returns the iterator's anchor instant.
func (it *Iterator) Start() time.Time { return it.start }

// Current returns a defensive clone of the occurrence the cursor points
// to, or ok=false once the sequence is exhausted.
func (it *Iterator) Current() (time.Time, bool) {
	return it.cur.current.Get()
}

// Key returns the 0-based ordinal of the current occurrence, or
// ok=false if a coarse jump (see jump.go) has made the ordinal unknown.
func (it *Iterator) Key() (uint64, bool) {
	return it.cur.counter.Get()
}

// Reset returns the cursor to ordinal 0: the start instant itself when it
// already satisfies the rule's BY-parts (RFC 5545's usual case, and
// spec.md §8 property 2's anchor-equality invariant), otherwise the
// earliest rule-conforming instant at or after start — the literal
// scenario (b) behaviour (FREQ=MONTHLY;BYDAY=MO,TU,WE,TH,FR;BYSETPOS=-1
// starting a date that is not itself the month's last weekday begins at
// that last weekday, not at start).
func (it *Iterator) Reset() {
	it.cur = cursor{current: mo.Some(it.start), counter: mo.Some(uint64(0))}
	if ruleMatchesInstant(it.rule, it.start, it.start) {
		return
	}
	next, jump, err := it.driveOnce(it.start, 0)
	if err != nil || next.After(Horizon) || (!it.rule.Until.IsZero() && next.After(it.rule.Until)) {
		it.cur.current = mo.None[time.Time]()
		return
	}
	it.cur.hourJump = jump
	it.cur.current = mo.Some(next)
}

// IsInfinite reports whether neither COUNT nor UNTIL bounds the rule.
func (it *Iterator) IsInfinite() bool {
	return it.rule.IsInfinite()
}

// Clone returns an independent Iterator sharing the same immutable Rule
// and start but its own cursor — the constructor-shaped equivalent of
// spec.md §5's "two concurrent iterators... share no mutable state"
// guarantee, instead of leaving the caller to reconstruct one by hand.
func (it *Iterator) Clone() *Iterator {
	c := *it
	return &c
}

// Advance moves the cursor forward by n occurrences (default 1),
// stopping early if the sequence is exhausted first. n>1 is used by the
// jump accelerator to combine several intervals into one call; the
// ordinal counter advances with it as long as it is still known.
func (it *Iterator) Advance(n ...int) error {
	amount := 1
	if len(n) > 0 && n[0] > 0 {
		amount = n[0]
	}
	for i := 0; i < amount; i++ {
		if _, ok := it.cur.current.Get(); !ok {
			return nil
		}
		if err := it.step(); err != nil {
			return err
		}
	}
	return nil
}

// driveOnce asks the frequency driver matching the rule for the next
// candidate strictly after cur, given the hour-jump carried in from the
// previous step (only consulted by the hourly driver).
func (it *Iterator) driveOnce(cur time.Time, hourJumpIn int) (time.Time, int, error) {
	switch it.rule.Freq {
	case Secondly, Minutely:
		return advanceSubHour(cur, it.rule), 0, nil
	case Hourly:
		next, jump := advanceHourly(it.start, cur, it.rule, hourJumpIn)
		return next, jump, nil
	case Daily:
		next, jump := advanceDaily(it.start, cur, it.rule)
		return next, jump, nil
	case Weekly:
		next, jump := advanceWeekly(it.start, cur, it.rule)
		return next, jump, nil
	case Monthly:
		next, jump := advanceMonthly(it.start, cur, it.rule)
		return next, jump, nil
	case Yearly:
		return advanceYearly(it.start, cur, it.rule, it.cfg.yearlySkipUpperLimit)
	default:
		return time.Time{}, 0, invalidRule("unsupported FREQ")
	}
}

// step advances the cursor by exactly one occurrence, dispatching to the
// frequency driver that matches the rule and applying the universal
// termination condition from spec.md §4.E afterwards.
func (it *Iterator) step() error {
	cur, ok := it.cur.current.Get()
	if !ok {
		return nil
	}

	next, jump, err := it.driveOnce(cur, it.cur.hourJump)
	if err != nil {
		it.cur.current = mo.None[time.Time]()
		return err
	}
	it.cur.hourJump = jump

	counter, known := it.cur.counter.Get()
	if known {
		counter++
	}

	exhausted := next.After(Horizon) ||
		(!it.rule.Until.IsZero() && next.After(it.rule.Until)) ||
		(it.rule.Count > 0 && known && counter >= uint64(it.rule.Count))
	if exhausted {
		it.cur.current = mo.None[time.Time]()
		return nil
	}

	it.cur.current = mo.Some(next)
	if known {
		it.cur.counter = mo.Some(counter)
	}
	return nil
}

// FastForward advances the cursor until Current() >= t. On a rule with
// no COUNT it first invokes the jump accelerator (jump.go) to skip many
// intervals at once; it always finishes with exact fine stepping so the
// result matches naive step-by-step iteration, per spec.md §8 property 8.
func (it *Iterator) FastForward(t time.Time) error {
	cur, ok := it.cur.current.Get()
	if ok && !cur.Before(t) {
		return nil
	}
	if it.rule.Count == 0 {
		if err := fastForwardCoarse(it, t); err != nil {
			return err
		}
	}
	for {
		cur, ok = it.cur.current.Get()
		if !ok || !cur.Before(t) {
			return nil
		}
		if err := it.Advance(); err != nil {
			return err
		}
	}
}

// FastForwardBefore advances to the last occurrence strictly before t —
// spec.md §8 property 9 — or leaves the cursor at start if no occurrence
// qualifies.
func (it *Iterator) FastForwardBefore(t time.Time) error {
	cur, ok := it.cur.current.Get()
	if !ok {
		return nil
	}
	if !cur.Before(t) {
		it.Reset()
		if cur, ok = it.cur.current.Get(); !ok || !cur.Before(t) {
			return nil
		}
	}
	for {
		prev := it.cur
		if err := it.Advance(); err != nil {
			return err
		}
		cur, ok = it.cur.current.Get()
		if !ok || !cur.Before(t) {
			it.cur = prev
			return nil
		}
	}
}

// FastForwardToEnd advances to the final valid occurrence of a bounded
// rule. It fails with ErrLogicError on an infinite rule, per spec.md §7.
func (it *Iterator) FastForwardToEnd() error {
	if it.IsInfinite() {
		return ErrLogicError
	}
	for {
		prev := it.cur
		if err := it.Advance(); err != nil {
			return err
		}
		if _, ok := it.cur.current.Get(); !ok {
			it.cur = prev
			return nil
		}
	}
}

// All drains up to limit occurrences (0 meaning unlimited, only legal on
// a bounded rule) starting from the cursor's current position, without
// mutating it. Supplemented from the pack's teacher (RRule.All()) and
// prasrvenkat-hron/go/hron.go's Occurrences, but requiring an explicit
// cap on an infinite rule instead of iterating forever.
func (it *Iterator) All(limit int) []time.Time {
	if limit <= 0 && it.IsInfinite() {
		return nil
	}
	clone := it.Clone()
	var out []time.Time
	for {
		t, ok := clone.Current()
		if !ok {
			break
		}
		out = append(out, t)
		if limit > 0 && len(out) >= limit {
			break
		}
		if err := clone.Advance(); err != nil {
			break
		}
	}
	return out
}

// Between collects the occurrences within [after, before] (exclusive of
// both ends when inc is false), without mutating the receiver's cursor —
// grounded in the teacher's RRule.Between(after, before, inc).
func (it *Iterator) Between(after, before time.Time, inc bool) []time.Time {
	clone := it.Clone()
	if err := clone.FastForward(after); err != nil {
		return nil
	}
	var out []time.Time
	for {
		t, ok := clone.Current()
		if !ok {
			return out
		}
		switch {
		case t.Before(after) || (!inc && t.Equal(after)):
			// still short of the window
		case t.After(before) || (!inc && t.Equal(before)):
			return out
		default:
			out = append(out, t)
		}
		if err := clone.Advance(); err != nil {
			return out
		}
	}
}

// Seq returns a Go 1.23 range-over-func iterator over the occurrence
// sequence starting from the receiver's current position, leaving the
// receiver's own cursor untouched — grounded in
// prasrvenkat-hron/go/hron.go's Occurrences/Between, which return
// iter.Seq[time.Time] rather than a materialised slice.
func (it *Iterator) Seq() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		clone := it.Clone()
		for {
			t, ok := clone.Current()
			if !ok {
				return
			}
			if !yield(t) {
				return
			}
			if err := clone.Advance(); err != nil {
				return
			}
		}
	}
}

// ruleMatchesInstant reports whether t already satisfies every BY-part of
// r, per frequency, so Reset can tell whether start is itself the rule's
// first occurrence or merely the seed from which to seek one.
func ruleMatchesInstant(r Rule, anchor, t time.Time) bool {
	switch r.Freq {
	case Secondly:
		return true
	case Minutely:
		return len(r.BySecond) == 0 || intIn(t.Second(), r.BySecond)
	case Hourly:
		if len(r.ByMinute) > 0 && !intIn(t.Minute(), r.ByMinute) {
			return false
		}
		if len(r.BySecond) > 0 && !intIn(t.Second(), r.BySecond) {
			return false
		}
		return true
	case Daily:
		if !weekdayMatches(t, r.ByDay) || !monthMatches(t, r.ByMonth) {
			return false
		}
		if len(r.ByHour) > 0 && !intIn(t.Hour(), r.ByHour) {
			return false
		}
		if len(r.ByMinute) > 0 && !intIn(t.Minute(), r.ByMinute) {
			return false
		}
		if len(r.BySecond) > 0 && !intIn(t.Second(), r.BySecond) {
			return false
		}
		return true
	case Weekly:
		weekStart := startOfWeek(t, r.WeekStart.Day)
		for _, c := range weeklyCandidates(weekStart, r, anchor, t.Location()) {
			if c.Equal(t) {
				return true
			}
		}
		return false
	case Monthly:
		if !monthMatches(t, r.ByMonth) {
			return false
		}
		return dayTimeIn(monthlyCandidates(t.Year(), t.Month(), r, anchor), t)
	case Yearly:
		if len(r.ByEaster) > 0 || len(r.ByWeekNo) > 0 || len(r.ByYearDay) > 0 || len(r.ByMonth) > 0 {
			return yearlyMatchesInstant(r, anchor, t)
		}
		return t.Month() == anchor.Month() && t.Day() == anchor.Day()
	default:
		return true
	}
}

func intIn(v int, set []int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}
