package rrecur

import (
	"math"
	"time"

	"github.com/samber/mo"
)

// freqCoeff is the approximate number of days per unit for each
// frequency, used only to size the coarse jump in fastForwardCoarse.
// These are deliberately rough (a month is "30 days", a year "365") —
// the accelerator is a heuristic, not a calendar.
func freqCoeff(f Frequency) float64 {
	switch f {
	case Secondly:
		return 1.0 / 86400
	case Minutely:
		return 1.0 / 1440
	case Hourly:
		return 1.0 / 24
	case Daily:
		return 1
	case Weekly:
		return 7
	case Monthly:
		return 30
	case Yearly:
		return 365
	default:
		return 1
	}
}

// fastForwardCoarse implements spec.md §4.G: it repeatedly estimates how
// many intervals remain before t and skips ahead in shrinking strides,
// bringing the cursor within a few fine steps of t without materialising
// every intermediate occurrence. It is never called when COUNT bounds
// the rule (the counter must stay exact), and it degrades gracefully —
// on any overshoot it rewinds to the last known-good cursor and lets
// FastForward's fine loop finish the job.
func fastForwardCoarse(it *Iterator, t time.Time) error {
	for {
		cur, ok := it.cur.current.Get()
		if !ok {
			return nil
		}
		if !cur.Before(t) {
			return nil
		}

		days := t.Sub(cur).Hours() / 24
		coeff := freqCoeff(it.rule.Freq) * float64(it.rule.Interval)
		remaining := days / coeff
		s := int(math.Floor(remaining / 4))
		if s < 1 {
			s = 1
		}
		if s <= 4 {
			return nil
		}

		prev := it.cur
		if err := it.Advance(s); err != nil {
			return err
		}
		cur, ok = it.cur.current.Get()
		if !ok {
			// Overshot past exhaustion; rewind and let fine stepping
			// re-derive the precise boundary.
			it.cur = prev
			return nil
		}
		if !cur.Before(t) {
			// Overshot past t; restore the last cursor strictly before
			// it, take one fine step to avoid deadlocking on the same
			// jump size, then let the caller's fine loop finish.
			it.cur = prev
			if err := it.Advance(); err != nil {
				return err
			}
			return nil
		}

		// Counter is no longer exact after a coarse jump.
		it.cur.counter = mo.None[uint64]()
	}
}
