package rrecur

import "time"

// advanceHourly steps from cur to the next candidate instant for
// FREQ=HOURLY, honouring INTERVAL and, when present, BYMINUTE/BYSECOND
// (BYHOUR is meaningless at this granularity and is ignored, matching
// BYMONTHDAY's irrelevance to FREQ=DAILY — a BY-part that cannot
// constrain anything at this cadence is simply inert rather than an
// error, per spec.md's BY-part filtering rule).
//
// If BYMINUTE/BYSECOND are set, every hour on the INTERVAL grid is
// walked and each expands into the cartesian product of its
// minute/second candidates in order; otherwise the step is a plain
// physical-duration INTERVAL-hour add, which already lands on the
// correct wall-clock hour across a DST transition (adding real elapsed
// time, not a naive hour-of-day increment).
//
// When INTERVAL>1, a spring-forward can displace a single hop by more
// than INTERVAL wall-hours (the missing local hour is skipped for
// free); hourJumpIn carries that displacement in from the previous call
// so it can be undone before this step, keeping the sequence on the
// INTERVAL grid rather than compounding the gap forever. When
// INTERVAL=1 the natural hourly cadence is allowed to drift across the
// gap, so no compensation is tracked.
func advanceHourly(anchor, cur time.Time, r Rule, hourJumpIn int) (time.Time, int) {
	minutes := r.ByMinute
	if len(minutes) == 0 {
		minutes = []int{cur.Minute()}
	}
	seconds := r.BySecond
	if len(seconds) == 0 {
		seconds = []int{cur.Second()}
	}

	if mi, s, ok := nextInHour(cur.Minute(), cur.Second(), minutes, seconds); ok {
		return time.Date(cur.Year(), cur.Month(), cur.Day(), cur.Hour(), mi, s, cur.Nanosecond(), cur.Location()), hourJumpIn
	}

	base := cur
	if r.Interval > 1 && hourJumpIn != 0 {
		base = cur.Add(-time.Duration(hourJumpIn) * time.Hour)
	}
	expectedHour := (base.Hour() + r.Interval) % 24
	next := base.Add(time.Duration(r.Interval) * time.Hour)
	aligned := time.Date(next.Year(), next.Month(), next.Day(), next.Hour(), minutes[0], seconds[0], cur.Nanosecond(), cur.Location())

	jump := 0
	if r.Interval > 1 {
		jump = aligned.Hour() - expectedHour
		switch {
		case jump > 12:
			jump -= 24
		case jump < -12:
			jump += 24
		}
	}
	return aligned, jump
}

// nextInHour finds the smallest (minute, second) pair strictly greater
// than (curMin, curSec) among the cartesian product of minutes x
// seconds, both assumed sorted ascending.
func nextInHour(curMin, curSec int, minutes, seconds []int) (int, int, bool) {
	for _, mi := range minutes {
		for _, s := range seconds {
			if mi > curMin || (mi == curMin && s > curSec) {
				return mi, s, true
			}
		}
	}
	return 0, 0, false
}
