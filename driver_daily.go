package rrecur

import "time"

// advanceDaily steps from cur to the next candidate instant for
// FREQ=DAILY, honouring INTERVAL, BYDAY (as a plain day-of-week filter —
// ordinals are meaningless at this cadence and ignored) and
// BYHOUR/BYMINUTE/BYSECOND time-of-day expansion. It returns the next
// instant together with the number of hours addWall forwarded it by, if
// the INTERVAL*N-day jump landed on a DST gap.
func advanceDaily(anchor, cur time.Time, r Rule) (time.Time, int) {
	hours := r.ByHour
	if len(hours) == 0 {
		hours = []int{cur.Hour()}
	}
	minutes := r.ByMinute
	if len(minutes) == 0 {
		minutes = []int{cur.Minute()}
	}
	seconds := r.BySecond
	if len(seconds) == 0 {
		seconds = []int{cur.Second()}
	}

	if (len(r.ByHour) > 0 || len(r.ByMinute) > 0 || len(r.BySecond) > 0) && weekdayMatches(cur, r.ByDay) {
		if h, mi, s, ok := nextTimeOfDay(cur.Hour(), cur.Minute(), cur.Second(), hours, minutes, seconds); ok {
			next := time.Date(cur.Year(), cur.Month(), cur.Day(), h, mi, s, cur.Nanosecond(), cur.Location())
			if weekdayMatches(next, r.ByDay) && monthMatches(next, r.ByMonth) {
				return next, 0
			}
		}
	}

	next, jumped := dailyStepOnce(anchor, cur, r.Interval)
	for !weekdayMatches(next, r.ByDay) || !monthMatches(next, r.ByMonth) {
		next, jumped = dailyStepOnce(anchor, next, r.Interval)
	}
	return time.Date(next.Year(), next.Month(), next.Day(), hours[0], minutes[0], seconds[0], cur.Nanosecond(), cur.Location()), jumped
}

func dailyStepOnce(anchor, cur time.Time, interval int) (time.Time, int) {
	return addWall(anchor, cur, unitDays, interval)
}

// weekdayMatches reports whether date's day of week is in byDay, or
// true unconditionally when byDay is empty (no BYDAY filter set).
func weekdayMatches(date time.Time, byDay []Weekday) bool {
	if len(byDay) == 0 {
		return true
	}
	return matchesDaily(date, byDay)
}

// monthMatches reports whether date's month is in byMonth, or true
// unconditionally when byMonth is empty.
func monthMatches(date time.Time, byMonth []int) bool {
	if len(byMonth) == 0 {
		return true
	}
	m := int(date.Month())
	for _, bm := range byMonth {
		if bm == m {
			return true
		}
	}
	return false
}

func matchesDaily(date time.Time, byDay []Weekday) bool {
	dow := weekdayOf(date)
	for _, d := range byDay {
		if d.Day == dow {
			return true
		}
	}
	return false
}

// nextTimeOfDay finds the smallest (hour, minute, second) triple
// strictly greater than (curH, curMi, curS) in the cartesian product of
// hours x minutes x seconds, each assumed sorted ascending.
func nextTimeOfDay(curH, curMi, curS int, hours, minutes, seconds []int) (int, int, int, bool) {
	for _, h := range hours {
		for _, mi := range minutes {
			for _, s := range seconds {
				if h > curH || (h == curH && mi > curMi) || (h == curH && mi == curMi && s > curS) {
					return h, mi, s, true
				}
			}
		}
	}
	return 0, 0, 0, false
}
