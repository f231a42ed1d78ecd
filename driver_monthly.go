package rrecur

import "time"

// advanceMonthly steps from cur to the next candidate instant for
// FREQ=MONTHLY. With neither BYMONTHDAY nor BYDAY set, it is a plain
// wall-preserving INTERVAL-month jump that probes forward whenever the
// start day-of-month (29, 30 or 31) does not exist in a candidate month,
// per spec.md §4.E. Otherwise it repeatedly asks component D
// (monthlyCandidates) for the cursor's month and returns the first tuple
// strictly after the cursor, rolling the month/year forward by INTERVAL
// and resetting the comparison floor to (0,0,0,0) whenever a month
// offers nothing.
func advanceMonthly(anchor, cur time.Time, r Rule) (time.Time, int) {
	if len(r.ByMonthDay) == 0 && len(r.ByDay) == 0 {
		return advanceMonthlyPlain(anchor, cur, r)
	}

	year := cur.Year()
	monthIdx := int(cur.Month())
	first := true
	for {
		if year > 9999 {
			return Horizon.Add(time.Second), 0
		}
		if monthMatches(time.Date(year, time.Month(monthIdx), 1, 0, 0, 0, 0, time.UTC), r.ByMonth) {
			cands := monthlyCandidates(year, time.Month(monthIdx), r, anchor)
			floor := dayTime{}
			if first {
				floor = dayTime{cur.Day(), cur.Hour(), cur.Minute(), cur.Second()}
			}
			for _, c := range cands {
				if compareDayTime(c, floor) > 0 {
					return time.Date(year, time.Month(monthIdx), c.Day, c.Hour, c.Minute, c.Second, anchor.Nanosecond(), cur.Location()), 0
				}
			}
		}
		first = false
		monthIdx += r.Interval
		for monthIdx > 12 {
			monthIdx -= 12
			year++
		}
	}
}

// advanceMonthlyPlain handles the no-BYDAY/no-BYMONTHDAY case: the same
// day-of-month every INTERVAL months, skipping any month too short to
// contain it or, when BYMONTH restricts the candidate months, not in
// that list.
func advanceMonthlyPlain(anchor, cur time.Time, r Rule) (time.Time, int) {
	day := cur.Day()
	h, mi, s := anchor.Clock()
	monthsAhead := r.Interval
	monthIdx := int(cur.Month())
	year := cur.Year()
	for {
		total := monthIdx - 1 + monthsAhead
		y := year + total/12
		m := total%12 + 1
		if m <= 0 {
			m += 12
			y--
		}
		if y > 9999 {
			return Horizon.Add(time.Second), 0
		}
		if day <= daysInMonth(y, time.Month(m)) && monthMatches(time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC), r.ByMonth) {
			return normalizeWall(y, time.Month(m), day, h, mi, s, anchor.Nanosecond(), cur.Location())
		}
		monthsAhead += r.Interval
	}
}
