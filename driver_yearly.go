package rrecur

import (
	"sort"
	"time"
)

// advanceYearly steps from cur to the next candidate instant for
// FREQ=YEARLY, dispatching on which BY-parts are present per spec.md
// §4.E's case split. skipUpperLimit controls horizon behaviour: when
// true (the default, yearly_skip_upper_limit), a scan that runs off the
// end of the representable calendar silently reports exhaustion; when
// false it reports ErrHorizonExceeded instead.
//
// BYMONTH with no BYDAY/BYMONTHDAY collapses into the same per-month
// scan as BYMONTH-with-BYDAY, because component D's monthlyCandidates
// already falls back to {start-day-of-month} when neither is present —
// the spec's two BYMONTH bullets describe the same result by two routes,
// and only one needs implementing.
func advanceYearly(anchor, cur time.Time, r Rule, skipUpperLimit bool) (time.Time, int, error) {
	switch {
	case len(r.ByEaster) > 0:
		return yearlyByEaster(anchor, cur, r, skipUpperLimit)
	case len(r.ByWeekNo) > 0:
		return yearlyByWeekNo(anchor, cur, r, skipUpperLimit)
	case len(r.ByYearDay) > 0:
		return yearlyByYearDay(anchor, cur, r, skipUpperLimit)
	case len(r.ByMonth) > 0:
		return yearlyByMonth(anchor, cur, r, skipUpperLimit)
	default:
		return yearlyPlain(anchor, cur, r, skipUpperLimit)
	}
}

func handleYearlyHorizon(skipUpperLimit bool) (time.Time, int, error) {
	if skipUpperLimit {
		return Horizon.Add(time.Second), 0, nil
	}
	return time.Time{}, 0, ErrHorizonExceeded
}

// yearlyPlain handles "no BY-part except default": add INTERVAL years,
// probing forward by further INTERVAL multiples when the anchor is
// Feb 29 and the candidate year is not a leap year.
func yearlyPlain(anchor, cur time.Time, r Rule, skipUpperLimit bool) (time.Time, int, error) {
	isFeb29 := anchor.Month() == time.February && anchor.Day() == 29
	h, mi, s := anchor.Clock()
	for k := 1; ; k++ {
		year := cur.Year() + k*r.Interval
		if year > 9999 {
			return handleYearlyHorizon(skipUpperLimit)
		}
		if isFeb29 && !isLeap(year) {
			continue
		}
		t, jump := normalizeWall(year, anchor.Month(), anchor.Day(), h, mi, s, anchor.Nanosecond(), cur.Location())
		return t, jump, nil
	}
}

// weekdaysOrMonday returns the weekdays byDay names, or {Monday} when
// byDay is empty, per spec.md §4.E's BYWEEKNO bullet.
func weekdaysOrMonday(byDay []Weekday) []int {
	if len(byDay) == 0 {
		return []int{MO.Day}
	}
	seen := map[int]bool{}
	var out []int
	for _, d := range byDay {
		if !seen[d.Day] {
			seen[d.Day] = true
			out = append(out, d.Day)
		}
	}
	return out
}

// yearlyByWeekNo collects BYWEEKNO x (BYDAY weekdays or Monday) into
// ISO-week dates for the current year, retains those strictly after cur,
// and returns the minimum — advancing the year by INTERVAL whenever a
// year offers nothing.
func yearlyByWeekNo(anchor, cur time.Time, r Rule, skipUpperLimit bool) (time.Time, int, error) {
	weekdays := weekdaysOrMonday(r.ByDay)
	for year := cur.Year(); ; year += r.Interval {
		if year > 9999 {
			return handleYearlyHorizon(skipUpperLimit)
		}
		var cands []time.Time
		for _, wk := range r.ByWeekNo {
			week := wk
			if week < 0 {
				week = isoWeeksInYear(year) + 1 + week
			}
			for _, wd := range weekdays {
				date := setISOWeek(year, week, isoWeekdayNum(wd))
				cands = append(cands, combineWallClock(date, anchor, cur.Location()))
			}
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].Before(cands[j]) })
		for _, c := range cands {
			if c.After(cur) {
				return c, 0, nil
			}
		}
	}
}

// yearlyByEaster applies each BYEASTER entry as a day offset from the
// current year's Western Gregorian Easter Sunday (easterSunday,
// calendar.go), filters by BYDAY weekdays when present, retains those
// strictly after cur, and returns the minimum — the non-standard
// extension BY-part per SPEC_FULL.md §10.1.
func yearlyByEaster(anchor, cur time.Time, r Rule, skipUpperLimit bool) (time.Time, int, error) {
	for year := cur.Year(); ; year += r.Interval {
		if year > 9999 {
			return handleYearlyHorizon(skipUpperLimit)
		}
		em, ed := easterSunday(year)
		easter := time.Date(year, em, ed, 0, 0, 0, 0, cur.Location())
		var cands []time.Time
		for _, off := range r.ByEaster {
			date := easter.AddDate(0, 0, off)
			if len(r.ByDay) > 0 && !matchesDaily(date, r.ByDay) {
				continue
			}
			cands = append(cands, combineWallClock(date, anchor, cur.Location()))
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].Before(cands[j]) })
		for _, c := range cands {
			if c.After(cur) {
				return c, 0, nil
			}
		}
	}
}

// yearlyByYearDay computes each BYYEARDAY entry's absolute date in the
// current year (positive counts from Jan 1, negative from Dec 31),
// filters by BYDAY weekdays when present, retains those strictly after
// cur, and returns the minimum.
func yearlyByYearDay(anchor, cur time.Time, r Rule, skipUpperLimit bool) (time.Time, int, error) {
	for year := cur.Year(); ; year += r.Interval {
		if year > 9999 {
			return handleYearlyHorizon(skipUpperLimit)
		}
		dim := daysInYear(year)
		var cands []time.Time
		for _, yd := range r.ByYearDay {
			d := yd
			if d < 0 {
				d = dim + 1 + d
			}
			if d < 1 || d > dim {
				continue
			}
			jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, cur.Location())
			date := jan1.AddDate(0, 0, d-1)
			if len(r.ByDay) > 0 && !matchesDaily(date, r.ByDay) {
				continue
			}
			cands = append(cands, combineWallClock(date, anchor, cur.Location()))
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].Before(cands[j]) })
		for _, c := range cands {
			if c.After(cur) {
				return c, 0, nil
			}
		}
	}
}

// yearlyMatchesInstant reports whether t is itself a member of the BY-part
// expanded candidate set for its own year, mirroring whichever of
// yearlyByWeekNo/yearlyByYearDay/yearlyByMonth's candidate construction
// applies — used to decide whether the anchor instant qualifies as the
// rule's own first occurrence instead of merely its seed.
func yearlyMatchesInstant(r Rule, anchor, t time.Time) bool {
	switch {
	case len(r.ByEaster) > 0:
		em, ed := easterSunday(t.Year())
		easter := time.Date(t.Year(), em, ed, 0, 0, 0, 0, t.Location())
		for _, off := range r.ByEaster {
			date := easter.AddDate(0, 0, off)
			if len(r.ByDay) > 0 && !matchesDaily(date, r.ByDay) {
				continue
			}
			if combineWallClock(date, anchor, t.Location()).Equal(t) {
				return true
			}
		}
		return false

	case len(r.ByWeekNo) > 0:
		weekdays := weekdaysOrMonday(r.ByDay)
		year := t.Year()
		for _, wk := range r.ByWeekNo {
			week := wk
			if week < 0 {
				week = isoWeeksInYear(year) + 1 + week
			}
			for _, wd := range weekdays {
				date := setISOWeek(year, week, isoWeekdayNum(wd))
				if combineWallClock(date, anchor, t.Location()).Equal(t) {
					return true
				}
			}
		}
		return false

	case len(r.ByYearDay) > 0:
		year := t.Year()
		dim := daysInYear(year)
		for _, yd := range r.ByYearDay {
			d := yd
			if d < 0 {
				d = dim + 1 + d
			}
			if d < 1 || d > dim {
				continue
			}
			jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
			date := jan1.AddDate(0, 0, d-1)
			if len(r.ByDay) > 0 && !matchesDaily(date, r.ByDay) {
				continue
			}
			if combineWallClock(date, anchor, t.Location()).Equal(t) {
				return true
			}
		}
		return false

	default: // BYMONTH
		if !monthMatches(t, r.ByMonth) {
			return false
		}
		return dayTimeIn(monthlyCandidates(t.Year(), t.Month(), r, anchor), t)
	}
}

// yearlyByMonth iterates BYMONTH's months in ascending order within the
// current year, asking component D for each, and returns the first
// occurrence strictly after cur — within the cursor's own month first,
// then the absolute first candidate of any later BYMONTH month, rolling
// the year forward by INTERVAL once every listed month is exhausted.
func yearlyByMonth(anchor, cur time.Time, r Rule, skipUpperLimit bool) (time.Time, int, error) {
	months := append([]int(nil), r.ByMonth...)
	sort.Ints(months)

	startYear := cur.Year()
	for year := startYear; ; year += r.Interval {
		if year > 9999 {
			return handleYearlyHorizon(skipUpperLimit)
		}
		for _, m := range months {
			if year == startYear && m < int(cur.Month()) {
				continue
			}
			cands := monthlyCandidates(year, time.Month(m), r, anchor)
			floor := dayTime{}
			if year == startYear && m == int(cur.Month()) {
				floor = dayTime{cur.Day(), cur.Hour(), cur.Minute(), cur.Second()}
			}
			for _, c := range cands {
				if compareDayTime(c, floor) > 0 {
					return time.Date(year, time.Month(m), c.Day, c.Hour, c.Minute, c.Second, anchor.Nanosecond(), cur.Location()), 0, nil
				}
			}
		}
	}
}
