package rrecur

import (
	"sort"
	"time"
)

// advanceWeekly steps from cur to the next candidate instant for
// FREQ=WEEKLY. With no BYDAY/BYHOUR it is a plain wall-preserving
// INTERVAL-week jump; otherwise it reuses monthly expansion's
// candidate-then-sort technique (component D) at week granularity: list
// every BYDAY weekday's date in the week containing cur, cross it with
// BYHOUR/BYMINUTE/BYSECOND, sort, and take the first candidate strictly
// after cur, rolling to the next INTERVAL-th week (anchored on WKST) when
// the current week is exhausted.
func advanceWeekly(anchor, cur time.Time, r Rule) (time.Time, int) {
	if len(r.ByHour) == 0 && len(r.ByDay) == 0 {
		return addWall(anchor, cur, unitWeeks, r.Interval)
	}

	week := startOfWeek(cur, r.WeekStart.Day)
	for {
		for _, c := range weeklyCandidates(week, r, anchor, cur.Location()) {
			if c.After(cur) {
				return c, 0
			}
		}
		week = week.AddDate(0, 0, 7*r.Interval)
	}
}

// startOfWeek returns midnight on the wkst weekday of the week containing
// t (0=Sunday..6=Saturday convention, matching weekdayOf), built from
// calendar.go's previousWeekdayOnOrBefore.
func startOfWeek(t time.Time, wkst int) time.Time {
	d := previousWeekdayOnOrBefore(t, wkst)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// weeklyCandidates lists the sorted date-times that BYDAY (as a plain
// weekday filter — numeric offsets are meaningless at weekly cadence and
// ignored per spec.md §3 invariant 6) and BYHOUR/BYMINUTE/BYSECOND
// produce within the single week starting at weekStart. With no BYDAY,
// the week's single matching day is the one carrying ref's weekday.
func weeklyCandidates(weekStart time.Time, r Rule, ref time.Time, loc *time.Location) []time.Time {
	var days []time.Time
	if len(r.ByDay) > 0 {
		seen := map[int]bool{}
		for _, d := range r.ByDay {
			if seen[d.Day] {
				continue
			}
			seen[d.Day] = true
			days = append(days, nextWeekdayOnOrAfter(weekStart, d.Day))
		}
	} else {
		days = []time.Time{nextWeekdayOnOrAfter(weekStart, weekdayOf(ref))}
	}

	hours := r.ByHour
	if len(hours) == 0 {
		hours = []int{ref.Hour()}
	}
	minutes := r.ByMinute
	if len(minutes) == 0 {
		minutes = []int{ref.Minute()}
	}
	seconds := r.BySecond
	if len(seconds) == 0 {
		seconds = []int{ref.Second()}
	}

	var out []time.Time
	for _, day := range days {
		for _, h := range hours {
			for _, mi := range minutes {
				for _, s := range seconds {
					out = append(out, time.Date(day.Year(), day.Month(), day.Day(), h, mi, s, ref.Nanosecond(), loc))
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
