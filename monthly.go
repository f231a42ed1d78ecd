package rrecur

import (
	"sort"
	"time"
)

// dayTime is a candidate (day-of-month, hour, minute, second) tuple
// produced by monthly expansion, ordered lexicographically.
type dayTime struct {
	Day, Hour, Minute, Second int
}

func compareDayTime(a, b dayTime) int {
	switch {
	case a.Day != b.Day:
		return a.Day - b.Day
	case a.Hour != b.Hour:
		return a.Hour - b.Hour
	case a.Minute != b.Minute:
		return a.Minute - b.Minute
	default:
		return a.Second - b.Second
	}
}

// monthlyCandidatesRaw produces the sorted, de-duplicated list of
// (day, hour, minute, second) tuples for (year, month) per spec.md §4.D
// steps 1–5, before the BYSETPOS filter. ref supplies the fallback
// day/hour/minute/second values used when the corresponding BY-part is
// absent.
//
// When BYDAY carries a numeric offset, it is intersected against
// BYMONTHDAY (when both are present) after the offset has already
// selected a single date per BYDAY entry — a caller combining the two
// should not expect a union.
func monthlyCandidatesRaw(year int, month time.Month, r Rule, ref time.Time) []dayTime {
	dim := daysInMonth(year, month)

	var bdSet map[int]bool
	if len(r.ByDay) > 0 {
		bdSet = map[int]bool{}
		for _, entry := range r.ByDay {
			var matches []int
			for d := 1; d <= dim; d++ {
				date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
				if weekdayOf(date) == entry.Day {
					matches = append(matches, d)
				}
			}
			switch {
			case entry.N == 0:
				for _, d := range matches {
					bdSet[d] = true
				}
			case entry.N > 0:
				if entry.N <= len(matches) {
					bdSet[matches[entry.N-1]] = true
				}
			default:
				idx := len(matches) + entry.N
				if idx >= 0 {
					bdSet[matches[idx]] = true
				}
			}
		}
	}

	var bmdSet map[int]bool
	if len(r.ByMonthDay) > 0 {
		bmdSet = map[int]bool{}
		for _, v := range r.ByMonthDay {
			d := v
			if v < 0 {
				d = dim + 1 + v
			}
			if d >= 1 && d <= dim {
				bmdSet[d] = true
			}
		}
	}

	var days []int
	switch {
	case bdSet != nil && bmdSet != nil:
		for d := range bdSet {
			if bmdSet[d] {
				days = append(days, d)
			}
		}
	case bdSet != nil:
		for d := range bdSet {
			days = append(days, d)
		}
	case bmdSet != nil:
		for d := range bmdSet {
			days = append(days, d)
		}
	default:
		days = []int{ref.Day()}
	}
	sort.Ints(days)

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

	var out []dayTime
	for _, d := range days {
		for _, h := range hours {
			for _, mi := range minutes {
				for _, s := range seconds {
					out = append(out, dayTime{d, h, mi, s})
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return compareDayTime(out[i], out[j]) < 0 })
	return dedupeDayTime(out)
}

func dedupeDayTime(in []dayTime) []dayTime {
	if len(in) == 0 {
		return in
	}
	out := in[:1]
	for _, dt := range in[1:] {
		if dt != out[len(out)-1] {
			out = append(out, dt)
		}
	}
	return out
}

// dayTimeIn reports whether t's (day, hour, minute, second) appears among
// cands, used to test whether a specific instant is itself a member of a
// month's BY-part-expanded candidate set.
func dayTimeIn(cands []dayTime, t time.Time) bool {
	for _, c := range cands {
		if c.Day == t.Day() && c.Hour == t.Hour() && c.Minute == t.Minute() && c.Second == t.Second() {
			return true
		}
	}
	return false
}

// monthlyCandidates returns monthlyCandidatesRaw filtered by BYSETPOS, if
// present. The result is a subsequence of the raw list in the same
// (ascending) order — BYSETPOS only selects which elements survive, it
// never reorders them.
func monthlyCandidates(year int, month time.Month, r Rule, ref time.Time) []dayTime {
	raw := monthlyCandidatesRaw(year, month, r, ref)
	if len(r.BySetPos) == 0 {
		return raw
	}
	return applyBySetPos(raw, r.BySetPos)
}

func applyBySetPos(raw []dayTime, pos []int) []dayTime {
	n := len(raw)
	selected := make(map[int]bool, len(pos))
	for _, p := range pos {
		var idx int
		if p > 0 {
			idx = p - 1
		} else {
			idx = n + p
		}
		if idx < 0 || idx >= n {
			continue
		}
		selected[idx] = true
	}
	var out []dayTime
	for i, dt := range raw {
		if selected[i] {
			out = append(out, dt)
		}
	}
	return out
}
