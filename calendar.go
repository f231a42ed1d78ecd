package rrecur

import "time"

// Horizon is the latest instant the engine will ever produce, per
// spec.md §3 and §6. HorizonUnix is the same instant as Unix seconds.
var Horizon = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// HorizonUnix is Horizon expressed in seconds since the Unix epoch.
const HorizonUnix int64 = 253402300799

// wallUnit identifies the granularity passed to addWall.
type wallUnit int

const (
	unitHours wallUnit = iota
	unitDays
	unitWeeks
	unitMonths
	unitYears
)

// weekdayOf returns the day of week, 0 for Sunday through 6 for Saturday —
// the domain convention this package uses throughout, which happens to be
// exactly what time.Time.Weekday already returns.
func weekdayOf(t time.Time) int {
	return int(t.Weekday())
}

// isoWeekDayOf returns the ISO 8601 day of week, 1 for Monday through 7
// for Sunday.
func isoWeekDayOf(t time.Time) int {
	return ((weekdayOf(t) + 6) % 7) + 1
}

// daysInMonth returns the number of days in the given Gregorian month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// isLeap reports whether year is a Gregorian leap year.
func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysInYear returns 365 or 366.
func daysInYear(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

// isoWeeksInYear returns 52 or 53, per the ISO 8601 rule that a year has
// 53 weeks iff January 1st falls on a Thursday, or it's a leap year and
// January 1st falls on a Wednesday.
func isoWeeksInYear(year int) int {
	p := func(y int) int {
		return (y + y/4 - y/100 + y/400) % 7
	}
	if p(year) == 4 || p(year-1) == 3 {
		return 53
	}
	return 52
}

// setISOWeek constructs a date from an ISO 8601 (year, week, weekday)
// triple, where weekday is 1 (Monday) through 7 (Sunday). Per ISO 8601,
// the week containing the year's first Thursday is week 1.
func setISOWeek(year, week, weekday int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	mondayWeek1 := jan4.AddDate(0, 0, -(isoWeekDayOf(jan4) - 1))
	return mondayWeek1.AddDate(0, 0, (week-1)*7+(weekday-1))
}

// combineWallClock returns a time built from date's year/month/day, the
// time-of-day of clock, and loc — the same "reapply the anchor's
// wall-clock time after doing date math" helper
// zurustar-sdd01/engine.go calls combineDateTime.
func combineWallClock(date, clock time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	h, mi, s := clock.Clock()
	return time.Date(y, m, d, h, mi, s, clock.Nanosecond(), loc)
}

// normalizeWall builds a time.Time from broken-down fields and reports how
// many hours, if any, the instant was forwarded because the requested
// wall-clock time does not exist in loc (a DST spring-forward gap). Go's
// time.Date never errors on a nonexistent local time; it silently resolves
// to a valid instant, so the forwarding amount has to be recovered by
// comparing the fields we asked for against the fields the resulting
// instant actually reports.
func normalizeWall(year int, month time.Month, day, hour, min, sec, nsec int, loc *time.Location) (time.Time, int) {
	t := time.Date(year, month, day, hour, min, sec, nsec, loc)
	ny, nm, nd := t.Date()
	nh, nmi, nsAct := t.Clock()
	if ny == year && nm == month && nd == day && nh == hour && nmi == min && nsAct == sec {
		return t, 0
	}
	intended := time.Date(year, month, day, hour, min, sec, nsec, time.UTC)
	actual := time.Date(ny, nm, nd, nh, nmi, nsAct, nsec, time.UTC)
	hours := int(actual.Sub(intended) / time.Hour)
	return t, hours
}

// addWall advances dt by n units of the given granularity. For units of a
// day or coarser, the anchor's wall-clock time-of-day is reapplied after
// the date arithmetic, and any resulting nonexistent local time (a DST
// gap) is forwarded to the next legal instant; the second return value is
// the number of hours forwarded, observable to callers per spec.
func addWall(anchor, dt time.Time, unit wallUnit, n int) (time.Time, int) {
	switch unit {
	case unitHours:
		return dt.Add(time.Duration(n) * time.Hour), 0
	case unitDays:
		return shiftWholeDays(anchor, dt, n)
	case unitWeeks:
		return shiftWholeDays(anchor, dt, 7*n)
	case unitMonths:
		naive := dt.AddDate(0, n, 0)
		h, mi, s := anchor.Clock()
		return normalizeWall(naive.Year(), naive.Month(), naive.Day(), h, mi, s, anchor.Nanosecond(), dt.Location())
	case unitYears:
		naive := dt.AddDate(n, 0, 0)
		h, mi, s := anchor.Clock()
		return normalizeWall(naive.Year(), naive.Month(), naive.Day(), h, mi, s, anchor.Nanosecond(), dt.Location())
	}
	return dt, 0
}

func shiftWholeDays(anchor, dt time.Time, days int) (time.Time, int) {
	naive := dt.AddDate(0, 0, days)
	h, mi, s := anchor.Clock()
	return normalizeWall(naive.Year(), naive.Month(), naive.Day(), h, mi, s, anchor.Nanosecond(), dt.Location())
}

// nextWeekdayOnOrAfter returns the first date on or after date that falls
// on weekday wd (0=Sunday..6=Saturday).
func nextWeekdayOnOrAfter(date time.Time, wd int) time.Time {
	delta := (wd - weekdayOf(date) + 7) % 7
	return date.AddDate(0, 0, delta)
}

// previousWeekdayOnOrBefore returns the last date on or before date that
// falls on weekday wd (0=Sunday..6=Saturday).
func previousWeekdayOnOrBefore(date time.Time, wd int) time.Time {
	delta := (weekdayOf(date) - wd + 7) % 7
	return date.AddDate(0, 0, -delta)
}

// isoWeekdayNum converts a domain weekday (0=Sunday..6=Saturday) to its
// ISO 8601 number (1=Monday..7=Sunday), the companion of isoWeekDayOf for
// values that are not already a time.Time.
func isoWeekdayNum(wd int) int {
	return ((wd + 6) % 7) + 1
}

// easterSunday computes the Gregorian Easter Sunday for year using the
// "anonymous Gregorian algorithm", the classic closed-form calculation
// the whole dateutil/rrule family uses to back BYEASTER.
func easterSunday(year int) (time.Month, int) {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	n := h + l - 7*m + 114
	month := n / 31
	day := n%31 + 1
	return time.Month(month), day
}
