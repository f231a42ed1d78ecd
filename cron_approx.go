package rrecur

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ToCronApprox attempts a best-effort projection of the rule onto a
// 5-field "minute hour day-of-month month day-of-week" cron expression,
// the natural companion a recurrence engine used from cron-adjacent
// schedulers wants (grounded on prasrvenkat-hron/go/cron.go's
// ToCron/FromCron pair). Only FREQ=DAILY|WEEKLY|MONTHLY rules that use
// nothing beyond INTERVAL=1, BYHOUR/BYMINUTE and BYDAY/BYMONTHDAY are
// expressible; everything else reports ok=false rather than silently
// approximating — cron has no notion of COUNT, UNTIL, BYSETPOS, BYYEARDAY,
// BYWEEKNO, BYMONTH-with-multiple-frequencies, or sub-minute cadence.
func (r Rule) ToCronApprox() (string, bool) {
	if r.Interval != 1 || r.Count != 0 || !r.Until.IsZero() || len(r.BySetPos) > 0 ||
		len(r.ByYearDay) > 0 || len(r.ByWeekNo) > 0 || len(r.ByMonth) > 0 || len(r.ByEaster) > 0 ||
		len(r.BySecond) > 0 {
		return "", false
	}

	minute := "*"
	hour := "*"
	if len(r.ByMinute) == 1 && len(r.ByHour) == 1 {
		minute = strconv.Itoa(r.ByMinute[0])
		hour = strconv.Itoa(r.ByHour[0])
	} else if len(r.ByMinute) > 0 || len(r.ByHour) > 0 {
		return "", false
	}

	switch r.Freq {
	case Daily:
		if len(r.ByMonthDay) > 0 {
			return "", false
		}
		dow := byDayToCronDOW(r.ByDay)
		return fmt.Sprintf("%s %s * * %s", minute, hour, dow), true

	case Weekly:
		// Cron has no "weekly on the anchor's own weekday" shorthand, so
		// an empty BYDAY (meaning exactly that) is not expressible.
		if len(r.ByMonthDay) > 0 || len(r.ByDay) == 0 {
			return "", false
		}
		dow := byDayToCronDOW(r.ByDay)
		if dow == "*" {
			return "", false
		}
		return fmt.Sprintf("%s %s * * %s", minute, hour, dow), true

	case Monthly:
		if len(r.ByDay) > 0 {
			return "", false
		}
		if len(r.ByMonthDay) == 0 {
			return "", false
		}
		for _, d := range r.ByMonthDay {
			if d < 0 {
				return "", false
			}
		}
		dom := formatIntList(r.ByMonthDay)
		return fmt.Sprintf("%s %s %s * *", minute, hour, dom), true

	default:
		return "", false
	}
}

func byDayToCronDOW(byDay []Weekday) string {
	if len(byDay) == 0 {
		return "*"
	}
	nums := make([]int, 0, len(byDay))
	for _, d := range byDay {
		if d.N != 0 {
			return "*"
		}
		nums = append(nums, d.Day)
	}
	sort.Ints(nums)
	return formatIntList(nums)
}

func formatIntList(nums []int) string {
	sorted := append([]int(nil), nums...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
