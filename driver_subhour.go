package rrecur

import "time"

// advanceSubHour steps from cur to the next candidate instant for
// FREQ=MINUTELY or FREQ=SECONDLY. These two cadences sit below the
// frequency drivers spec.md's Frequency Drivers table enumerates in
// detail (it stops at HOURLY); they carry none of the DST wall-clock
// machinery the day-and-coarser drivers need, since a plain duration
// add is already correct down to the second — wall-clock DST shifts
// only ever land on an hour boundary, never mid-minute or mid-second.
func advanceSubHour(cur time.Time, r Rule) time.Time {
	step := time.Duration(r.Interval) * time.Minute
	if r.Freq == Secondly {
		step = time.Duration(r.Interval) * time.Second
	}

	if r.Freq == Minutely && len(r.BySecond) > 0 {
		seconds := r.BySecond
		for _, s := range seconds {
			if s > cur.Second() {
				return time.Date(cur.Year(), cur.Month(), cur.Day(), cur.Hour(), cur.Minute(), s, cur.Nanosecond(), cur.Location())
			}
		}
		next := cur.Add(step)
		return time.Date(next.Year(), next.Month(), next.Day(), next.Hour(), next.Minute(), seconds[0], cur.Nanosecond(), cur.Location())
	}

	return cur.Add(step)
}
