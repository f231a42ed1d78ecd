package rrecur

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

var byDayPattern = regexp.MustCompile(`^([+-]?[1-5])?(SU|MO|TU|WE|TH|FR|SA)$`)

var recognizedKeys = map[string]bool{
	"FREQ": true, "INTERVAL": true, "COUNT": true, "UNTIL": true,
	"BYSECOND": true, "BYMINUTE": true, "BYHOUR": true, "BYDAY": true,
	"BYMONTHDAY": true, "BYYEARDAY": true, "BYWEEKNO": true, "BYMONTH": true,
	"BYSETPOS": true, "WKST": true, "BYEASTER": true,
}

// RuleOptions is the typed, pre-tokenised construction surface for a
// rule — the equivalent mapping spec.md §6 allows in place of the
// KEY=VALUE string, and the direct generalisation of the teacher's
// ROption struct.
type RuleOptions struct {
	Freq       Frequency
	Interval   int
	Count      int
	Until      time.Time
	BySecond   []int
	ByMinute   []int
	ByHour     []int
	ByDay      []Weekday
	ByMonthDay []int
	ByYearDay  []int
	ByWeekNo   []int
	ByMonth    []int
	BySetPos   []int
	ByEaster   []int
	WeekStart  Weekday
}

// ParseRule parses a semicolon-delimited "KEY=VALUE;KEY=VALUE" rule
// string (values may be comma-separated lists) into a validated Rule.
func ParseRule(s string) (Rule, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return Rule{}, err
	}
	return parseTokens(tokens).Get()
}

// NewRuleFromOptions validates and normalises a typed RuleOptions value
// into a Rule. A zero-value WeekStart defaults to Monday per spec.md
// §3 — since SU is itself the zero Weekday, constructing a rule that
// explicitly starts its week on Sunday is only unambiguous through
// ParseRule ("WKST=SU"), not through a bare RuleOptions literal.
func NewRuleFromOptions(opts RuleOptions) (Rule, error) {
	if opts.WeekStart == (Weekday{}) {
		opts.WeekStart = MO
	}
	return buildRule(opts).Get()
}

func tokenize(s string) (map[string][]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, invalidRule("empty rule")
	}
	out := map[string][]string{}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[1] == "" {
			return nil, invalidRule(fmt.Sprintf("malformed rule part %q", part))
		}
		key := strings.ToUpper(strings.TrimSpace(kv[0]))
		if !recognizedKeys[key] {
			return nil, unknownPart(key)
		}
		values := strings.Split(kv[1], ",")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
		out[key] = values
	}
	if _, ok := out["FREQ"]; !ok {
		return nil, invalidRule("FREQ is required")
	}
	return out, nil
}

// parseTokens is the internal Result-typed parse boundary named in
// spec.md §9's design notes ("Result type at the parse boundary");
// ParseRule unwraps it into the conventional (Rule, error) Go signature.
func parseTokens(tokens map[string][]string) mo.Result[Rule] {
	var opts RuleOptions
	opts.WeekStart = MO

	freqStr := tokens["FREQ"][0]
	freq, ok := frequencyFromString(freqStr)
	if !ok {
		return mo.Err[Rule](invalidRule("FREQ=" + freqStr))
	}
	opts.Freq = freq

	if v, ok := tokens["INTERVAL"]; ok {
		n, err := strconv.Atoi(v[0])
		if err != nil || n <= 0 {
			return mo.Err[Rule](invalidRule("INTERVAL=" + v[0]))
		}
		opts.Interval = n
	}

	_, hasCount := tokens["COUNT"]
	_, hasUntil := tokens["UNTIL"]
	if hasCount && hasUntil {
		return mo.Err[Rule](invalidRule("COUNT and UNTIL are mutually exclusive"))
	}
	if hasCount {
		n, err := strconv.Atoi(tokens["COUNT"][0])
		if err != nil || n <= 0 {
			return mo.Err[Rule](invalidRule("COUNT=" + tokens["COUNT"][0]))
		}
		opts.Count = n
	}
	if hasUntil {
		t, err := parseUntil(tokens["UNTIL"][0])
		if err != nil {
			return mo.Err[Rule](err)
		}
		opts.Until = t
	}

	var err error
	if opts.BySecond, err = parseIntList(tokens["BYSECOND"], "BYSECOND"); err != nil {
		return mo.Err[Rule](err)
	}
	if opts.ByMinute, err = parseIntList(tokens["BYMINUTE"], "BYMINUTE"); err != nil {
		return mo.Err[Rule](err)
	}
	if opts.ByHour, err = parseIntList(tokens["BYHOUR"], "BYHOUR"); err != nil {
		return mo.Err[Rule](err)
	}
	if opts.ByMonthDay, err = parseIntList(tokens["BYMONTHDAY"], "BYMONTHDAY"); err != nil {
		return mo.Err[Rule](err)
	}
	if opts.ByYearDay, err = parseIntList(tokens["BYYEARDAY"], "BYYEARDAY"); err != nil {
		return mo.Err[Rule](err)
	}
	if opts.ByWeekNo, err = parseIntList(tokens["BYWEEKNO"], "BYWEEKNO"); err != nil {
		return mo.Err[Rule](err)
	}
	if opts.ByMonth, err = parseIntList(tokens["BYMONTH"], "BYMONTH"); err != nil {
		return mo.Err[Rule](err)
	}
	if opts.BySetPos, err = parseIntList(tokens["BYSETPOS"], "BYSETPOS"); err != nil {
		return mo.Err[Rule](err)
	}
	if opts.ByEaster, err = parseIntList(tokens["BYEASTER"], "BYEASTER"); err != nil {
		return mo.Err[Rule](err)
	}

	if v, ok := tokens["BYDAY"]; ok {
		days := make([]Weekday, 0, len(v))
		for _, entry := range v {
			wd, err := parseByDay(entry)
			if err != nil {
				return mo.Err[Rule](err)
			}
			days = append(days, wd)
		}
		opts.ByDay = days
	}

	if v, ok := tokens["WKST"]; ok {
		wd, ok := weekdayByCode[strings.ToUpper(v[0])]
		if !ok {
			return mo.Err[Rule](invalidRule("WKST=" + v[0]))
		}
		opts.WeekStart = wd
	}

	return buildRule(opts)
}

func parseIntList(values []string, part string) ([]int, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, invalidRule(part + "=" + v)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseByDay(s string) (Weekday, error) {
	m := byDayPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return Weekday{}, invalidRule("BYDAY=" + s)
	}
	base := weekdayByCode[m[2]]
	if m[1] == "" {
		return base, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Weekday{}, invalidRule("BYDAY=" + s)
	}
	return base.Nth(n), nil
}

func parseUntil(s string) (time.Time, error) {
	formats := []string{"20060102T150405Z", "20060102T150405", "20060102"}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, invalidRule("UNTIL=" + s)
}

// buildRule applies defaults and the cross-field invariants from
// spec.md §3 to a RuleOptions value, producing a normalised Rule.
func buildRule(opts RuleOptions) mo.Result[Rule] {
	r := Rule{
		Freq:       opts.Freq,
		Interval:   opts.Interval,
		Count:      opts.Count,
		Until:      opts.Until,
		BySecond:   opts.BySecond,
		ByMinute:   opts.ByMinute,
		ByHour:     opts.ByHour,
		ByDay:      opts.ByDay,
		ByMonthDay: opts.ByMonthDay,
		ByYearDay:  opts.ByYearDay,
		ByWeekNo:   opts.ByWeekNo,
		ByMonth:    opts.ByMonth,
		BySetPos:   opts.BySetPos,
		ByEaster:   opts.ByEaster,
		WeekStart:  opts.WeekStart,
	}
	if r.Interval == 0 {
		r.Interval = 1
	}

	if r.Interval < 0 {
		return mo.Err[Rule](invalidRule("INTERVAL must be positive"))
	}
	if r.Count < 0 {
		return mo.Err[Rule](invalidRule("COUNT must be positive"))
	}
	if r.Count > 0 && !r.Until.IsZero() {
		return mo.Err[Rule](invalidRule("COUNT and UNTIL are mutually exclusive"))
	}

	if len(r.ByWeekNo) > 0 && r.Freq != Yearly {
		return mo.Err[Rule](invalidRule("BYWEEKNO requires FREQ=YEARLY"))
	}
	if len(r.ByYearDay) > 0 && (r.Freq == Daily || r.Freq == Weekly || r.Freq == Monthly) {
		return mo.Err[Rule](invalidRule("BYYEARDAY is not allowed with this FREQ"))
	}
	if len(r.ByMonthDay) > 0 && r.Freq == Weekly {
		return mo.Err[Rule](invalidRule("BYMONTHDAY is not allowed with FREQ=WEEKLY"))
	}

	if err := checkRange("BYSECOND", r.BySecond, 0, 60, false); err != nil {
		return mo.Err[Rule](err)
	}
	if err := checkRange("BYMINUTE", r.ByMinute, 0, 59, false); err != nil {
		return mo.Err[Rule](err)
	}
	if err := checkRange("BYHOUR", r.ByHour, 0, 23, false); err != nil {
		return mo.Err[Rule](err)
	}
	if err := checkRange("BYMONTHDAY", r.ByMonthDay, 1, 31, true); err != nil {
		return mo.Err[Rule](err)
	}
	if err := checkRange("BYYEARDAY", r.ByYearDay, 1, 366, true); err != nil {
		return mo.Err[Rule](err)
	}
	if err := checkRange("BYWEEKNO", r.ByWeekNo, 1, 53, true); err != nil {
		return mo.Err[Rule](err)
	}
	if err := checkRange("BYMONTH", r.ByMonth, 1, 12, false); err != nil {
		return mo.Err[Rule](err)
	}
	if err := checkRange("BYSETPOS", r.BySetPos, 1, 366, true); err != nil {
		return mo.Err[Rule](err)
	}
	for _, d := range r.ByDay {
		if d.Day < 0 || d.Day > 6 {
			return mo.Err[Rule](invalidRule("BYDAY weekday out of range"))
		}
		if d.N != 0 && (d.N < -5 || d.N > 5) {
			return mo.Err[Rule](invalidRule("BYDAY ordinal must be 1..5 or -1..-5"))
		}
	}

	// Open question (spec.md §9) resolved: BYSETPOS without any BY-part
	// able to generate candidates is InvalidRule, per the spec's own
	// recommendation, rather than silently degrading to an empty result.
	if len(r.BySetPos) > 0 {
		hasCandidateSource := len(r.ByDay) > 0 || len(r.ByMonthDay) > 0 ||
			len(r.ByYearDay) > 0 || len(r.ByWeekNo) > 0 || len(r.ByMonth) > 0
		if !hasCandidateSource {
			return mo.Err[Rule](invalidRule("BYSETPOS requires another BY-part"))
		}
	}

	// BYSECOND/BYMINUTE/BYHOUR drive several drivers' "smallest tuple
	// strictly after the cursor" scans (driver_hourly.go's nextInHour,
	// driver_daily.go's nextTimeOfDay) and their []0] fallbacks, both of
	// which assume ascending order; RFC 5545 imposes no ordering on the
	// comma list itself, so it is normalised here once rather than at
	// every call site.
	sort.Ints(r.BySecond)
	sort.Ints(r.ByMinute)
	sort.Ints(r.ByHour)

	return mo.Ok(r)
}

func checkRange(part string, values []int, lo, hi int, allowNegative bool) error {
	for _, v := range values {
		if allowNegative && v == 0 {
			return invalidRule(part + ": zero is not allowed")
		}
		if v >= lo && v <= hi {
			continue
		}
		if allowNegative && v <= -lo && v >= -hi {
			continue
		}
		return invalidRule(fmt.Sprintf("%s=%d out of range", part, v))
	}
	return nil
}
