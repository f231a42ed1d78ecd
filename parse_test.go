package rrecur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleBasic(t *testing.T) {
	r, err := ParseRule("FREQ=DAILY;COUNT=5")
	require.NoError(t, err)
	assert.Equal(t, Daily, r.Freq)
	assert.Equal(t, 5, r.Count)
	assert.Equal(t, 1, r.Interval)
	assert.Equal(t, MO, r.WeekStart)
}

func TestParseRuleByDayOrdinal(t *testing.T) {
	r, err := ParseRule("FREQ=MONTHLY;BYDAY=-1MO,2TU")
	require.NoError(t, err)
	require.Len(t, r.ByDay, 2)
	assert.Equal(t, MO.Nth(-1), r.ByDay[0])
	assert.Equal(t, TU.Nth(2), r.ByDay[1])
}

func TestParseRuleWkstSunday(t *testing.T) {
	r, err := ParseRule("FREQ=WEEKLY;WKST=SU")
	require.NoError(t, err)
	assert.Equal(t, SU, r.WeekStart)
}

func TestParseRuleUnknownKey(t *testing.T) {
	_, err := ParseRule("FREQ=DAILY;BOGUS=1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPart)
}

func TestParseRuleCountAndUntilMutuallyExclusive(t *testing.T) {
	_, err := ParseRule("FREQ=DAILY;COUNT=5;UNTIL=20200101T000000Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestParseRuleByWeekNoRequiresYearly(t *testing.T) {
	_, err := ParseRule("FREQ=MONTHLY;BYWEEKNO=3")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestParseRuleByYearDayForbiddenForDaily(t *testing.T) {
	_, err := ParseRule("FREQ=DAILY;BYYEARDAY=100")
	require.Error(t, err)
}

func TestParseRuleByMonthDayForbiddenForWeekly(t *testing.T) {
	_, err := ParseRule("FREQ=WEEKLY;BYMONTHDAY=15")
	require.Error(t, err)
}

func TestParseRuleOutOfRangeByPart(t *testing.T) {
	_, err := ParseRule("FREQ=DAILY;BYHOUR=24")
	require.Error(t, err)
}

func TestParseRuleByMonthDayZeroRejected(t *testing.T) {
	_, err := ParseRule("FREQ=MONTHLY;BYMONTHDAY=0")
	require.Error(t, err)
}

func TestParseRuleBadByDayPattern(t *testing.T) {
	_, err := ParseRule("FREQ=MONTHLY;BYDAY=6MO")
	require.Error(t, err)
	_, err = ParseRule("FREQ=MONTHLY;BYDAY=XX")
	require.Error(t, err)
}

func TestParseRuleBySetPosRequiresCandidateSource(t *testing.T) {
	_, err := ParseRule("FREQ=MONTHLY;BYSETPOS=-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestParseRuleBySetPosWithByDayOK(t *testing.T) {
	r, err := ParseRule("FREQ=MONTHLY;BYDAY=MO,TU,WE,TH,FR;BYSETPOS=-1")
	require.NoError(t, err)
	assert.Equal(t, []int{-1}, r.BySetPos)
}

func TestNewRuleFromOptionsDefaultsWeekStartToMonday(t *testing.T) {
	r, err := NewRuleFromOptions(RuleOptions{Freq: Weekly})
	require.NoError(t, err)
	assert.Equal(t, MO, r.WeekStart)
}

func TestNewRuleFromOptionsIntervalDefaultsToOne(t *testing.T) {
	r, err := NewRuleFromOptions(RuleOptions{Freq: Daily})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Interval)
}

func TestRuleStringRoundTrip(t *testing.T) {
	r, err := ParseRule("FREQ=MONTHLY;INTERVAL=2;BYDAY=MO,TU;BYSETPOS=-1;COUNT=10")
	require.NoError(t, err)
	s := r.String()
	r2, err := ParseRule(s)
	require.NoError(t, err)
	assert.Equal(t, r, r2)
}

func TestParseUntilFormats(t *testing.T) {
	r, err := ParseRule("FREQ=DAILY;UNTIL=20201231T235959Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC), r.Until)
}

func TestParseRuleEmptyString(t *testing.T) {
	_, err := ParseRule("")
	require.Error(t, err)
}

func TestParseRuleByEaster(t *testing.T) {
	r, err := ParseRule("FREQ=YEARLY;BYEASTER=0,1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, r.ByEaster)
}
