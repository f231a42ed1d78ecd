package rrecur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOf(t *testing.T) {
	// 2020-01-01 is a Wednesday.
	assert.Equal(t, 3, weekdayOf(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestIsoWeekDayOf(t *testing.T) {
	// Wednesday is ISO day 3.
	assert.Equal(t, 3, isoWeekDayOf(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	// Sunday is ISO day 7.
	assert.Equal(t, 7, isoWeekDayOf(time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, daysInMonth(2020, time.January))
	assert.Equal(t, 29, daysInMonth(2020, time.February))
	assert.Equal(t, 28, daysInMonth(2021, time.February))
	assert.Equal(t, 30, daysInMonth(2020, time.April))
}

func TestIsLeap(t *testing.T) {
	assert.True(t, isLeap(2020))
	assert.True(t, isLeap(2000))
	assert.False(t, isLeap(1900))
	assert.False(t, isLeap(2021))
}

func TestIsoWeeksInYear(t *testing.T) {
	assert.Equal(t, 53, isoWeeksInYear(2020))
	assert.Equal(t, 52, isoWeeksInYear(2021))
	assert.Equal(t, 53, isoWeeksInYear(2015))
}

func TestSetISOWeek(t *testing.T) {
	// ISO week 1 of 2019, Monday = 2018-12-31.
	got := setISOWeek(2019, 1, 1)
	assert.Equal(t, time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC), got)

	// ISO week 1 of 2018, Monday = 2018-01-01 (aligned with Gregorian year).
	got = setISOWeek(2018, 1, 1)
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestAddWallMonthsKeepsWallClockAcrossShortMonth(t *testing.T) {
	anchor := time.Date(2020, 1, 31, 10, 30, 0, 0, time.UTC)
	got, _ := addWall(anchor, anchor, unitMonths, 1)
	// naive AddDate(0,1,0) on Jan 31 overflows into March; addWall
	// reapplies the wall clock to whatever day that lands on, it is the
	// monthly driver's job (not addWall's) to reject short months.
	assert.Equal(t, 10, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestAddWallDSTForward(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	// 2020-03-29 is the Amsterdam spring-forward date (02:00 -> 03:00 CEST).
	anchor := time.Date(2020, 3, 28, 2, 30, 0, 0, loc)
	got, jump := addWall(anchor, anchor, unitDays, 1)
	assert.Equal(t, 1, jump) // 02:30 does not exist on the 29th; forwarded one hour
	assert.Equal(t, 3, got.Hour())
	assert.Equal(t, 30, got.Minute())

	// Direct probe of the nonexistent local wall time.
	nonexistent, jumpHours := normalizeWall(2020, time.March, 29, 2, 30, 0, 0, loc)
	assert.NotZero(t, jumpHours)
	assert.Equal(t, 3, nonexistent.Hour())
}

func TestEasterSunday(t *testing.T) {
	m, d := easterSunday(2020)
	assert.Equal(t, time.April, m)
	assert.Equal(t, 12, d)

	m, d = easterSunday(2024)
	assert.Equal(t, time.March, m)
	assert.Equal(t, 31, d)
}

func TestNextWeekdayOnOrAfter(t *testing.T) {
	wed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	got := nextWeekdayOnOrAfter(wed, 5) // Friday
	assert.Equal(t, 3, got.Day())
}

func TestPreviousWeekdayOnOrBefore(t *testing.T) {
	wed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	got := previousWeekdayOnOrBefore(wed, 1) // Monday
	assert.Equal(t, 30, got.Day())
	assert.Equal(t, time.December, got.Month())
}
