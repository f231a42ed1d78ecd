package rrecur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyCandidatesByDayLastWeekday(t *testing.T) {
	r, err := ParseRule("FREQ=MONTHLY;BYDAY=MO,TU,WE,TH,FR;BYSETPOS=-1")
	require.NoError(t, err)
	ref := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	cands := monthlyCandidates(2020, time.January, r, ref)
	require.Len(t, cands, 1)
	assert.Equal(t, 31, cands[0].Day) // Friday 2020-01-31

	cands = monthlyCandidates(2020, time.February, r, ref)
	require.Len(t, cands, 1)
	assert.Equal(t, 28, cands[0].Day) // Friday 2020-02-28
}

func TestMonthlyCandidatesByMonthDayNegative(t *testing.T) {
	r, err := ParseRule("FREQ=MONTHLY;BYMONTHDAY=-1")
	require.NoError(t, err)
	ref := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	cands := monthlyCandidatesRaw(2020, time.April, r, ref)
	require.Len(t, cands, 1)
	assert.Equal(t, 30, cands[0].Day)
}

func TestMonthlyCandidatesByDayNthDropsNonexistent(t *testing.T) {
	r, err := ParseRule("FREQ=MONTHLY;BYDAY=5MO")
	require.NoError(t, err)
	ref := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	// February 2020 has only 4 Mondays; the 5th-Monday entry drops out.
	cands := monthlyCandidatesRaw(2020, time.February, r, ref)
	assert.Empty(t, cands)
}

func TestMonthlyCandidatesByDayAndByMonthDayIntersect(t *testing.T) {
	r, err := ParseRule("FREQ=MONTHLY;BYDAY=MO,TU,WE,TH,FR;BYMONTHDAY=1,2,3,4,5")
	require.NoError(t, err)
	ref := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC) // June 2020 starts on a Monday
	cands := monthlyCandidatesRaw(2020, time.June, r, ref)
	var days []int
	for _, c := range cands {
		days = append(days, c.Day)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, days)
}

func TestApplyBySetPosPositiveAndNegative(t *testing.T) {
	raw := []dayTime{{1, 0, 0, 0}, {8, 0, 0, 0}, {15, 0, 0, 0}, {22, 0, 0, 0}, {29, 0, 0, 0}}
	got := applyBySetPos(raw, []int{1, -1})
	assert.Equal(t, []dayTime{{1, 0, 0, 0}, {29, 0, 0, 0}}, got)
}

func TestApplyBySetPosOutOfRangeDropped(t *testing.T) {
	raw := []dayTime{{1, 0, 0, 0}}
	got := applyBySetPos(raw, []int{5, -5})
	assert.Empty(t, got)
}
