package rrecur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCronApproxDaily(t *testing.T) {
	r, err := ParseRule("FREQ=DAILY;BYHOUR=9;BYMINUTE=30")
	require.NoError(t, err)
	expr, ok := r.ToCronApprox()
	assert.True(t, ok)
	assert.Equal(t, "30 9 * * *", expr)
}

func TestToCronApproxWeekly(t *testing.T) {
	r, err := ParseRule("FREQ=WEEKLY;BYDAY=MO,WE,FR;BYHOUR=8;BYMINUTE=0")
	require.NoError(t, err)
	expr, ok := r.ToCronApprox()
	assert.True(t, ok)
	assert.Equal(t, "0 8 * * 1,3,5", expr)
}

func TestToCronApproxMonthly(t *testing.T) {
	r, err := ParseRule("FREQ=MONTHLY;BYMONTHDAY=1,15")
	require.NoError(t, err)
	expr, ok := r.ToCronApprox()
	assert.True(t, ok)
	assert.Equal(t, "* * 1,15 * *", expr)
}

func TestToCronApproxRejectsBySetPos(t *testing.T) {
	r, err := ParseRule("FREQ=MONTHLY;BYDAY=FR;BYSETPOS=-1")
	require.NoError(t, err)
	_, ok := r.ToCronApprox()
	assert.False(t, ok)
}

func TestToCronApproxRejectsByEaster(t *testing.T) {
	r, err := ParseRule("FREQ=YEARLY;BYEASTER=0")
	require.NoError(t, err)
	_, ok := r.ToCronApprox()
	assert.False(t, ok)
}

func TestToCronApproxRejectsCount(t *testing.T) {
	r, err := ParseRule("FREQ=DAILY;COUNT=5")
	require.NoError(t, err)
	_, ok := r.ToCronApprox()
	assert.False(t, ok)
}
