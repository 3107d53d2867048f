package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmmss string) time.Time {
	t, err := time.Parse(time.DateTime, "2024-03-04 "+hhmmss)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTimeEntryFullDay(t *testing.T) {
	entry := NewTimeEntry("u1", at("09:00:00"))
	require.Equal(t, TimeEntryCheckedIn, entry.Status)

	require.NoError(t, entry.StartBreak(at("12:00:00")))
	assert.Equal(t, TimeEntryOnBreak, entry.Status)
	require.NoError(t, entry.EndBreak(at("12:30:00")))
	assert.Equal(t, TimeEntryCheckedIn, entry.Status)
	require.NoError(t, entry.ClockOut(at("17:30:00"), HoursPolicy{}))

	assert.Equal(t, TimeEntryCheckedOut, entry.Status)
	require.NotNil(t, entry.TotalHours)
	assert.Equal(t, 8.5, *entry.TotalHours)
	assert.Equal(t, int64(1800), entry.BreakSeconds)
	assert.Equal(t, at("09:00:00"), entry.CheckInTime)
}

func TestTimeEntryTotalHoursRounding(t *testing.T) {
	entry := NewTimeEntry("u1", at("09:00:00"))
	require.NoError(t, entry.ClockOut(at("09:20:00"), HoursPolicy{}))
	assert.Equal(t, 0.33, *entry.TotalHours)
}

func TestTimeEntryDeductBreaksPolicy(t *testing.T) {
	entry := NewTimeEntry("u1", at("09:00:00"))
	require.NoError(t, entry.StartBreak(at("12:00:00")))
	require.NoError(t, entry.EndBreak(at("13:00:00")))
	require.NoError(t, entry.ClockOut(at("17:30:00"), HoursPolicy{DeductBreaks: true}))
	assert.Equal(t, 7.5, *entry.TotalHours)
}

func TestTimeEntryClockOutDuringBreak(t *testing.T) {
	entry := NewTimeEntry("u1", at("09:00:00"))
	require.NoError(t, entry.StartBreak(at("16:00:00")))
	require.NoError(t, entry.ClockOut(at("17:00:00"), HoursPolicy{}))
	assert.Equal(t, 8.0, *entry.TotalHours)
	require.NotNil(t, entry.BreakEndTime)
	assert.Equal(t, at("17:00:00"), *entry.BreakEndTime)
	assert.Equal(t, *entry.CheckOutTime, *entry.BreakEndTime)
	assert.Equal(t, int64(3600), entry.BreakSeconds)
}

func TestTimeEntryClockOutNonMonotonicLeavesEntry(t *testing.T) {
	for _, now := range []time.Time{at("09:00:00"), at("08:59:59")} {
		entry := NewTimeEntry("u1", at("09:00:00"))
		before := *entry

		err := entry.ClockOut(now, HoursPolicy{})
		require.ErrorIs(t, err, ErrNonMonotonicTime)
		assert.Equal(t, before, *entry)
	}
}

func TestTimeEntryInvalidTransitions(t *testing.T) {
	closed := NewTimeEntry("u1", at("09:00:00"))
	require.NoError(t, closed.ClockOut(at("10:00:00"), HoursPolicy{}))

	assert.ErrorIs(t, closed.StartBreak(at("11:00:00")), ErrInvalidTransition)
	assert.ErrorIs(t, closed.EndBreak(at("11:00:00")), ErrInvalidTransition)
	assert.ErrorIs(t, closed.ClockOut(at("11:00:00"), HoursPolicy{}), ErrInvalidTransition)

	open := NewTimeEntry("u1", at("09:00:00"))
	assert.ErrorIs(t, open.EndBreak(at("10:00:00")), ErrInvalidTransition)
	require.NoError(t, open.StartBreak(at("10:00:00")))
	assert.ErrorIs(t, open.StartBreak(at("10:05:00")), ErrInvalidTransition)
}

func TestTimeEntryElapsedDuration(t *testing.T) {
	entry := NewTimeEntry("u1", at("09:00:00"))
	require.NoError(t, entry.StartBreak(at("10:00:00")))

	// breaks count toward elapsed time unless the policy deducts them
	assert.Equal(t, 2*time.Hour, entry.ElapsedDuration(at("11:00:00"), HoursPolicy{}))
	assert.Equal(t, time.Hour, entry.ElapsedDuration(at("11:00:00"), HoursPolicy{DeductBreaks: true}))

	require.NoError(t, entry.EndBreak(at("10:30:00")))
	require.NoError(t, entry.ClockOut(at("17:30:00"), HoursPolicy{}))
	elapsed := entry.ElapsedDuration(at("23:00:00"), HoursPolicy{})
	assert.Equal(t, 8*time.Hour+30*time.Minute, elapsed)
	assert.Equal(t, *entry.TotalHours, RoundHours(elapsed))
}

func TestRoleRankOrder(t *testing.T) {
	assert.Greater(t, RoleAdmin.Rank(), RoleManager.Rank())
	assert.Greater(t, RoleManager.Rank(), RoleEmployee.Rank())
	assert.Zero(t, Role("owner").Rank())

	role, ok := ParseRole("manager")
	assert.True(t, ok)
	assert.Equal(t, RoleManager, role)
	_, ok = ParseRole("Manager")
	assert.False(t, ok)
}

func TestShiftTransitions(t *testing.T) {
	assert.True(t, CanTransitionShift(ShiftStatusScheduled, ShiftStatusInProgress))
	assert.True(t, CanTransitionShift(ShiftStatusInProgress, ShiftStatusCompleted))
	assert.False(t, CanTransitionShift(ShiftStatusCompleted, ShiftStatusScheduled))
	assert.False(t, CanTransitionShift(ShiftStatusScheduled, ShiftStatusCompleted))
}
