package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignDayToDateValidation(t *testing.T) {
	progRepo, calRepo, _, cleanup := setupStores(t)
	defer cleanup()

	progState := NewProgramState(progRepo, calRepo)
	program, err := progState.AddProgram("Push Pull Legs", "")
	require.NoError(t, err)
	day, err := progState.AddDay(program.ID, "Push")
	require.NoError(t, err)

	calState := NewCalendarState(calRepo)

	for _, date := range []string{"", "24-08-2026", "2026/08/24", "not-a-date"} {
		assert.ErrorIs(t, calState.AssignDayToDate(date, program.ID, day.ID), ErrInvalidDate, "date %q", date)
	}

	require.NoError(t, calState.AssignDayToDate("2026-08-24", program.ID, day.ID))

	assignment, ok := calState.GetAssignedDay("2026-08-24")
	require.True(t, ok)
	assert.Equal(t, program.ID, assignment.ProgramID)
	assert.Equal(t, day.ID, assignment.DayID)
	assert.False(t, assignment.Done)
}

func TestAssignRejectsUnknownDay(t *testing.T) {
	_, calRepo, _, cleanup := setupStores(t)
	defer cleanup()

	calState := NewCalendarState(calRepo)

	// Foreign keys reject an assignment to a day that does not exist
	err := calState.AssignDayToDate("2026-08-24", "missing-program", "missing-day")
	require.Error(t, err)
	assert.NotEmpty(t, calState.LastError())
}

func TestReassignPreservesProgress(t *testing.T) {
	progRepo, calRepo, _, cleanup := setupStores(t)
	defer cleanup()

	progState := NewProgramState(progRepo, calRepo)
	program, err := progState.AddProgram("Push Pull Legs", "")
	require.NoError(t, err)
	push, err := progState.AddDay(program.ID, "Push")
	require.NoError(t, err)
	pull, err := progState.AddDay(program.ID, "Pull")
	require.NoError(t, err)

	calState := NewCalendarState(calRepo)
	require.NoError(t, calState.AssignDayToDate("2026-08-24", program.ID, push.ID))
	require.NoError(t, calState.MarkDone("2026-08-24"))
	require.NoError(t, calState.UpdateNotes("2026-08-24", "Solid session"))

	require.NoError(t, calState.AssignDayToDate("2026-08-24", program.ID, pull.ID))

	assignment, ok := calState.GetAssignedDay("2026-08-24")
	require.True(t, ok)
	assert.Equal(t, pull.ID, assignment.DayID)
	assert.True(t, assignment.Done)
	assert.Equal(t, "Solid session", assignment.Notes)
}

func TestDeleteEntryState(t *testing.T) {
	progRepo, calRepo, _, cleanup := setupStores(t)
	defer cleanup()

	progState := NewProgramState(progRepo, calRepo)
	program, err := progState.AddProgram("Push Pull Legs", "")
	require.NoError(t, err)
	day, err := progState.AddDay(program.ID, "Push")
	require.NoError(t, err)

	calState := NewCalendarState(calRepo)
	require.NoError(t, calState.AssignDayToDate("2026-08-24", program.ID, day.ID))
	require.NoError(t, calState.DeleteEntry("2026-08-24"))

	_, ok := calState.GetAssignedDay("2026-08-24")
	assert.False(t, ok)
	assert.Empty(t, calState.Entries())
}

func TestWeeklyStats(t *testing.T) {
	progRepo, calRepo, _, cleanup := setupStores(t)
	defer cleanup()

	progState := NewProgramState(progRepo, calRepo)
	program, err := progState.AddProgram("Push Pull Legs", "")
	require.NoError(t, err)
	day, err := progState.AddDay(program.ID, "Push")
	require.NoError(t, err)

	calState := NewCalendarState(calRepo)

	// 2026-08-24 is a Monday
	require.NoError(t, calState.AssignDayToDate("2026-08-24", program.ID, day.ID))
	require.NoError(t, calState.AssignDayToDate("2026-08-26", program.ID, day.ID))
	require.NoError(t, calState.AssignDayToDate("2026-08-30", program.ID, day.ID))
	require.NoError(t, calState.MarkDone("2026-08-24"))

	// Previous week, must not count
	require.NoError(t, calState.AssignDayToDate("2026-08-23", program.ID, day.ID))
	// Next week, must not count either
	require.NoError(t, calState.AssignDayToDate("2026-08-31", program.ID, day.ID))

	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	stats := calState.WeeklyStats(now)

	assert.Equal(t, "2026-08-24", stats.WeekStart)
	assert.Equal(t, 3, stats.Assigned)
	assert.Equal(t, 1, stats.Completed)
}

func TestWeeklyStatsOnSunday(t *testing.T) {
	_, calRepo, _, cleanup := setupStores(t)
	defer cleanup()

	calState := NewCalendarState(calRepo)

	// Sunday still belongs to the week that started the previous Monday
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	stats := calState.WeeklyStats(now)
	assert.Equal(t, "2026-08-24", stats.WeekStart)
	assert.Zero(t, stats.Assigned)
}

func TestEntriesReturnsCopy(t *testing.T) {
	progRepo, calRepo, _, cleanup := setupStores(t)
	defer cleanup()

	progState := NewProgramState(progRepo, calRepo)
	program, err := progState.AddProgram("Push Pull Legs", "")
	require.NoError(t, err)
	day, err := progState.AddDay(program.ID, "Push")
	require.NoError(t, err)

	calState := NewCalendarState(calRepo)
	require.NoError(t, calState.AssignDayToDate("2026-08-24", program.ID, day.ID))

	entries := calState.Entries()
	delete(entries, "2026-08-24")

	_, ok := calState.GetAssignedDay("2026-08-24")
	assert.True(t, ok)
}
