package programs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/fitcomp/internal/database"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), cleanup
}

func TestProgramTreeRoundTrip(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.AddProgram("p1", "Push Pull Legs", "3-day split"))
	require.NoError(t, repo.AddDay("d1", "p1", "Push"))
	require.NoError(t, repo.AddDay("d2", "p1", "Pull"))
	require.NoError(t, repo.AddExercise("e1", "d1", "Bench Press"))
	require.NoError(t, repo.AddExercise("e2", "d1", "Overhead Press"))

	programs := repo.GetPrograms()
	require.Len(t, programs, 1)
	assert.Equal(t, "Push Pull Legs", programs[0].Name)
	assert.Equal(t, "3-day split", programs[0].Description)

	require.Len(t, programs[0].Days, 2)
	push := programs[0].Days[0]
	assert.Equal(t, "Push", push.Name)
	require.Len(t, push.Exercises, 2)
	assert.Equal(t, "Bench Press", push.Exercises[0].Name)

	// Pull day has no exercises yet but must not come back nil
	assert.NotNil(t, programs[0].Days[1].Exercises)
	assert.Empty(t, programs[0].Days[1].Exercises)
}

func TestGetProgramsEmpty(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	programs := repo.GetPrograms()
	assert.NotNil(t, programs)
	assert.Empty(t, programs)
}

func TestDeleteCascadesThroughSchema(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.AddProgram("p1", "Full Body", ""))
	require.NoError(t, repo.AddDay("d1", "p1", "Workout A"))
	require.NoError(t, repo.AddExercise("e1", "d1", "Squat"))

	// Schema-level cascade removes days and exercises with the program
	require.NoError(t, repo.DeleteProgram("p1"))

	assert.Empty(t, repo.GetPrograms())
	assert.Empty(t, repo.GetDaysByProgram("p1"))
	assert.Empty(t, repo.GetExercisesByDay("d1"))
}

func TestDeleteDayAndExercises(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.AddProgram("p1", "Upper Lower", ""))
	require.NoError(t, repo.AddDay("d1", "p1", "Upper"))
	require.NoError(t, repo.AddDay("d2", "p1", "Lower"))
	require.NoError(t, repo.AddExercise("e1", "d1", "Bench Press"))
	require.NoError(t, repo.AddExercise("e2", "d2", "Squat"))

	require.NoError(t, repo.DeleteExercisesByDay("d1"))
	assert.Empty(t, repo.GetExercisesByDay("d1"))
	assert.Len(t, repo.GetExercisesByDay("d2"), 1)

	require.NoError(t, repo.DeleteDay("d1"))
	days := repo.GetDaysByProgram("p1")
	require.Len(t, days, 1)
	assert.Equal(t, "Lower", days[0].Name)
}

func TestAddDayRequiresExistingProgram(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	err := repo.AddDay("d1", "missing-program", "Push")
	require.Error(t, err)
	assert.True(t, database.IsConstraintViolation(err))
}
