package workoutlogs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/fitcomp/internal/database"
	"github.com/mlahtinen/fitcomp/internal/entities"
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

func addLog(t *testing.T, repo *Repository, id, name, date string, weight float64) {
	t.Helper()
	require.NoError(t, repo.Add(&entities.WorkoutLog{
		ID:           id,
		ExerciseName: name,
		Date:         date,
		Sets:         3,
		Reps:         5,
		Weight:       weight,
	}))
}

func TestAddAndGetRecent(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	addLog(t, repo, "l1", "Squat", "2026-08-20", 100)
	addLog(t, repo, "l2", "Bench Press", "2026-08-22", 80)
	addLog(t, repo, "l3", "Deadlift", "2026-08-21", 140)

	logs := repo.GetRecent(0)
	require.Len(t, logs, 3)
	// Newest date first
	assert.Equal(t, "l2", logs[0].ID)
	assert.Equal(t, "l3", logs[1].ID)
	assert.Equal(t, "l1", logs[2].ID)
	assert.False(t, logs[0].CreatedAt.IsZero())
}

func TestGetRecentHonorsLimit(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	addLog(t, repo, "l1", "Squat", "2026-08-20", 100)
	addLog(t, repo, "l2", "Squat", "2026-08-21", 102.5)
	addLog(t, repo, "l3", "Squat", "2026-08-22", 105)

	logs := repo.GetRecent(2)
	require.Len(t, logs, 2)
	assert.Equal(t, "l3", logs[0].ID)
}

func TestGetByExerciseAndDate(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	addLog(t, repo, "l1", "Squat", "2026-08-20", 100)
	addLog(t, repo, "l2", "Bench Press", "2026-08-20", 80)
	addLog(t, repo, "l3", "Squat", "2026-08-22", 105)

	squats := repo.GetByExercise("Squat")
	require.Len(t, squats, 2)
	assert.Equal(t, "l3", squats[0].ID)

	sameDay := repo.GetByDate("2026-08-20")
	assert.Len(t, sameDay, 2)

	assert.Empty(t, repo.GetByExercise("Curl"))
	assert.Empty(t, repo.GetByDate("2026-01-01"))
}

func TestDeleteAndCount(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	addLog(t, repo, "l1", "Squat", "2026-08-20", 100)
	addLog(t, repo, "l2", "Squat", "2026-08-21", 102.5)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, repo.Delete("l1"))
	count, err = repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Deleting a missing row is a no-op
	assert.NoError(t, repo.Delete("l1"))
}
