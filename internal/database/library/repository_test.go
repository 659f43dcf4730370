package library

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

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

func TestUpsertFillsDefaults(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	entry := &entities.LibraryExercise{
		WgerID: 42,
		Name:   "Bench Press",
	}
	require.NoError(t, repo.UpsertEntry(entry))

	assert.Equal(t, "wger-42", entry.ID)
	assert.Equal(t, entities.SourceWger, entry.Source)
	assert.False(t, entry.LastFetched.IsZero())

	stored, err := repo.GetByID("wger-42")
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", stored.Name)
	assert.NotNil(t, stored.Muscles)
	assert.NotNil(t, stored.Equipment)
	assert.NotNil(t, stored.Images)
	assert.NotNil(t, stored.Videos)
}

func TestUpsertOverwritesInsteadOfDuplicating(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.UpsertEntry(&entities.LibraryExercise{
		WgerID:  42,
		Name:    "Bench Press",
		Muscles: []int{4},
	}))
	require.NoError(t, repo.UpsertEntry(&entities.LibraryExercise{
		WgerID:  42,
		Name:    "Barbell Bench Press",
		Muscles: []int{4, 5},
	}))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	stored, err := repo.GetByID("wger-42")
	require.NoError(t, err)
	assert.Equal(t, "Barbell Bench Press", stored.Name)
	assert.Equal(t, []int{4, 5}, stored.Muscles)
}

func TestGetByIDMiss(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := repo.GetByID("wger-999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetAllOrdersByName(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.UpsertEntry(&entities.LibraryExercise{WgerID: 1, Name: "Squat"}))
	require.NoError(t, repo.UpsertEntry(&entities.LibraryExercise{WgerID: 2, Name: "Deadlift"}))

	all := repo.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "Deadlift", all[0].Name)
	assert.Equal(t, "Squat", all[1].Name)
}

func TestStaleLifecycle(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	old := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, repo.UpsertEntry(&entities.LibraryExercise{
		WgerID:      1,
		Name:        "Squat",
		LastFetched: old,
	}))
	require.NoError(t, repo.UpsertEntry(&entities.LibraryExercise{
		WgerID: 2,
		Name:   "Deadlift",
	}))

	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	stale := repo.GetStale(cutoff, 10)
	require.Len(t, stale, 1)
	assert.Equal(t, "wger-1", stale[0].ID)

	deleted, err := repo.DeleteStale(cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
