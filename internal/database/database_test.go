package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestNewDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	t.Run("creates all tables", func(t *testing.T) {
		for _, table := range []string{
			"programs", "days", "exercises",
			"calendar_entries", "workout_logs",
			"favorite_gyms", "exercise_library",
		} {
			assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
		}
	})

	t.Run("ping succeeds", func(t *testing.T) {
		assert.NoError(t, db.Ping())
	})
}

func TestNewDatabaseMigrationIsIdempotent(t *testing.T) {
	dbPath := "./test_" + t.Name() + ".db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Opening an existing database must not fail on re-migration
	db, err = NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
}
