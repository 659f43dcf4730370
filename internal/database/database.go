// Package database owns the SQLite schema and the shared handle that the
// per-entity repository sub-packages are built on.
package database

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mlahtinen/fitcomp/internal/entities"
)

// Database wraps the single process-wide GORM handle. It is created once
// at startup and injected into every repository, so tests can run
// against isolated instances.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the SQLite database at dbPath and
// migrates the schema. Migration is idempotent; running it against an
// existing database adds missing tables and columns without touching
// data.
func NewDatabase(dbPath string) (*Database, error) {
	dsn := dbPath
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Program{},
		&entities.ProgramDay{},
		&entities.ProgramExercise{},
		&entities.CalendarEntry{},
		&entities.WorkoutLog{},
		&entities.FavoriteGym{},
		&entities.LibraryExercise{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)

	return &Database{DB: db}, nil
}

// Ping verifies the underlying connection is still usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
