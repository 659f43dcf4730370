package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// IsConstraintViolation reports whether err is a SQLite constraint
// failure (foreign key, primary key, NOT NULL). Callers use it to
// distinguish bad references from genuine storage faults.
func IsConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
