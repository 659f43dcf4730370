// Package calendar provides database operations for calendar entries:
// the binding of a date to a program day, plus done/notes state.
package calendar

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mlahtinen/fitcomp/internal/entities"
)

// Repository handles all calendar entry database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new calendar repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetEntries returns every calendar entry as a date-keyed map.
func (r *Repository) GetEntries() map[string]entities.Assignment {
	var rows []entities.CalendarEntry
	if err := r.db.Find(&rows).Error; err != nil {
		log.Printf("calendar.GetEntries error: %v", err)
		return map[string]entities.Assignment{}
	}

	mapped := make(map[string]entities.Assignment, len(rows))
	for _, e := range rows {
		mapped[e.Date] = entities.Assignment{
			ProgramID: e.ProgramID,
			DayID:     e.DayID,
			Done:      e.Done,
			Notes:     e.Notes,
		}
	}
	return mapped
}

// AssignDayToDate binds a program day to a date. The statement is a
// single atomic upsert: on conflict only program_id and day_id are
// replaced, so an existing entry's done flag and notes survive
// re-assignment. A fresh entry starts with done=false and empty notes.
func (r *Repository) AssignDayToDate(date, programID, dayID string) error {
	return r.db.Exec(`
		INSERT INTO calendar_entries (date, program_id, day_id, done, notes)
		VALUES (?, ?, ?, 0, '')
		ON CONFLICT(date) DO UPDATE SET
			program_id = excluded.program_id,
			day_id = excluded.day_id`,
		date, programID, dayID,
	).Error
}

// DeleteEntry removes the entry for a date.
func (r *Repository) DeleteEntry(date string) error {
	return r.db.Delete(&entities.CalendarEntry{}, "date = ?", date).Error
}

// DeleteEntriesByDay removes every entry referencing a day. Called when
// the day is deleted from its program.
func (r *Repository) DeleteEntriesByDay(dayID string) error {
	return r.db.Delete(&entities.CalendarEntry{}, "day_id = ?", dayID).Error
}

// DeleteEntriesByProgram removes every entry referencing a program.
func (r *Repository) DeleteEntriesByProgram(programID string) error {
	return r.db.Delete(&entities.CalendarEntry{}, "program_id = ?", programID).Error
}

// MarkDone flags the entry for a date as completed.
func (r *Repository) MarkDone(date string) error {
	return r.db.Model(&entities.CalendarEntry{}).
		Where("date = ?", date).
		Update("done", true).Error
}

// UpdateNotes replaces the notes on the entry for a date.
func (r *Repository) UpdateNotes(date, notes string) error {
	return r.db.Model(&entities.CalendarEntry{}).
		Where("date = ?", date).
		Update("notes", notes).Error
}
