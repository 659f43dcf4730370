// Package workoutlogs provides database operations for workout log
// records. Logs have no update path: rows are inserted once and only
// ever deleted.
package workoutlogs

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mlahtinen/fitcomp/internal/entities"
)

// DefaultLimit caps GetRecent when the caller passes no limit.
const DefaultLimit = 100

// Repository handles all workout log database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new workout log repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a new log row. CreatedAt is filled by GORM.
func (r *Repository) Add(entry *entities.WorkoutLog) error {
	return r.db.Create(entry).Error
}

// Delete removes a log row.
func (r *Repository) Delete(id string) error {
	return r.db.Delete(&entities.WorkoutLog{}, "id = ?", id).Error
}

// GetRecent returns the most recent logs, newest first. A non-positive
// limit falls back to DefaultLimit.
func (r *Repository) GetRecent(limit int) []entities.WorkoutLog {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var logs []entities.WorkoutLog
	err := r.db.Order("date DESC, created_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		log.Printf("workoutlogs.GetRecent error: %v", err)
		return []entities.WorkoutLog{}
	}
	return logs
}

// GetByExercise returns all logs for an exercise name, newest first.
func (r *Repository) GetByExercise(exerciseName string) []entities.WorkoutLog {
	var logs []entities.WorkoutLog
	err := r.db.Where("exercise_name = ?", exerciseName).
		Order("date DESC, created_at DESC").Find(&logs).Error
	if err != nil {
		log.Printf("workoutlogs.GetByExercise error: %v", err)
		return []entities.WorkoutLog{}
	}
	return logs
}

// GetByDate returns all logs recorded for a calendar date.
func (r *Repository) GetByDate(date string) []entities.WorkoutLog {
	var logs []entities.WorkoutLog
	err := r.db.Where("date = ?", date).
		Order("created_at DESC").Find(&logs).Error
	if err != nil {
		log.Printf("workoutlogs.GetByDate error: %v", err)
		return []entities.WorkoutLog{}
	}
	return logs
}

// Count returns the total number of stored logs.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.WorkoutLog{}).Count(&count).Error
	return count, err
}
