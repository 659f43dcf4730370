package state

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/entities"
)

// WorkoutLogStore is the persistence surface WorkoutLogState writes
// through to. *workoutlogs.Repository satisfies it.
type WorkoutLogStore interface {
	Add(entry *entities.WorkoutLog) error
	Delete(id string) error
	GetRecent(limit int) []entities.WorkoutLog
	GetByExercise(exerciseName string) []entities.WorkoutLog
	GetByDate(date string) []entities.WorkoutLog
}

// LogStats summarizes the cached recent logs for the progress view.
type LogStats struct {
	TotalWorkouts   int `json:"total_workouts"`
	UniqueExercises int `json:"unique_exercises"`
	Last7Days       int `json:"last_7_days"`
}

// AddLogInput carries the fields for a new workout log entry.
type AddLogInput struct {
	ExerciseID   string
	ExerciseName string
	Date         string
	Sets         int
	Reps         int
	Weight       float64
	Notes        string
}

// WorkoutLogState caches the most recent logs. The by-exercise and
// by-date queries always bypass the cache and hit the store, matching
// the history views that need completeness over speed.
type WorkoutLogState struct {
	store WorkoutLogStore
	limit int

	mu      sync.RWMutex
	logs    []entities.WorkoutLog
	lastErr string
}

// NewWorkoutLogState creates the provider and loads the recent logs.
func NewWorkoutLogState(store WorkoutLogStore, limit int) *WorkoutLogState {
	s := &WorkoutLogState{store: store, limit: limit}
	s.Reload()
	return s
}

// Reload refreshes the cached recent logs.
func (s *WorkoutLogState) Reload() {
	logs := s.store.GetRecent(s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = logs
	s.lastErr = ""
}

// Logs returns a copy of the cached recent logs, newest first.
func (s *WorkoutLogState) Logs() []entities.WorkoutLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.WorkoutLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// AddLog records a completed exercise and refreshes the cache.
func (s *WorkoutLogState) AddLog(input AddLogInput) (*entities.WorkoutLog, error) {
	name := strings.TrimSpace(input.ExerciseName)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !validDate(input.Date) {
		return nil, ErrInvalidDate
	}

	entry := entities.WorkoutLog{
		ID:           uuid.NewString(),
		ExerciseID:   strings.TrimSpace(input.ExerciseID),
		ExerciseName: name,
		Date:         input.Date,
		Sets:         input.Sets,
		Reps:         input.Reps,
		Weight:       input.Weight,
		Notes:        strings.TrimSpace(input.Notes),
	}

	if err := s.store.Add(&entry); err != nil {
		s.setErr(err)
		return nil, err
	}
	s.Reload()
	return &entry, nil
}

// DeleteLog removes a log entry and refreshes the cache.
func (s *WorkoutLogState) DeleteLog(id string) error {
	if err := s.store.Delete(id); err != nil {
		s.setErr(err)
		return err
	}
	s.Reload()
	return nil
}

// LogsByExercise queries the store directly for an exercise's history.
func (s *WorkoutLogState) LogsByExercise(exerciseName string) []entities.WorkoutLog {
	return s.store.GetByExercise(exerciseName)
}

// LogsByDate queries the store directly for one date's logs.
func (s *WorkoutLogState) LogsByDate(date string) []entities.WorkoutLog {
	return s.store.GetByDate(date)
}

// Stats derives progress numbers from the cached recent logs.
func (s *WorkoutLogState) Stats(now time.Time) LogStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := LogStats{TotalWorkouts: len(s.logs)}

	unique := make(map[string]bool, len(s.logs))
	cutoff := now.AddDate(0, 0, -7)
	for _, entry := range s.logs {
		unique[entry.ExerciseName] = true
		d, err := time.Parse(entities.DateLayout, entry.Date)
		if err != nil {
			continue
		}
		if !d.Before(cutoff) && !d.After(now) {
			stats.Last7Days++
		}
	}
	stats.UniqueExercises = len(unique)
	return stats
}

// LastError returns the advisory error message from the most recent
// failed operation, or "" when the last operation succeeded.
func (s *WorkoutLogState) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *WorkoutLogState) setErr(err error) {
	log.Printf("workout log state error: %v", err)
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
