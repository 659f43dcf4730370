package state

import (
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/entities"
)

// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// CalendarStore is the persistence surface CalendarState writes through
// to. *calendar.Repository satisfies it.
type CalendarStore interface {
	GetEntries() map[string]entities.Assignment
	AssignDayToDate(date, programID, dayID string) error
	DeleteEntry(date string) error
	DeleteEntriesByDay(dayID string) error
	MarkDone(date string) error
	UpdateNotes(date, notes string) error
}

// WeeklyStats summarizes calendar completion for one Monday-based week.
type WeeklyStats struct {
	WeekStart string `json:"week_start"`
	Assigned  int    `json:"assigned"`
	Completed int    `json:"completed"`
}

// CalendarState owns the date → assignment map. Mutations write through
// to the store and then reload the whole map; entry volume is bounded by
// days in use, so the full reload stays cheap.
type CalendarState struct {
	store CalendarStore

	mu       sync.RWMutex
	selected map[string]entities.Assignment
	lastErr  string
}

// NewCalendarState creates the provider and loads the map.
func NewCalendarState(store CalendarStore) *CalendarState {
	s := &CalendarState{store: store}
	s.Reload()
	return s
}

// Reload replaces the in-memory map with a fresh load from the store.
func (s *CalendarState) Reload() {
	entries := s.store.GetEntries()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = entries
	s.lastErr = ""
}

// Entries returns a copy of the date-keyed assignment map.
func (s *CalendarState) Entries() map[string]entities.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]entities.Assignment, len(s.selected))
	for date, a := range s.selected {
		out[date] = a
	}
	return out
}

// GetAssignedDay is a pure lookup of the assignment for a date.
func (s *CalendarState) GetAssignedDay(date string) (entities.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.selected[date]
	return a, ok
}

// AssignDayToDate binds a program day to a date. Re-assigning an
// already-used date keeps its done flag and notes.
func (s *CalendarState) AssignDayToDate(date, programID, dayID string) error {
	if !validDate(date) {
		return ErrInvalidDate
	}
	if err := s.store.AssignDayToDate(date, programID, dayID); err != nil {
		s.setErr(err)
		return err
	}
	s.Reload()
	return nil
}

// DeleteEntry removes the assignment for a date.
func (s *CalendarState) DeleteEntry(date string) error {
	if err := s.store.DeleteEntry(date); err != nil {
		s.setErr(err)
		return err
	}
	s.Reload()
	return nil
}

// DeleteEntriesByDay removes every assignment referencing a day.
func (s *CalendarState) DeleteEntriesByDay(dayID string) error {
	if err := s.store.DeleteEntriesByDay(dayID); err != nil {
		s.setErr(err)
		return err
	}
	s.Reload()
	return nil
}

// MarkDone flags the assignment for a date as completed.
func (s *CalendarState) MarkDone(date string) error {
	if err := s.store.MarkDone(date); err != nil {
		s.setErr(err)
		return err
	}
	s.Reload()
	return nil
}

// UpdateNotes replaces the notes on the assignment for a date.
func (s *CalendarState) UpdateNotes(date, notes string) error {
	if err := s.store.UpdateNotes(date, notes); err != nil {
		s.setErr(err)
		return err
	}
	s.Reload()
	return nil
}

// WeeklyStats derives assigned/completed counts for the Monday-based
// week containing now, straight from the in-memory map.
func (s *CalendarState) WeeklyStats(now time.Time) WeeklyStats {
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := WeeklyStats{WeekStart: weekStart.Format(entities.DateLayout)}
	for date, a := range s.selected {
		d, err := time.Parse(entities.DateLayout, date)
		if err != nil {
			continue
		}
		if d.Before(weekStart) || !d.Before(weekEnd) {
			continue
		}
		stats.Assigned++
		if a.Done {
			stats.Completed++
		}
	}
	return stats
}

// LastError returns the advisory error message from the most recent
// failed operation, or "" when the last operation succeeded.
func (s *CalendarState) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *CalendarState) setErr(err error) {
	log.Printf("calendar state error: %v", err)
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func validDate(date string) bool {
	_, err := time.Parse(entities.DateLayout, date)
	return err == nil
}

func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset)
}
