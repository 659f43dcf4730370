// Package state holds the in-memory view models the UI layer consumes:
// the nested program tree, the date-keyed calendar map and the recent
// workout log cache. Each provider writes through to its repository and
// then updates its own state, so readers never wait on storage.
//
// Providers never fail reads. A failed load is logged and recorded as an
// advisory message next to the last-known-good data; write failures are
// returned to the caller.
package state

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/entities"
)

// ErrEmptyName is returned when a trimmed program, day or exercise name
// is empty.
var ErrEmptyName = errors.New("name must not be empty")

// ErrNotFound is returned when a mutation references a program or day
// that does not exist in the tree.
var ErrNotFound = errors.New("not found")

// ProgramStore is the persistence surface ProgramState writes through
// to. *programs.Repository satisfies it.
type ProgramStore interface {
	GetPrograms() []entities.Program
	AddProgram(id, name, description string) error
	DeleteProgram(id string) error
	AddDay(id, programID, name string) error
	DeleteDay(id string) error
	DeleteDaysByProgram(programID string) error
	AddExercise(id, dayID, name string) error
	DeleteExercise(id string) error
	DeleteExercisesByDay(dayID string) error
}

// CalendarCleaner removes calendar entries that reference days or
// programs being deleted. *calendar.Repository satisfies it.
type CalendarCleaner interface {
	DeleteEntriesByDay(dayID string) error
	DeleteEntriesByProgram(programID string) error
}

// ProgramState owns the nested program → day → exercise tree. After
// every mutation the tree matches what a fresh load from the store
// would produce.
type ProgramState struct {
	store    ProgramStore
	calendar CalendarCleaner

	mu       sync.RWMutex
	programs []entities.Program
	lastErr  string
}

// NewProgramState creates the provider and loads the tree.
func NewProgramState(store ProgramStore, calendar CalendarCleaner) *ProgramState {
	s := &ProgramState{store: store, calendar: calendar}
	s.Reload()
	return s
}

// Reload replaces the in-memory tree with a fresh load from the store.
func (s *ProgramState) Reload() {
	programs := s.store.GetPrograms()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.programs = programs
	s.lastErr = ""
}

// Programs returns a copy of the tree.
func (s *ProgramState) Programs() []entities.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPrograms(s.programs)
}

// GetProgramByID is a pure in-memory lookup.
func (s *ProgramState) GetProgramByID(programID string) (entities.Program, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.programs {
		if s.programs[i].ID == programID {
			return copyProgram(s.programs[i]), true
		}
	}
	return entities.Program{}, false
}

// GetDayByID is a pure in-memory lookup within one program.
func (s *ProgramState) GetDayByID(programID, dayID string) (entities.ProgramDay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.programs {
		if s.programs[i].ID != programID {
			continue
		}
		for j := range s.programs[i].Days {
			if s.programs[i].Days[j].ID == dayID {
				return copyDay(s.programs[i].Days[j]), true
			}
		}
	}
	return entities.ProgramDay{}, false
}

// AddProgram creates a program with a generated ID and trimmed fields.
func (s *ProgramState) AddProgram(name, description string) (*entities.Program, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return nil, ErrEmptyName
	}

	program := entities.Program{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Days:        []entities.ProgramDay{},
	}

	if err := s.store.AddProgram(program.ID, program.Name, program.Description); err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	s.programs = append(s.programs, program)
	s.lastErr = ""
	s.mu.Unlock()

	result := copyProgram(program)
	return &result, nil
}

// DeleteProgram removes a program and everything hanging off it:
// calendar entries first, then exercises, days and finally the program
// row itself. The schema-level cascades are only a backstop.
func (s *ProgramState) DeleteProgram(programID string) error {
	program, ok := s.GetProgramByID(programID)
	if !ok {
		return ErrNotFound
	}

	if err := s.calendar.DeleteEntriesByProgram(programID); err != nil {
		s.setErr(err)
		return err
	}
	for _, day := range program.Days {
		if err := s.store.DeleteExercisesByDay(day.ID); err != nil {
			s.setErr(err)
			return err
		}
	}
	if err := s.store.DeleteDaysByProgram(programID); err != nil {
		s.setErr(err)
		return err
	}
	if err := s.store.DeleteProgram(programID); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	filtered := s.programs[:0]
	for _, p := range s.programs {
		if p.ID != programID {
			filtered = append(filtered, p)
		}
	}
	s.programs = filtered
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// AddDay creates a day under a program.
func (s *ProgramState) AddDay(programID, name string) (*entities.ProgramDay, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, ok := s.GetProgramByID(programID); !ok {
		return nil, ErrNotFound
	}

	day := entities.ProgramDay{
		ID:        uuid.NewString(),
		ProgramID: programID,
		Name:      name,
		Exercises: []entities.ProgramExercise{},
	}

	if err := s.store.AddDay(day.ID, programID, name); err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.programs {
		if s.programs[i].ID == programID {
			s.programs[i].Days = append(s.programs[i].Days, day)
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()

	result := copyDay(day)
	return &result, nil
}

// DeleteDay removes a day, its exercises and any calendar entries that
// reference it.
func (s *ProgramState) DeleteDay(programID, dayID string) error {
	if _, ok := s.GetDayByID(programID, dayID); !ok {
		return ErrNotFound
	}

	if err := s.calendar.DeleteEntriesByDay(dayID); err != nil {
		s.setErr(err)
		return err
	}
	if err := s.store.DeleteExercisesByDay(dayID); err != nil {
		s.setErr(err)
		return err
	}
	if err := s.store.DeleteDay(dayID); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	for i := range s.programs {
		if s.programs[i].ID != programID {
			continue
		}
		days := s.programs[i].Days[:0]
		for _, d := range s.programs[i].Days {
			if d.ID != dayID {
				days = append(days, d)
			}
		}
		s.programs[i].Days = days
		break
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// AddExercise creates an exercise under a day.
func (s *ProgramState) AddExercise(programID, dayID, name string) (*entities.ProgramExercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, ok := s.GetDayByID(programID, dayID); !ok {
		return nil, ErrNotFound
	}

	exercise := entities.ProgramExercise{
		ID:    uuid.NewString(),
		DayID: dayID,
		Name:  name,
	}

	if err := s.store.AddExercise(exercise.ID, dayID, name); err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.programs {
		if s.programs[i].ID != programID {
			continue
		}
		for j := range s.programs[i].Days {
			if s.programs[i].Days[j].ID == dayID {
				s.programs[i].Days[j].Exercises = append(s.programs[i].Days[j].Exercises, exercise)
				break
			}
		}
		break
	}
	s.lastErr = ""
	s.mu.Unlock()

	result := exercise
	return &result, nil
}

// DeleteExercise removes a single exercise from a day.
func (s *ProgramState) DeleteExercise(programID, dayID, exerciseID string) error {
	if _, ok := s.GetDayByID(programID, dayID); !ok {
		return ErrNotFound
	}

	if err := s.store.DeleteExercise(exerciseID); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	for i := range s.programs {
		if s.programs[i].ID != programID {
			continue
		}
		for j := range s.programs[i].Days {
			if s.programs[i].Days[j].ID != dayID {
				continue
			}
			exercises := s.programs[i].Days[j].Exercises[:0]
			for _, e := range s.programs[i].Days[j].Exercises {
				if e.ID != exerciseID {
					exercises = append(exercises, e)
				}
			}
			s.programs[i].Days[j].Exercises = exercises
			break
		}
		break
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// LastError returns the advisory error message from the most recent
// failed operation, or "" when the last operation succeeded.
func (s *ProgramState) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *ProgramState) setErr(err error) {
	log.Printf("program state error: %v", err)
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func copyPrograms(programs []entities.Program) []entities.Program {
	out := make([]entities.Program, len(programs))
	for i := range programs {
		out[i] = copyProgram(programs[i])
	}
	return out
}

func copyProgram(p entities.Program) entities.Program {
	cp := p
	cp.Days = make([]entities.ProgramDay, len(p.Days))
	for i := range p.Days {
		cp.Days[i] = copyDay(p.Days[i])
	}
	return cp
}

func copyDay(d entities.ProgramDay) entities.ProgramDay {
	cd := d
	cd.Exercises = make([]entities.ProgramExercise, len(d.Exercises))
	copy(cd.Exercises, d.Exercises)
	return cd
}
