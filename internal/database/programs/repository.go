// Package programs provides database operations for the program → day →
// exercise hierarchy.
//
// # Usage
//
//	repo := programs.NewRepository(db)
//	tree := repo.GetPrograms()
package programs

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mlahtinen/fitcomp/internal/entities"
)

// Repository handles all program, day and exercise database operations.
// Read methods log storage faults and return empty values; write methods
// return the error to the caller.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new programs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetPrograms returns the fully nested program tree (programs with their
// days and each day's exercises), in insertion order.
func (r *Repository) GetPrograms() []entities.Program {
	var programs []entities.Program
	err := r.db.Preload("Days.Exercises").Find(&programs).Error
	if err != nil {
		log.Printf("programs.GetPrograms error: %v", err)
		return []entities.Program{}
	}
	for i := range programs {
		if programs[i].Days == nil {
			programs[i].Days = []entities.ProgramDay{}
		}
		for j := range programs[i].Days {
			if programs[i].Days[j].Exercises == nil {
				programs[i].Days[j].Exercises = []entities.ProgramExercise{}
			}
		}
	}
	return programs
}

// AddProgram inserts a new program row.
func (r *Repository) AddProgram(id, name, description string) error {
	return r.db.Create(&entities.Program{
		ID:          id,
		Name:        name,
		Description: description,
	}).Error
}

// DeleteProgram removes a program row. Dependent rows are removed by the
// caller in dependency order; the schema-level cascade is a backstop.
func (r *Repository) DeleteProgram(id string) error {
	return r.db.Delete(&entities.Program{}, "id = ?", id).Error
}

// GetDaysByProgram returns a program's days without their exercises.
func (r *Repository) GetDaysByProgram(programID string) []entities.ProgramDay {
	var days []entities.ProgramDay
	err := r.db.Where("program_id = ?", programID).Find(&days).Error
	if err != nil {
		log.Printf("programs.GetDaysByProgram error: %v", err)
		return []entities.ProgramDay{}
	}
	return days
}

// AddDay inserts a new day row under a program.
func (r *Repository) AddDay(id, programID, name string) error {
	return r.db.Create(&entities.ProgramDay{
		ID:        id,
		ProgramID: programID,
		Name:      name,
	}).Error
}

// DeleteDay removes a single day row.
func (r *Repository) DeleteDay(id string) error {
	return r.db.Delete(&entities.ProgramDay{}, "id = ?", id).Error
}

// DeleteDaysByProgram removes every day belonging to a program.
func (r *Repository) DeleteDaysByProgram(programID string) error {
	return r.db.Delete(&entities.ProgramDay{}, "program_id = ?", programID).Error
}

// GetExercisesByDay returns a day's exercises.
func (r *Repository) GetExercisesByDay(dayID string) []entities.ProgramExercise {
	var exercises []entities.ProgramExercise
	err := r.db.Where("day_id = ?", dayID).Find(&exercises).Error
	if err != nil {
		log.Printf("programs.GetExercisesByDay error: %v", err)
		return []entities.ProgramExercise{}
	}
	return exercises
}

// AddExercise inserts a new exercise row under a day.
func (r *Repository) AddExercise(id, dayID, name string) error {
	return r.db.Create(&entities.ProgramExercise{
		ID:    id,
		DayID: dayID,
		Name:  name,
	}).Error
}

// DeleteExercise removes a single exercise row.
func (r *Repository) DeleteExercise(id string) error {
	return r.db.Delete(&entities.ProgramExercise{}, "id = ?", id).Error
}

// DeleteExercisesByDay removes every exercise belonging to a day.
func (r *Repository) DeleteExercisesByDay(dayID string) error {
	return r.db.Delete(&entities.ProgramExercise{}, "day_id = ?", dayID).Error
}
