package entities

import "time"

// WorkoutLog records an actually-performed exercise on a date. Logs are
// keyed by exercise name rather than by a foreign key so they survive
// deletion of the originating program exercise. Rows are immutable once
// created except for deletion.
type WorkoutLog struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	ExerciseID   string    `gorm:"size:64" json:"exercise_id,omitempty"`
	ExerciseName string    `gorm:"index;size:256;not null" json:"exercise_name"`
	Date         string    `gorm:"index;size:10;not null" json:"date"`
	Sets         int       `json:"sets,omitempty"`
	Reps         int       `json:"reps,omitempty"`
	Weight       float64   `json:"weight,omitempty"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (WorkoutLog) TableName() string { return "workout_logs" }
