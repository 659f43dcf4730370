package entities

import (
	"fmt"
	"time"
)

// SourceWger marks exercise_library rows mirrored from the wger catalog.
const SourceWger = "wger"

// LibraryExercise is a locally cached copy of a remote catalog record.
// The ID is derived deterministically from the external identifier so
// repeated fetches overwrite the same row instead of duplicating it.
type LibraryExercise struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	WgerID      int       `gorm:"uniqueIndex" json:"wger_id"`
	Name        string    `gorm:"index;size:256;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Muscles     []int     `gorm:"serializer:json" json:"muscles"`
	Equipment   []int     `gorm:"serializer:json" json:"equipment"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	Videos      []string  `gorm:"serializer:json" json:"videos"`
	Source      string    `gorm:"size:32" json:"source"`
	LastFetched time.Time `json:"last_fetched"`
}

func (LibraryExercise) TableName() string { return "exercise_library" }

// LibraryID derives the local cache key for a wger exercise.
func LibraryID(wgerID int) string {
	return fmt.Sprintf("wger-%d", wgerID)
}
