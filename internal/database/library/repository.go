// Package library provides database operations for the locally cached
// mirror of the remote exercise catalog.
package library

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mlahtinen/fitcomp/internal/entities"
)

// Repository handles exercise library cache operations. Both the search
// and the detail fetch paths persist through the single UpsertEntry
// below, so the two cannot drift apart in how they encode rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new library repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertEntry inserts or fully replaces a cached catalog record. The
// row ID is derived from the wger identifier, so refetching the same
// exercise overwrites in place.
func (r *Repository) UpsertEntry(entry *entities.LibraryExercise) error {
	if entry.ID == "" {
		entry.ID = entities.LibraryID(entry.WgerID)
	}
	if entry.Source == "" {
		entry.Source = entities.SourceWger
	}
	if entry.LastFetched.IsZero() {
		entry.LastFetched = time.Now()
	}
	normalize(entry)
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(entry).Error
}

// GetByID looks up a cached record by its local ID. Returns
// gorm.ErrRecordNotFound on a cache miss.
func (r *Repository) GetByID(id string) (*entities.LibraryExercise, error) {
	var entry entities.LibraryExercise
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	normalize(&entry)
	return &entry, nil
}

// GetAll returns every cached record, ordered by name.
func (r *Repository) GetAll() []entities.LibraryExercise {
	var entries []entities.LibraryExercise
	if err := r.db.Order("name ASC").Find(&entries).Error; err != nil {
		log.Printf("library.GetAll error: %v", err)
		return []entities.LibraryExercise{}
	}
	for i := range entries {
		normalize(&entries[i])
	}
	return entries
}

// GetStale returns cache rows last fetched before the cutoff, oldest
// first, capped at limit.
func (r *Repository) GetStale(olderThan time.Time, limit int) []entities.LibraryExercise {
	var entries []entities.LibraryExercise
	q := r.db.Where("last_fetched < ?", olderThan).Order("last_fetched ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		log.Printf("library.GetStale error: %v", err)
		return []entities.LibraryExercise{}
	}
	return entries
}

// DeleteStale removes cache rows last fetched before the cutoff and
// returns how many were removed.
func (r *Repository) DeleteStale(olderThan time.Time) (int64, error) {
	result := r.db.Delete(&entities.LibraryExercise{}, "last_fetched < ?", olderThan)
	return result.RowsAffected, result.Error
}

// Count returns the number of cached records.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.LibraryExercise{}).Count(&count).Error
	return count, err
}

// normalize replaces nil array columns with empty slices so callers and
// JSON encoding never see null lists.
func normalize(e *entities.LibraryExercise) {
	if e.Muscles == nil {
		e.Muscles = []int{}
	}
	if e.Equipment == nil {
		e.Equipment = []int{}
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	if e.Videos == nil {
		e.Videos = []string{}
	}
}
