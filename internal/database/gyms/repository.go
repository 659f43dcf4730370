// Package gyms provides database operations for favorite gyms.
package gyms

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mlahtinen/fitcomp/internal/entities"
)

// Repository handles favorite gym persistence. Search results are never
// cached; only explicitly starred gyms are stored.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new gyms repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveFavorite stores a gym, replacing any previous row with the same ID.
func (r *Repository) SaveFavorite(gym *entities.FavoriteGym) error {
	if gym.Facilities == nil {
		gym.Facilities = []string{}
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(gym).Error
}

// RemoveFavorite deletes a favorite by ID.
func (r *Repository) RemoveFavorite(gymID string) error {
	return r.db.Delete(&entities.FavoriteGym{}, "id = ?", gymID).Error
}

// GetAllFavorites returns every favorite gym, ordered by name.
func (r *Repository) GetAllFavorites() []entities.FavoriteGym {
	var favorites []entities.FavoriteGym
	err := r.db.Order("name ASC").Find(&favorites).Error
	if err != nil {
		log.Printf("gyms.GetAllFavorites error: %v", err)
		return []entities.FavoriteGym{}
	}
	for i := range favorites {
		if favorites[i].Facilities == nil {
			favorites[i].Facilities = []string{}
		}
	}
	return favorites
}

// IsFavorited reports whether a gym ID is stored as a favorite.
func (r *Repository) IsFavorited(gymID string) bool {
	var count int64
	err := r.db.Model(&entities.FavoriteGym{}).Where("id = ?", gymID).Count(&count).Error
	if err != nil {
		log.Printf("gyms.IsFavorited error: %v", err)
		return false
	}
	return count > 0
}
