package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mlahtinen/fitcomp/internal/entities"
	"github.com/mlahtinen/fitcomp/internal/overpass"
)

// GymSearcher finds gyms around a coordinate.
type GymSearcher interface {
	SearchNearby(ctx context.Context, lat, lng, radiusKm float64) ([]overpass.Gym, error)
	SearchByName(ctx context.Context, query string, lat, lng, radiusKm float64) ([]overpass.Gym, error)
}

// FavoriteGymStore persists the user's saved gyms.
type FavoriteGymStore interface {
	SaveFavorite(gym *entities.FavoriteGym) error
	RemoveFavorite(gymID string) error
	GetAllFavorites() []entities.FavoriteGym
	IsFavorited(gymID string) bool
}

// GymsController serves gym search and favorites.
type GymsController struct {
	searcher  GymSearcher
	favorites FavoriteGymStore
}

// NewGymsController creates a gym controller.
func NewGymsController(searcher GymSearcher, favorites FavoriteGymStore) *GymsController {
	return &GymsController{searcher: searcher, favorites: favorites}
}

type favoriteRequest struct {
	ID         string   `json:"id" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Address    string   `json:"address"`
	Distance   float64  `json:"distance"`
	Facilities []string `json:"facilities"`
}

// Nearby lists gyms around a coordinate, closest first.
// GET /api/gyms/nearby?lat=&lng=&radius=
func (gc *GymsController) Nearby(c *gin.Context) {
	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}
	radius := parseFloatQuery(c.Query("radius"), 0)

	gyms, err := gc.searcher.SearchNearby(c.Request.Context(), lat, lng, radius)
	if err != nil {
		respondInternalError(c, err, "gym search failed")
		return
	}
	gc.respondWithFavorites(c, gyms)
}

// Search lists gyms matching a name around a coordinate.
// GET /api/gyms/search?q=&lat=&lng=&radius=
func (gc *GymsController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q is required")
		return
	}
	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}
	radius := parseFloatQuery(c.Query("radius"), 0)

	gyms, err := gc.searcher.SearchByName(c.Request.Context(), query, lat, lng, radius)
	if err != nil {
		respondInternalError(c, err, "gym search failed")
		return
	}
	gc.respondWithFavorites(c, gyms)
}

// ListFavorites returns the saved gyms sorted by name.
// GET /api/gyms/favorites
func (gc *GymsController) ListFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"gyms": gc.favorites.GetAllFavorites()})
}

// SaveFavorite stores a gym. Saving an already stored gym refreshes it.
// POST /api/gyms/favorites
func (gc *GymsController) SaveFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "id and name are required")
		return
	}

	gym := entities.FavoriteGym{
		ID:         req.ID,
		Name:       req.Name,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Address:    req.Address,
		Distance:   req.Distance,
		Facilities: req.Facilities,
	}
	if gym.Facilities == nil {
		gym.Facilities = []string{}
	}

	if err := gc.favorites.SaveFavorite(&gym); err != nil {
		respondInternalError(c, err, "could not save favorite")
		return
	}
	respondCreated(c, gym)
}

// RemoveFavorite forgets a saved gym.
// DELETE /api/gyms/favorites/:id
func (gc *GymsController) RemoveFavorite(c *gin.Context) {
	if err := gc.favorites.RemoveFavorite(c.Param("id")); err != nil {
		respondInternalError(c, err, "could not remove favorite")
		return
	}
	respondSuccess(c, "favorite removed")
}

type gymWithFavorite struct {
	overpass.Gym
	IsFavorite bool `json:"is_favorite"`
}

func (gc *GymsController) respondWithFavorites(c *gin.Context, gyms []overpass.Gym) {
	out := make([]gymWithFavorite, 0, len(gyms))
	for _, g := range gyms {
		out = append(out, gymWithFavorite{Gym: g, IsFavorite: gc.favorites.IsFavorited(g.ID)})
	}
	c.JSON(http.StatusOK, gin.H{"gyms": out})
}

func parseCoordinates(c *gin.Context) (lat, lng float64, ok bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondBadRequest(c, "lat and lng are required")
		return 0, 0, false
	}
	return lat, lng, true
}

func parseFloatQuery(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
