package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mlahtinen/fitcomp/internal/entities"
	"github.com/mlahtinen/fitcomp/internal/services"
	"github.com/mlahtinen/fitcomp/internal/wger"
)

// ExerciseFinder is the part of the exercise service the controller needs.
type ExerciseFinder interface {
	SearchExercises(ctx context.Context, opts wger.SearchOptions) ([]entities.LibraryExercise, error)
	GetExerciseByID(ctx context.Context, localID string) (*entities.LibraryExercise, error)
	GetMuscles(ctx context.Context) ([]wger.Muscle, error)
}

// ExercisesController serves the exercise catalog.
type ExercisesController struct {
	finder ExerciseFinder
}

// NewExercisesController creates an exercise catalog controller.
func NewExercisesController(finder ExerciseFinder) *ExercisesController {
	return &ExercisesController{finder: finder}
}

// Search queries the catalog by name and optional muscle filter.
// GET /api/exercises?search=&muscle=&page=&limit=
func (ec *ExercisesController) Search(c *gin.Context) {
	opts := wger.SearchOptions{
		Search: c.Query("search"),
		Muscle: parsePositiveInt(c.Query("muscle"), 0),
		Page:   parsePositiveInt(c.Query("page"), 1),
		Limit:  parsePositiveInt(c.Query("limit"), 20),
	}

	exercises, err := ec.finder.SearchExercises(c.Request.Context(), opts)
	if err != nil {
		respondInternalError(c, err, "exercise search failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

// Get returns one exercise by its catalog id.
// GET /api/exercises/:id
func (ec *ExercisesController) Get(c *gin.Context) {
	exercise, err := ec.finder.GetExerciseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			respondBadRequest(c, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "exercise")
		default:
			respondInternalError(c, err, "exercise lookup failed")
		}
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// Muscles lists muscle groups usable as search filters.
// GET /api/exercises/muscles
func (ec *ExercisesController) Muscles(c *gin.Context) {
	muscles, err := ec.finder.GetMuscles(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "muscle list failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"muscles": muscles})
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
