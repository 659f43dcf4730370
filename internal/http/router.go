package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Health)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Program endpoints
	if cfg.Programs != nil {
		programs := NewProgramsController(cfg.Programs)
		router.GET("/api/programs", programs.ListPrograms)
		router.POST("/api/programs", programs.CreateProgram)
		router.GET("/api/programs/:id", programs.GetProgram)
		router.DELETE("/api/programs/:id", programs.DeleteProgram)
		router.POST("/api/programs/:id/days", programs.CreateDay)
		router.DELETE("/api/programs/:id/days/:dayId", programs.DeleteDay)
		router.POST("/api/programs/:id/days/:dayId/exercises", programs.CreateExercise)
		router.DELETE("/api/programs/:id/days/:dayId/exercises/:exerciseId", programs.DeleteExercise)
	}

	// Calendar endpoints
	if cfg.Calendar != nil {
		calendar := NewCalendarController(cfg.Calendar)
		router.GET("/api/calendar", calendar.ListEntries)
		router.GET("/api/calendar/stats/weekly", calendar.WeeklyStats)
		router.GET("/api/calendar/:date", calendar.GetEntry)
		router.PUT("/api/calendar/:date", calendar.AssignDay)
		router.DELETE("/api/calendar/:date", calendar.DeleteEntry)
		router.POST("/api/calendar/:date/done", calendar.MarkDone)
		router.PUT("/api/calendar/:date/notes", calendar.UpdateNotes)
	}

	// Workout log endpoints
	if cfg.WorkoutLogs != nil {
		logs := NewWorkoutLogsController(cfg.WorkoutLogs)
		router.GET("/api/logs", logs.ListLogs)
		router.POST("/api/logs", logs.CreateLog)
		router.GET("/api/logs/stats", logs.Stats)
		router.GET("/api/logs/exercise/:name", logs.LogsByExercise)
		router.GET("/api/logs/date/:date", logs.LogsByDate)
		router.DELETE("/api/logs/:id", logs.DeleteLog)
	}

	// Exercise catalog endpoints
	if cfg.ExerciseFinder != nil {
		exercises := NewExercisesController(cfg.ExerciseFinder)
		router.GET("/api/exercises", exercises.Search)
		router.GET("/api/exercises/muscles", exercises.Muscles)
		router.GET("/api/exercises/:id", exercises.Get)
	}

	// Gym search and favourite endpoints
	if cfg.GymSearcher != nil && cfg.Favorites != nil {
		gyms := NewGymsController(cfg.GymSearcher, cfg.Favorites)
		router.GET("/api/gyms/nearby", gyms.Nearby)
		router.GET("/api/gyms/search", gyms.Search)
		router.GET("/api/gyms/favorites", gyms.ListFavorites)
		router.POST("/api/gyms/favorites", gyms.SaveFavorite)
		router.DELETE("/api/gyms/favorites/:id", gyms.RemoveFavorite)
	}

	return router
}
