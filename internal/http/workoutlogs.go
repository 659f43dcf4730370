package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlahtinen/fitcomp/internal/state"
)

// WorkoutLogsController exposes the workout history.
type WorkoutLogsController struct {
	logs *state.WorkoutLogState
}

// NewWorkoutLogsController creates a workout log controller.
func NewWorkoutLogsController(logs *state.WorkoutLogState) *WorkoutLogsController {
	return &WorkoutLogsController{logs: logs}
}

type logRequest struct {
	ExerciseID   string  `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
	Notes        string  `json:"notes"`
}

// ListLogs returns the most recent entries, newest first.
// GET /api/logs
func (lc *WorkoutLogsController) ListLogs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"logs":  lc.logs.Logs(),
		"error": lc.logs.LastError(),
	})
}

// CreateLog records a finished set.
// POST /api/logs
func (lc *WorkoutLogsController) CreateLog(c *gin.Context) {
	var req logRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "exercise_name and date are required")
		return
	}

	logEntry, err := lc.logs.AddLog(state.AddLogInput{
		ExerciseID:   req.ExerciseID,
		ExerciseName: req.ExerciseName,
		Date:         req.Date,
		Sets:         req.Sets,
		Reps:         req.Reps,
		Weight:       req.Weight,
		Notes:        req.Notes,
	})
	if err != nil {
		respondStateError(c, err, "workout log")
		return
	}
	respondCreated(c, logEntry)
}

// DeleteLog removes one log entry.
// DELETE /api/logs/:id
func (lc *WorkoutLogsController) DeleteLog(c *gin.Context) {
	if err := lc.logs.DeleteLog(c.Param("id")); err != nil {
		respondStateError(c, err, "workout log")
		return
	}
	respondSuccess(c, "log deleted")
}

// LogsByExercise returns the full history for one exercise name.
// GET /api/logs/exercise/:name
func (lc *WorkoutLogsController) LogsByExercise(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"logs": lc.logs.LogsByExercise(c.Param("name"))})
}

// LogsByDate returns every entry recorded on a date.
// GET /api/logs/date/:date
func (lc *WorkoutLogsController) LogsByDate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"logs": lc.logs.LogsByDate(c.Param("date"))})
}

// Stats summarizes the training history.
// GET /api/logs/stats
func (lc *WorkoutLogsController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, lc.logs.Stats(time.Now()))
}
