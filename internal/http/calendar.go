package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlahtinen/fitcomp/internal/state"
)

// CalendarController exposes the date → assignment map.
type CalendarController struct {
	calendar *state.CalendarState
}

// NewCalendarController creates a calendar controller.
func NewCalendarController(calendar *state.CalendarState) *CalendarController {
	return &CalendarController{calendar: calendar}
}

type assignRequest struct {
	ProgramID string `json:"program_id" binding:"required"`
	DayID     string `json:"day_id" binding:"required"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// ListEntries returns every calendar assignment keyed by date.
// GET /api/calendar
func (cc *CalendarController) ListEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"entries": cc.calendar.Entries(),
		"error":   cc.calendar.LastError(),
	})
}

// GetEntry returns the assignment for one date.
// GET /api/calendar/:date
func (cc *CalendarController) GetEntry(c *gin.Context) {
	assignment, ok := cc.calendar.GetAssignedDay(c.Param("date"))
	if !ok {
		respondNotFound(c, "calendar entry")
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// AssignDay binds a program day to a date. Re-assigning keeps the
// date's existing done flag and notes.
// PUT /api/calendar/:date
func (cc *CalendarController) AssignDay(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "program_id and day_id are required")
		return
	}

	if err := cc.calendar.AssignDayToDate(c.Param("date"), req.ProgramID, req.DayID); err != nil {
		respondStateError(c, err, "assign day")
		return
	}
	respondSuccess(c, "day assigned")
}

// DeleteEntry removes the assignment for a date.
// DELETE /api/calendar/:date
func (cc *CalendarController) DeleteEntry(c *gin.Context) {
	if err := cc.calendar.DeleteEntry(c.Param("date")); err != nil {
		respondStateError(c, err, "calendar entry")
		return
	}
	respondSuccess(c, "calendar entry deleted")
}

// MarkDone flags a date's workout as completed.
// POST /api/calendar/:date/done
func (cc *CalendarController) MarkDone(c *gin.Context) {
	if err := cc.calendar.MarkDone(c.Param("date")); err != nil {
		respondStateError(c, err, "calendar entry")
		return
	}
	respondSuccess(c, "marked done")
}

// UpdateNotes replaces a date's notes.
// PUT /api/calendar/:date/notes
func (cc *CalendarController) UpdateNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid notes payload")
		return
	}

	if err := cc.calendar.UpdateNotes(c.Param("date"), req.Notes); err != nil {
		respondStateError(c, err, "calendar entry")
		return
	}
	respondSuccess(c, "notes updated")
}

// WeeklyStats returns assigned/completed counts for the current week.
// GET /api/calendar/stats/weekly
func (cc *CalendarController) WeeklyStats(c *gin.Context) {
	c.JSON(http.StatusOK, cc.calendar.WeeklyStats(time.Now()))
}
