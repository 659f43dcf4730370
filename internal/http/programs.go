package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlahtinen/fitcomp/internal/state"
)

// ProgramsController exposes the program → day → exercise tree.
type ProgramsController struct {
	programs *state.ProgramState
}

// NewProgramsController creates a programs controller.
func NewProgramsController(programs *state.ProgramState) *ProgramsController {
	return &ProgramsController{programs: programs}
}

type programRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListPrograms returns the full nested tree.
// GET /api/programs
func (pc *ProgramsController) ListPrograms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"programs": pc.programs.Programs(),
		"error":    pc.programs.LastError(),
	})
}

// GetProgram returns one program with its days and exercises.
// GET /api/programs/:id
func (pc *ProgramsController) GetProgram(c *gin.Context) {
	program, ok := pc.programs.GetProgramByID(c.Param("id"))
	if !ok {
		respondNotFound(c, "program")
		return
	}
	c.JSON(http.StatusOK, program)
}

// CreateProgram adds a new program.
// POST /api/programs
func (pc *ProgramsController) CreateProgram(c *gin.Context) {
	var req programRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	program, err := pc.programs.AddProgram(req.Name, req.Description)
	if err != nil {
		respondStateError(c, err, "create program")
		return
	}
	respondCreated(c, program)
}

// DeleteProgram removes a program and all its dependents.
// DELETE /api/programs/:id
func (pc *ProgramsController) DeleteProgram(c *gin.Context) {
	if err := pc.programs.DeleteProgram(c.Param("id")); err != nil {
		respondStateError(c, err, "program")
		return
	}
	respondSuccess(c, "program deleted")
}

// CreateDay adds a day to a program.
// POST /api/programs/:id/days
func (pc *ProgramsController) CreateDay(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	day, err := pc.programs.AddDay(c.Param("id"), req.Name)
	if err != nil {
		respondStateError(c, err, "program")
		return
	}
	respondCreated(c, day)
}

// DeleteDay removes a day, its exercises and its calendar entries.
// DELETE /api/programs/:id/days/:dayId
func (pc *ProgramsController) DeleteDay(c *gin.Context) {
	if err := pc.programs.DeleteDay(c.Param("id"), c.Param("dayId")); err != nil {
		respondStateError(c, err, "day")
		return
	}
	respondSuccess(c, "day deleted")
}

// CreateExercise adds an exercise to a day.
// POST /api/programs/:id/days/:dayId/exercises
func (pc *ProgramsController) CreateExercise(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	exercise, err := pc.programs.AddExercise(c.Param("id"), c.Param("dayId"), req.Name)
	if err != nil {
		respondStateError(c, err, "day")
		return
	}
	respondCreated(c, exercise)
}

// DeleteExercise removes one exercise from a day.
// DELETE /api/programs/:id/days/:dayId/exercises/:exerciseId
func (pc *ProgramsController) DeleteExercise(c *gin.Context) {
	err := pc.programs.DeleteExercise(c.Param("id"), c.Param("dayId"), c.Param("exerciseId"))
	if err != nil {
		respondStateError(c, err, "exercise")
		return
	}
	respondSuccess(c, "exercise deleted")
}
