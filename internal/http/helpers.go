package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/database"
	"github.com/mlahtinen/fitcomp/internal/state"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 response. The
// actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondStateError maps provider errors onto HTTP statuses: validation
// problems and broken references become 400, missing resources 404,
// anything else 500.
func respondStateError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, state.ErrEmptyName), errors.Is(err, state.ErrInvalidDate):
		respondBadRequest(c, err.Error())
	case errors.Is(err, state.ErrNotFound):
		respondNotFound(c, context)
	case database.IsConstraintViolation(err):
		respondBadRequest(c, "referenced record does not exist")
	default:
		respondInternalError(c, err, context)
	}
}
