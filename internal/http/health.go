package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping() error
}

// HealthController answers liveness probes.
type HealthController struct {
	db      Pinger
	version string
}

// NewHealthController creates a health controller.
func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Health reports service and database status.
// GET /health
func (hc *HealthController) Health(c *gin.Context) {
	if err := hc.ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"version": hc.version,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": hc.version,
	})
}

func (hc *HealthController) ping() error {
	if hc.db == nil {
		return nil
	}
	return hc.db.Ping()
}
