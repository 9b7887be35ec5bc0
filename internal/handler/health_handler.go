package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing dependency is reachable. *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db          Pinger
	environment string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, environment string) *HealthHandler {
	return &HealthHandler{db: db, environment: environment}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "environment": h.environment})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
