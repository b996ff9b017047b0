package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/JuzzThyne/ERI-backend/obs"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 3 * time.Second

// CheckConnection pings the store
func (h *Handler) CheckConnection(c *gin.Context) {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := h.health.Ping(ctx); err != nil {
			obs.Logger.Error("health_check_failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database connection failed"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Elea Random Items API is running"})
}
