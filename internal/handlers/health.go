package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) HealthCheck(c *gin.Context) {
	status, code, database := "ok", http.StatusOK, "ok"

	if h.database != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.database.PingContext(ctx); err != nil {
			status, code, database = "degraded", http.StatusServiceUnavailable, err.Error()
		}
	}

	body := gin.H{
		"status":    status,
		"message":   "Taskhome is running",
		"timestamp": h.now().Format(time.RFC3339),
		"database":  database,
	}

	if h.scheduler != nil {
		body["scheduler"] = h.scheduler.GetStatus()
	}

	c.JSON(code, body)
}
