package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/models"
	"atelier-backend/internal/services"
)

type LogsHandler struct {
	coord *services.Coordinator
}

func NewLogsHandler(coord *services.Coordinator) *LogsHandler {
	return &LogsHandler{coord: coord}
}

// List returns recent audit entries, newest first. ?limit caps the count,
// default 100.
func (h *LogsHandler) List(c *gin.Context) {
	limit := int64(100)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			respondError(c, apperr.InvalidInput("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.coord.ListLogs(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Cleanup purges entries past retention and reports the count removed.
func (h *LogsHandler) Cleanup(c *gin.Context) {
	deleted, err := h.coord.PurgeLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CleanupResponse{DeletedCount: deleted})
}
