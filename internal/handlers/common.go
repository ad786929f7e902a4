package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/middleware"
	"atelier-backend/internal/models"
	"atelier-backend/internal/services"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// respondError maps an error to its HTTP status with a machine-readable
// kind and a safe human message.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), models.ErrorResponse{
		Error:   apperr.Kind(err),
		Message: err.Error(),
	})
}

// actorFrom identifies the authenticated principal for audit entries.
func actorFrom(c *gin.Context) services.Actor {
	claims, ok := middleware.Principal(c)
	if !ok {
		return services.Actor{}
	}
	return services.Actor{ID: claims.UserID, Name: claims.Email}
}
