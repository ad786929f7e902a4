package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/models"
	"atelier-backend/internal/storage"
)

// UploadsHandler serves locally stored files and resolves locators that need
// a second call to become fetchable URLs.
type UploadsHandler struct {
	backend storage.Backend
}

func NewUploadsHandler(backend storage.Backend) *UploadsHandler {
	return &UploadsHandler{backend: backend}
}

// Serve streams a locally stored file. Only the local backend's files live
// under this route; with another backend active it is a plain 404.
func (h *UploadsHandler) Serve(c *gin.Context) {
	local, ok := h.backend.(*storage.LocalBackend)
	if !ok {
		respondError(c, apperr.NotFound("file not found"))
		return
	}

	path, err := local.ResolvePath(c.Param("owner_id"), c.Param("filename"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.File(path)
}

// Resolve turns a locator into a fetchable URL. Backends whose locators are
// already URLs return them unchanged.
func (h *UploadsHandler) Resolve(c *gin.Context) {
	locator := c.Query("image_url")
	if locator == "" {
		respondError(c, apperr.InvalidInput("image_url query parameter is required"))
		return
	}

	url := locator
	if resolver, ok := h.backend.(storage.URLResolver); ok {
		resolved, err := resolver.ResolveURL(c.Request.Context(), locator)
		if err != nil {
			respondError(c, err)
			return
		}
		url = resolved
	}

	c.JSON(http.StatusOK, models.ImageURLResponse{ImageURL: url})
}
