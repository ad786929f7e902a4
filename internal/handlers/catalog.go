package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/models"
	"atelier-backend/internal/services"
	"atelier-backend/internal/store"
)

// CatalogHandler serves one catalog collection. Inventory and equipment get
// one instance each; the routes and behavior are identical apart from the
// collection and the audited entity type.
type CatalogHandler struct {
	collection string
	entityType string
	coord      *services.Coordinator
	images     *services.ImageService
}

func NewCatalogHandler(collection, entityType string, coord *services.Coordinator, images *services.ImageService) *CatalogHandler {
	return &CatalogHandler{
		collection: collection,
		entityType: entityType,
		coord:      coord,
		images:     images,
	}
}

func (h *CatalogHandler) List(c *gin.Context) {
	docs, err := h.coord.List(c.Request.Context(), h.collection)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]models.CatalogItem, 0, len(docs))
	for _, doc := range docs {
		var item models.CatalogItem
		if err := store.FromDoc(doc, &item); err != nil {
			respondError(c, apperr.Dependency("failed to decode item"))
			return
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	doc, err := h.coord.Get(c.Request.Context(), h.collection, h.entityType, c.Param("item_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var item models.CatalogItem
	if err := store.FromDoc(doc, &item); err != nil {
		respondError(c, apperr.Dependency("failed to decode item"))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req models.CatalogItemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("invalid item payload: %v", err))
		return
	}

	item := models.CatalogItem{
		ID:            uuid.New().String(),
		Category:      req.Category,
		Name:          req.Name,
		TotalQuantity: req.TotalQuantity,
		VisualMarker:  req.VisualMarker,
		Description:   req.Description,
		Images:        []string{},
	}
	doc, err := store.ToDoc(item)
	if err != nil {
		respondError(c, apperr.Dependency("failed to encode item"))
		return
	}

	created, err := h.coord.Create(c.Request.Context(), h.collection, h.entityType, doc, actorFrom(c), map[string]interface{}{
		"name":     item.Name,
		"category": item.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	var out models.CatalogItem
	if err := store.FromDoc(created, &out); err != nil {
		respondError(c, apperr.Dependency("failed to decode item"))
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	var req models.CatalogItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("invalid item payload: %v", err))
		return
	}

	patch := store.Doc{}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.TotalQuantity != nil {
		if *req.TotalQuantity < 0 {
			respondError(c, apperr.InvalidInput("total_quantity cannot be negative"))
			return
		}
		patch["total_quantity"] = *req.TotalQuantity
	}
	if req.VisualMarker != nil {
		patch["visual_marker"] = *req.VisualMarker
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if len(patch) == 0 {
		respondError(c, apperr.InvalidInput("no fields to update"))
		return
	}

	updated, err := h.coord.Update(c.Request.Context(), h.collection, h.entityType, c.Param("item_id"), patch, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	var out models.CatalogItem
	if err := store.FromDoc(updated, &out); err != nil {
		respondError(c, apperr.Dependency("failed to decode item"))
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.coord.Delete(c.Request.Context(), h.collection, h.entityType, c.Param("item_id"), actorFrom(c), nil); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "item deleted"})
}

// UploadImage accepts a multipart upload under "file", falling back to
// "image" for older clients, and attaches it to the item.
func (h *CatalogHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		header, err = c.FormFile("image")
	}
	if err != nil {
		respondError(c, apperr.InvalidInput("no file provided"))
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, apperr.InvalidInput("failed to open uploaded file"))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		respondError(c, apperr.InvalidInput("failed to read uploaded file"))
		return
	}

	locator, total, err := h.images.Attach(c.Request.Context(), h.collection, h.entityType, c.Param("item_id"), header.Filename, content, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ImageUploadResponse{ImageURL: locator, TotalImages: total})
}

// DeleteImage detaches the locator named by the image_url query parameter.
func (h *CatalogHandler) DeleteImage(c *gin.Context) {
	locator := c.Query("image_url")
	if locator == "" {
		respondError(c, apperr.InvalidInput("image_url query parameter is required"))
		return
	}

	remaining, err := h.images.Detach(c.Request.Context(), h.collection, h.entityType, c.Param("item_id"), locator, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ImageDeleteResponse{
		Message:         "image deleted",
		RemainingImages: remaining,
	})
}
