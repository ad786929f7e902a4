package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/auth"
	"atelier-backend/internal/models"
	"atelier-backend/internal/services"
	"atelier-backend/internal/store"
)

// Seed data for a fresh installation.
const (
	defaultAdminEmail    = "admin@atelier.local"
	defaultAdminPassword = "admin123"
	defaultAdminName     = "Administrator"
)

var sampleInventory = []models.CatalogItemCreateRequest{
	{Category: "Vases", Name: "Glass cylinder vase", TotalQuantity: 24, VisualMarker: "blue dot"},
	{Category: "Textiles", Name: "Linen table runner", TotalQuantity: 40, VisualMarker: "green tag"},
	{Category: "Candles", Name: "Pillar candle 20cm", TotalQuantity: 60},
	{Category: "Stands", Name: "Gold arch stand", TotalQuantity: 4, Description: "two-piece, needs van"},
}

// BootstrapHandler seeds a fresh installation with a default admin and a
// few inventory items. The route is unauthenticated so a new deployment can
// be initialized; it refuses to run twice.
type BootstrapHandler struct {
	store store.Store
	coord *services.Coordinator
}

func NewBootstrapHandler(st store.Store, coord *services.Coordinator) *BootstrapHandler {
	return &BootstrapHandler{store: st, coord: coord}
}

func (h *BootstrapHandler) Init(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := h.store.FindOne(ctx, store.CollUsers, store.Doc{"email": defaultAdminEmail}); err == nil {
		c.JSON(http.StatusOK, models.MessageResponse{Message: "already initialized"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(c, apperr.Dependency("failed to check existing users"))
		return
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		respondError(c, apperr.Dependency("failed to hash password"))
		return
	}

	admin := models.User{
		ID:           uuid.New().String(),
		Name:         defaultAdminName,
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	adminDoc, err := store.ToDoc(admin)
	if err != nil {
		respondError(c, apperr.Dependency("failed to encode user"))
		return
	}

	actor := services.Actor{ID: admin.ID, Name: admin.Email}
	if _, err := h.coord.Create(ctx, store.CollUsers, models.EntityUser, adminDoc, actor, map[string]interface{}{
		"user_name": admin.Name,
		"role":      string(admin.Role),
	}); err != nil {
		respondError(c, err)
		return
	}

	for _, req := range sampleInventory {
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
		if _, err := h.coord.Create(ctx, store.CollInventory, models.EntityInventory, doc, actor, map[string]interface{}{
			"name":     item.Name,
			"category": item.Category,
		}); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, models.MessageResponse{Message: "initialized with default admin and sample inventory"})
}
