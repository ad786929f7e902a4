package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/auth"
	"atelier-backend/internal/config"
	"atelier-backend/internal/middleware"
	"atelier-backend/internal/models"
	"atelier-backend/internal/services"
	"atelier-backend/internal/store"
)

type AuthHandler struct {
	cfg   *config.Config
	store store.Store
	coord *services.Coordinator
}

func NewAuthHandler(cfg *config.Config, st store.Store, coord *services.Coordinator) *AuthHandler {
	return &AuthHandler{cfg: cfg, store: st, coord: coord}
}

// Register creates a new principal. Admin only; duplicate emails are
// rejected before any write.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("invalid registration payload: %v", err))
		return
	}
	if !models.ValidRole(req.Role) {
		respondError(c, apperr.InvalidInput("unknown role %q", req.Role))
		return
	}

	if _, err := h.store.FindOne(c.Request.Context(), store.CollUsers, store.Doc{"email": req.Email}); err == nil {
		respondError(c, apperr.InvalidInput("user with this email already exists"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(c, apperr.Dependency("failed to check existing users"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, apperr.Dependency("failed to hash password"))
		return
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	doc, err := store.ToDoc(user)
	if err != nil {
		respondError(c, apperr.Dependency("failed to encode user"))
		return
	}

	created, err := h.coord.Create(c.Request.Context(), store.CollUsers, models.EntityUser, doc, actorFrom(c), map[string]interface{}{
		"user_name": user.Name,
		"role":      string(user.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	var out models.User
	if err := store.FromDoc(created, &out); err != nil {
		respondError(c, apperr.Dependency("failed to decode user"))
		return
	}
	c.JSON(http.StatusCreated, out.Response())
}

// Login checks credentials and issues a bearer token; inactive accounts are
// refused even with a correct password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("invalid login payload: %v", err))
		return
	}

	doc, err := h.store.FindOne(c.Request.Context(), store.CollUsers, store.Doc{"email": req.Email})
	if err != nil {
		respondError(c, apperr.Unauthenticated("incorrect email or password"))
		return
	}

	var user models.User
	if err := store.FromDoc(doc, &user); err != nil {
		respondError(c, apperr.Dependency("failed to decode user"))
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondError(c, apperr.Unauthenticated("incorrect email or password"))
		return
	}
	if !user.IsActive {
		respondError(c, apperr.Forbidden("user account is inactive"))
		return
	}

	if _, err := h.store.SetFields(c.Request.Context(), store.CollUsers, user.ID, store.Doc{
		"last_login": store.FormatTime(timeNow()),
	}); err != nil {
		respondError(c, apperr.Dependency("failed to record login"))
		return
	}

	token, err := auth.IssueToken(h.cfg.JWTSecret, h.cfg.TokenTTL, user)
	if err != nil {
		respondError(c, apperr.Dependency("failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the authenticated principal's own record.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, apperr.Unauthenticated("no authenticated principal"))
		return
	}

	doc, err := h.store.FindByID(c.Request.Context(), store.CollUsers, claims.UserID)
	if err != nil {
		respondError(c, apperr.NotFound("user not found"))
		return
	}

	var user models.User
	if err := store.FromDoc(doc, &user); err != nil {
		respondError(c, apperr.Dependency("failed to decode user"))
		return
	}
	c.JSON(http.StatusOK, user.Response())
}
