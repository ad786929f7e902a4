package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/models"
	"atelier-backend/internal/services"
	"atelier-backend/internal/store"
)

type UsersHandler struct {
	coord *services.Coordinator
}

func NewUsersHandler(coord *services.Coordinator) *UsersHandler {
	return &UsersHandler{coord: coord}
}

func (h *UsersHandler) List(c *gin.Context) {
	docs, err := h.coord.List(c.Request.Context(), store.CollUsers)
	if err != nil {
		respondError(c, err)
		return
	}

	users := make([]models.UserResponse, 0, len(docs))
	for _, doc := range docs {
		var user models.User
		if err := store.FromDoc(doc, &user); err != nil {
			respondError(c, apperr.Dependency("failed to decode user"))
			return
		}
		users = append(users, user.Response())
	}
	c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) Get(c *gin.Context) {
	doc, err := h.coord.Get(c.Request.Context(), store.CollUsers, models.EntityUser, c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var user models.User
	if err := store.FromDoc(doc, &user); err != nil {
		respondError(c, apperr.Dependency("failed to decode user"))
		return
	}
	c.JSON(http.StatusOK, user.Response())
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id := c.Param("user_id")

	// An admin removing their own account would lock everyone out of the
	// admin-only routes.
	actor := actorFrom(c)
	if actor.ID == id {
		respondError(c, apperr.InvalidInput("cannot delete your own account"))
		return
	}

	if err := h.coord.Delete(c.Request.Context(), store.CollUsers, models.EntityUser, id, actor, nil); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "user deleted"})
}
