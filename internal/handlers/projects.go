package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/models"
	"atelier-backend/internal/services"
	"atelier-backend/internal/store"
)

type ProjectsHandler struct {
	coord *services.Coordinator
}

func NewProjectsHandler(coord *services.Coordinator) *ProjectsHandler {
	return &ProjectsHandler{coord: coord}
}

func (h *ProjectsHandler) List(c *gin.Context) {
	docs, err := h.coord.List(c.Request.Context(), store.CollProjects)
	if err != nil {
		respondError(c, err)
		return
	}

	projects := make([]models.Project, 0, len(docs))
	for _, doc := range docs {
		var p models.Project
		if err := store.FromDoc(doc, &p); err != nil {
			respondError(c, apperr.Dependency("failed to decode project"))
			return
		}
		projects = append(projects, p)
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectsHandler) Get(c *gin.Context) {
	doc, err := h.coord.Get(c.Request.Context(), store.CollProjects, models.EntityProject, c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var p models.Project
	if err := store.FromDoc(doc, &p); err != nil {
		respondError(c, apperr.Dependency("failed to decode project"))
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectsHandler) Create(c *gin.Context) {
	var req models.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("invalid project payload: %v", err))
		return
	}

	actor := actorFrom(c)
	project := models.Project{
		ID:              uuid.New().String(),
		Title:           req.Title,
		LeadDecorator:   req.LeadDecorator,
		ProjectDate:     req.ProjectDate,
		FullDetails:     req.FullDetails,
		Status:          models.StatusCreated,
		PreliminaryList: []models.LineItem{},
		FinalList:       []models.LineItem{},
		DismantlingList: []models.LineItem{},
		CreatedBy:       actor.ID,
	}

	doc, err := store.ToDoc(project)
	if err != nil {
		respondError(c, apperr.Dependency("failed to encode project"))
		return
	}

	created, err := h.coord.Create(c.Request.Context(), store.CollProjects, models.EntityProject, doc, actor, map[string]interface{}{
		"title": project.Title,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	var out models.Project
	if err := store.FromDoc(created, &out); err != nil {
		respondError(c, apperr.Dependency("failed to decode project"))
		return
	}
	c.JSON(http.StatusCreated, out)
}

// Update merges only the fields present in the request. A payload touching
// one item list leaves the other two lists exactly as they were.
func (h *ProjectsHandler) Update(c *gin.Context) {
	var req models.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("invalid project payload: %v", err))
		return
	}

	patch := store.Doc{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.LeadDecorator != nil {
		patch["lead_decorator"] = *req.LeadDecorator
	}
	if req.ProjectDate != nil {
		patch["project_date"] = store.FormatTime(*req.ProjectDate)
	}
	if req.FullDetails != nil {
		patch["full_details"] = req.FullDetails
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			respondError(c, apperr.InvalidInput("unknown status %q", *req.Status))
			return
		}
		patch["status"] = string(*req.Status)
	}
	if req.PreliminaryList != nil {
		patch["preliminary_list"] = lineItemDocs(*req.PreliminaryList)
	}
	if req.FinalList != nil {
		patch["final_list"] = lineItemDocs(*req.FinalList)
	}
	if req.DismantlingList != nil {
		patch["dismantling_list"] = lineItemDocs(*req.DismantlingList)
	}
	if req.CuratorAgreement != nil {
		patch["curator_agreement"] = *req.CuratorAgreement
	}
	if req.DecoratorAgreement != nil {
		patch["decorator_agreement"] = *req.DecoratorAgreement
	}
	if len(patch) == 0 {
		respondError(c, apperr.InvalidInput("no fields to update"))
		return
	}

	updated, err := h.coord.Update(c.Request.Context(), store.CollProjects, models.EntityProject, c.Param("project_id"), patch, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	var out models.Project
	if err := store.FromDoc(updated, &out); err != nil {
		respondError(c, apperr.Dependency("failed to decode project"))
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProjectsHandler) Delete(c *gin.Context) {
	if err := h.coord.Delete(c.Request.Context(), store.CollProjects, models.EntityProject, c.Param("project_id"), actorFrom(c), nil); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "project deleted"})
}

func validStatus(s models.ProjectStatus) bool {
	switch s {
	case models.StatusCreated, models.StatusPendingApproval, models.StatusApproved,
		models.StatusBuild, models.StatusAssembly, models.StatusDisassembly, models.StatusBreakdown:
		return true
	}
	return false
}

// lineItemDocs converts a list to the plain shape every Store accepts.
func lineItemDocs(items []models.LineItem) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]interface{}{
			"item_id":  item.ItemID,
			"name":     item.Name,
			"category": item.Category,
			"quantity": item.Quantity,
			"source":   item.Source,
		})
	}
	return out
}
