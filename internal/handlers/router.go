package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"atelier-backend/internal/config"
	"atelier-backend/internal/logging"
	"atelier-backend/internal/middleware"
	"atelier-backend/internal/models"
	"atelier-backend/internal/services"
	"atelier-backend/internal/store"
)

// NewRouter wires every route. Role grants are listed explicitly per route;
// Admin appears wherever it is allowed rather than being implied.
func NewRouter(cfg *config.Config, st store.Store, coord *services.Coordinator, images *services.ImageService) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logging.JSONLogger(), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	authHandler := NewAuthHandler(cfg, st, coord)
	usersHandler := NewUsersHandler(coord)
	projectsHandler := NewProjectsHandler(coord)
	inventoryHandler := NewCatalogHandler(store.CollInventory, models.EntityInventory, coord, images)
	equipmentHandler := NewCatalogHandler(store.CollEquipment, models.EntityEquipment, coord, images)
	logsHandler := NewLogsHandler(coord)
	uploadsHandler := NewUploadsHandler(images.Backend())
	bootstrapHandler := NewBootstrapHandler(st, coord)

	api := r.Group("/api")

	// Public routes.
	api.GET("/health", HealthHandler)
	api.POST("/init", bootstrapHandler.Init)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/uploads/:owner_id/:filename", uploadsHandler.Serve)

	// Everything below requires a valid token.
	authed := api.Group("")
	authed.Use(middleware.Authenticate(cfg))

	admin := middleware.RequireRoles(models.RoleAdmin)
	anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleLeadDecorator, models.RoleFlorist, models.RoleStudioCurator)
	curators := middleware.RequireRoles(models.RoleAdmin, models.RoleStudioCurator)

	authed.POST("/auth/register", admin, authHandler.Register)
	authed.GET("/auth/me", authHandler.Me)

	authed.GET("/users", admin, usersHandler.List)
	authed.GET("/users/:user_id", admin, usersHandler.Get)
	authed.DELETE("/users/:user_id", admin, usersHandler.Delete)

	authed.GET("/projects", anyRole, projectsHandler.List)
	authed.GET("/projects/:project_id", anyRole, projectsHandler.Get)
	authed.POST("/projects", anyRole, projectsHandler.Create)
	authed.PATCH("/projects/:project_id", anyRole, projectsHandler.Update)
	authed.DELETE("/projects/:project_id", admin, projectsHandler.Delete)

	registerCatalogRoutes(authed.Group("/inventory"), inventoryHandler, admin, anyRole, curators)
	registerCatalogRoutes(authed.Group("/equipment"), equipmentHandler, admin, anyRole, curators)

	authed.GET("/uploads/resolve", anyRole, uploadsHandler.Resolve)

	authed.GET("/logs", admin, logsHandler.List)
	authed.DELETE("/logs/cleanup", admin, logsHandler.Cleanup)

	return r
}

func registerCatalogRoutes(g *gin.RouterGroup, h *CatalogHandler, admin, anyRole, curators gin.HandlerFunc) {
	g.GET("", anyRole, h.List)
	g.GET("/:item_id", anyRole, h.Get)
	g.POST("", curators, h.Create)
	g.PATCH("/:item_id", curators, h.Update)
	g.DELETE("/:item_id", admin, h.Delete)
	g.POST("/:item_id/images", curators, h.UploadImage)
	g.DELETE("/:item_id/images", curators, h.DeleteImage)
}
