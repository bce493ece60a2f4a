package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sereci/sirepre/internal/domain/identity"
	"github.com/sereci/sirepre/internal/interfaces/http/middleware"
	"github.com/sereci/sirepre/internal/interfaces/http/router"
)

// PostulanteRoutes creates the public form routes. uploadLimit guards the
// multipart endpoints.
func PostulanteRoutes(h *PostulanteHandler, uploadLimit gin.HandlerFunc) *router.Area {
	group := router.NewArea("postulantes", "/postulantes")
	group.POST("/", uploadLimit, h.Submit)
	group.GET("/existe/", h.Exists)
	group.GET("/recintos/", h.Venues)
	group.POST("/upload/", uploadLimit, h.Upload)
	group.GET("/status/", h.Status)
	group.GET("/pdf/:ci/", h.Receipt)
	return group
}

// HealthRoutes creates the probe routes.
func HealthRoutes(h *HealthHandler) *router.Area {
	group := router.NewArea("health", "/health")
	group.GET("/", h.Health)
	group.GET("/ready", h.Ready)
	return group
}

// AuthRoutes creates the staff session routes.
func AuthRoutes(h *AuthHandler, authMiddleware gin.HandlerFunc) *router.Area {
	group := router.NewArea("auth", "/auth")
	group.POST("/login", h.Login)
	group.POST("/refresh", h.RefreshToken)
	group.POST("/logout", authMiddleware, h.Logout)
	group.GET("/me", authMiddleware, h.Me)
	return group
}

// AdminRoutes creates the staff routes. Every route needs a valid token;
// configuration changes and imports need the admin role.
func AdminRoutes(admin *AdminHandler, venues *VenueHandler, authMiddleware, uploadLimit gin.HandlerFunc) *router.Area {
	adminOnly := middleware.RequireRole(string(identity.RoleAdmin))

	group := router.NewArea("admin", "/admin")
	group.Use(authMiddleware)

	group.GET("/postulantes", admin.ListApplicants)
	group.GET("/postulantes/export", admin.Export)
	group.GET("/postulantes/:id", admin.GetApplicant)
	group.POST("/postulantes/:id/revisiones", admin.RecordReview)
	group.POST("/postulantes/:id/comprobante", admin.RegenerateReceipt)

	group.GET("/estadisticas", admin.Stats)

	group.GET("/configuracion", admin.GetConfig)
	group.PUT("/configuracion", adminOnly, admin.UpdateConfig)

	group.POST("/recintos/import", adminOnly, uploadLimit, venues.Import)
	group.GET("/recintos/:id/nomina.pdf", venues.Roster)
	return group
}

// RegisterMedia mounts stored documents under /media/uploads.
func RegisterMedia(engine *gin.Engine, h *MediaHandler) {
	engine.GET("/media/uploads/*key", h.Serve)
}
