package note

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"metaedge-portal/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	notes := r.Group("/notes")
	notes.Use(middleware.AuthMiddleware())
	{
		notes.GET("", middleware.Authorize(enforcer, "notes", "read"), h.List)
		notes.POST("", middleware.Authorize(enforcer, "notes", "create"), h.Create)
		notes.PUT("/:id", middleware.Authorize(enforcer, "notes", "update"), h.Update)
		notes.PATCH("/:id/pin", middleware.Authorize(enforcer, "notes", "update"), h.TogglePin)
		notes.DELETE("/:id", middleware.Authorize(enforcer, "notes", "delete"), h.Delete)
	}
}
