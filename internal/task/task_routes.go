package task

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"metaedge-portal/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("", middleware.Authorize(enforcer, "tasks", "read"), h.ListByTeam)
		tasks.GET("/:id", middleware.Authorize(enforcer, "tasks", "read"), h.GetByID)
		tasks.POST("", middleware.Authorize(enforcer, "tasks", "create"), h.Create)
		tasks.PUT("/:id", middleware.Authorize(enforcer, "tasks", "update"), h.Update)
		tasks.PATCH("/:id/status", middleware.Authorize(enforcer, "tasks", "update"), h.UpdateStatus)
		tasks.DELETE("/:id", middleware.Authorize(enforcer, "tasks", "delete"), h.Delete)

		tasks.GET("/:id/comments", middleware.Authorize(enforcer, "tasks", "read"), h.ListComments)
		tasks.POST("/:id/comments", middleware.Authorize(enforcer, "tasks", "update"), h.AddComment)
	}
}
