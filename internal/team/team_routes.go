package team

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"metaedge-portal/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	teams := r.Group("/teams")
	teams.Use(middleware.AuthMiddleware())
	{
		teams.GET("", middleware.Authorize(enforcer, "teams", "read"), h.GetAll)
		teams.GET("/:id", middleware.Authorize(enforcer, "teams", "read"), h.GetByID)
		teams.POST("", middleware.Authorize(enforcer, "teams", "create"), h.Create)
		teams.PUT("/:id", middleware.Authorize(enforcer, "teams", "update"), h.Update)
		teams.DELETE("/:id", middleware.Authorize(enforcer, "teams", "delete"), h.Delete)

		teams.GET("/:id/members", middleware.Authorize(enforcer, "teams", "read"), h.ListMembers)
		teams.POST("/:id/members", middleware.Authorize(enforcer, "teams", "members"), h.AddMember)
		teams.DELETE("/:id/members/:employeeId", middleware.Authorize(enforcer, "teams", "members"), h.RemoveMember)
	}
}
