package leave

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"metaedge-portal/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.Authorize(enforcer, "leaves", "create"), h.Apply)
		leaves.GET("/mine", middleware.Authorize(enforcer, "leaves", "read"), h.ListMine)
		leaves.GET("", middleware.Authorize(enforcer, "leaves", "decide"), h.ListAll)
		leaves.GET("/:id", middleware.Authorize(enforcer, "leaves", "read"), h.GetByID)
		leaves.PATCH("/:id/decision", middleware.Authorize(enforcer, "leaves", "decide"), h.Decide)
	}
}
