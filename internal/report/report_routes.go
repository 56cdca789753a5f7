package report

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"metaedge-portal/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.POST("", middleware.Authorize(enforcer, "reports", "create"), h.Create)
		reports.GET("/:kind", middleware.Authorize(enforcer, "reports", "read"), h.List)
		reports.GET("/:kind/:id", middleware.Authorize(enforcer, "reports", "read"), h.GetByID)
		reports.PUT("/:kind/:id", middleware.Authorize(enforcer, "reports", "update"), h.Update)
		reports.DELETE("/:kind/:id", middleware.Authorize(enforcer, "reports", "delete"), h.Delete)
	}
}
