package employee

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"metaedge-portal/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/options", middleware.Authorize(enforcer, "employees", "options"), h.GetOptions)
		employees.GET("", middleware.Authorize(enforcer, "employees", "read"), h.GetAll)
		employees.GET("/:id", middleware.Authorize(enforcer, "employees", "read"), h.GetByID)
		employees.POST("", middleware.Authorize(enforcer, "employees", "create"), h.Create)
		employees.PUT("/:id", middleware.Authorize(enforcer, "employees", "update"), h.Update)
		employees.PATCH("/:id/active", middleware.Authorize(enforcer, "employees", "update"), h.SetActive)
	}
}
