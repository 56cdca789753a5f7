package timeclock

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"metaedge-portal/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	clock := r.Group("/clock")
	clock.Use(middleware.AuthMiddleware())
	{
		clock.GET("/status", middleware.Authorize(enforcer, "clock", "read"), h.Status)
		clock.POST("/in", middleware.Authorize(enforcer, "clock", "create"), h.ClockIn)
		clock.POST("/out", middleware.Authorize(enforcer, "clock", "create"), h.ClockOut)
		clock.POST("/break/start", middleware.Authorize(enforcer, "clock", "create"), h.StartBreak)
		clock.POST("/break/end", middleware.Authorize(enforcer, "clock", "create"), h.EndBreak)
		clock.GET("/entries", middleware.Authorize(enforcer, "clock", "read"), h.ListEntries)
		clock.GET("/week", middleware.Authorize(enforcer, "clock", "read"), h.WeekSummary)
	}
}
