package stats

import (
	"facility-work-tracker/internal/global/middleware"
	"facility-work-tracker/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleStats) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/stats")
	g.Use(middleware.Auth(model.UserRoleEmployee))
	{
		g.GET("/dashboard", m.Dashboard)
		g.GET("/overview", m.Overview)
		g.GET("/performance", m.Performance)
		g.GET("/trend", m.Trend)
		g.GET("/report", m.Report)
		g.GET("/export", m.Export)
	}
}
