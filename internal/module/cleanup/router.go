package cleanup

import (
	"facility-work-tracker/internal/global/middleware"
	"facility-work-tracker/internal/model"

	"github.com/gin-gonic/gin"
)

// InitRouter 数据清理会物理删除工单，仅管理员可用
func (m *ModuleCleanup) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/cleanup")
	g.Use(middleware.Auth(model.UserRoleAdmin))
	{
		g.GET("/report", m.Report)
		g.POST("/run", m.Run)
		g.GET("/history", m.History)
	}
}
