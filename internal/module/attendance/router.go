package attendance

import (
	"facility-work-tracker/internal/global/middleware"
	"facility-work-tracker/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleAttendance) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/attendance")

	read := g.Group("", middleware.Auth(model.UserRoleEmployee))
	read.GET("/list", m.List)
	read.GET("/export", m.Export)
	// 员工本人即可打卡
	read.POST("/check-in", m.CheckIn)
	read.POST("/check-out/:id", m.CheckOut)

	write := g.Group("", middleware.Auth(model.UserRoleManager))
	write.POST("/create", m.Create)
	write.PUT("/update/:id", m.Update)
	write.DELETE("/delete/:id", m.Delete)
}
