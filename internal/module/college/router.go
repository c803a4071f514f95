package college

import (
	"facility-work-tracker/internal/global/middleware"
	"facility-work-tracker/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleCollege) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/college")

	read := g.Group("", middleware.Auth(model.UserRoleEmployee))
	read.GET("/list", m.List)
	read.GET("/get/:id", m.Get)
	read.GET("/export", m.Export)

	write := g.Group("", middleware.Auth(model.UserRoleManager))
	write.POST("/create", m.Create)
	write.PUT("/update/:id", m.Update)
	write.DELETE("/delete/:id", m.Delete)
}
