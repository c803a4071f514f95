package user

import (
	"facility-work-tracker/internal/global/middleware"
	"facility-work-tracker/internal/model"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")

	userGroup.POST("/login", u.Login)
	userGroup.GET("/me", middleware.Auth(model.UserRoleEmployee), u.Me)
}
