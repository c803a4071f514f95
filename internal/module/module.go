package module

import (
	"facility-work-tracker/internal/module/attendance"
	"facility-work-tracker/internal/module/cleanup"
	"facility-work-tracker/internal/module/college"
	"facility-work-tracker/internal/module/employee"
	"facility-work-tracker/internal/module/ping"
	"facility-work-tracker/internal/module/stats"
	"facility-work-tracker/internal/module/user"
	"facility-work-tracker/internal/module/workentry"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&college.ModuleCollege{},
		&workentry.ModuleWorkEntry{},
		&employee.ModuleEmployee{},
		&attendance.ModuleAttendance{},
		&stats.ModuleStats{},
		&cleanup.ModuleCleanup{},
	})
}
