package employee

import (
	"log/slog"

	"facility-work-tracker/internal/global/logger"
	"facility-work-tracker/internal/module/common"
)

var log *slog.Logger

type ModuleEmployee struct {
	common.Deps
}

func (m *ModuleEmployee) GetName() string {
	return "Employee"
}

func (m *ModuleEmployee) Init() {
	log = logger.New("Employee")
	m.Fill()
}
