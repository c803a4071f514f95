package college

import (
	"log/slog"

	"facility-work-tracker/internal/global/logger"
	"facility-work-tracker/internal/module/common"
)

var log *slog.Logger

type ModuleCollege struct {
	common.Deps
}

func (m *ModuleCollege) GetName() string {
	return "College"
}

func (m *ModuleCollege) Init() {
	log = logger.New("College")
	m.Fill()
}
