package cleanup

import (
	"log/slog"

	"facility-work-tracker/internal/global/logger"
	"facility-work-tracker/internal/module/common"
)

var log *slog.Logger

type ModuleCleanup struct {
	common.Deps
}

func (m *ModuleCleanup) GetName() string {
	return "Cleanup"
}

func (m *ModuleCleanup) Init() {
	log = logger.New("Cleanup")
	m.Fill()
}
