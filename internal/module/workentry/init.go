package workentry

import (
	"log/slog"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/logger"
	"facility-work-tracker/internal/module/common"
)

var log *slog.Logger

type ModuleWorkEntry struct {
	common.Deps
	// StrictStatus 只允许 pending -> in-progress -> completed
	StrictStatus bool
}

func (m *ModuleWorkEntry) GetName() string {
	return "WorkEntry"
}

func (m *ModuleWorkEntry) Init() {
	log = logger.New("WorkEntry")
	m.Fill()
	m.StrictStatus = m.StrictStatus || config.Get().WorkEntry.StrictStatus
}
