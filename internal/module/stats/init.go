package stats

import (
	"log/slog"
	"time"

	"facility-work-tracker/internal/global/logger"
	"facility-work-tracker/internal/module/common"
)

var log *slog.Logger

type ModuleStats struct {
	common.Deps
	Now func() time.Time
}

func (*ModuleStats) GetName() string {
	return "Stats"
}

func (m *ModuleStats) Init() {
	log = logger.New("Stats")
	m.Fill()
	if m.Now == nil {
		m.Now = time.Now
	}
}
