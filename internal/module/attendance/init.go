package attendance

import (
	"log/slog"
	"time"

	"facility-work-tracker/internal/global/logger"
	"facility-work-tracker/internal/module/common"
)

var log *slog.Logger

type ModuleAttendance struct {
	common.Deps
	// Now 当前时间，测试中可替换
	Now func() time.Time
}

func (m *ModuleAttendance) GetName() string {
	return "Attendance"
}

func (m *ModuleAttendance) Init() {
	log = logger.New("Attendance")
	m.Fill()
	if m.Now == nil {
		m.Now = time.Now
	}
}
