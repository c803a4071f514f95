package analytics

import (
	"strconv"
	"strings"
	"time"

	"facility-work-tracker/internal/model"
)

// 打卡状态筛选取值
const (
	CheckedIn     = "checked-in"
	NotCheckedIn  = "not-checked-in"
	CheckedOut    = "checked-out"
	NotCheckedOut = "not-checked-out"
)

// TotalHours 由 HH:MM 格式的签到签退时间计算工时，任一缺失或格式错误返回 0
func TotalHours(checkIn, checkOut string) float64 {
	in, ok := clockHours(checkIn)
	if !ok {
		return 0
	}
	out, ok := clockHours(checkOut)
	if !ok {
		return 0
	}
	return max(0, out-in)
}

func clockHours(s string) (float64, bool) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	// 兼容 HH:MM:SS
	mm, _, _ = strings.Cut(mm, ":")
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return float64(h) + float64(m)/60, true
}

// ValidClock 是否为合法的 HH:MM
func ValidClock(s string) bool {
	_, ok := clockHours(s)
	return ok
}

// RecordHours 优先使用记录中的工时，否则由打卡时间推算
func RecordHours(r *model.AttendanceRecord) float64 {
	if r.TotalHours != nil && *r.TotalHours > 0 {
		return *r.TotalHours
	}
	if r.CheckIn == nil || r.CheckOut == nil {
		return 0
	}
	return TotalHours(*r.CheckIn, *r.CheckOut)
}

type AttendanceFilter struct {
	From       *time.Time
	To         *time.Time
	Status     string
	EmployeeID string
	Search     string // 员工姓名或工作描述
	CheckIn    string // checked-in / not-checked-in / checked-out / not-checked-out
}

func (f *AttendanceFilter) Match(r *model.AttendanceRecord) bool {
	if f.From != nil || f.To != nil {
		t := time.Time(r.Date)
		if t.IsZero() {
			return false
		}
		key := dayKey(t)
		if f.From != nil && key < dayKey(*f.From) {
			return false
		}
		if f.To != nil && key > dayKey(*f.To) {
			return false
		}
	}
	if !matchAll(f.Status) && string(r.Status) != strings.TrimSpace(f.Status) {
		return false
	}
	if !matchAll(f.EmployeeID) && r.EmployeeID != strings.TrimSpace(f.EmployeeID) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		name := ""
		if r.Employee != nil {
			name = r.Employee.Name
		}
		if !strings.Contains(strings.ToLower(name), q) && !strings.Contains(strings.ToLower(r.WorkDescription), q) {
			return false
		}
	}
	switch strings.TrimSpace(f.CheckIn) {
	case CheckedIn:
		return present(r.CheckIn)
	case NotCheckedIn:
		return !present(r.CheckIn)
	case CheckedOut:
		return present(r.CheckOut)
	case NotCheckedOut:
		return !present(r.CheckOut)
	}
	return true
}

func FilterAttendance(records []model.AttendanceRecord, f AttendanceFilter) []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, 0, len(records))
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

type AttendanceSummary struct {
	Total         int     `json:"total"`
	Present       int     `json:"present"`
	Absent        int     `json:"absent"`
	Late          int     `json:"late"`
	HalfDay       int     `json:"halfDay"`
	TotalHours    float64 `json:"totalHours"`
	OvertimeHours float64 `json:"overtimeHours"`
}

func SummarizeAttendance(records []model.AttendanceRecord) AttendanceSummary {
	s := AttendanceSummary{Total: len(records)}
	for i := range records {
		r := &records[i]
		switch r.Status {
		case model.AttendancePresent:
			s.Present++
		case model.AttendanceAbsent:
			s.Absent++
		case model.AttendanceLate:
			s.Late++
		case model.AttendanceHalfDay:
			s.HalfDay++
		}
		s.TotalHours += RecordHours(r)
		s.OvertimeHours += max(r.OvertimeHours, 0)
	}
	return s
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
