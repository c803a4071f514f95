package analytics

import (
	"testing"
	"time"

	"facility-work-tracker/internal/model"

	"github.com/stretchr/testify/assert"
)

func sp(s string) *string { return &s }

func TestTotalHours(t *testing.T) {
	assert.Equal(t, 8.5, TotalHours("09:00", "17:30"))
	assert.Equal(t, 0.0, TotalHours("18:00", "09:00"))
	assert.Equal(t, 0.0, TotalHours("", "17:00"))
	assert.Equal(t, 0.0, TotalHours("9am", "17:00"))
	assert.Equal(t, 0.0, TotalHours("25:00", "26:00"))
	assert.InDelta(t, 7.75, TotalHours("09:15:00", "17:00"), 1e-9)
}

func attendance(id, employee string, status model.AttendanceStatus, date string, in, out *string) model.AttendanceRecord {
	return model.AttendanceRecord{
		Model:      model.Model{ID: id},
		EmployeeID: employee,
		Status:     status,
		Date:       day(date),
		CheckIn:    in,
		CheckOut:   out,
		Employee:   &model.Employee{Name: "Ravi " + employee},
	}
}

func TestAttendanceFilterAndSummary(t *testing.T) {
	records := []model.AttendanceRecord{
		attendance("1", "e1", model.AttendancePresent, "2024-03-01", sp("09:00"), sp("17:00")),
		attendance("2", "e2", model.AttendanceLate, "2024-03-02", sp("10:00"), nil),
		attendance("3", "e1", model.AttendanceAbsent, "2024-03-03", nil, nil),
		attendance("4", "e3", model.AttendanceHalfDay, "2024-03-04", sp("09:00"), sp("13:00")),
	}
	records[2].OvertimeHours = -1
	records[3].OvertimeHours = 1.5
	records[3].WorkDescription = "Library shelving"

	ids := func(rs []model.AttendanceRecord) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	from := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, []string{"1", "2", "4"}, ids(FilterAttendance(records, AttendanceFilter{CheckIn: CheckedIn})))
	assert.Equal(t, []string{"3"}, ids(FilterAttendance(records, AttendanceFilter{CheckIn: NotCheckedIn})))
	assert.Equal(t, []string{"1", "4"}, ids(FilterAttendance(records, AttendanceFilter{CheckIn: CheckedOut})))
	assert.Equal(t, []string{"2", "3"}, ids(FilterAttendance(records, AttendanceFilter{CheckIn: NotCheckedOut})))
	assert.Equal(t, []string{"1", "3"}, ids(FilterAttendance(records, AttendanceFilter{EmployeeID: "e1", Status: "all"})))
	assert.Equal(t, []string{"2", "3", "4"}, ids(FilterAttendance(records, AttendanceFilter{From: &from})))
	assert.Equal(t, []string{"4"}, ids(FilterAttendance(records, AttendanceFilter{Search: "shelving"})))
	assert.Equal(t, []string{"2"}, ids(FilterAttendance(records, AttendanceFilter{Search: "ravi e2"})))
	assert.Equal(t, []string{"2"}, ids(FilterAttendance(records, AttendanceFilter{Status: "late"})))

	s := SummarizeAttendance(records)
	assert.Equal(t, AttendanceSummary{
		Total: 4, Present: 1, Absent: 1, Late: 1, HalfDay: 1, TotalHours: 12, OvertimeHours: 1.5,
	}, s)
}

func TestRecordHoursPrefersStoredValue(t *testing.T) {
	h := 6.0
	r := attendance("1", "e1", model.AttendancePresent, "2024-03-01", sp("09:00"), sp("17:00"))
	assert.Equal(t, 8.0, RecordHours(&r))
	r.TotalHours = &h
	assert.Equal(t, 6.0, RecordHours(&r))
}

func TestOverview(t *testing.T) {
	stats := DashboardStats{TotalTasks: 4, CompletedTasks: 1, PendingTasks: 3, TotalColleges: 3, ActiveColleges: 2, TotalCostAllTime: 1000}
	employees := []model.Employee{
		{Status: model.EmployeeActive}, {Status: model.EmployeeActive}, {Status: model.EmployeeOnLeave}, {Status: model.EmployeeInactive},
	}
	records := []model.AttendanceRecord{
		attendance("1", "e1", model.AttendancePresent, "2024-03-01", sp("09:00"), sp("17:00")),
		attendance("2", "e1", model.AttendanceAbsent, "2024-03-02", nil, nil),
	}
	records[0].OvertimeHours = 2

	o := Overview(stats, employees, records)
	assert.Equal(t, 4, o.WorkEntries.Total)
	assert.Equal(t, 1000.0, o.WorkEntries.TotalValue)
	assert.Equal(t, 4, o.Employees.Total)
	assert.Equal(t, 2, o.Employees.Active)
	assert.Equal(t, 1, o.Employees.OnLeave)
	assert.Equal(t, 25.0, o.Employees.Productivity)
	assert.Equal(t, 500.0, o.Colleges.AvgCostPerCollege)
	assert.Equal(t, 8.0, o.Attendance.AverageHours)
	assert.Equal(t, 2.0, o.Attendance.OvertimeHours)
	assert.Equal(t, 50.0, o.Attendance.AbsenceRate)

	empty := Overview(DashboardStats{}, nil, nil)
	assert.Zero(t, empty.Employees.Productivity)
	assert.Zero(t, empty.Attendance.AbsenceRate)
}
