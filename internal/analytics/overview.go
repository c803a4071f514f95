package analytics

import "facility-work-tracker/internal/model"

type ReportOverview struct {
	WorkEntries struct {
		Total      int     `json:"total"`
		Completed  int     `json:"completed"`
		Pending    int     `json:"pending"`
		InProgress int     `json:"inProgress"`
		TotalValue float64 `json:"totalValue"`
	} `json:"workEntries"`
	Employees struct {
		Total        int     `json:"total"`
		Active       int     `json:"active"`
		OnLeave      int     `json:"onLeave"`
		Inactive     int     `json:"inactive"`
		Productivity float64 `json:"productivity"` // 已完成工单占比
	} `json:"employees"`
	Colleges struct {
		Total             int     `json:"total"`
		Active            int     `json:"active"`
		AvgCostPerCollege float64 `json:"avgCostPerCollege"`
	} `json:"colleges"`
	Attendance struct {
		Records       int     `json:"records"`
		AverageHours  float64 `json:"averageHours"`
		OvertimeHours float64 `json:"overtimeHours"`
		AbsenceRate   float64 `json:"absenceRate"`
	} `json:"attendance"`
}

// Overview 报表页概览，员工与考勤数据取自真实记录
func Overview(stats DashboardStats, employees []model.Employee, records []model.AttendanceRecord) ReportOverview {
	var o ReportOverview

	o.WorkEntries.Total = stats.TotalTasks
	o.WorkEntries.Completed = stats.CompletedTasks
	o.WorkEntries.Pending = stats.PendingTasks
	o.WorkEntries.InProgress = stats.InProgressTasks
	o.WorkEntries.TotalValue = stats.TotalCostAllTime

	o.Employees.Total = len(employees)
	for i := range employees {
		switch employees[i].Status {
		case model.EmployeeActive:
			o.Employees.Active++
		case model.EmployeeOnLeave:
			o.Employees.OnLeave++
		case model.EmployeeInactive:
			o.Employees.Inactive++
		}
	}
	o.Employees.Productivity = percent(stats.CompletedTasks, stats.TotalTasks)

	o.Colleges.Total = stats.TotalColleges
	o.Colleges.Active = stats.ActiveColleges
	if stats.ActiveColleges > 0 {
		o.Colleges.AvgCostPerCollege = stats.TotalCostAllTime / float64(stats.ActiveColleges)
	}

	summary := SummarizeAttendance(records)
	o.Attendance.Records = summary.Total
	o.Attendance.OvertimeHours = summary.OvertimeHours
	o.Attendance.AbsenceRate = percent(summary.Absent, summary.Total)
	if worked := summary.Total - summary.Absent; worked > 0 {
		o.Attendance.AverageHours = summary.TotalHours / float64(worked)
	}
	return o
}
