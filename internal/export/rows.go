package export

import (
	"math"

	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/model"
)

type workEntryRow struct {
	SNo         int      `excel:"S.No"`
	Date        string   `excel:"Date"`
	College     string   `excel:"College"`
	Location    string   `excel:"Location"`
	Block       string   `excel:"Block"`
	Room        string   `excel:"Work Area/Room"`
	Description string   `excel:"Work Description"`
	WorkType    string   `excel:"Work Type"`
	Length      *float64 `excel:"Length"`
	Width       *float64 `excel:"Width"`
	Height      *float64 `excel:"Height"`
	Quantity    *float64 `excel:"Quantity"`
	SquareFeet  float64  `excel:"Sq.Ft"`
	RatePerSqft float64  `excel:"Rate per Unit"`
	FinalRate   float64  `excel:"Final Rate"`
	Status      string   `excel:"Status"`
}

// WorkEntryRows 面积、单价、费用取自统一计算结果
func WorkEntryRows(entries []analytics.Entry) []Row {
	items := make([]workEntryRow, len(entries))
	for i := range entries {
		e := &entries[i]
		items[i] = workEntryRow{
			SNo:         i + 1,
			Date:        model.FormatDate(e.Date),
			College:     e.CollegeName(),
			Location:    e.Location,
			Block:       e.Block,
			Room:        e.Room,
			Description: e.WorkDescription,
			WorkType:    e.WorkType,
			Length:      e.Length,
			Width:       e.Width,
			Height:      e.Height,
			Quantity:    e.Quantity,
			SquareFeet:  round2(e.Metrics.SquareFeet),
			RatePerSqft: round2(e.Metrics.RatePerSqft),
			FinalRate:   round2(e.Metrics.FinalRate),
			Status:      string(e.Status),
		}
	}
	return rowsOf(items)
}

type attendanceRow struct {
	SNo             int     `excel:"S.No"`
	Date            string  `excel:"Date"`
	Employee        string  `excel:"Employee"`
	CheckIn         *string `excel:"Check In"`
	CheckOut        *string `excel:"Check Out"`
	TotalHours      float64 `excel:"Total Hours"`
	Status          string  `excel:"Status"`
	WorkDescription string  `excel:"Work Description"`
	OvertimeHours   float64 `excel:"Overtime Hours"`
	Notes           string  `excel:"Notes"`
}

func AttendanceRows(records []model.AttendanceRecord) []Row {
	items := make([]attendanceRow, len(records))
	for i := range records {
		r := &records[i]
		name := ""
		if r.Employee != nil {
			name = r.Employee.Name
		}
		items[i] = attendanceRow{
			SNo:             i + 1,
			Date:            model.FormatDate(r.Date),
			Employee:        name,
			CheckIn:         r.CheckIn,
			CheckOut:        r.CheckOut,
			TotalHours:      round2(analytics.RecordHours(r)),
			Status:          string(r.Status),
			WorkDescription: r.WorkDescription,
			OvertimeHours:   r.OvertimeHours,
			Notes:           r.Notes,
		}
	}
	return rowsOf(items)
}

type collegeRow struct {
	SNo           int    `excel:"S.No"`
	Name          string `excel:"College Name"`
	Location      string `excel:"Location"`
	ContactPerson string `excel:"Contact Person"`
	Phone         string `excel:"Phone"`
	Email         string `excel:"Email"`
	Address       string `excel:"Address"`
}

func CollegeRows(colleges []model.College) []Row {
	items := make([]collegeRow, len(colleges))
	for i, c := range colleges {
		items[i] = collegeRow{
			SNo:           i + 1,
			Name:          c.Name,
			Location:      c.Location,
			ContactPerson: c.ContactPerson,
			Phone:         c.Phone,
			Email:         c.Email,
			Address:       c.Address,
		}
	}
	return rowsOf(items)
}

type employeeRow struct {
	SNo        int     `excel:"S.No"`
	Name       string  `excel:"Name"`
	Email      string  `excel:"Email"`
	Phone      string  `excel:"Phone"`
	Role       string  `excel:"Role"`
	Department string  `excel:"Department"`
	Salary     float64 `excel:"Salary"`
	JoinDate   string  `excel:"Join Date"`
	Status     string  `excel:"Status"`
	College    string  `excel:"College"`
	Skills     string  `excel:"Skills"`
	Address    string  `excel:"Address"`
}

func EmployeeRows(employees []model.Employee) []Row {
	items := make([]employeeRow, len(employees))
	for i := range employees {
		e := &employees[i]
		item := employeeRow{
			SNo:        i + 1,
			Name:       e.Name,
			Email:      e.Email,
			Phone:      e.Phone,
			Role:       string(e.Role),
			Department: e.Department,
			Salary:     e.Salary,
			Status:     string(e.Status),
			Skills:     e.Skills,
			Address:    e.Address,
		}
		if e.JoinDate != nil {
			item.JoinDate = model.FormatDate(*e.JoinDate)
		}
		if e.College != nil {
			item.College = e.College.Name
		}
		items[i] = item
	}
	return rowsOf(items)
}

type performanceRow struct {
	Rank              int     `excel:"Rank"`
	College           string  `excel:"College"`
	Location          string  `excel:"Location"`
	Tasks             int     `excel:"Total Tasks"`
	TasksCompleted    int     `excel:"Tasks Completed"`
	TotalCost         float64 `excel:"Total Cost"`
	Efficiency        float64 `excel:"Efficiency (%)"`
	AvgCompletionDays float64 `excel:"Avg Completion (days)"`
	Rating            string  `excel:"Rating"`
}

func PerformanceRows(rows []analytics.PerformanceRow) []Row {
	items := make([]performanceRow, len(rows))
	for i, r := range rows {
		items[i] = performanceRow{
			Rank:              i + 1,
			College:           r.College,
			Location:          r.Location,
			Tasks:             r.Tasks,
			TasksCompleted:    r.TasksCompleted,
			TotalCost:         round2(r.TotalCost),
			Efficiency:        round2(r.Efficiency),
			AvgCompletionDays: round2(r.AvgCompletionDays),
			Rating:            r.Rating,
		}
	}
	return rowsOf(items)
}

type trendRow struct {
	Period    string  `excel:"Period"`
	Tasks     int     `excel:"Tasks"`
	Cost      float64 `excel:"Cost"`
	Growth    float64 `excel:"Growth (%)"`
	Employees int     `excel:"Employees"`
}

func TrendRows(rows []analytics.TrendRow) []Row {
	items := make([]trendRow, len(rows))
	for i, r := range rows {
		items[i] = trendRow{
			Period:    r.Period,
			Tasks:     r.Tasks,
			Cost:      round2(r.Cost),
			Growth:    round2(r.Growth),
			Employees: r.Employees,
		}
	}
	return rowsOf(items)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
