package model

import "gorm.io/datatypes"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceHalfDay AttendanceStatus = "half-day"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceHalfDay:
		return true
	}
	return false
}

type AttendanceRecord struct {
	Model
	EmployeeID      string           `gorm:"type:varchar(36);index;not null" json:"employee_id"`
	Date            datatypes.Date   `gorm:"index" json:"date"`
	CheckIn         *string          `gorm:"type:varchar(5)" json:"check_in"`  // HH:MM
	CheckOut        *string          `gorm:"type:varchar(5)" json:"check_out"` // HH:MM
	TotalHours      *float64         `json:"total_hours"`
	Status          AttendanceStatus `gorm:"type:varchar(20);default:present;not null" json:"status"`
	WorkDescription string           `gorm:"type:text" json:"work_description"`
	OvertimeHours   float64          `gorm:"default:0" json:"overtime_hours"`
	Notes           string           `gorm:"type:text" json:"notes"`
	Employee        *Employee        `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
