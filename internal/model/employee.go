package model

import "gorm.io/datatypes"

type EmployeeRole string

const (
	RoleWorker     EmployeeRole = "worker"
	RoleSupervisor EmployeeRole = "supervisor"
	RoleManager    EmployeeRole = "manager"
	RoleAdmin      EmployeeRole = "admin"
)

func (r EmployeeRole) Valid() bool {
	switch r {
	case RoleWorker, RoleSupervisor, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
	EmployeeOnLeave  EmployeeStatus = "on-leave"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeInactive, EmployeeOnLeave:
		return true
	}
	return false
}

type Employee struct {
	Model
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	Email      string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone      string          `gorm:"type:varchar(30)" json:"phone"`
	Role       EmployeeRole    `gorm:"type:varchar(20);not null" json:"role"`
	Department string          `gorm:"type:varchar(100);not null" json:"department"`
	Salary     float64         `gorm:"default:0" json:"salary"`
	JoinDate   *datatypes.Date `json:"join_date"`
	Status     EmployeeStatus  `gorm:"type:varchar(20);default:active;not null" json:"status"`
	Address    string          `gorm:"type:varchar(255)" json:"address"`
	Skills     string          `gorm:"type:text" json:"skills"`
	CollegeID  *string         `gorm:"type:varchar(36);index" json:"college_id"`
	College    *College        `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
}
