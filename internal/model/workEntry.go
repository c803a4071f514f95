package model

import (
	"facility-work-tracker/internal/metrics"

	"gorm.io/datatypes"
)

type WorkStatus string

const (
	WorkPending    WorkStatus = "pending"
	WorkInProgress WorkStatus = "in-progress"
	WorkCompleted  WorkStatus = "completed"
)

func (s WorkStatus) Valid() bool {
	switch s {
	case WorkPending, WorkInProgress, WorkCompleted:
		return true
	}
	return false
}

func (s WorkStatus) rank() int {
	switch s {
	case WorkPending:
		return 0
	case WorkInProgress:
		return 1
	case WorkCompleted:
		return 2
	}
	return -1
}

// CanTransition 严格模式下的状态流转：只能原地或前进一步
func CanTransition(from, to WorkStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	return to.rank() == from.rank()+1
}

type WorkEntry struct {
	Model
	CollegeID       string         `gorm:"type:varchar(36);index;not null" json:"college_id"`
	Location        string         `gorm:"type:varchar(255)" json:"location"`
	Block           string         `gorm:"type:varchar(100)" json:"block"`
	Floor           string         `gorm:"type:varchar(50)" json:"floor"`
	Room            string         `gorm:"type:varchar(100)" json:"room"`
	WorkDescription string         `gorm:"type:text;not null" json:"work_description"`
	WorkType        string         `gorm:"type:varchar(50);index" json:"work_type"`
	Date            datatypes.Date `gorm:"index" json:"date"`
	Length          *float64       `json:"length"`
	Width           *float64       `json:"width"`
	Height          *float64       `json:"height"`
	Quantity        *float64       `json:"quantity"`
	SquareFeet      *float64       `json:"square_feet"`   // 显式覆盖值，空则按尺寸计算
	RatePerSqft     *float64       `json:"rate_per_sqft"` // 显式覆盖值，空则查默认单价
	FinalRate       *float64       `json:"final_rate"`    // 显式覆盖值，空则面积×单价
	Status          WorkStatus     `gorm:"type:varchar(20);index;default:pending;not null" json:"status"`
	// 所属学院，学院被删除后为空
	College *College `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
}

func (w *WorkEntry) MetricsInput() metrics.Input {
	return metrics.Input{
		WorkType:    w.WorkType,
		Length:      w.Length,
		Width:       w.Width,
		Height:      w.Height,
		Quantity:    w.Quantity,
		SquareFeet:  w.SquareFeet,
		RatePerSqft: w.RatePerSqft,
		FinalRate:   w.FinalRate,
	}
}
