// Package store 数据访问层：基于 gorm 的通用仓储，以及供测试使用的内存实现
package store

import (
	"context"
	"errors"

	"facility-work-tracker/internal/model"

	"gorm.io/datatypes"
)

var (
	ErrNotFound  = errors.New("记录不存在")
	ErrDuplicate = errors.New("唯一键冲突")
)

// Repository 单表增删改查
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, v *T) error
	Save(ctx context.Context, v *T) error
	Delete(ctx context.Context, id string) error
	// DeleteIDs 批量删除，返回实际删除条数
	DeleteIDs(ctx context.Context, ids []string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type Users interface {
	Repository[model.User]
	ByEmail(ctx context.Context, email string) (*model.User, error)
}

// Attendance 签到时按员工与日期定位当天记录
type Attendance interface {
	Repository[model.AttendanceRecord]
	ByEmployeeDate(ctx context.Context, employeeID string, date datatypes.Date) (*model.AttendanceRecord, error)
}

type Stores struct {
	Users       Users
	Colleges    Repository[model.College]
	WorkEntries Repository[model.WorkEntry]
	Employees   Repository[model.Employee]
	Attendance  Attendance
	CleanupRuns Repository[model.CleanupRun]
}

var Default *Stores

func (s *Stores) Source() *Source {
	return &Source{stores: s}
}
