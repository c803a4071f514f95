package store

import (
	"context"

	"facility-work-tracker/internal/global/sentry/tracing"
	"facility-work-tracker/internal/model"

	"golang.org/x/sync/errgroup"
)

// Part 快照中需要加载的数据集
type Part uint8

const (
	PartEntries Part = 1 << iota
	PartColleges
	PartEmployees
	PartAttendance

	PartAll = PartEntries | PartColleges | PartEmployees | PartAttendance
)

// Snapshot 统计计算所需的一次性数据
type Snapshot struct {
	Entries    []model.WorkEntry
	Colleges   []model.College
	Employees  []model.Employee
	Attendance []model.AttendanceRecord
}

type Source struct {
	stores *Stores
}

// Load 并行加载所需数据集，任一失败即返回
func (s *Source) Load(ctx context.Context, parts Part) (*Snapshot, error) {
	span := tracing.StartSpan(ctx, "store.snapshot", "load snapshot")
	defer tracing.End(span)

	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)
	if parts&PartEntries != 0 {
		g.Go(func() (err error) {
			snap.Entries, err = s.stores.WorkEntries.List(ctx)
			return
		})
	}
	if parts&PartColleges != 0 {
		g.Go(func() (err error) {
			snap.Colleges, err = s.stores.Colleges.List(ctx)
			return
		})
	}
	if parts&PartEmployees != 0 {
		g.Go(func() (err error) {
			snap.Employees, err = s.stores.Employees.List(ctx)
			return
		})
	}
	if parts&PartAttendance != 0 {
		g.Go(func() (err error) {
			snap.Attendance, err = s.stores.Attendance.List(ctx)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
