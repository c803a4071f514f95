package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"facility-work-tracker/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type entity[T any] interface {
	*T
	GetID() string
	BeforeCreate(*gorm.DB) error
	Stamp(now time.Time, create bool)
}

// Memory 内存仓储，行为与 Gorm 保持一致，用于测试与命令行演示
type Memory[T any, P entity[T]] struct {
	mu    sync.RWMutex
	items []T
	// unique 非空时作为唯一键
	unique func(*T) string
	// join 读取时填充关联字段
	join func(*T)
}

func NewMemory[T any, P entity[T]]() *Memory[T, P] {
	return &Memory[T, P]{}
}

func (m *Memory[T, P]) index(id string) int {
	return slices.IndexFunc(m.items, func(v T) bool { return P(&v).GetID() == id })
}

func (m *Memory[T, P]) load(v T) T {
	if m.join != nil {
		m.join(&v)
	}
	return v
}

func (m *Memory[T, P]) conflict(v *T, skip int) bool {
	if m.unique == nil {
		return false
	}
	key := m.unique(v)
	for i := range m.items {
		if i != skip && m.unique(&m.items[i]) == key {
			return true
		}
	}
	return false
}

func (m *Memory[T, P]) List(context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.items))
	for _, v := range m.items {
		out = append(out, m.load(v))
	}
	return out, nil
}

// find 返回第一条满足条件的记录
func (m *Memory[T, P]) find(match func(*T) bool) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.items {
		if match(&m.items[i]) {
			v := m.load(m.items[i])
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory[T, P]) Get(_ context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	v := m.load(m.items[i])
	return &v, nil
}

func (m *Memory[T, P]) Create(_ context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := P(v)
	if err := p.BeforeCreate(nil); err != nil {
		return err
	}
	if m.index(p.GetID()) >= 0 || m.conflict(v, -1) {
		return ErrDuplicate
	}
	p.Stamp(time.Now(), true)
	m.items = append(m.items, *v)
	return nil
}

func (m *Memory[T, P]) Save(_ context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := P(v)
	i := m.index(p.GetID())
	if m.conflict(v, i) {
		return ErrDuplicate
	}
	p.Stamp(time.Now(), false)
	if i < 0 {
		m.items = append(m.items, *v)
		return nil
	}
	m.items[i] = *v
	return nil
}

func (m *Memory[T, P]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	m.items = slices.Delete(m.items, i, i+1)
	return nil
}

func (m *Memory[T, P]) DeleteIDs(_ context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.items)
	m.items = slices.DeleteFunc(m.items, func(v T) bool { return slices.Contains(ids, P(&v).GetID()) })
	return int64(before - len(m.items)), nil
}

func (m *Memory[T, P]) Count(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.items)), nil
}

type memoryUsers struct {
	*Memory[model.User, *model.User]
}

func (u memoryUsers) ByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, _ := u.List(ctx)
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

type memoryAttendance struct {
	*Memory[model.AttendanceRecord, *model.AttendanceRecord]
}

func (a memoryAttendance) ByEmployeeDate(_ context.Context, employeeID string, date datatypes.Date) (*model.AttendanceRecord, error) {
	day := model.FormatDate(date)
	return a.find(func(r *model.AttendanceRecord) bool {
		return r.EmployeeID == employeeID && model.FormatDate(r.Date) == day
	})
}

func NewMemoryStores() *Stores {
	users := NewMemory[model.User]()
	users.unique = func(u *model.User) string { return u.Email }

	colleges := NewMemory[model.College]()

	employees := NewMemory[model.Employee]()
	employees.unique = func(e *model.Employee) string { return strings.ToLower(e.Email) }
	employees.join = func(e *model.Employee) {
		e.College = nil
		if e.CollegeID != nil {
			e.College, _ = colleges.Get(context.Background(), *e.CollegeID)
		}
	}

	entries := NewMemory[model.WorkEntry]()
	entries.join = func(w *model.WorkEntry) {
		w.College, _ = colleges.Get(context.Background(), w.CollegeID)
	}

	attendance := NewMemory[model.AttendanceRecord]()
	attendance.join = func(r *model.AttendanceRecord) {
		r.Employee, _ = employees.Get(context.Background(), r.EmployeeID)
	}

	return &Stores{
		Users:       memoryUsers{users},
		Colleges:    colleges,
		WorkEntries: entries,
		Employees:   employees,
		Attendance:  memoryAttendance{attendance},
		CleanupRuns: NewMemory[model.CleanupRun](),
	}
}
