package store

import (
	"context"
	"errors"
	"strings"

	"facility-work-tracker/internal/model"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	mysqlDuplicateEntry   = 1062
	postgresUniqueViolate = "23505"
)

// Gorm 通用 gorm 仓储，preload 为关联字段，order 为列表排序
type Gorm[T any] struct {
	db      *gorm.DB
	preload []string
	order   string
}

func NewGorm[T any](db *gorm.DB, order string, preload ...string) *Gorm[T] {
	return &Gorm[T]{db: db, preload: preload, order: order}
}

func (g *Gorm[T]) query(ctx context.Context) *gorm.DB {
	q := g.db.WithContext(ctx)
	for _, p := range g.preload {
		q = q.Preload(p)
	}
	return q
}

func (g *Gorm[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	q := g.query(ctx)
	if g.order != "" {
		q = q.Order(g.order)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (g *Gorm[T]) Get(ctx context.Context, id string) (*T, error) {
	var v T
	if err := g.query(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (g *Gorm[T]) Create(ctx context.Context, v *T) error {
	return translate(g.db.WithContext(ctx).Omit(g.preload...).Create(v).Error)
}

func (g *Gorm[T]) Save(ctx context.Context, v *T) error {
	return translate(g.db.WithContext(ctx).Omit(g.preload...).Save(v).Error)
}

func (g *Gorm[T]) Delete(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm[T]) DeleteIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := g.db.WithContext(ctx).Where("id IN ?", ids).Delete(new(T))
	return res.RowsAffected, translate(res.Error)
}

func (g *Gorm[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, translate(err)
}

type gormUsers struct {
	*Gorm[model.User]
}

func (u gormUsers) ByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := u.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

type gormAttendance struct {
	*Gorm[model.AttendanceRecord]
}

func (a gormAttendance) ByEmployeeDate(ctx context.Context, employeeID string, date datatypes.Date) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	err := a.query(ctx).Where("employee_id = ? AND date = ?", employeeID, date).
		Order("created_at").First(&rec).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:       gormUsers{NewGorm[model.User](db, "created_at")},
		Colleges:    NewGorm[model.College](db, "name"),
		WorkEntries: NewGorm[model.WorkEntry](db, "date DESC, created_at DESC", "College"),
		Employees:   NewGorm[model.Employee](db, "name", "College"),
		Attendance:  gormAttendance{NewGorm[model.AttendanceRecord](db, "date DESC, created_at DESC", "Employee")},
		CleanupRuns: NewGorm[model.CleanupRun](db, "created_at DESC"),
	}
}

// translate 把驱动错误归一为 ErrNotFound / ErrDuplicate
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(ErrDuplicate, err)
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return errors.Join(ErrDuplicate, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolate {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}
