package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"facility-work-tracker/internal/model"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	require.NoError(t, translate(nil))
	require.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	require.ErrorIs(t, translate(fmt.Errorf("wrap: %w", &mysqldriver.MySQLError{Number: 1062})), ErrDuplicate)
	require.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}), ErrDuplicate)
	require.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicate)

	other := errors.New("boom")
	require.Equal(t, other, translate(other))
	require.NotErrorIs(t, translate(&mysqldriver.MySQLError{Number: 1045}), ErrDuplicate)
}

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStores()

	c := &model.College{Name: "North"}
	require.NoError(t, s.Colleges.Create(ctx, c))
	require.NotEmpty(t, c.ID)
	require.False(t, c.CreatedAt.IsZero())

	w := &model.WorkEntry{CollegeID: c.ID, WorkDescription: "paint", Location: "A"}
	require.NoError(t, s.WorkEntries.Create(ctx, w))

	got, err := s.WorkEntries.Get(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got.College)
	require.Equal(t, "North", got.College.Name)

	got.Location = "B"
	require.NoError(t, s.WorkEntries.Save(ctx, got))
	got, err = s.WorkEntries.Get(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, "B", got.Location)

	require.NoError(t, s.Colleges.Delete(ctx, c.ID))
	got, err = s.WorkEntries.Get(ctx, w.ID)
	require.NoError(t, err)
	require.Nil(t, got.College)

	require.ErrorIs(t, s.Colleges.Delete(ctx, c.ID), ErrNotFound)
	_, err = s.Colleges.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	n, err := s.WorkEntries.DeleteIDs(ctx, []string{w.ID, "missing"})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	count, _ := s.WorkEntries.Count(ctx)
	require.Zero(t, count)
}

func TestMemoryUnique(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStores()
	require.NoError(t, s.Employees.Create(ctx, &model.Employee{Name: "A", Email: "a@x.io"}))
	require.ErrorIs(t, s.Employees.Create(ctx, &model.Employee{Name: "B", Email: "A@x.io"}), ErrDuplicate)

	b := &model.Employee{Name: "B", Email: "b@x.io"}
	require.NoError(t, s.Employees.Create(ctx, b))
	b.Email = "a@x.io"
	require.ErrorIs(t, s.Employees.Save(ctx, b), ErrDuplicate)

	require.NoError(t, s.Users.Create(ctx, &model.User{Email: "root@x.io", Name: "root"}))
	u, err := s.Users.ByEmail(ctx, " ROOT@x.io ")
	require.NoError(t, err)
	require.Equal(t, "root", u.Name)
	_, err = s.Users.ByEmail(ctx, "none@x.io")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSourceLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStores()
	c := &model.College{Name: "North"}
	require.NoError(t, s.Colleges.Create(ctx, c))
	require.NoError(t, s.WorkEntries.Create(ctx, &model.WorkEntry{CollegeID: c.ID, WorkDescription: "x", Location: "y"}))
	e := &model.Employee{Name: "A", Email: "a@x.io"}
	require.NoError(t, s.Employees.Create(ctx, e))
	require.NoError(t, s.Attendance.Create(ctx, &model.AttendanceRecord{EmployeeID: e.ID}))

	snap, err := s.Source().Load(ctx, PartEntries|PartColleges)
	require.NoError(t, err)
	require.Len(t, snap.Entries, 1)
	require.Len(t, snap.Colleges, 1)
	require.Nil(t, snap.Employees)

	snap, err = s.Source().Load(ctx, PartAll)
	require.NoError(t, err)
	require.Len(t, snap.Employees, 1)
	require.Len(t, snap.Attendance, 1)
	require.Equal(t, "A", snap.Attendance[0].Employee.Name)
}

func TestAttendanceByEmployeeDate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStores()
	e := &model.Employee{Name: "A", Email: "a@x.io"}
	require.NoError(t, s.Employees.Create(ctx, e))

	day := datatypes.Date(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	other := datatypes.Date(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.Attendance.Create(ctx, &model.AttendanceRecord{EmployeeID: e.ID, Date: other}))
	require.NoError(t, s.Attendance.Create(ctx, &model.AttendanceRecord{EmployeeID: "someone-else", Date: day}))
	rec := &model.AttendanceRecord{EmployeeID: e.ID, Date: day, WorkDescription: "today"}
	require.NoError(t, s.Attendance.Create(ctx, rec))

	got, err := s.Attendance.ByEmployeeDate(ctx, e.ID, day)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, "A", got.Employee.Name)

	_, err = s.Attendance.ByEmployeeDate(ctx, e.ID, datatypes.Date(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)))
	require.ErrorIs(t, err, ErrNotFound)
}
