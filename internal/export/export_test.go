package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

func fp(v float64) *float64 { return &v }

func sampleEntries() []analytics.Entry {
	date := datatypes.Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	return analytics.Enrich(metrics.NewCalculator(nil), []model.WorkEntry{
		{
			CollegeID:       "c1",
			College:         &model.College{Name: "Govt Arts College"},
			Location:        "Block A",
			Block:           "A",
			Room:            "101",
			WorkDescription: "Wall painting",
			WorkType:        "painting",
			Date:            date,
			Length:          fp(10),
			Width:           fp(5),
			Height:          fp(2),
			Quantity:        fp(3),
			Status:          model.WorkPending,
		},
		{
			CollegeID:       "c2",
			WorkDescription: "Pipe fix",
			WorkType:        "plumbing",
			Date:            date,
			FinalRate:       fp(999),
			Status:          model.WorkCompleted,
		},
	})
}

func TestWorkEntryRows(t *testing.T) {
	rows := WorkEntryRows(sampleEntries())
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"S.No", "Date", "College", "Location", "Block", "Work Area/Room", "Work Description", "Work Type",
		"Length", "Width", "Height", "Quantity", "Sq.Ft", "Rate per Unit", "Final Rate", "Status",
	}, rows[0].Headers())

	get := func(r Row, h string) any {
		v, ok := r.Get(h)
		require.True(t, ok, h)
		return v
	}
	assert.Equal(t, 1, get(rows[0], "S.No"))
	assert.Equal(t, "2024-03-01", get(rows[0], "Date"))
	assert.Equal(t, "Govt Arts College", get(rows[0], "College"))
	assert.Equal(t, 3.0, get(rows[0], "Quantity"))
	assert.Equal(t, 2.0, get(rows[0], "Height"))
	assert.Equal(t, 300.0, get(rows[0], "Sq.Ft"))
	assert.Equal(t, 12.0, get(rows[0], "Rate per Unit"))
	assert.Equal(t, 3600.0, get(rows[0], "Final Rate"))

	assert.Equal(t, "", get(rows[1], "College"))
	assert.Equal(t, "", get(rows[1], "Length"))
	assert.Equal(t, 999.0, get(rows[1], "Final Rate"))
	assert.Equal(t, "completed", get(rows[1], "Status"))
}

func TestRowJSONKeepsColumnOrder(t *testing.T) {
	r := Row{{"b", 1}, {"a", "x"}, {"c", nil}}
	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":"x","c":null}`, string(out))
}

func TestWriteRoundTrip(t *testing.T) {
	data, err := Workbook(Sheet{Name: "Work Entries", Rows: WorkEntryRows(sampleEntries())})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Work Entries"}, f.GetSheetList())
	rows, err := f.GetRows("Work Entries")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "S.No", rows[0][0])
	assert.Equal(t, "Wall painting", rows[1][6])
	assert.Equal(t, "3600", rows[1][14])

	w, err := f.GetColWidth("Work Entries", "G")
	require.NoError(t, err)
	assert.Equal(t, 16.0, w) // "Work Description"
	w, err = f.GetColWidth("Work Entries", "A")
	require.NoError(t, err)
	assert.Equal(t, 15.0, w)
}

func TestWriteEmpty(t *testing.T) {
	data, err := Workbook(Sheet{Name: "Attendance"}, Sheet{Name: "Trend", Rows: TrendRows(nil)})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Attendance", "Trend"}, f.GetSheetList())
	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOtherRows(t *testing.T) {
	in, out := "09:00", "17:30"
	join := datatypes.Date(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))

	att := AttendanceRows([]model.AttendanceRecord{{
		EmployeeID: "e1", CheckIn: &in, CheckOut: &out, Status: model.AttendanceLate,
		Employee: &model.Employee{Name: "Meena"},
	}})
	require.Len(t, att, 1)
	v, _ := att[0].Get("Total Hours")
	assert.Equal(t, 8.5, v)
	v, _ = att[0].Get("Employee")
	assert.Equal(t, "Meena", v)

	emp := EmployeeRows([]model.Employee{{Name: "Meena", JoinDate: &join, College: &model.College{Name: "GAC"}}})
	v, _ = emp[0].Get("Join Date")
	assert.Equal(t, "2023-06-01", v)
	v, _ = emp[0].Get("College")
	assert.Equal(t, "GAC", v)

	col := CollegeRows([]model.College{{Name: "GAC", Location: "Salem"}})
	assert.Equal(t, []string{"S.No", "College Name", "Location", "Contact Person", "Phone", "Email", "Address"}, col[0].Headers())

	perf := PerformanceRows([]analytics.PerformanceRow{{College: "GAC", Efficiency: 66.6666, Rating: analytics.RatingAverage}})
	v, _ = perf[0].Get("Efficiency (%)")
	assert.Equal(t, 66.67, v)
	v, _ = perf[0].Get("Rank")
	assert.Equal(t, 1, v)

	trend := TrendRows([]analytics.TrendRow{{Period: "Mar 2024", Tasks: 2, Cost: 10, Growth: 12.3456}})
	v, _ = trend[0].Get("Growth (%)")
	assert.Equal(t, 12.35, v)
}
