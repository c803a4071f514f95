package report

import (
	"testing"
	"time"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/store"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func fp(v float64) *float64 { return &v }

func snapshot() *store.Snapshot {
	north := model.College{Model: model.Model{ID: "c1"}, Name: "North"}
	south := model.College{Model: model.Model{ID: "c2"}, Name: "South"}
	date := datatypes.Date(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	return &store.Snapshot{
		Colleges: []model.College{north, south},
		Entries: []model.WorkEntry{
			{Model: model.Model{ID: "w1"}, CollegeID: "c1", College: &north, WorkType: "painting", Date: date,
				Length: fp(10), Width: fp(10), Status: model.WorkCompleted},
			{Model: model.Model{ID: "w2"}, CollegeID: "c2", College: &south, WorkType: "painting", Date: date,
				FinalRate: fp(300), Status: model.WorkPending},
		},
		Employees: []model.Employee{{Name: "A"}, {Name: "B"}},
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	opts := Options{Now: now, Location: time.UTC, Policy: config.EmployeeCountActual, TrendMonths: 3}
	r := Build(metrics.NewCalculator(nil), snapshot(), opts)

	require.Equal(t, 2, r.Dashboard.TotalTasks)
	require.Equal(t, 2, r.Dashboard.TotalEmployees)
	require.InDelta(t, 1500, r.Dashboard.TotalCostAllTime, 1e-9)
	require.Len(t, r.Performance, 2)
	require.Equal(t, "North", r.Performance[0].College)
	require.Len(t, r.Trend, 3)
	require.Equal(t, "Mar 2024", r.Trend[2].Period)
	require.Equal(t, 2, r.Trend[2].Employees)
}

func TestBuildEstimateAndFilter(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	opts := Options{
		Now: now, Location: time.UTC, Policy: config.EmployeeCountEstimate,
		Filter: analytics.Filter{CollegeID: "c2"},
	}
	r := Build(metrics.NewCalculator(nil), snapshot(), opts)
	require.Equal(t, 1, r.Dashboard.TotalTasks)
	require.Equal(t, 1, r.Dashboard.TotalEmployees)
	require.InDelta(t, 300, r.Dashboard.TotalCostAllTime, 1e-9)
	require.Len(t, r.Trend, analytics.DefaultTrendMonths)
}

func TestParts(t *testing.T) {
	require.NotZero(t, Parts(config.EmployeeCountActual)&store.PartEmployees)
	require.Zero(t, Parts(config.EmployeeCountEstimate)&store.PartEmployees)
	require.Nil(t, Employees(config.EmployeeCountEstimate, &store.Snapshot{}))
	require.Equal(t, 0, *Employees(config.EmployeeCountActual, &store.Snapshot{}))
}
