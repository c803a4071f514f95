package analytics

import (
	"slices"
	"time"

	"facility-work-tracker/internal/model"
)

const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingAverage   = "Average"
)

type PerformanceRow struct {
	CollegeID         string  `json:"collegeId"`
	College           string  `json:"college"`
	Location          string  `json:"location"`
	Tasks             int     `json:"tasks"`
	TasksCompleted    int     `json:"tasksCompleted"`
	TotalCost         float64 `json:"totalCost"`
	Efficiency        float64 `json:"efficiency"`
	AvgCompletionDays float64 `json:"avgCompletionDays"`
	Rating            string  `json:"rating"`
}

func Rate(efficiency float64) string {
	switch {
	case efficiency > 90:
		return RatingExcellent
	case efficiency > 80:
		return RatingGood
	default:
		return RatingAverage
	}
}

// Performance 按完成率降序排列学院，完成率相同保持学院原有顺序。
// collegeID 为空或 all 时统计全部学院；没有工单的学院也会出现，完成率为 0。
func Performance(entries []Entry, colleges []model.College, collegeID string, loc *time.Location) []PerformanceRow {
	loc = orLocal(loc)
	index := make(map[string]int, len(colleges))
	rows := make([]PerformanceRow, 0, len(colleges))
	for _, c := range colleges {
		if !matchAll(collegeID) && c.ID != collegeID {
			continue
		}
		index[c.ID] = len(rows)
		rows = append(rows, PerformanceRow{CollegeID: c.ID, College: c.Name, Location: c.Location})
	}

	completionDays := make([]float64, len(rows))
	for i := range entries {
		e := &entries[i]
		idx, ok := index[e.CollegeID]
		if !ok {
			continue
		}
		r := &rows[idx]
		r.Tasks++
		r.TotalCost += e.Metrics.FinalRate
		if e.Status == model.WorkCompleted {
			r.TasksCompleted++
			days := e.UpdatedAt.In(loc).Sub(e.Day(loc)).Hours() / 24
			completionDays[idx] += max(days, 0)
		}
	}

	for i := range rows {
		r := &rows[i]
		r.Efficiency = percent(r.TasksCompleted, r.Tasks)
		if r.TasksCompleted > 0 {
			r.AvgCompletionDays = completionDays[i] / float64(r.TasksCompleted)
		}
		r.Rating = Rate(r.Efficiency)
	}

	slices.SortStableFunc(rows, func(a, b PerformanceRow) int {
		switch {
		case a.Efficiency > b.Efficiency:
			return -1
		case a.Efficiency < b.Efficiency:
			return 1
		}
		return 0
	})
	return rows
}
