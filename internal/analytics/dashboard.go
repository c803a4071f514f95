package analytics

import (
	"time"

	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/model"
)

const (
	smallProjectLimit = 100
	largeProjectLimit = 500
)

type DashboardStats struct {
	TotalColleges   int `json:"totalColleges"`
	ActiveColleges  int `json:"activeColleges"`
	TotalTasks      int `json:"totalTasks"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
	TotalEmployees  int `json:"totalEmployees"`

	TotalCostAllTime   float64 `json:"totalCostAllTime"`
	TotalCostThisMonth float64 `json:"totalCostThisMonth"`
	TotalCostThisWeek  float64 `json:"totalCostThisWeek"`
	AvgCostPerTask     float64 `json:"avgCostPerTask"`
	TotalSquareFeet    float64 `json:"totalSquareFeet"`
	AvgSquareFeet      float64 `json:"avgSquareFeet"`

	EntriesWithDimensions       int     `json:"entriesWithDimensions"`
	EntriesWithoutDimensions    int     `json:"entriesWithoutDimensions"`
	CompleteDimensionPercentage float64 `json:"completeDimensionPercentage"`
	AvgLength                   float64 `json:"avgLength"`
	AvgWidth                    float64 `json:"avgWidth"`
	AvgHeight                   float64 `json:"avgHeight"`

	SmallProjects  int     `json:"smallProjects"`
	MediumProjects int     `json:"mediumProjects"`
	LargeProjects  int     `json:"largeProjects"`
	LargestArea    float64 `json:"largestArea"`
	SmallestArea   float64 `json:"smallestArea"`
}

type DashboardOptions struct {
	Now      time.Time
	Location *time.Location
	// Employees 员工表真实人数；为空时按 max(任务数/5, 1) 估算
	Employees *int
}

// EstimateEmployees 没有员工数据时的估算口径
func EstimateEmployees(totalTasks int) int {
	return max(totalTasks/5, 1)
}

func Dashboard(entries []Entry, colleges []model.College, opts DashboardOptions) DashboardStats {
	loc := orLocal(opts.Location)
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(loc)
	monthKey := dayKey(startOfMonth(now))
	weekKey := dayKey(startOfWeek(now))

	s := DashboardStats{
		TotalColleges: len(colleges),
		TotalTasks:    len(entries),
	}
	if opts.Employees != nil {
		s.TotalEmployees = *opts.Employees
	} else {
		s.TotalEmployees = EstimateEmployees(len(entries))
	}

	active := make(map[string]struct{})
	var sumLength, sumWidth, sumHeight float64
	var sized int
	var sizedTotal float64

	for i := range entries {
		e := &entries[i]
		active[e.CollegeID] = struct{}{}

		switch e.Status {
		case model.WorkPending:
			s.PendingTasks++
		case model.WorkInProgress:
			s.InProgressTasks++
		case model.WorkCompleted:
			s.CompletedTasks++
		}

		cost := e.Metrics.FinalRate
		s.TotalCostAllTime += cost
		key := dayKey(e.Day(loc))
		if key >= monthKey {
			s.TotalCostThisMonth += cost
		}
		if key >= weekKey {
			s.TotalCostThisWeek += cost
		}

		area := e.Metrics.SquareFeet
		s.TotalSquareFeet += area

		if metrics.HasDimensions(e.Length, e.Width) {
			s.EntriesWithDimensions++
			sumLength += metrics.Coerce(e.Length)
			sumWidth += metrics.Coerce(e.Width)
			sumHeight += metrics.Coerce(e.Height)
		}

		if area > 0 {
			sized++
			sizedTotal += area
			switch {
			case area < smallProjectLimit:
				s.SmallProjects++
			case area <= largeProjectLimit:
				s.MediumProjects++
			default:
				s.LargeProjects++
			}
			if area > s.LargestArea {
				s.LargestArea = area
			}
			if s.SmallestArea == 0 || area < s.SmallestArea {
				s.SmallestArea = area
			}
		}
	}

	s.ActiveColleges = len(active)
	s.EntriesWithoutDimensions = s.TotalTasks - s.EntriesWithDimensions
	s.CompleteDimensionPercentage = percent(s.EntriesWithDimensions, s.TotalTasks)
	if s.TotalTasks > 0 {
		s.AvgCostPerTask = s.TotalCostAllTime / float64(s.TotalTasks)
	}
	if n := float64(s.EntriesWithDimensions); n > 0 {
		s.AvgLength = sumLength / n
		s.AvgWidth = sumWidth / n
		s.AvgHeight = sumHeight / n
	}
	if sized > 0 {
		s.AvgSquareFeet = sizedTotal / float64(sized)
	}
	return s
}
