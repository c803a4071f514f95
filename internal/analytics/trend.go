package analytics

import "time"

const DefaultTrendMonths = 6

type TrendRow struct {
	Period    string    `json:"period"` // 例如 Mar 2024
	Start     time.Time `json:"start"`
	Tasks     int       `json:"tasks"`
	Cost      float64   `json:"cost"`
	Growth    float64   `json:"growth"` // 相比上月费用的增长百分比
	Employees int       `json:"employees"`
}

// Trend 最近 months 个自然月（含本月）的工单数与费用，按时间升序。
// 第一个月或上月费用为 0 时增长率记为 0。
func Trend(entries []Entry, now time.Time, loc *time.Location, months, employees int) []TrendRow {
	loc = orLocal(loc)
	if months <= 0 {
		months = DefaultTrendMonths
	}
	first := startOfMonth(now.In(loc)).AddDate(0, -(months - 1), 0)

	rows := make([]TrendRow, months)
	for i := range rows {
		start := first.AddDate(0, i, 0)
		rows[i] = TrendRow{Period: start.Format("Jan 2006"), Start: start, Employees: employees}
	}

	for i := range entries {
		d := entries[i].Day(loc)
		idx := (d.Year()-first.Year())*12 + int(d.Month()) - int(first.Month())
		if idx < 0 || idx >= months {
			continue
		}
		rows[idx].Tasks++
		rows[idx].Cost += entries[i].Metrics.FinalRate
	}

	for i := 1; i < len(rows); i++ {
		prev := rows[i-1].Cost
		if prev != 0 {
			rows[i].Growth = (rows[i].Cost - prev) / prev * 100
		}
	}
	return rows
}
