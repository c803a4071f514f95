// Package analytics 在工单、学院、员工与考勤集合上计算看板统计、
// 学院绩效排名、月度趋势与数据质量报告。所有函数只读取入参，不访问全局状态。
package analytics

import (
	"time"

	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/model"
)

// Entry 附带计算结果的工单
type Entry struct {
	model.WorkEntry
	Metrics metrics.Result `json:"metrics"`
}

func Enrich(calc *metrics.Calculator, entries []model.WorkEntry) []Entry {
	out := make([]Entry, len(entries))
	for i := range entries {
		out[i] = Entry{WorkEntry: entries[i], Metrics: calc.Compute(entries[i].MetricsInput())}
	}
	return out
}

func (e *Entry) CollegeName() string {
	if e.College == nil {
		return ""
	}
	return e.College.Name
}

// Day 工单日期，未填写时取创建日期
func (e *Entry) Day(loc *time.Location) time.Time {
	return entryDay(&e.WorkEntry, loc)
}

func entryDay(w *model.WorkEntry, loc *time.Location) time.Time {
	t := time.Time(w.Date)
	if t.IsZero() {
		t = w.CreatedAt.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// dayKey 按日历日比较，忽略时分秒与时区
func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfWeek 周日为一周第一天
func startOfWeek(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
