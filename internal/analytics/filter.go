package analytics

import (
	"strings"
	"time"

	"facility-work-tracker/internal/metrics"
)

// All 前端下拉框表示不过滤的取值
const All = "all"

func matchAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// Filter 工单筛选条件，零值不过滤
type Filter struct {
	From      *time.Time // 含当天
	To        *time.Time // 含当天
	CollegeID string
	Status    string
	WorkType  string
	Search    string
	MinCost   *float64 // 与计算后的最终费用比较
	MaxCost   *float64
}

func (f *Filter) Active() bool {
	return f.From != nil || f.To != nil ||
		!matchAll(f.CollegeID) || !matchAll(f.Status) || !matchAll(f.WorkType) ||
		strings.TrimSpace(f.Search) != "" || f.MinCost != nil || f.MaxCost != nil
}

func (f *Filter) Match(e *Entry, loc *time.Location) bool {
	if f.From != nil || f.To != nil {
		key := dayKey(e.Day(orLocal(loc)))
		if f.From != nil && key < dayKey(*f.From) {
			return false
		}
		if f.To != nil && key > dayKey(*f.To) {
			return false
		}
	}
	if !matchAll(f.CollegeID) && e.CollegeID != strings.TrimSpace(f.CollegeID) {
		return false
	}
	if !matchAll(f.Status) && string(e.Status) != strings.TrimSpace(f.Status) {
		return false
	}
	if !matchAll(f.WorkType) && metrics.Key(e.WorkType) != metrics.Key(f.WorkType) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		haystack := strings.ToLower(strings.Join([]string{
			e.WorkDescription, e.Location, e.CollegeName(), e.WorkType,
		}, " "))
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	cost := e.Metrics.FinalRate
	if f.MinCost != nil && cost < *f.MinCost {
		return false
	}
	if f.MaxCost != nil && cost > *f.MaxCost {
		return false
	}
	return true
}

// Apply 返回满足条件的工单，保持原有顺序
func Apply(entries []Entry, f Filter, loc *time.Location) []Entry {
	if !f.Active() {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for i := range entries {
		if f.Match(&entries[i], loc) {
			out = append(out, entries[i])
		}
	}
	return out
}

// Totals 列表底部的合计行
type Totals struct {
	Count      int     `json:"count"`
	SquareFeet float64 `json:"square_feet"`
	FinalRate  float64 `json:"final_rate"`
}

func Sum(entries []Entry) Totals {
	t := Totals{Count: len(entries)}
	for i := range entries {
		t.SquareFeet += entries[i].Metrics.SquareFeet
		t.FinalRate += entries[i].Metrics.FinalRate
	}
	return t
}
