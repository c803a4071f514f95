// Package report 把快照数据交给统计引擎，组装看板、绩效与趋势，HTTP 与命令行共用
package report

import (
	"time"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/store"
)

type Options struct {
	Now         time.Time
	Location    *time.Location
	Policy      config.EmployeeCountPolicy
	TrendMonths int
	Filter      analytics.Filter
	// CollegeID 绩效排名只看某个学院，空或 all 为全部
	CollegeID string
}

// OptionsFrom 取配置中的时区、员工计数口径与趋势月数
func OptionsFrom(cfg *config.Config, now time.Time) Options {
	return Options{
		Now:         now,
		Location:    cfg.TimeLocation(),
		Policy:      cfg.Stats.EmployeeCount,
		TrendMonths: cfg.Stats.TrendMonths,
	}
}

type Report struct {
	GeneratedAt time.Time                  `json:"generatedAt"`
	Dashboard   analytics.DashboardStats   `json:"dashboard"`
	Performance []analytics.PerformanceRow `json:"performance"`
	Trend       []analytics.TrendRow       `json:"trend"`
}

// Parts 按员工计数口径决定需要加载的数据集
func Parts(policy config.EmployeeCountPolicy) store.Part {
	parts := store.PartEntries | store.PartColleges
	if policy != config.EmployeeCountEstimate {
		parts |= store.PartEmployees
	}
	return parts
}

// Employees estimate 口径返回 nil，由统计引擎估算
func Employees(policy config.EmployeeCountPolicy, snap *store.Snapshot) *int {
	if policy == config.EmployeeCountEstimate {
		return nil
	}
	n := len(snap.Employees)
	return &n
}

// Entries 计算每条工单的指标并按筛选条件过滤
func Entries(calc *metrics.Calculator, snap *store.Snapshot, opts Options) []analytics.Entry {
	return analytics.Apply(analytics.Enrich(calc, snap.Entries), opts.Filter, opts.Location)
}

func DashboardOptions(snap *store.Snapshot, opts Options) analytics.DashboardOptions {
	return analytics.DashboardOptions{
		Now:       opts.Now,
		Location:  opts.Location,
		Employees: Employees(opts.Policy, snap),
	}
}

func Build(calc *metrics.Calculator, snap *store.Snapshot, opts Options) Report {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	entries := Entries(calc, snap, opts)
	stats := analytics.Dashboard(entries, snap.Colleges, DashboardOptions(snap, opts))
	return Report{
		GeneratedAt: opts.Now,
		Dashboard:   stats,
		Performance: analytics.Performance(entries, snap.Colleges, opts.CollegeID, opts.Location),
		Trend:       analytics.Trend(entries, opts.Now, opts.Location, opts.TrendMonths, stats.TotalEmployees),
	}
}
