package stats

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/export"
	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/module/common"
	"facility-work-tracker/internal/report"
	"facility-work-tracker/internal/store"

	"github.com/gin-gonic/gin"
)

const maxTrendMonths = 24

// options 查询参数：工单筛选条件、college_id、months
func (m *ModuleStats) options(c *gin.Context) (report.Options, error) {
	opts := report.OptionsFrom(config.Get(), m.Now())
	f, err := common.WorkFilter(c)
	if err != nil {
		return opts, err
	}
	opts.Filter = f
	opts.CollegeID = f.CollegeID
	if v := c.Query("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxTrendMonths {
			return opts, fmt.Errorf("months 取值范围为 1-%d", maxTrendMonths)
		}
		opts.TrendMonths = n
	}
	return opts, nil
}

// serve 命中缓存直接返回，否则加载快照计算后写入缓存
func (m *ModuleStats) serve(c *gin.Context, kind string, parts store.Part, build func(*store.Snapshot, report.Options) any) {
	opts, err := m.options(c)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()

	// 周、月口径依赖当天日期
	key, cacheable := m.Cache.Key(ctx, kind, map[string]any{
		"query":  c.Request.URL.Query(),
		"day":    opts.Now.In(opts.Location).Format(time.DateOnly),
		"policy": opts.Policy,
		"months": opts.TrendMonths,
	})
	if cacheable {
		var cached json.RawMessage
		if m.Cache.Get(ctx, key, &cached) {
			response.Success(c, cached)
			return
		}
	}

	snap, err := m.Stores.Source().Load(ctx, parts)
	if err != nil {
		log.Error("加载统计数据失败", "error", err, "kind", kind)
		response.Fail(c, common.StoreError(err))
		return
	}
	result := build(snap, opts)
	if cacheable {
		m.Cache.Set(ctx, key, result)
	}
	response.Success(c, result)
}

func (m *ModuleStats) Dashboard(c *gin.Context) {
	policy := config.Get().Stats.EmployeeCount
	m.serve(c, "dashboard", report.Parts(policy), func(snap *store.Snapshot, opts report.Options) any {
		entries := report.Entries(m.Calc, snap, opts)
		return analytics.Dashboard(entries, snap.Colleges, report.DashboardOptions(snap, opts))
	})
}

// Overview 报表页概览，员工与考勤取真实数据
func (m *ModuleStats) Overview(c *gin.Context) {
	m.serve(c, "overview", store.PartAll, func(snap *store.Snapshot, opts report.Options) any {
		entries := report.Entries(m.Calc, snap, opts)
		stats := analytics.Dashboard(entries, snap.Colleges, report.DashboardOptions(snap, opts))
		return analytics.Overview(stats, snap.Employees, snap.Attendance)
	})
}

func (m *ModuleStats) Performance(c *gin.Context) {
	m.serve(c, "performance", store.PartEntries|store.PartColleges, func(snap *store.Snapshot, opts report.Options) any {
		return analytics.Performance(report.Entries(m.Calc, snap, opts), snap.Colleges, opts.CollegeID, opts.Location)
	})
}

func (m *ModuleStats) Trend(c *gin.Context) {
	policy := config.Get().Stats.EmployeeCount
	m.serve(c, "trend", report.Parts(policy), func(snap *store.Snapshot, opts report.Options) any {
		return report.Build(m.Calc, snap, opts).Trend
	})
}

// Report 看板、绩效、趋势一次返回
func (m *ModuleStats) Report(c *gin.Context) {
	policy := config.Get().Stats.EmployeeCount
	m.serve(c, "report", report.Parts(policy), func(snap *store.Snapshot, opts report.Options) any {
		return report.Build(m.Calc, snap, opts)
	})
}

// Export 绩效排名与月度趋势两个工作表
func (m *ModuleStats) Export(c *gin.Context) {
	opts, err := m.options(c)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	snap, err := m.Stores.Source().Load(c.Request.Context(), report.Parts(opts.Policy))
	if err != nil {
		log.Error("加载统计数据失败", "error", err)
		response.Fail(c, common.StoreError(err))
		return
	}
	r := report.Build(m.Calc, snap, opts)
	m.SendWorkbook(c, "college-performance",
		export.Sheet{Name: "Performance", Rows: export.PerformanceRows(r.Performance)},
		export.Sheet{Name: "Trend", Rows: export.TrendRows(r.Trend)},
	)
}
