// Package common 各业务模块共用的依赖注入、错误转换与查询参数解析
package common

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/export"
	"facility-work-tracker/internal/global/cache"
	"facility-work-tracker/internal/global/filestore"
	"facility-work-tracker/internal/global/notify"
	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/store"
	"facility-work-tracker/tools"

	"github.com/gin-gonic/gin"
)

// Deps 模块依赖，测试中可直接注入
type Deps struct {
	Stores   *store.Stores
	Cache    *cache.Cache
	Calc     *metrics.Calculator
	Files    *filestore.Store
	Notifier *notify.Notifier
}

// Fill 未注入的依赖使用全局实例
func (d *Deps) Fill() {
	if d.Stores == nil {
		d.Stores = store.Default
	}
	if d.Cache == nil {
		d.Cache = cache.Default
	}
	if d.Calc == nil {
		d.Calc = metrics.NewCalculator(config.Get().WorkEntry.Rates)
	}
	if d.Files == nil {
		d.Files = filestore.Default
	}
	if d.Notifier == nil {
		d.Notifier = notify.Default
	}
}

// Changed 数据变更后使统计缓存失效
func (d *Deps) Changed(ctx context.Context) {
	d.Cache.Invalidate(ctx)
}

func Location() *time.Location {
	return config.Get().TimeLocation()
}

// StoreError 把存储层错误转换为响应错误
func StoreError(err error) *response.Error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return response.ErrNotFound
	case errors.Is(err, store.ErrDuplicate):
		return response.ErrAlreadyExists.WithOrigin(err)
	default:
		return response.ErrDatabase.WithOrigin(err)
	}
}

// DateQuery 解析 yyyy-mm-dd 查询参数，未携带时返回 nil
func DateQuery(c *gin.Context, key string) (*time.Time, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	d, err := model.ParseDate(v, Location())
	if err != nil {
		return nil, fmt.Errorf("%s 日期格式错误: %w", key, err)
	}
	t := time.Time(d)
	return &t, nil
}

// FloatQuery 解析数值查询参数，未携带时返回 nil
func FloatQuery(c *gin.Context, key string) (*float64, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%s 不是有效数字: %w", key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s 不是有效数字: %s", key, v)
	}
	return &f, nil
}

// WorkFilter 从查询参数构造工单筛选条件
func WorkFilter(c *gin.Context) (analytics.Filter, error) {
	f := analytics.Filter{
		CollegeID: c.Query("college_id"),
		Status:    c.Query("status"),
		WorkType:  c.Query("work_type"),
		Search:    c.Query("search"),
	}
	var err error
	if f.From, err = DateQuery(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = DateQuery(c, "to"); err != nil {
		return f, err
	}
	if f.MinCost, err = FloatQuery(c, "min_cost"); err != nil {
		return f, err
	}
	if f.MaxCost, err = FloatQuery(c, "max_cost"); err != nil {
		return f, err
	}
	return f, nil
}

// FileName 导出文件名，例如 work-entries-2024-03-15.xlsx
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, now.In(Location()).Format(model.DateLayout))
}

// SendWorkbook 生成 xlsx；携带 store=true 时保存到文件存储并返回下载地址，否则直接下载
func (d *Deps) SendWorkbook(c *gin.Context, prefix string, sheets ...export.Sheet) {
	data, err := export.Workbook(sheets...)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	name := FileName(prefix, time.Now())

	if c.Query("store") != "true" {
		tools.SendBytes(c, data, name, tools.ExcelContentType)
		return
	}
	if d.Files == nil {
		response.Fail(c, response.ErrServerInternal.WithTips("未配置文件存储"))
		return
	}
	file, err := d.Files.Save(c.Request.Context(), name, tools.ExcelContentType, data)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	d.Notifier.SendAsync(notify.EventExport, map[string]any{"name": name, "file": file})
	response.Success(c, file)
}

// Page 分页信息，未携带 page 参数时返回全部
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

const (
	defaultPageSize = 30
	maxPageSize     = 300
)

// Paginate 按 page、page_size 查询参数截取当前页
func Paginate[T any](c *gin.Context, items []T) ([]T, *Page) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return items, nil
	}
	size, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)

	p := &Page{Page: page, PageSize: size, Total: len(items)}
	// 先比较页号再相乘，避免超大 page 溢出
	if page-1 > len(items)/size {
		return items[:0], p
	}
	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))
	return items[start:end], p
}
