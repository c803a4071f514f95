package workentry

import (
	"errors"
	"time"

	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/export"
	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/common"
	"facility-work-tracker/internal/store"

	"github.com/gin-gonic/gin"
)

type listResp struct {
	Entries  []analytics.Entry `json:"entries"`
	Totals   analytics.Totals  `json:"totals"` // 合计覆盖全部筛选结果，不受分页影响
	Filtered bool              `json:"filtered"`
	Page     *common.Page      `json:"page,omitempty"`
}

type previewResp struct {
	Metrics       metrics.Result `json:"metrics"`
	DefaultRate   float64        `json:"default_rate"`
	HasDimensions bool           `json:"has_dimensions"`
}

func fail(c *gin.Context, err error) {
	var fe fieldError
	if errors.As(err, &fe) {
		response.Fail(c, response.ErrInvalidRequest.WithTips(fe.Error()))
		return
	}
	response.Fail(c, common.StoreError(err))
}

// filtered 加载全部工单，计算指标后按查询条件过滤
func (m *ModuleWorkEntry) filtered(c *gin.Context) ([]analytics.Entry, *analytics.Filter, bool) {
	f, err := common.WorkFilter(c)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return nil, nil, false
	}
	entries, err := m.Stores.WorkEntries.List(c.Request.Context())
	if err != nil {
		log.Error("查询工单失败", "error", err)
		response.Fail(c, common.StoreError(err))
		return nil, nil, false
	}
	out := analytics.Apply(analytics.Enrich(m.Calc, entries), f, common.Location())
	return out, &f, true
}

func (m *ModuleWorkEntry) List(c *gin.Context) {
	entries, f, ok := m.filtered(c)
	if !ok {
		return
	}
	resp := listResp{Totals: analytics.Sum(entries), Filtered: f.Active()}
	resp.Entries, resp.Page = common.Paginate(c, entries)
	response.Success(c, resp)
}

func (m *ModuleWorkEntry) Get(c *gin.Context) {
	w, err := m.Stores.WorkEntries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	response.Success(c, analytics.Enrich(m.Calc, []model.WorkEntry{*w})[0])
}

// Rates 当前生效的默认单价表
func (m *ModuleWorkEntry) Rates(c *gin.Context) {
	response.Success(c, m.Calc.Rates())
}

// Preview 表单实时预览，与保存后的计算完全一致
func (m *ModuleWorkEntry) Preview(c *gin.Context) {
	var req workEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	var w model.WorkEntry
	if err := req.apply(&w); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, previewResp{
		Metrics:       m.Calc.Compute(w.MetricsInput()),
		DefaultRate:   m.Calc.Rate(w.WorkType),
		HasDimensions: metrics.HasDimensions(w.Length, w.Width),
	})
}

// checkCollege 新建或更换学院时要求学院存在
func (m *ModuleWorkEntry) checkCollege(c *gin.Context, id string) error {
	_, err := m.Stores.Colleges.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fieldError("学院不存在")
	}
	return err
}

func (m *ModuleWorkEntry) Create(c *gin.Context) {
	var req workEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	w := model.WorkEntry{
		Status: model.WorkPending,
		Date:   model.Today(time.Now(), common.Location()),
	}
	if err := req.apply(&w); err != nil {
		fail(c, err)
		return
	}
	if err := validate(&w); err != nil {
		fail(c, err)
		return
	}
	if err := m.checkCollege(c, w.CollegeID); err != nil {
		fail(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := m.Stores.WorkEntries.Create(ctx, &w); err != nil {
		log.Error("创建工单失败", "error", err, "college_id", w.CollegeID)
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(ctx)
	log.Info("创建工单", "id", w.ID, "college_id", w.CollegeID, "work_type", w.WorkType)

	created, err := m.Stores.WorkEntries.Get(ctx, w.ID)
	if err != nil {
		created = &w
	}
	response.Success(c, analytics.Enrich(m.Calc, []model.WorkEntry{*created})[0])
}

// Update 部分更新，未携带的字段保持不变
func (m *ModuleWorkEntry) Update(c *gin.Context) {
	var req workEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()
	w, err := m.Stores.WorkEntries.Get(ctx, c.Param("id"))
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	from, college := w.Status, w.CollegeID
	if err := req.apply(w); err != nil {
		fail(c, err)
		return
	}
	if m.StrictStatus && !model.CanTransition(from, w.Status) {
		response.Fail(c, response.ErrStatusTransition.WithTips(string(from)+" -> "+string(w.Status)))
		return
	}
	if err := validate(w); err != nil {
		fail(c, err)
		return
	}
	if w.CollegeID != college {
		if err := m.checkCollege(c, w.CollegeID); err != nil {
			fail(c, err)
			return
		}
	}

	w.College = nil
	if err := m.Stores.WorkEntries.Save(ctx, w); err != nil {
		log.Error("更新工单失败", "error", err, "id", w.ID)
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(ctx)
	if from != w.Status {
		log.Info("工单状态变更", "id", w.ID, "from", from, "to", w.Status)
	}

	updated, err := m.Stores.WorkEntries.Get(ctx, w.ID)
	if err != nil {
		updated = w
	}
	response.Success(c, analytics.Enrich(m.Calc, []model.WorkEntry{*updated})[0])
}

// Delete 物理删除，不可恢复
func (m *ModuleWorkEntry) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := m.Stores.WorkEntries.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(c.Request.Context())
	log.Info("删除工单", "id", id)
	response.Success(c)
}

// Export 按当前筛选条件导出
func (m *ModuleWorkEntry) Export(c *gin.Context) {
	entries, _, ok := m.filtered(c)
	if !ok {
		return
	}
	m.SendWorkbook(c, "work-entries", export.Sheet{Name: "Work Entries", Rows: export.WorkEntryRows(entries)})
}
