package cleanup

import (
	"context"
	"fmt"
	"slices"

	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/global/jwt"
	"facility-work-tracker/internal/global/notify"
	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/global/sentry"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/common"
	"facility-work-tracker/internal/store"

	"github.com/gin-gonic/gin"
)

type reportResp struct {
	analytics.CleanupReport
	Counts map[model.CleanupType]int `json:"counts"`
}

type runReq struct {
	Type model.CleanupType `json:"type" binding:"required"`
}

// detect 按创建时间升序检测，重复组中保留最早的一条
func (m *ModuleCleanup) detect(ctx context.Context) (analytics.CleanupReport, error) {
	snap, err := m.Stores.Source().Load(ctx, store.PartEntries|store.PartColleges)
	if err != nil {
		return analytics.CleanupReport{}, err
	}
	slices.SortStableFunc(snap.Entries, func(a, b model.WorkEntry) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return analytics.Cleanup(snap.Entries, snap.Colleges), nil
}

func (m *ModuleCleanup) Report(c *gin.Context) {
	r, err := m.detect(c.Request.Context())
	if err != nil {
		log.Error("数据质量检测失败", "error", err)
		response.Fail(c, common.StoreError(err))
		return
	}
	counts := make(map[model.CleanupType]int, 5)
	for _, t := range []model.CleanupType{
		model.CleanupDuplicate, model.CleanupIncomplete, model.CleanupTest, model.CleanupOrphaned, model.CleanupAll,
	} {
		counts[t] = len(r.IDs(t))
	}
	response.Success(c, reportResp{CleanupReport: r, Counts: counts})
}

// Run 删除某一类问题工单并留下清理记录，删除不可恢复
func (m *ModuleCleanup) Run(c *gin.Context) {
	var req runReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !req.Type.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("未知的清理类型 "+string(req.Type)))
		return
	}

	ctx := c.Request.Context()
	r, err := m.detect(ctx)
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	ids := r.IDs(req.Type)
	deleted, err := m.Stores.WorkEntries.DeleteIDs(ctx, ids)
	if err != nil {
		log.Error("清理工单失败", "error", err, "type", req.Type, "count", len(ids))
		response.Fail(c, common.StoreError(err))
		return
	}

	run := model.CleanupRun{
		Type:       req.Type,
		DeletedIDs: ids,
		Count:      int(deleted),
		Operator:   jwt.Operator(c),
	}
	if err := m.Stores.CleanupRuns.Create(ctx, &run); err != nil {
		// 工单已删除，记录失败只告警
		log.Error("保存清理记录失败", "error", err, "type", req.Type)
	}
	if deleted > 0 {
		m.Changed(ctx)
	}

	log.Warn("执行数据清理", "type", req.Type, "count", deleted, "operator", run.Operator)
	sentry.CaptureMessage(c, fmt.Sprintf("cleanup %s removed %d work entries", req.Type, deleted))
	m.Notifier.SendAsync(notify.EventCleanup, run)
	response.Success(c, run)
}

func (m *ModuleCleanup) History(c *gin.Context) {
	runs, err := m.Stores.CleanupRuns.List(c.Request.Context())
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	slices.SortStableFunc(runs, func(a, b model.CleanupRun) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	response.Success(c, runs)
}
