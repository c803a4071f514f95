package attendance

import (
	"errors"
	"strings"

	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/export"
	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/common"
	"facility-work-tracker/internal/store"

	"github.com/gin-gonic/gin"
)

const clockLayout = "15:04"

type fieldError string

func (e fieldError) Error() string { return string(e) }

func fail(c *gin.Context, err error) {
	var fe fieldError
	if errors.As(err, &fe) {
		response.Fail(c, response.ErrInvalidRequest.WithTips(fe.Error()))
		return
	}
	response.Fail(c, common.StoreError(err))
}

type recordReq struct {
	EmployeeID      *string                 `json:"employee_id"`
	Date            *string                 `json:"date"`
	CheckIn         *string                 `json:"check_in"`
	CheckOut        *string                 `json:"check_out"`
	Status          *model.AttendanceStatus `json:"status"`
	WorkDescription *string                 `json:"work_description"`
	OvertimeHours   *metrics.Value          `json:"overtime_hours"`
	Notes           *string                 `json:"notes"`
}

// clock 空串清空，否则必须是 HH:MM
func clock(dst **string, src *string, name string) error {
	if src == nil {
		return nil
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		*dst = nil
		return nil
	}
	if !analytics.ValidClock(v) {
		return fieldError(name + " 格式应为 HH:MM")
	}
	*dst = &v
	return nil
}

func (r *recordReq) apply(rec *model.AttendanceRecord) error {
	if r.EmployeeID != nil {
		rec.EmployeeID = strings.TrimSpace(*r.EmployeeID)
	}
	if r.Date != nil {
		d, err := model.ParseDate(*r.Date, common.Location())
		if err != nil {
			return fieldError("日期格式应为 yyyy-mm-dd")
		}
		rec.Date = d
	}
	if err := clock(&rec.CheckIn, r.CheckIn, "签到时间"); err != nil {
		return err
	}
	if err := clock(&rec.CheckOut, r.CheckOut, "签退时间"); err != nil {
		return err
	}
	if r.Status != nil {
		if !r.Status.Valid() {
			return fieldError("未知的考勤状态 " + string(*r.Status))
		}
		rec.Status = *r.Status
	}
	if r.WorkDescription != nil {
		rec.WorkDescription = strings.TrimSpace(*r.WorkDescription)
	}
	if r.OvertimeHours != nil {
		rec.OvertimeHours = r.OvertimeHours.Float()
	}
	if r.Notes != nil {
		rec.Notes = strings.TrimSpace(*r.Notes)
	}
	return nil
}

// settle 由签到签退时间重算工时
func settle(rec *model.AttendanceRecord) {
	rec.TotalHours = nil
	if rec.CheckIn != nil && rec.CheckOut != nil {
		h := analytics.TotalHours(*rec.CheckIn, *rec.CheckOut)
		rec.TotalHours = &h
	}
}

func (m *ModuleAttendance) checkEmployee(c *gin.Context, id string) error {
	if id == "" {
		return fieldError("请选择员工")
	}
	_, err := m.Stores.Employees.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fieldError("员工不存在")
	}
	return err
}

type listResp struct {
	Records []model.AttendanceRecord    `json:"records"`
	Summary analytics.AttendanceSummary `json:"summary"`
	Page    *common.Page                `json:"page,omitempty"`
}

func (m *ModuleAttendance) filtered(c *gin.Context) ([]model.AttendanceRecord, bool) {
	f := analytics.AttendanceFilter{
		Status:     c.Query("status"),
		EmployeeID: c.Query("employee_id"),
		Search:     c.Query("search"),
		CheckIn:    c.Query("check_in"),
	}
	var err error
	if f.From, err = common.DateQuery(c, "from"); err == nil {
		f.To, err = common.DateQuery(c, "to")
	}
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return nil, false
	}
	// date=yyyy-mm-dd 查看某一天
	if day, err := common.DateQuery(c, "date"); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return nil, false
	} else if day != nil {
		f.From, f.To = day, day
	}

	records, err := m.Stores.Attendance.List(c.Request.Context())
	if err != nil {
		log.Error("查询考勤失败", "error", err)
		response.Fail(c, common.StoreError(err))
		return nil, false
	}
	return analytics.FilterAttendance(records, f), true
}

func (m *ModuleAttendance) List(c *gin.Context) {
	records, ok := m.filtered(c)
	if !ok {
		return
	}
	resp := listResp{Summary: analytics.SummarizeAttendance(records)}
	resp.Records, resp.Page = common.Paginate(c, records)
	response.Success(c, resp)
}

type checkInReq struct {
	EmployeeID      string                 `json:"employee_id" binding:"required"`
	Date            string                 `json:"date"`
	Time            string                 `json:"time"`
	Status          model.AttendanceStatus `json:"status"`
	WorkDescription string                 `json:"work_description"`
}

// CheckIn 当天已有记录时补签到时间，已签到则拒绝
func (m *ModuleAttendance) CheckIn(c *gin.Context) {
	var req checkInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if err := m.checkEmployee(c, req.EmployeeID); err != nil {
		fail(c, err)
		return
	}

	loc := common.Location()
	now := m.Now().In(loc)
	rec := model.AttendanceRecord{
		EmployeeID: req.EmployeeID,
		Date:       model.Today(now, loc),
		Status:     model.AttendancePresent,
	}
	in := now.Format(clockLayout)
	patch := recordReq{Date: &req.Date, CheckIn: &in, WorkDescription: &req.WorkDescription}
	if req.Date == "" {
		patch.Date = nil
	}
	if req.Time != "" {
		patch.CheckIn = &req.Time
	}
	if req.Status != "" {
		patch.Status = &req.Status
	}
	if err := patch.apply(&rec); err != nil {
		fail(c, err)
		return
	}

	ctx := c.Request.Context()
	day := model.FormatDate(rec.Date)
	existing, err := m.Stores.Attendance.ByEmployeeDate(ctx, rec.EmployeeID, rec.Date)
	switch {
	case err == nil:
		if existing.CheckIn != nil {
			response.Fail(c, response.ErrAlreadyExists.WithTips("今日已签到"))
			return
		}
		existing.CheckIn = rec.CheckIn
		existing.Status = rec.Status
		if rec.WorkDescription != "" {
			existing.WorkDescription = rec.WorkDescription
		}
		rec = *existing
		settle(&rec)
		rec.Employee = nil
		if err := m.Stores.Attendance.Save(ctx, &rec); err != nil {
			response.Fail(c, common.StoreError(err))
			return
		}
		log.Info("补签到", "employee_id", rec.EmployeeID, "date", day, "check_in", *rec.CheckIn)
		m.Changed(ctx)
		response.Success(c, rec)
		return
	case !errors.Is(err, store.ErrNotFound):
		response.Fail(c, common.StoreError(err))
		return
	}

	if err := m.Stores.Attendance.Create(ctx, &rec); err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	log.Info("签到", "employee_id", rec.EmployeeID, "date", day, "check_in", *rec.CheckIn)
	m.Changed(c.Request.Context())
	response.Success(c, rec)
}

type checkOutReq struct {
	Time            string         `json:"time"`
	WorkDescription string         `json:"work_description"`
	OvertimeHours   *metrics.Value `json:"overtime_hours"`
}

// CheckOut 签退并计算工时
func (m *ModuleAttendance) CheckOut(c *gin.Context) {
	var req checkOutReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
			return
		}
	}
	ctx := c.Request.Context()
	rec, err := m.Stores.Attendance.Get(ctx, c.Param("id"))
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	if rec.CheckIn == nil {
		fail(c, fieldError("尚未签到"))
		return
	}
	if rec.CheckOut != nil {
		response.Fail(c, response.ErrAlreadyExists.WithTips("已签退"))
		return
	}

	out := m.Now().In(common.Location()).Format(clockLayout)
	if req.Time != "" {
		out = req.Time
	}
	patch := recordReq{CheckOut: &out, OvertimeHours: req.OvertimeHours}
	if req.WorkDescription != "" {
		patch.WorkDescription = &req.WorkDescription
	}
	if err := patch.apply(rec); err != nil {
		fail(c, err)
		return
	}
	settle(rec)
	rec.Employee = nil
	if err := m.Stores.Attendance.Save(ctx, rec); err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	log.Info("签退", "employee_id", rec.EmployeeID, "check_out", out, "total_hours", *rec.TotalHours)
	m.Changed(c.Request.Context())
	response.Success(c, rec)
}

func (m *ModuleAttendance) Create(c *gin.Context) {
	var req recordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Date == nil || strings.TrimSpace(*req.Date) == "" {
		fail(c, fieldError("日期不能为空"))
		return
	}
	rec := model.AttendanceRecord{Status: model.AttendancePresent}
	if err := req.apply(&rec); err != nil {
		fail(c, err)
		return
	}
	if err := m.checkEmployee(c, rec.EmployeeID); err != nil {
		fail(c, err)
		return
	}
	settle(&rec)
	if err := m.Stores.Attendance.Create(c.Request.Context(), &rec); err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(c.Request.Context())
	response.Success(c, rec)
}

func (m *ModuleAttendance) Update(c *gin.Context) {
	var req recordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()
	rec, err := m.Stores.Attendance.Get(ctx, c.Param("id"))
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	employee := rec.EmployeeID
	if err := req.apply(rec); err != nil {
		fail(c, err)
		return
	}
	if rec.EmployeeID != employee {
		if err := m.checkEmployee(c, rec.EmployeeID); err != nil {
			fail(c, err)
			return
		}
	}
	settle(rec)
	rec.Employee = nil
	if err := m.Stores.Attendance.Save(ctx, rec); err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(c.Request.Context())
	response.Success(c, rec)
}

func (m *ModuleAttendance) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := m.Stores.Attendance.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(c.Request.Context())
	log.Info("删除考勤记录", "id", id)
	response.Success(c)
}

func (m *ModuleAttendance) Export(c *gin.Context) {
	records, ok := m.filtered(c)
	if !ok {
		return
	}
	m.SendWorkbook(c, "attendance", export.Sheet{Name: "Attendance", Rows: export.AttendanceRows(records)})
}
