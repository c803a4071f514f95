package employee

import (
	"errors"
	"net/mail"
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

type employeeReq struct {
	Name       *string               `json:"name"`
	Email      *string               `json:"email"`
	Phone      *string               `json:"phone"`
	Role       *model.EmployeeRole   `json:"role"`
	Department *string               `json:"department"`
	Salary     *metrics.Value        `json:"salary"`
	JoinDate   *string               `json:"join_date"`
	Status     *model.EmployeeStatus `json:"status"`
	Address    *string               `json:"address"`
	Skills     *string               `json:"skills"`
	CollegeID  *string               `json:"college_id"`
}

// fieldError 请求字段校验失败
type fieldError string

func (e fieldError) Error() string { return string(e) }

func invalid(msg string) error {
	return fieldError(msg)
}

func (r *employeeReq) apply(e *model.Employee) error {
	text := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	text(&e.Name, r.Name)
	text(&e.Phone, r.Phone)
	text(&e.Department, r.Department)
	text(&e.Address, r.Address)
	text(&e.Skills, r.Skills)
	if r.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Salary != nil {
		e.Salary = r.Salary.Float()
	}
	if r.Role != nil {
		if !r.Role.Valid() {
			return invalid("未知的岗位 " + string(*r.Role))
		}
		e.Role = *r.Role
	}
	if r.Status != nil {
		if !r.Status.Valid() {
			return invalid("未知的员工状态 " + string(*r.Status))
		}
		e.Status = *r.Status
	}
	if r.JoinDate != nil {
		if v := strings.TrimSpace(*r.JoinDate); v == "" {
			e.JoinDate = nil
		} else {
			d, err := model.ParseDate(v, common.Location())
			if err != nil {
				return invalid("入职日期格式应为 yyyy-mm-dd")
			}
			e.JoinDate = &d
		}
	}
	if r.CollegeID != nil {
		if v := strings.TrimSpace(*r.CollegeID); v == "" {
			e.CollegeID = nil
		} else {
			e.CollegeID = &v
		}
	}
	return nil
}

// validate 姓名、邮箱、岗位、部门为必填
func validate(e *model.Employee) error {
	switch {
	case e.Name == "":
		return invalid("姓名不能为空")
	case e.Email == "":
		return invalid("邮箱不能为空")
	case e.Role == "":
		return invalid("岗位不能为空")
	case e.Department == "":
		return invalid("部门不能为空")
	}
	if _, err := mail.ParseAddress(e.Email); err != nil {
		return invalid("邮箱格式错误")
	}
	return nil
}

func fail(c *gin.Context, err error) {
	var fe fieldError
	if errors.As(err, &fe) {
		response.Fail(c, response.ErrInvalidRequest.WithTips(fe.Error()))
		return
	}
	if errors.Is(err, store.ErrDuplicate) {
		response.Fail(c, response.ErrAlreadyExists.WithTips("邮箱已被使用"))
		return
	}
	response.Fail(c, common.StoreError(err))
}

type listFilter struct {
	Search     string `form:"search"`
	Role       string `form:"role"`
	Status     string `form:"status"`
	Department string `form:"department"`
	CollegeID  string `form:"college_id"`
}

func unfiltered(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, analytics.All)
}

func (f *listFilter) match(e *model.Employee) bool {
	if !unfiltered(f.Role) && string(e.Role) != f.Role {
		return false
	}
	if !unfiltered(f.Status) && string(e.Status) != f.Status {
		return false
	}
	if !unfiltered(f.Department) && !strings.EqualFold(e.Department, f.Department) {
		return false
	}
	if !unfiltered(f.CollegeID) && (e.CollegeID == nil || *e.CollegeID != f.CollegeID) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hay := strings.ToLower(e.Name + "\x00" + e.Email + "\x00" + e.Department)
		return strings.Contains(hay, q)
	}
	return true
}

func (m *ModuleEmployee) list(c *gin.Context) ([]model.Employee, bool) {
	var f listFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return nil, false
	}
	employees, err := m.Stores.Employees.List(c.Request.Context())
	if err != nil {
		log.Error("查询员工失败", "error", err)
		response.Fail(c, common.StoreError(err))
		return nil, false
	}
	out := make([]model.Employee, 0, len(employees))
	for i := range employees {
		if f.match(&employees[i]) {
			out = append(out, employees[i])
		}
	}
	return out, true
}

func (m *ModuleEmployee) List(c *gin.Context) {
	employees, ok := m.list(c)
	if !ok {
		return
	}
	response.Success(c, employees)
}

func (m *ModuleEmployee) Get(c *gin.Context) {
	e, err := m.Stores.Employees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	response.Success(c, e)
}

func (m *ModuleEmployee) Create(c *gin.Context) {
	var req employeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	e := model.Employee{Status: model.EmployeeActive}
	if err := req.apply(&e); err != nil {
		fail(c, err)
		return
	}
	if err := validate(&e); err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := m.Stores.Employees.Create(ctx, &e); err != nil {
		log.Warn("创建员工失败", "error", err, "email", e.Email)
		fail(c, err)
		return
	}
	m.Changed(ctx)
	log.Info("创建员工", "id", e.ID, "email", e.Email)
	response.Success(c, e)
}

func (m *ModuleEmployee) Update(c *gin.Context) {
	var req employeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()
	e, err := m.Stores.Employees.Get(ctx, c.Param("id"))
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	if err := req.apply(e); err != nil {
		fail(c, err)
		return
	}
	if err := validate(e); err != nil {
		fail(c, err)
		return
	}
	e.College = nil
	if err := m.Stores.Employees.Save(ctx, e); err != nil {
		log.Warn("更新员工失败", "error", err, "id", e.ID)
		fail(c, err)
		return
	}
	m.Changed(ctx)
	response.Success(c, e)
}

func (m *ModuleEmployee) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := m.Stores.Employees.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(c.Request.Context())
	log.Info("删除员工", "id", id)
	response.Success(c)
}

func (m *ModuleEmployee) Export(c *gin.Context) {
	employees, ok := m.list(c)
	if !ok {
		return
	}
	m.SendWorkbook(c, "employees", export.Sheet{Name: "Employees", Rows: export.EmployeeRows(employees)})
}
