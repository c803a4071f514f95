package college

import (
	"strings"

	"facility-work-tracker/internal/export"
	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/common"

	"github.com/gin-gonic/gin"
)

type collegeReq struct {
	Name          *string `json:"name"`
	Location      *string `json:"location"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
}

// apply 只覆盖请求中携带的字段
func (r *collegeReq) apply(c *model.College) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.Name, r.Name)
	set(&c.Location, r.Location)
	set(&c.ContactPerson, r.ContactPerson)
	set(&c.Phone, r.Phone)
	set(&c.Email, r.Email)
	set(&c.Address, r.Address)
}

func (m *ModuleCollege) List(c *gin.Context) {
	colleges, err := m.Stores.Colleges.List(c.Request.Context())
	if err != nil {
		log.Error("查询学院列表失败", "error", err)
		response.Fail(c, common.StoreError(err))
		return
	}
	if q := strings.ToLower(strings.TrimSpace(c.Query("search"))); q != "" {
		out := colleges[:0]
		for _, col := range colleges {
			if strings.Contains(strings.ToLower(col.Name), q) || strings.Contains(strings.ToLower(col.Location), q) {
				out = append(out, col)
			}
		}
		colleges = out
	}
	response.Success(c, colleges)
}

func (m *ModuleCollege) Get(c *gin.Context) {
	col, err := m.Stores.Colleges.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	response.Success(c, col)
}

func (m *ModuleCollege) Create(c *gin.Context) {
	var req collegeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	var col model.College
	req.apply(&col)
	if col.Name == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("学院名称不能为空"))
		return
	}
	if err := m.Stores.Colleges.Create(c.Request.Context(), &col); err != nil {
		log.Error("创建学院失败", "error", err, "name", col.Name)
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(c.Request.Context())
	log.Info("创建学院", "id", col.ID, "name", col.Name)
	response.Success(c, col)
}

func (m *ModuleCollege) Update(c *gin.Context) {
	var req collegeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()
	col, err := m.Stores.Colleges.Get(ctx, c.Param("id"))
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	req.apply(col)
	if col.Name == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("学院名称不能为空"))
		return
	}
	if err := m.Stores.Colleges.Save(ctx, col); err != nil {
		log.Error("更新学院失败", "error", err, "id", col.ID)
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(ctx)
	response.Success(c, col)
}

// Delete 不级联删除工单，遗留工单由数据清理识别为孤立记录
func (m *ModuleCollege) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := m.Stores.Colleges.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	m.Changed(c.Request.Context())
	log.Info("删除学院", "id", id)
	response.Success(c)
}

func (m *ModuleCollege) Export(c *gin.Context) {
	colleges, err := m.Stores.Colleges.List(c.Request.Context())
	if err != nil {
		response.Fail(c, common.StoreError(err))
		return
	}
	m.SendWorkbook(c, "colleges", export.Sheet{Name: "Colleges", Rows: export.CollegeRows(colleges)})
}
