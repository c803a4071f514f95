package workentry

import (
	"math"
	"strings"

	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/common"
)

// workEntryReq 创建与部分更新共用；数值字段接受数字、数字字符串与空串，空串表示清空
type workEntryReq struct {
	CollegeID       *string           `json:"college_id"`
	Location        *string           `json:"location"`
	Block           *string           `json:"block"`
	Floor           *string           `json:"floor"`
	Room            *string           `json:"room"`
	WorkDescription *string           `json:"work_description"`
	WorkType        *string           `json:"work_type"`
	Date            *string           `json:"date"`
	Length          *metrics.Value    `json:"length"`
	Width           *metrics.Value    `json:"width"`
	Height          *metrics.Value    `json:"height"`
	Quantity        *metrics.Value    `json:"quantity"`
	SquareFeet      *metrics.Value    `json:"square_feet"`
	RatePerSqft     *metrics.Value    `json:"rate_per_sqft"`
	FinalRate       *metrics.Value    `json:"final_rate"`
	Status          *model.WorkStatus `json:"status"`
}

type fieldError string

func (e fieldError) Error() string { return string(e) }

// apply 把请求中携带的字段写入工单，日期与状态格式错误时返回 fieldError
func (r *workEntryReq) apply(w *model.WorkEntry) error {
	text := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	text(&w.CollegeID, r.CollegeID)
	text(&w.Location, r.Location)
	text(&w.Block, r.Block)
	text(&w.Floor, r.Floor)
	text(&w.Room, r.Room)
	text(&w.WorkDescription, r.WorkDescription)
	text(&w.WorkType, r.WorkType)

	num := func(dst **float64, src *metrics.Value) {
		if src != nil {
			*dst = src.Ptr()
		}
	}
	// 数量为件数，只接受整数
	if r.Quantity != nil && r.Quantity.Set() && r.Quantity.Float() != math.Trunc(r.Quantity.Float()) {
		return fieldError("数量必须为整数")
	}
	num(&w.Length, r.Length)
	num(&w.Width, r.Width)
	num(&w.Height, r.Height)
	num(&w.Quantity, r.Quantity)
	num(&w.SquareFeet, r.SquareFeet)
	num(&w.RatePerSqft, r.RatePerSqft)
	num(&w.FinalRate, r.FinalRate)

	if r.Date != nil && strings.TrimSpace(*r.Date) != "" {
		d, err := model.ParseDate(*r.Date, common.Location())
		if err != nil {
			return fieldError("日期格式应为 yyyy-mm-dd")
		}
		w.Date = d
	}
	if r.Status != nil {
		if !r.Status.Valid() {
			return fieldError("未知的工单状态 " + string(*r.Status))
		}
		w.Status = *r.Status
	}
	return nil
}

// validate 学院、工作描述与位置为必填
func validate(w *model.WorkEntry) error {
	switch {
	case w.CollegeID == "":
		return fieldError("请选择学院")
	case w.WorkDescription == "":
		return fieldError("工作描述不能为空")
	case w.Location == "":
		return fieldError("位置不能为空")
	}
	return nil
}
