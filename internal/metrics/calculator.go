// Package metrics 由工单的尺寸与单价字段推导面积与费用，
// 表单预览、列表展示和导出共用同一套计算。
package metrics

import "math"

type Input struct {
	WorkType    string
	Length      *float64
	Width       *float64
	Height      *float64
	Quantity    *float64
	SquareFeet  *float64
	RatePerSqft *float64
	FinalRate   *float64
}

type Result struct {
	SquareFeet  float64 `json:"square_feet"`
	RatePerSqft float64 `json:"rate_per_sqft"`
	FinalRate   float64 `json:"final_rate"`
}

// Calculator 创建后只读，可并发使用
type Calculator struct {
	rates map[string]float64
}

// NewCalculator overrides 中的单价覆盖 DefaultRates 中的同名工种
func NewCalculator(overrides map[string]float64) *Calculator {
	rates := make(map[string]float64, len(DefaultRates)+len(overrides))
	for k, v := range DefaultRates {
		rates[k] = v
	}
	for k, v := range overrides {
		rates[Key(k)] = clean(v)
	}
	return &Calculator{rates: rates}
}

// Rate 未知工种返回 0
func (c *Calculator) Rate(workType string) float64 {
	return c.rates[Key(workType)]
}

// Rates 单价表副本
func (c *Calculator) Rates() map[string]float64 {
	out := make(map[string]float64, len(c.rates))
	for k, v := range c.rates {
		out[k] = v
	}
	return out
}

// Compute 显式值优先，其次按尺寸计算，单价缺省时查默认单价表。
// 显式值为 0 视同未填写。高度对所有工种都参与面积计算。
func (c *Calculator) Compute(in Input) Result {
	sq := deref(in.SquareFeet)
	if sq == 0 {
		sq = Area(in.Length, in.Width, in.Height, in.Quantity)
	}

	rate := deref(in.RatePerSqft)
	if rate == 0 {
		rate = c.Rate(in.WorkType)
	}

	final := deref(in.FinalRate)
	if final == 0 {
		final = finite(sq * rate)
	}

	return Result{SquareFeet: sq, RatePerSqft: rate, FinalRate: final}
}

// Area 长 × 宽 × 高系数 × 数量系数，高或数量不为正时按 1 计
func Area(length, width, height, quantity *float64) float64 {
	h := deref(height)
	if h <= 0 {
		h = 1
	}
	q := deref(quantity)
	if q <= 0 {
		q = 1
	}
	return finite(deref(length) * deref(width) * h * q)
}

// HasDimensions 长和宽均已填写且为正
func HasDimensions(length, width *float64) bool {
	return deref(length) > 0 && deref(width) > 0
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
