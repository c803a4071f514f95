package metrics

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

var numberCleaner = strings.NewReplacer(",", "", " ", "", "\t", "")

// Coerce 把任意输入转换为非负有限数，无法解析的一律视为 0
func Coerce(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil, bool:
		return 0
	case string:
		s := numberCleaner.Replace(x)
		if s == "" {
			return 0
		}
		parsed, err := cast.ToFloat64E(s)
		if err != nil {
			return 0
		}
		f = parsed
	case *float64:
		if x == nil {
			return 0
		}
		f = *x
	default:
		parsed, err := cast.ToFloat64E(x)
		if err != nil {
			return 0
		}
		f = parsed
	}
	return clean(f)
}

func clean(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return clean(*p)
}
