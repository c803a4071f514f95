package metrics

import "strings"

// DefaultRates 每平方英尺默认单价，键为小写工种
var DefaultRates = map[string]float64{
	"painting":    12,
	"electrical":  20,
	"plumbing":    15,
	"carpentry":   18,
	"masonry":     25,
	"cleaning":    10,
	"maintenance": 14,
	"renovation":  30,

	// 录入表单使用的工种
	"newwork":       12,
	"alterwork":     20,
	"complaintwork": 15,
	"rework":        18,
	"fittingwork":   25,
	"pastingwork":   10,
}

// Key 工种查表键
func Key(workType string) string {
	return strings.ToLower(strings.TrimSpace(workType))
}
