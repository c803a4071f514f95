package metrics

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Value 表单数值字段：接受数字、数字字符串、null 与空串
type Value struct {
	val float64
	set bool
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*v = Value{}
		return nil
	}
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		*v = Value{}
		return nil
	}
	if n, ok := raw.(json.Number); ok {
		raw = n.String()
	}
	*v = Value{val: Coerce(raw), set: true}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v.val, 'f', -1, 64)), nil
}

// Set 请求中是否携带了该字段
func (v Value) Set() bool { return v.set }

func (v Value) Float() float64 { return v.val }

// Ptr 未携带时返回 nil，便于写入可空列
func (v Value) Ptr() *float64 {
	if !v.set {
		return nil
	}
	f := v.val
	return &f
}
