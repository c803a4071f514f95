// Package export 把计算结果整理为有序的表格行，并写入 xlsx 工作簿。
package export

import (
	"bytes"
	"encoding/json"
	"reflect"
)

type Cell struct {
	Header string
	Value  any
}

// Row 一行数据，列顺序即追加顺序
type Row []Cell

func (r Row) Headers() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Header
	}
	return out
}

func (r Row) Get(header string) (any, bool) {
	for _, c := range r {
		if c.Header == header {
			return c.Value, true
		}
	}
	return nil, false
}

// MarshalJSON 按列顺序输出对象
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Header)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type field struct {
	index  []int
	header string
}

// rowsOf 按 excel 标签把结构体切片转换为行，未打标签的字段以字段名为表头，
// 标签为 - 的字段跳过，空指针输出为空串
func rowsOf[T any](items []T) []Row {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []field
	var collect func(t reflect.Type, parent []int)
	collect = func(t reflect.Type, parent []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.PkgPath != "" {
				continue
			}
			idx := append(append([]int(nil), parent...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				collect(sf.Type, idx)
				continue
			}
			tag := sf.Tag.Get("excel")
			if tag == "-" {
				continue
			}
			if tag == "" {
				tag = sf.Name
			}
			fields = append(fields, field{index: idx, header: tag})
		}
	}
	collect(t, nil)

	rows := make([]Row, 0, len(items))
	for i := range items {
		elem := reflect.ValueOf(&items[i]).Elem()
		for elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				break
			}
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			continue
		}
		row := make(Row, len(fields))
		for j, fi := range fields {
			fv := elem.FieldByIndex(fi.index)
			var value any
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					value = ""
				} else {
					value = fv.Elem().Interface()
				}
			} else {
				value = fv.Interface()
			}
			row[j] = Cell{Header: fi.header, Value: value}
		}
		rows = append(rows, row)
	}
	return rows
}
