package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// ParseDate 解析 yyyy-mm-dd，兼容带时间的 RFC3339
func ParseDate(s string, loc *time.Location) (datatypes.Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339, s)
		if err2 != nil {
			return datatypes.Date{}, err
		}
		t = t2.In(loc)
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
	return datatypes.Date(t), nil
}

// Today 指定时区的当天零点
func Today(now time.Time, loc *time.Location) datatypes.Date {
	n := now.In(loc)
	return datatypes.Date(time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc))
}

func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
