package export

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet  = "Sheet1"
	minColumnWide = 15
)

// Write 写入表头与数据行，列宽取 max(表头长度, 15)。没有数据时只创建工作表
func Write(f *excelize.File, sheet string, rows []Row) error {
	if sheet == "" {
		sheet = defaultSheet
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "创建工作表 %s 失败", sheet)
	}
	if len(rows) == 0 {
		return nil
	}

	headers := rows[0].Headers()
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(max(len(h), minColumnWide))); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for c, cell := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, name, cell.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

type Sheet struct {
	Name string
	Rows []Row
}

// Workbook 依次写入多个工作表并返回 xlsx 内容
func Workbook(sheets ...Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	usedDefault := false
	for _, s := range sheets {
		if s.Name == "" || s.Name == defaultSheet {
			usedDefault = true
		}
		if err := Write(f, s.Name, s.Rows); err != nil {
			return nil, err
		}
	}
	if len(sheets) > 0 {
		if !usedDefault {
			if err := f.DeleteSheet(defaultSheet); err != nil {
				return nil, errors.Wrap(err, "删除默认工作表失败")
			}
		}
		idx, err := f.GetSheetIndex(sheetName(sheets[0].Name))
		if err != nil {
			return nil, err
		}
		f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "生成 xlsx 失败")
	}
	return buf.Bytes(), nil
}

func sheetName(name string) string {
	if name == "" {
		return defaultSheet
	}
	return name
}
