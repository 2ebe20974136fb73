package parser

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"gradepath/internal/model"
)

// OpenWorkbook 打开工作簿；文件不可读时返回 MalformedInputError
func OpenWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &model.MalformedInputError{
			File:   filepath.Base(path),
			Column: -1,
			Reason: "cannot open workbook",
			Err:    errors.WithStack(err),
		}
	}
	return f, nil
}

// ReadSheet 读取工作表全部行（原始单元格值，不套用数字格式）
// sheet 为空时读取活动工作表
func ReadSheet(f *excelize.File, file, sheet string) (string, [][]string, error) {
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return sheet, nil, &model.MalformedInputError{
			File:   file,
			Sheet:  sheet,
			Column: -1,
			Reason: "sheet not found",
			Err:    err,
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheet, nil, &model.MalformedInputError{
			File:   file,
			Sheet:  sheet,
			Column: -1,
			Reason: "cannot read sheet",
			Err:    errors.WithStack(err),
		}
	}
	if len(rows) == 0 {
		return sheet, nil, &model.MalformedInputError{
			File:   file,
			Sheet:  sheet,
			Column: -1,
			Reason: "sheet is empty",
		}
	}
	return sheet, rows, nil
}

// sheetWidth 工作表列数：所有行中最长的一行（GetRows 会截掉行尾空单元格）
func sheetWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// checkWidth 工作表必须覆盖布局中最大的列偏移，否则整张表按结构错误处理
func checkWidth(file, sheet string, rows [][]string, fields map[string]int) error {
	field, col := "", -1
	for name, idx := range fields {
		if idx > col || (idx == col && name < field) {
			field, col = name, idx
		}
	}

	width := sheetWidth(rows)
	if col < width {
		return nil
	}
	return &model.MalformedInputError{
		File:   file,
		Sheet:  sheet,
		Column: col,
		Field:  field,
		Reason: fmt.Sprintf("column offset beyond sheet width (%d columns)", width),
	}
}

// cell 取单元格值；行尾被截掉的空单元格视为空
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isBlankRow 整行为空
func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseTerm 解析学期序号；空值为 0
func parseTerm(value string) (int, error) {
	value = model.CanonicalKey(value)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// subjectCodeOf 课程列取分隔符之前的部分
func subjectCodeOf(value, sep string) string {
	if sep == "" {
		return value
	}
	code, _, _ := strings.Cut(value, sep)
	return strings.TrimSpace(code)
}

// NormalizeColumnName 规范化列名，去除空白字符
func NormalizeColumnName(name string) string {
	return strings.Join(strings.Fields(name), "")
}
