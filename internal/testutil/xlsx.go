// Package testutil 测试用工作簿生成工具
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Row 按列偏移构造一行，未指定的列为空
func Row(width int, cells map[int]any) []any {
	row := make([]any, width)
	for idx, v := range cells {
		row[idx] = v
	}
	return row
}

// WriteWorkbook 写出单工作表的 xlsx 文件
func WriteWorkbook(t testing.TB, path, sheet string, rows [][]any) {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	} else {
		sheet = "Sheet1"
	}

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cellName, &r); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

// Fixture 三张默认布局输入表的路径
type Fixture struct {
	Subjects string
	Students string
	Scores   string
}

// WriteFixture 在 dir 下生成一组默认布局的输入表
//
//	课程: 101/102 属于专业 "1120301"，201 属于 "1130101"
//	学生: 9001 (专业 1120301)、9002 (专业 1130101)、9003 (专业 9999999，无课程)
//	成绩: 9001-101 "15/5"，9001-102 "abc"，9002-201 11.99
func WriteFixture(t testing.TB, dir string) Fixture {
	t.Helper()

	fx := Fixture{
		Subjects: filepath.Join(dir, "Subjects.xlsx"),
		Students: filepath.Join(dir, "Students.xlsx"),
		Scores:   filepath.Join(dir, "Scores.xlsx"),
	}

	WriteWorkbook(t, fx.Subjects, "", [][]any{
		Row(26, map[int]any{3: "کد درس", 4: "نام درس", 9: "ترم", 25: "کد رشته"}),
		Row(26, map[int]any{3: 101, 4: "ریاضی عمومی ۱", 9: 1, 25: "1120301"}),
		Row(26, map[int]any{3: 102, 4: "فیزیک ۱", 9: 2, 25: 1120301}),
		Row(26, map[int]any{3: "201", 4: "تاریخ", 9: 1, 25: "1130101"}),
	})

	WriteWorkbook(t, fx.Students, "", [][]any{
		Row(28, map[int]any{6: "شماره دانشجویی", 7: "نام خانوادگی", 8: "نام", 22: "کد۱", 24: "کد۲", 26: "کد۳", 27: "رشته"}),
		Row(28, map[int]any{6: 9001, 7: "Ahmadi", 8: "Sara", 22: 112, 24: "03", 26: "01", 27: "Mathematics"}),
		Row(28, map[int]any{6: "9002", 7: "Karimi", 8: "Reza", 22: 113, 24: "01", 26: "01", 27: "History"}),
		Row(28, map[int]any{6: 9003, 7: "Moradi", 8: "Ali", 22: 999, 24: "99", 26: "99", 27: "Unknown"}),
	})

	WriteWorkbook(t, fx.Scores, "", [][]any{
		Row(15, map[int]any{6: "شماره دانشجویی", 10: "درس", 14: "نمره"}),
		Row(15, map[int]any{6: 9001, 10: "101_01", 14: "15/5"}),
		Row(15, map[int]any{6: 9001, 10: "102_01", 14: "abc"}),
		Row(15, map[int]any{6: "9002", 10: "201_02", 14: 11.99}),
	})

	return fx
}
