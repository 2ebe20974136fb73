// Package exporter 将学生进度导出为 Excel 工作簿
package exporter

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"gradepath/internal/config"
	"gradepath/internal/model"
	"gradepath/internal/presentation"
)

// ContentType xlsx 响应类型
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxSheetName Excel 工作表名称长度上限
const maxSheetName = 31

// Exporter 进度导出器
type Exporter struct {
	adapter *presentation.Adapter
	labels  config.LabelsConfig
	rtl     bool
}

// NewExporter 创建导出器；direction 为 rtl 时工作表从右向左显示
func NewExporter(ui config.UIConfig) *Exporter {
	return &Exporter{
		adapter: presentation.NewAdapter(ui.Labels),
		labels:  ui.Labels,
		rtl:     ui.Direction == "rtl",
	}
}

// Export 导出概览表 + 每个学生一张进度表
func (e *Exporter) Export(p *model.Progress) (*excelize.File, error) {
	return e.export(p.Students)
}

// ExportStudent 只导出一个学生
func (e *Exporter) ExportStudent(sp *model.StudentProgress) (*excelize.File, error) {
	return e.export([]*model.StudentProgress{sp})
}

func (e *Exporter) export(students []*model.StudentProgress) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "create header style")
	}

	overview := sheetName(e.labels.Heading, "overview")
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "rename overview sheet")
	}
	if err := e.writeOverview(f, overview, headerStyle, students); err != nil {
		_ = f.Close()
		return nil, err
	}

	used := map[string]bool{strings.ToLower(overview): true}
	for _, sp := range students {
		name := uniqueSheetName(sheetName(sp.StudentID, "student"), used)
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "create sheet for %s", sp.StudentID)
		}
		if err := e.writeStudent(f, name, headerStyle, sp); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (e *Exporter) writeOverview(f *excelize.File, sheet string, headerStyle int, students []*model.StudentProgress) error {
	l := e.labels
	rows := [][]any{{l.Student, l.SelectStudent, l.MajorCode, l.MajorName, l.Passed, l.NotPassed}}
	for _, sp := range students {
		s := sp.Summary
		rows = append(rows, []any{sp.Name, sp.StudentID, sp.MajorCode, sp.MajorName, s.Passed, s.Total - s.Passed})
	}
	if err := writeRows(f, sheet, 1, rows); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return errors.Wrap(err, "style overview header")
	}
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return errors.Wrap(err, "set column width")
	}
	if err := f.SetColWidth(sheet, "B", "F", 15); err != nil {
		return errors.Wrap(err, "set column width")
	}
	return e.setDirection(f, sheet)
}

func (e *Exporter) writeStudent(f *excelize.File, sheet string, headerStyle int, sp *model.StudentProgress) error {
	l := e.labels
	rows := [][]any{
		{l.Student, fmt.Sprintf("%s (%s)", sp.Name, sp.StudentID)},
		{l.MajorCode, sp.MajorCode, l.MajorName, sp.MajorName},
		{},
		toAny(e.adapter.Columns()),
	}
	for i, row := range e.adapter.Rows(sp) {
		entry := sp.Entries[i]
		var score any = row.Score
		if entry.Score.Scored() {
			score = entry.Score.Value
		}
		rows = append(rows, []any{row.Status, entry.TermRequired, row.SubjectName, row.SubjectCode, score})
	}

	if err := writeRows(f, sheet, 1, rows); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 4, 4, headerStyle); err != nil {
		return errors.Wrap(err, "style progress header")
	}
	if err := f.SetColWidth(sheet, "C", "C", 30); err != nil {
		return errors.Wrap(err, "set column width")
	}
	return e.setDirection(f, sheet)
}

func (e *Exporter) setDirection(f *excelize.File, sheet string) error {
	if !e.rtl {
		return nil
	}
	rtl := true
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return errors.Wrapf(err, "set sheet view %s", sheet)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, startRow int, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return errors.WithStack(err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return errors.Wrapf(err, "write %s row %d", sheet, startRow+i)
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// sheetName 去掉 Excel 不允许的字符并截断到 31 个字符
func sheetName(name, fallback string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		name = fallback
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		runes := []rune(name)
		if len(runes)+len([]rune(suffix)) > maxSheetName {
			runes = runes[:maxSheetName-len([]rune(suffix))]
		}
		candidate = string(runes) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// ContentDisposition 下载文件名
func ContentDisposition(studentID string) string {
	filename := "progress.xlsx"
	if studentID != "" {
		filename = fmt.Sprintf("progress-%s.xlsx", sheetName(studentID, "student"))
	}
	return fmt.Sprintf("attachment; filename=%q", filename)
}
