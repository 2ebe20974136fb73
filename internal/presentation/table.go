// Package presentation 将学生进度转换为页面与报表使用的表格
package presentation

import (
	"strconv"

	"gradepath/internal/config"
	"gradepath/internal/model"
)

// Row 进度表中的一行，列顺序：状态、学期、课程名、课程代码、成绩
type Row struct {
	Passed      bool   `json:"passed"`
	Status      string `json:"status"`
	Term        string `json:"term"`
	SubjectName string `json:"subjectName"`
	SubjectCode string `json:"subjectCode"`
	Score       string `json:"score"`
}

// Cells 按列顺序返回单元格文本
func (r Row) Cells() []string {
	return []string{r.Status, r.Term, r.SubjectName, r.SubjectCode, r.Score}
}

// Table 表头 + 数据行
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Adapter 表格转换器，状态文案来自配置
type Adapter struct {
	labels config.LabelsConfig
}

// NewAdapter 创建转换器
func NewAdapter(labels config.LabelsConfig) *Adapter {
	return &Adapter{labels: labels}
}

// Columns 表头文案
func (a *Adapter) Columns() []string {
	l := a.labels
	return []string{l.Status, l.Term, l.SubjectName, l.SubjectCode, l.Score}
}

// Rows 按进度顺序生成表格行
func (a *Adapter) Rows(sp *model.StudentProgress) []Row {
	if sp == nil {
		return []Row{}
	}
	rows := make([]Row, 0, len(sp.Entries))
	for _, e := range sp.Entries {
		rows = append(rows, Row{
			Passed:      e.Passed,
			Status:      a.status(e.Passed),
			Term:        strconv.Itoa(e.TermRequired),
			SubjectName: e.SubjectName,
			SubjectCode: e.SubjectCode,
			Score:       e.Score.String(),
		})
	}
	return rows
}

// Table 表头与数据行
func (a *Adapter) Table(sp *model.StudentProgress) Table {
	return Table{Columns: a.Columns(), Rows: a.Rows(sp)}
}

func (a *Adapter) status(passed bool) string {
	if passed {
		return a.labels.Passed
	}
	return a.labels.NotPassed
}
