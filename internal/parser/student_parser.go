package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"gradepath/internal/model"
)

// StudentParser 学生名册解析器
type StudentParser struct {
	file   *excelize.File
	name   string
	layout StudentLayout
}

// NewStudentParser 创建学生名册解析器
func NewStudentParser(file *excelize.File, layout StudentLayout) *StudentParser {
	return &StudentParser{
		file:   file,
		name:   filepath.Base(file.Path),
		layout: layout,
	}
}

// ParseSheet 解析学生名册
func (p *StudentParser) ParseSheet(sheet string, headerRows int, roster *model.Roster) (*ParseResult, error) {
	start := time.Now()

	sheet, rows, err := ReadSheet(p.file, p.name, sheet)
	if err != nil {
		return nil, err
	}

	fields := map[string]int{
		"id":         p.layout.ID,
		"last_name":  p.layout.LastName,
		"first_name": p.layout.FirstName,
		"major_name": p.layout.MajorName,
	}
	for i, idx := range p.layout.MajorParts {
		fields[fmt.Sprintf("major_part_%d", i+1)] = idx
	}
	if err := checkWidth(p.name, sheet, rows, fields); err != nil {
		return nil, err
	}

	result := &ParseResult{
		Table:   TableStudents,
		File:    p.name,
		Sheet:   sheet,
		Headers: headerSnapshot(rows, headerRows, fields),
	}

	for rowIdx := headerRows; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		result.Rows++
		if isBlankRow(row) {
			result.BlankRows++
			continue
		}

		id := model.CanonicalKey(cell(row, p.layout.ID))
		if id == "" {
			return nil, &model.MalformedInputError{
				File:   p.name,
				Sheet:  sheet,
				Row:    rowIdx + 1,
				Column: p.layout.ID,
				Field:  "id",
				Reason: "student id is missing",
			}
		}

		student := &model.Student{
			ID:        id,
			Name:      fullName(cell(row, p.layout.FirstName), cell(row, p.layout.LastName)),
			MajorCode: p.majorCode(row),
			MajorName: cell(row, p.layout.MajorName),
		}
		if _, exists := roster.Get(id); exists {
			result.Overwritten++
		} else {
			result.Records++
		}
		roster.Put(student)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// majorCode 三段按固定顺序直接拼接，不加分隔符
func (p *StudentParser) majorCode(row []string) string {
	var b strings.Builder
	for _, idx := range p.layout.MajorParts {
		b.WriteString(model.CanonicalKey(cell(row, idx)))
	}
	return b.String()
}

// fullName 名 + 空格 + 姓
func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
