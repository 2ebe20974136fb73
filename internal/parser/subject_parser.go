package parser

import (
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"gradepath/internal/model"
)

// SubjectParser 课程表解析器
type SubjectParser struct {
	file   *excelize.File
	name   string
	layout SubjectLayout
}

// NewSubjectParser 创建课程表解析器
func NewSubjectParser(file *excelize.File, layout SubjectLayout) *SubjectParser {
	return &SubjectParser{
		file:   file,
		name:   filepath.Base(file.Path),
		layout: layout,
	}
}

// ParseSheet 解析课程表，写入课程目录
func (p *SubjectParser) ParseSheet(sheet string, headerRows int, catalog *model.SubjectCatalog) (*ParseResult, error) {
	start := time.Now()

	sheet, rows, err := ReadSheet(p.file, p.name, sheet)
	if err != nil {
		return nil, err
	}

	fields := map[string]int{
		"code":          p.layout.Code,
		"name":          p.layout.Name,
		"term_required": p.layout.TermRequired,
		"major_code":    p.layout.MajorCode,
	}
	if err := checkWidth(p.name, sheet, rows, fields); err != nil {
		return nil, err
	}

	result := &ParseResult{
		Table:   TableSubjects,
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

		subject, err := p.parseRow(row, sheet, rowIdx+1)
		if err != nil {
			return nil, err
		}
		if _, exists := catalog.Get(subject.Code); exists {
			result.Overwritten++
		} else {
			result.Records++
		}
		catalog.Put(subject)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// parseRow 解析单行
func (p *SubjectParser) parseRow(row []string, sheet string, rowNo int) (*model.Subject, error) {
	code := model.CanonicalKey(cell(row, p.layout.Code))
	if code == "" {
		return nil, p.malformed(sheet, rowNo, p.layout.Code, "code", "subject code is missing", nil)
	}

	term, err := parseTerm(cell(row, p.layout.TermRequired))
	if err != nil {
		return nil, p.malformed(sheet, rowNo, p.layout.TermRequired, "term_required", "term is not an integer", err)
	}

	return &model.Subject{
		Code:         code,
		Name:         cell(row, p.layout.Name),
		MajorCode:    model.CanonicalKey(cell(row, p.layout.MajorCode)),
		TermRequired: term,
	}, nil
}

func (p *SubjectParser) malformed(sheet string, rowNo, col int, field, reason string, err error) error {
	return &model.MalformedInputError{
		File:   p.name,
		Sheet:  sheet,
		Row:    rowNo,
		Column: col,
		Field:  field,
		Reason: reason,
		Err:    err,
	}
}

// headerSnapshot 取最后一行表头在各配置列上的文字
func headerSnapshot(rows [][]string, headerRows int, fields map[string]int) map[string]string {
	out := make(map[string]string, len(fields))
	if headerRows <= 0 || headerRows > len(rows) {
		return out
	}
	header := rows[headerRows-1]
	for field, idx := range fields {
		out[field] = NormalizeColumnName(cell(header, idx))
	}
	return out
}
