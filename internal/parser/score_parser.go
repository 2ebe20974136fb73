package parser

import (
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"gradepath/internal/model"
)

// ScoreParser 成绩表解析器
type ScoreParser struct {
	file   *excelize.File
	name   string
	layout ScoreLayout
}

// NewScoreParser 创建成绩表解析器
func NewScoreParser(file *excelize.File, layout ScoreLayout) *ScoreParser {
	return &ScoreParser{
		file:   file,
		name:   filepath.Base(file.Path),
		layout: layout,
	}
}

// ParseSheet 解析成绩表；成绩保留原始文本，由分析阶段规范化
func (p *ScoreParser) ParseSheet(sheet string, headerRows int, book *model.ScoreBook) (*ParseResult, error) {
	start := time.Now()

	sheet, rows, err := ReadSheet(p.file, p.name, sheet)
	if err != nil {
		return nil, err
	}

	fields := map[string]int{
		"student_id": p.layout.StudentID,
		"subject":    p.layout.Subject,
		"score":      p.layout.Score,
	}
	if err := checkWidth(p.name, sheet, rows, fields); err != nil {
		return nil, err
	}

	result := &ParseResult{
		Table:   TableScores,
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

		record, err := p.parseRow(row, sheet, rowIdx+1)
		if err != nil {
			return nil, err
		}
		if _, exists := book.Lookup(record.StudentID, record.SubjectCode); exists {
			result.Overwritten++
		} else {
			result.Records++
		}
		book.Put(record)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// parseRow 解析单行
func (p *ScoreParser) parseRow(row []string, sheet string, rowNo int) (model.ScoreRecord, error) {
	studentID := model.CanonicalKey(cell(row, p.layout.StudentID))
	if studentID == "" {
		return model.ScoreRecord{}, &model.MalformedInputError{
			File:   p.name,
			Sheet:  sheet,
			Row:    rowNo,
			Column: p.layout.StudentID,
			Field:  "student_id",
			Reason: "student id is missing",
		}
	}

	subjectCode := model.CanonicalKey(subjectCodeOf(cell(row, p.layout.Subject), p.layout.SubjectSeparator))
	if subjectCode == "" {
		return model.ScoreRecord{}, &model.MalformedInputError{
			File:   p.name,
			Sheet:  sheet,
			Row:    rowNo,
			Column: p.layout.Subject,
			Field:  "subject",
			Reason: "subject code is missing",
		}
	}

	return model.ScoreRecord{
		StudentID:   studentID,
		SubjectCode: subjectCode,
		Raw:         cell(row, p.layout.Score),
	}, nil
}
