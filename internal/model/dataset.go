package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Dataset 一次运行加载的三张表
type Dataset struct {
	Subjects *SubjectCatalog
	Students *Roster
	Scores   *ScoreBook
}

// NewDataset 创建空数据集
func NewDataset() *Dataset {
	return &Dataset{
		Subjects: NewSubjectCatalog(),
		Students: NewRoster(),
		Scores:   NewScoreBook(),
	}
}

// ErrMalformedInput 输入文件结构错误（可用 errors.Is 判断）
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError 输入文件结构错误，终止对应文件的加载
type MalformedInputError struct {
	File   string
	Sheet  string
	Row    int // 1-based Excel 行号，0 表示文件级错误
	Column int // 0-based 列偏移，-1 表示不适用
	Field  string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := "malformed input " + e.File
	if e.Sheet != "" {
		msg += fmt.Sprintf(" [%s]", e.Sheet)
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field %s", e.Field)
		if e.Column >= 0 {
			msg += fmt.Sprintf(" (column %d)", e.Column)
		}
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Is 让 errors.Is(err, ErrMalformedInput) 成立
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
