package parser

import "time"

// TableKind 输入表类型
type TableKind string

const (
	TableSubjects TableKind = "subjects"
	TableStudents TableKind = "students"
	TableScores   TableKind = "scores"
)

// Source 输入文件位置
type Source struct {
	Path       string `json:"path"`       // 文件路径
	Sheet      string `json:"sheet"`      // 工作表名称，为空时使用活动工作表
	HeaderRows int    `json:"headerRows"` // 跳过的表头行数
}

// SubjectLayout 课程表列偏移（0-based）
type SubjectLayout struct {
	Code         int
	Name         int
	TermRequired int
	MajorCode    int
}

// StudentLayout 学生表列偏移（0-based）
type StudentLayout struct {
	ID         int
	LastName   int
	FirstName  int
	MajorParts [3]int // 依次直接拼接为专业代码
	MajorName  int
}

// ScoreLayout 成绩表列偏移（0-based）
type ScoreLayout struct {
	StudentID int
	Subject   int
	Score     int
	// SubjectSeparator 课程列形如 "1120101_01" 时取分隔符前的部分；为空则整列作为课程代码
	SubjectSeparator string
}

// DefaultSubjectLayout 课程表默认布局
func DefaultSubjectLayout() SubjectLayout {
	return SubjectLayout{Code: 3, Name: 4, TermRequired: 9, MajorCode: 25}
}

// DefaultStudentLayout 学生表默认布局
func DefaultStudentLayout() StudentLayout {
	return StudentLayout{ID: 6, LastName: 7, FirstName: 8, MajorParts: [3]int{22, 24, 26}, MajorName: 27}
}

// DefaultScoreLayout 成绩表默认布局
func DefaultScoreLayout() ScoreLayout {
	return ScoreLayout{StudentID: 6, Subject: 10, Score: 14, SubjectSeparator: "_"}
}

// ParseResult 单张表的解析结果
type ParseResult struct {
	Table       TableKind `json:"table"`
	File        string    `json:"file"`
	Sheet       string    `json:"sheet"`
	Rows        int       `json:"rows"`        // 数据行（不含表头）
	BlankRows   int       `json:"blankRows"`   // 跳过的空行
	Records     int       `json:"records"`     // 写入的记录
	Overwritten int       `json:"overwritten"` // 被后续行覆盖的记录
	// Headers 配置列偏移处的表头文字，用于核对列顺序是否变化
	Headers  map[string]string `json:"headers"`
	Duration time.Duration     `json:"duration"`
}
