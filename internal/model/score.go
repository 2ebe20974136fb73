package model

import "strconv"

// ScoreRecord 成绩表中的一行：学生 + 课程 + 原始成绩
type ScoreRecord struct {
	StudentID   string `json:"studentId"`
	SubjectCode string `json:"subjectCode"`
	Raw         string `json:"raw"` // 原始成绩，可能为空或格式错误
}

// ScoreBook 成绩簿 (学号, 课程代码) -> 原始成绩；后出现的行覆盖先出现的行
type ScoreBook struct {
	records map[string]map[string]string
	rows    int
}

// NewScoreBook 创建成绩簿
func NewScoreBook() *ScoreBook {
	return &ScoreBook{records: make(map[string]map[string]string)}
}

// Put 写入一条成绩
func (b *ScoreBook) Put(r ScoreRecord) {
	student := CanonicalKey(r.StudentID)
	subjects, ok := b.records[student]
	if !ok {
		subjects = make(map[string]string)
		b.records[student] = subjects
	}
	subjects[CanonicalKey(r.SubjectCode)] = r.Raw
	b.rows++
}

// Lookup 查询原始成绩；未登记时 ok=false
func (b *ScoreBook) Lookup(studentID, subjectCode string) (raw string, ok bool) {
	subjects, ok := b.records[CanonicalKey(studentID)]
	if !ok {
		return "", false
	}
	raw, ok = subjects[CanonicalKey(subjectCode)]
	return raw, ok
}

// Each 遍历全部 (学号, 课程代码)，顺序不固定
func (b *ScoreBook) Each(fn func(studentID, subjectCode, raw string)) {
	for student, subjects := range b.records {
		for subject, raw := range subjects {
			fn(student, subject, raw)
		}
	}
}

// Rows 写入过的行数（含被覆盖的行）
func (b *ScoreBook) Rows() int {
	return b.rows
}

// Len 去重后的成绩条数
func (b *ScoreBook) Len() int {
	n := 0
	for _, subjects := range b.records {
		n += len(subjects)
	}
	return n
}

// ScoreKind 成绩解析状态
type ScoreKind int

const (
	ScoreScored   ScoreKind = iota // 有效数值
	ScoreUnscored                  // 无成绩
	ScoreInvalid                   // 无法解析
)

func (k ScoreKind) String() string {
	switch k {
	case ScoreScored:
		return "scored"
	case ScoreUnscored:
		return "unscored"
	case ScoreInvalid:
		return "invalid"
	}
	return "unknown"
}

// UnscoredMark 无有效成绩时的展示符号
const UnscoredMark = "-"

// Score 成绩规范化结果
type Score struct {
	Kind  ScoreKind `json:"-"`
	Value float64   `json:"-"`
	Raw   string    `json:"-"`
	Err   error     `json:"-"` // 仅 ScoreInvalid 时非空
}

// Scored 是否为有效数值
func (s Score) Scored() bool {
	return s.Kind == ScoreScored
}

// String 展示用文本：有效数值按最短小数输出，其余为 "-"
func (s Score) String() string {
	if s.Kind != ScoreScored {
		return UnscoredMark
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}
