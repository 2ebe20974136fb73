package model

// ProgressEntry 学生某门必修课的进度
type ProgressEntry struct {
	SubjectCode  string `json:"subjectCode"`
	SubjectName  string `json:"name"`
	TermRequired int    `json:"termRequired"`
	Score        Score  `json:"-"`
	Passed       bool   `json:"passed"`
}

// ProgressSummary 单个学生的进度汇总
type ProgressSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Unscored int `json:"unscored"`
	Invalid  int `json:"invalid"`
}

// StudentProgress 单个学生的全部进度
type StudentProgress struct {
	StudentID string          `json:"studentId"`
	Name      string          `json:"name"`
	MajorCode string          `json:"majorCode"`
	MajorName string          `json:"majorName"`
	Entries   []ProgressEntry `json:"entries"`
	Summary   ProgressSummary `json:"summary"`
}

// Entry 按课程代码查询进度
func (p *StudentProgress) Entry(subjectCode string) (ProgressEntry, bool) {
	key := CanonicalKey(subjectCode)
	for _, e := range p.Entries {
		if CanonicalKey(e.SubjectCode) == key {
			return e, true
		}
	}
	return ProgressEntry{}, false
}

// Progress 全部学生的进度，按名册顺序
type Progress struct {
	Students     []*StudentProgress `json:"students"`
	PassingScore float64            `json:"passingScore"`
	index        map[string]int
}

// NewProgress 创建进度集合
func NewProgress(passingScore float64) *Progress {
	return &Progress{
		Students:     []*StudentProgress{},
		PassingScore: passingScore,
		index:        make(map[string]int),
	}
}

// Add 追加一个学生的进度
func (p *Progress) Add(sp *StudentProgress) {
	key := CanonicalKey(sp.StudentID)
	if i, ok := p.index[key]; ok {
		p.Students[i] = sp
		return
	}
	p.index[key] = len(p.Students)
	p.Students = append(p.Students, sp)
}

// Student 按学号查询
func (p *Progress) Student(id string) (*StudentProgress, bool) {
	i, ok := p.index[CanonicalKey(id)]
	if !ok {
		return nil, false
	}
	return p.Students[i], true
}
