package progress

import (
	"math"

	"github.com/pkg/errors"

	"gradepath/internal/model"
)

// DefaultPassingScore 默认及格线
const DefaultPassingScore = 12.0

// ErrInvalidPassingScore 及格线不是有限的非负数
var ErrInvalidPassingScore = errors.New("passing score must be a finite number >= 0")

// Analyzer 进度分析器
type Analyzer struct {
	passingScore float64
}

// NewAnalyzer 创建分析器
func NewAnalyzer(passingScore float64) (*Analyzer, error) {
	if math.IsNaN(passingScore) || math.IsInf(passingScore, 0) || passingScore < 0 {
		return nil, errors.Wrapf(ErrInvalidPassingScore, "got %v", passingScore)
	}
	return &Analyzer{passingScore: passingScore}, nil
}

// PassingScore 当前及格线
func (a *Analyzer) PassingScore() float64 {
	return a.passingScore
}

// Passed 成绩是否及格：必须是有效数值且不低于及格线
func (a *Analyzer) Passed(s model.Score) bool {
	return s.Kind == model.ScoreScored && s.Value >= a.passingScore
}

// Analyze 将学生与其专业的必修课、已登记成绩关联，生成逐课程结论
// 输入不会被修改；相同输入得到相同输出
func (a *Analyzer) Analyze(ds *model.Dataset) *model.Progress {
	curricula := groupByMajor(ds.Subjects)
	out := model.NewProgress(a.passingScore)

	for _, student := range ds.Students.All() {
		subjects := curricula[model.CanonicalKey(student.MajorCode)]
		sp := &model.StudentProgress{
			StudentID: student.ID,
			Name:      student.Name,
			MajorCode: student.MajorCode,
			MajorName: student.MajorName,
			Entries:   make([]model.ProgressEntry, 0, len(subjects)),
		}

		for _, subject := range subjects {
			score := Missing()
			if raw, ok := ds.Scores.Lookup(student.ID, subject.Code); ok {
				score = Normalize(raw)
			}
			entry := model.ProgressEntry{
				SubjectCode:  subject.Code,
				SubjectName:  subject.Name,
				TermRequired: subject.TermRequired,
				Score:        score,
				Passed:       a.Passed(score),
			}
			sp.Entries = append(sp.Entries, entry)
			tally(&sp.Summary, entry)
		}

		out.Add(sp)
	}

	return out
}

// Analyze 使用指定及格线执行一次分析
func Analyze(ds *model.Dataset, passingScore float64) (*model.Progress, error) {
	a, err := NewAnalyzer(passingScore)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ds), nil
}

// groupByMajor 按专业代码分组课程，组内保持目录顺序；空专业代码不参与关联
func groupByMajor(catalog *model.SubjectCatalog) map[string][]*model.Subject {
	groups := make(map[string][]*model.Subject)
	for _, s := range catalog.All() {
		key := model.CanonicalKey(s.MajorCode)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], s)
	}
	return groups
}

func tally(sum *model.ProgressSummary, e model.ProgressEntry) {
	sum.Total++
	if e.Passed {
		sum.Passed++
	}
	switch e.Score.Kind {
	case model.ScoreUnscored:
		sum.Unscored++
	case model.ScoreInvalid:
		sum.Invalid++
	}
}
