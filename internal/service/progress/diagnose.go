package progress

import (
	"sort"

	"gradepath/internal/model"
)

// Diagnostics 关联过程中被静默排除的数据（只用于日志与状态统计，不影响进度表）
type Diagnostics struct {
	OrphanMajors        []string `json:"orphanMajors"`        // 有课程但没有学生的专业
	EmptyCurricula      []string `json:"emptyCurricula"`      // 没有任何必修课的学生
	UnknownScoreStudent int      `json:"unknownScoreStudent"` // 成绩表中不在名册里的学号条数
	UnknownScoreSubject int      `json:"unknownScoreSubject"` // 成绩表中不在目录里的课程条数
}

// Diagnose 统计关联缺口
func Diagnose(ds *model.Dataset) Diagnostics {
	var d Diagnostics

	studentMajors := make(map[string]bool)
	for _, s := range ds.Students.All() {
		studentMajors[model.CanonicalKey(s.MajorCode)] = true
	}

	curricula := groupByMajor(ds.Subjects)
	for major := range curricula {
		if !studentMajors[major] {
			d.OrphanMajors = append(d.OrphanMajors, major)
		}
	}
	sort.Strings(d.OrphanMajors)

	for _, s := range ds.Students.All() {
		if len(curricula[model.CanonicalKey(s.MajorCode)]) == 0 {
			d.EmptyCurricula = append(d.EmptyCurricula, s.ID)
		}
	}

	ds.Scores.Each(func(studentID, subjectCode, _ string) {
		if _, ok := ds.Students.Get(studentID); !ok {
			d.UnknownScoreStudent++
		}
		if _, ok := ds.Subjects.Get(subjectCode); !ok {
			d.UnknownScoreSubject++
		}
	})

	return d
}
