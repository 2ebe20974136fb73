package progress

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradepath/internal/model"
)

func newDataset(subjects []*model.Subject, students []*model.Student, scores []model.ScoreRecord) *model.Dataset {
	ds := model.NewDataset()
	for _, s := range subjects {
		ds.Subjects.Put(s)
	}
	for _, s := range students {
		ds.Students.Put(s)
	}
	for _, r := range scores {
		ds.Scores.Put(r)
	}
	return ds
}

func TestAnalyze_CompositeScorePasses(t *testing.T) {
	t.Parallel()

	ds := newDataset(
		[]*model.Subject{{Code: "101", Name: "Math", MajorCode: "A", TermRequired: 1}},
		[]*model.Student{{ID: "S1", Name: "Sara Ahmadi", MajorCode: "A"}},
		[]model.ScoreRecord{{StudentID: "S1", SubjectCode: "101", Raw: "15/5"}},
	)

	progress, err := Analyze(ds, DefaultPassingScore)
	require.NoError(t, err)

	sp, ok := progress.Student("S1")
	require.True(t, ok)
	entry, ok := sp.Entry("101")
	require.True(t, ok)

	assert.Equal(t, model.ScoreScored, entry.Score.Kind)
	assert.Equal(t, 15.5, entry.Score.Value)
	assert.True(t, entry.Passed)
	assert.Equal(t, 1, entry.TermRequired)
	assert.Equal(t, "Math", entry.SubjectName)
	assert.Equal(t, "101", entry.SubjectCode)
	assert.Equal(t, model.ProgressSummary{Total: 1, Passed: 1}, sp.Summary)
}

func TestAnalyze_MissingScoreIsUnscored(t *testing.T) {
	t.Parallel()

	ds := newDataset(
		[]*model.Subject{{Code: "101", Name: "Math", MajorCode: "A", TermRequired: 1}},
		[]*model.Student{{ID: "S1", MajorCode: "A"}},
		nil,
	)

	progress, err := Analyze(ds, DefaultPassingScore)
	require.NoError(t, err)

	sp, ok := progress.Student("S1")
	require.True(t, ok)
	entry, ok := sp.Entry("101")
	require.True(t, ok)

	assert.Equal(t, model.ScoreUnscored, entry.Score.Kind)
	assert.Equal(t, model.UnscoredMark, entry.Score.String())
	assert.False(t, entry.Passed)
	assert.Equal(t, 1, sp.Summary.Unscored)
}

func TestAnalyze_InvalidScoreNotPassed(t *testing.T) {
	t.Parallel()

	ds := newDataset(
		[]*model.Subject{{Code: "101", MajorCode: "A"}, {Code: "102", MajorCode: "A"}},
		[]*model.Student{{ID: "S1", MajorCode: "A"}},
		[]model.ScoreRecord{
			{StudentID: "S1", SubjectCode: "101", Raw: "abc"},
			{StudentID: "S1", SubjectCode: "102", Raw: "20/5/1"},
		},
	)

	progress, err := Analyze(ds, DefaultPassingScore)
	require.NoError(t, err)

	sp, _ := progress.Student("S1")
	for _, e := range sp.Entries {
		assert.Equal(t, model.ScoreInvalid, e.Score.Kind, e.SubjectCode)
		assert.False(t, e.Passed, e.SubjectCode)
	}
	assert.Equal(t, 2, sp.Summary.Invalid)
}

func TestAnalyzer_PassedBoundary(t *testing.T) {
	t.Parallel()

	a, err := NewAnalyzer(12)
	require.NoError(t, err)

	assert.True(t, a.Passed(Normalize("12")))
	assert.True(t, a.Passed(Normalize("12/0")))
	assert.False(t, a.Passed(Normalize("11.99")))
	assert.False(t, a.Passed(Normalize("11/99")))
	assert.False(t, a.Passed(Normalize("")))
	assert.False(t, a.Passed(Normalize("abc")))
}

func TestNewAnalyzer_RejectsBadPassingScore(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := NewAnalyzer(v)
		assert.ErrorIs(t, err, ErrInvalidPassingScore, "value=%v", v)
	}
}

func TestAnalyze_MixedKeyRepresentations(t *testing.T) {
	t.Parallel()

	ds := newDataset(
		[]*model.Subject{{Code: "101.0", Name: "Math", MajorCode: "1120", TermRequired: 2}},
		[]*model.Student{{ID: "9001", MajorCode: "۱۱۲۰"}},
		[]model.ScoreRecord{{StudentID: "9001.0", SubjectCode: " 101 ", Raw: "14"}},
	)

	progress, err := Analyze(ds, DefaultPassingScore)
	require.NoError(t, err)

	sp, ok := progress.Student("9001")
	require.True(t, ok)
	require.Len(t, sp.Entries, 1)
	assert.True(t, sp.Entries[0].Passed)
	assert.Equal(t, 14.0, sp.Entries[0].Score.Value)
}

func TestAnalyze_StudentWithoutCurriculum(t *testing.T) {
	t.Parallel()

	ds := newDataset(
		[]*model.Subject{{Code: "101", MajorCode: "A"}},
		[]*model.Student{{ID: "S1", MajorCode: "B"}, {ID: "S2", MajorCode: ""}},
		nil,
	)

	progress, err := Analyze(ds, DefaultPassingScore)
	require.NoError(t, err)
	require.Len(t, progress.Students, 2)
	for _, sp := range progress.Students {
		assert.NotNil(t, sp.Entries)
		assert.Empty(t, sp.Entries, sp.StudentID)
	}
}

func TestAnalyze_BlankMajorNeverMatches(t *testing.T) {
	t.Parallel()

	ds := newDataset(
		[]*model.Subject{{Code: "101", MajorCode: " "}},
		[]*model.Student{{ID: "S1", MajorCode: ""}},
		nil,
	)

	progress, err := Analyze(ds, DefaultPassingScore)
	require.NoError(t, err)

	sp, _ := progress.Student("S1")
	assert.Empty(t, sp.Entries)
}

func TestAnalyze_LastScoreRowWins(t *testing.T) {
	t.Parallel()

	ds := newDataset(
		[]*model.Subject{{Code: "101", MajorCode: "A"}},
		[]*model.Student{{ID: "S1", MajorCode: "A"}},
		[]model.ScoreRecord{
			{StudentID: "S1", SubjectCode: "101", Raw: "8"},
			{StudentID: "S1", SubjectCode: "101", Raw: "16"},
		},
	)

	progress, err := Analyze(ds, DefaultPassingScore)
	require.NoError(t, err)

	sp, _ := progress.Student("S1")
	assert.Equal(t, 16.0, sp.Entries[0].Score.Value)
	assert.True(t, sp.Entries[0].Passed)
}

func TestAnalyze_CurriculumSetEqualityAnyOrder(t *testing.T) {
	t.Parallel()

	majors := []string{"A", "B", "C"}
	var subjects []*model.Subject
	for i := 0; i < 30; i++ {
		subjects = append(subjects, &model.Subject{
			Code:      fmt.Sprintf("%d", 100+i),
			MajorCode: majors[i%len(majors)],
		})
	}
	var students []*model.Student
	for i := 0; i < 12; i++ {
		students = append(students, &model.Student{
			ID:        fmt.Sprintf("S%d", i),
			MajorCode: majors[i%len(majors)],
		})
	}

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 5; round++ {
		rng.Shuffle(len(subjects), func(i, j int) { subjects[i], subjects[j] = subjects[j], subjects[i] })
		rng.Shuffle(len(students), func(i, j int) { students[i], students[j] = students[j], students[i] })

		ds := newDataset(subjects, students, nil)
		progress, err := Analyze(ds, DefaultPassingScore)
		require.NoError(t, err)

		for _, st := range students {
			want := map[string]bool{}
			var order []string
			for _, s := range subjects {
				if s.MajorCode == st.MajorCode {
					want[s.Code] = true
					order = append(order, s.Code)
				}
			}

			sp, ok := progress.Student(st.ID)
			require.True(t, ok)
			got := make([]string, 0, len(sp.Entries))
			for _, e := range sp.Entries {
				require.True(t, want[e.SubjectCode], "student %s got foreign subject %s", st.ID, e.SubjectCode)
				got = append(got, e.SubjectCode)
			}
			assert.Equal(t, order, got, "round %d student %s", round, st.ID)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	t.Parallel()

	ds := newDataset(
		[]*model.Subject{
			{Code: "101", Name: "Math", MajorCode: "A", TermRequired: 1},
			{Code: "102", Name: "Physics", MajorCode: "A", TermRequired: 2},
			{Code: "201", Name: "History", MajorCode: "B", TermRequired: 1},
		},
		[]*model.Student{{ID: "S1", MajorCode: "A"}, {ID: "S2", MajorCode: "B"}},
		[]model.ScoreRecord{
			{StudentID: "S1", SubjectCode: "101", Raw: "15/5"},
			{StudentID: "S1", SubjectCode: "102", Raw: "x"},
			{StudentID: "S2", SubjectCode: "201", Raw: "9"},
		},
	)

	first, err := Analyze(ds, DefaultPassingScore)
	require.NoError(t, err)
	second, err := Analyze(ds, DefaultPassingScore)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, ds.Subjects.Len())
	assert.Equal(t, 2, ds.Students.Len())
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	ds := newDataset(
		[]*model.Subject{{Code: "101", MajorCode: "A"}, {Code: "301", MajorCode: "C"}},
		[]*model.Student{{ID: "S1", MajorCode: "A"}, {ID: "S2", MajorCode: "B"}},
		[]model.ScoreRecord{
			{StudentID: "S1", SubjectCode: "101", Raw: "15"},
			{StudentID: "S9", SubjectCode: "101", Raw: "15"},
			{StudentID: "S1", SubjectCode: "999", Raw: "15"},
		},
	)

	d := Diagnose(ds)
	assert.Equal(t, []string{"C"}, d.OrphanMajors)
	assert.Equal(t, []string{"S2"}, d.EmptyCurricula)
	assert.Equal(t, 1, d.UnknownScoreStudent)
	assert.Equal(t, 1, d.UnknownScoreSubject)
}
