package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gradepath/internal/config"
	"gradepath/internal/model"
)

func sampleProgress() *model.Progress {
	p := model.NewProgress(12)
	p.Add(&model.StudentProgress{
		StudentID: "9001",
		Name:      "Sara Ahmadi",
		MajorCode: "1120301",
		Entries: []model.ProgressEntry{
			{SubjectCode: "101", SubjectName: "Math", TermRequired: 1, Score: model.Score{Kind: model.ScoreScored, Value: 15.5}, Passed: true},
			{SubjectCode: "102", SubjectName: "Physics", TermRequired: 2, Score: model.Score{Kind: model.ScoreInvalid, Raw: "abc"}},
		},
		Summary: model.ProgressSummary{Total: 2, Passed: 1, Invalid: 1},
	})
	p.Add(&model.StudentProgress{StudentID: "9003", Name: "Ali Moradi", Entries: []model.ProgressEntry{}})
	return p
}

func TestExport_WorkbookLayout(t *testing.T) {
	t.Parallel()

	ui := config.DefaultConfig().UI
	f, err := NewExporter(ui).Export(sampleProgress())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ui.Labels.Heading, "9001", "9003"}, f.GetSheetList())

	rows, err := f.GetRows("9001")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"وضعیت", "ترم", "نام درس", "کد", "نمره"}, rows[3])
	assert.Equal(t, []string{"✔", "1", "Math", "101", "15.5"}, rows[4])
	assert.Equal(t, []string{"✘", "2", "Physics", "102", "-"}, rows[5])

	overview, err := f.GetRows(ui.Labels.Heading)
	require.NoError(t, err)
	require.Len(t, overview, 3)
	assert.Equal(t, "9001", overview[1][1])

	view, err := f.GetSheetView("9001", 0)
	require.NoError(t, err)
	require.NotNil(t, view.RightToLeft)
	assert.True(t, *view.RightToLeft)
}

func TestExportStudent_RoundTripsThroughFile(t *testing.T) {
	t.Parallel()

	ui := config.DefaultConfig().UI
	ui.Direction = "ltr"
	sp, _ := sampleProgress().Student("9001")

	f, err := NewExporter(ui).ExportStudent(sp)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	g, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer g.Close()

	assert.Len(t, g.GetSheetList(), 2)
	v, err := g.GetCellValue("9001", "E5")
	require.NoError(t, err)
	assert.Equal(t, "15.5", v)
}

func TestSheetName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a_b_c", sheetName("a/b?c", "x"))
	assert.Equal(t, "x", sheetName("  ", "x"))
	assert.Len(t, []rune(sheetName("0123456789012345678901234567890123", "x")), 31)

	used := map[string]bool{"abc": true}
	assert.Equal(t, "ABC (2)", uniqueSheetName("ABC", used))
	assert.Equal(t, "ABC (3)", uniqueSheetName("ABC", used))
}

func TestContentDisposition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `attachment; filename="progress.xlsx"`, ContentDisposition(""))
	assert.Equal(t, `attachment; filename="progress-9001.xlsx"`, ContentDisposition("9001"))
}
