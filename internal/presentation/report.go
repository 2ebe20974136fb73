package presentation

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"gradepath/internal/model"
)

var (
	headingColor = color.New(color.FgYellow)
	passedColor  = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed)
)

// WriteReport 终端报表：学生信息 + 进度表 + 汇总
func (a *Adapter) WriteReport(w io.Writer, sp *model.StudentProgress) {
	l := a.labels
	headingColor.Fprintf(w, "\n%s: %s (%s)\n", l.Student, sp.Name, sp.StudentID)
	fmt.Fprintf(w, "%s: %s    %s: %s\n", l.MajorCode, sp.MajorCode, l.MajorName, sp.MajorName)

	table := tablewriter.NewWriter(w)
	table.SetHeader(a.Columns())
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range a.Rows(sp) {
		cells := row.Cells()
		if row.Passed {
			cells[0] = passedColor.Sprint(cells[0])
		} else {
			cells[0] = failedColor.Sprint(cells[0])
		}
		table.Append(cells)
	}
	table.Render()

	s := sp.Summary
	fmt.Fprintf(w, "%s %d/%d", l.Passed, s.Passed, s.Total)
	if s.Unscored > 0 {
		fmt.Fprintf(w, "    %s %d", model.UnscoredMark, s.Unscored)
	}
	if s.Invalid > 0 {
		fmt.Fprintf(w, "    %s %d", model.ScoreInvalid, s.Invalid)
	}
	fmt.Fprintln(w)
}

// WriteRoster 终端报表：全部学生概览
func (a *Adapter) WriteRoster(w io.Writer, p *model.Progress) {
	l := a.labels
	headingColor.Fprintf(w, "\n%s\n", l.Heading)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{l.Student, l.MajorCode, l.MajorName, l.Passed, model.UnscoredMark})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, sp := range p.Students {
		table.Append([]string{
			fmt.Sprintf("%s (%s)", sp.Name, sp.StudentID),
			sp.MajorCode,
			sp.MajorName,
			fmt.Sprintf("%d/%d", sp.Summary.Passed, sp.Summary.Total),
			fmt.Sprintf("%d", sp.Summary.Unscored+sp.Summary.Invalid),
		})
	}
	table.Render()
}
