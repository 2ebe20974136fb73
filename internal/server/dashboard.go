package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gradepath/internal/config"
	"gradepath/internal/model"
	"gradepath/internal/presentation"
)

// dashboardPage 首页模板数据
type dashboardPage struct {
	Title     string
	Lang      string
	Direction string
	Font      config.FontConfig
	Labels    config.LabelsConfig

	Error string

	ShowSelector bool
	Students     []*model.StudentProgress
	SelectedID   string
	Selected     *model.StudentProgress
	Columns      []string
	Rows         []presentation.Row
}

// dashboard 学生进度页
// GET /?student=<id>
// 多于一名学生时显示选择框；只有一名学生时直接展示
func (s *Server) dashboard(c *gin.Context) {
	ui := s.cfg.UI
	page := dashboardPage{
		Title:     ui.Title,
		Lang:      ui.Lang,
		Direction: ui.Direction,
		Font:      ui.Font,
		Labels:    ui.Labels,
	}

	res, err := s.api.Load()
	if err != nil {
		page.Error = err.Error()
		c.HTML(http.StatusInternalServerError, "dashboard.html", page)
		return
	}

	students := res.Progress.Students
	page.Students = students
	page.ShowSelector = len(students) > 1

	id := c.Query("student")
	if id == "" && len(students) == 1 {
		id = students[0].StudentID
	}

	status := http.StatusOK
	if id != "" {
		if sp, ok := res.Progress.Student(id); ok {
			adapter := s.api.Adapter()
			page.SelectedID = sp.StudentID
			page.Selected = sp
			page.Columns = adapter.Columns()
			page.Rows = adapter.Rows(sp)
		} else {
			status = http.StatusNotFound
		}
	}

	c.HTML(status, "dashboard.html", page)
}
