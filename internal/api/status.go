package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gradepath/internal/parser"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	RunID        string               `json:"runId"`
	Subjects     int                  `json:"subjects"`     // 课程数
	Students     int                  `json:"students"`     // 学生数
	Scores       int                  `json:"scores"`       // 去重后的成绩条数
	PassingScore float64              `json:"passingScore"` // 及格线
	Tables       []parser.ParseResult `json:"tables"`
	DurationMs   int64                `json:"durationMs"`

	// 关联缺口统计
	OrphanMajors        int `json:"orphanMajors"`
	EmptyCurricula      int `json:"emptyCurricula"`
	UnknownScoreStudent int `json:"unknownScoreStudent"`
	UnknownScoreSubject int `json:"unknownScoreSubject"`
}

// GetStatus 获取加载状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	res, ok := h.loadOrAbort(c)
	if !ok {
		return
	}

	d := res.Diagnostics
	c.JSON(http.StatusOK, StatusResponse{
		RunID:               res.RunID,
		Subjects:            res.Dataset.Subjects.Len(),
		Students:            res.Dataset.Students.Len(),
		Scores:              res.Dataset.Scores.Len(),
		PassingScore:        res.Progress.PassingScore,
		Tables:              res.Report.Tables,
		DurationMs:          res.Report.Duration.Milliseconds(),
		OrphanMajors:        len(d.OrphanMajors),
		EmptyCurricula:      len(d.EmptyCurricula),
		UnknownScoreStudent: d.UnknownScoreStudent,
		UnknownScoreSubject: d.UnknownScoreSubject,
	})
}
