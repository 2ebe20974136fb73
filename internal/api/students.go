package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gradepath/internal/model"
	"gradepath/internal/presentation"
)

// StudentItem 学生列表项
type StudentItem struct {
	StudentID string                `json:"studentId"`
	Name      string                `json:"name"`
	MajorCode string                `json:"majorCode"`
	MajorName string                `json:"majorName"`
	Summary   model.ProgressSummary `json:"summary"`
}

type listStudentsResponse struct {
	Items        []StudentItem `json:"items"`
	Total        int           `json:"total"`
	PassingScore float64       `json:"passingScore"`
}

// ListStudents 学生列表（名册顺序）
// GET /api/students
func (h *Handler) ListStudents(c *gin.Context) {
	res, ok := h.loadOrAbort(c)
	if !ok {
		return
	}

	items := make([]StudentItem, 0, len(res.Progress.Students))
	for _, sp := range res.Progress.Students {
		items = append(items, StudentItem{
			StudentID: sp.StudentID,
			Name:      sp.Name,
			MajorCode: sp.MajorCode,
			MajorName: sp.MajorName,
			Summary:   sp.Summary,
		})
	}

	c.JSON(http.StatusOK, listStudentsResponse{
		Items:        items,
		Total:        len(items),
		PassingScore: res.Progress.PassingScore,
	})
}

// ProgressResponse 单个学生的进度表
type ProgressResponse struct {
	Student      StudentItem        `json:"student"`
	PassingScore float64            `json:"passingScore"`
	Table        presentation.Table `json:"table"`
}

// GetProgress 单个学生的进度
// GET /api/students/:id/progress
func (h *Handler) GetProgress(c *gin.Context) {
	res, ok := h.loadOrAbort(c)
	if !ok {
		return
	}

	id := c.Param("id")
	sp, found := res.Progress.Student(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found: " + id})
		return
	}

	c.JSON(http.StatusOK, ProgressResponse{
		Student: StudentItem{
			StudentID: sp.StudentID,
			Name:      sp.Name,
			MajorCode: sp.MajorCode,
			MajorName: sp.MajorName,
			Summary:   sp.Summary,
		},
		PassingScore: res.Progress.PassingScore,
		Table:        h.adapter.Table(sp),
	})
}
