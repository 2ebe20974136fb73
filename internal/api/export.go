package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"gradepath/internal/exporter"
)

// Export 导出全部学生的进度
// GET /api/export
func (h *Handler) Export(c *gin.Context) {
	res, ok := h.loadOrAbort(c)
	if !ok {
		return
	}

	file, err := h.exporter.Export(res.Progress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	writeWorkbook(c, file, "")
}

// ExportStudent 导出单个学生的进度
// GET /api/students/:id/export
func (h *Handler) ExportStudent(c *gin.Context) {
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

	file, err := h.exporter.ExportStudent(sp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	writeWorkbook(c, file, sp.StudentID)
}

func writeWorkbook(c *gin.Context, file *excelize.File, studentID string) {
	defer file.Close()

	c.Header("Content-Disposition", exporter.ContentDisposition(studentID))
	c.Header("Content-Type", exporter.ContentType)
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
