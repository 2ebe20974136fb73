package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gradepath/internal/config"
	"gradepath/internal/parser"
)

// ConfigResponse 配置响应（只读）
type ConfigResponse struct {
	PassingScore float64 `json:"passingScore"`

	// 输入文件
	Subjects parser.Source `json:"subjects"`
	Students parser.Source `json:"students"`
	Scores   parser.Source `json:"scores"`

	// 列布局
	Layout config.LayoutConfig `json:"layout"`

	// 页面
	Title     string              `json:"title"`
	Lang      string              `json:"lang"`
	Direction string              `json:"direction"`
	Labels    config.LabelsConfig `json:"labels"`
}

// GetConfig 获取当前生效的配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	subjects, students, scores := h.cfg.Sources()
	c.JSON(http.StatusOK, ConfigResponse{
		PassingScore: h.cfg.Business.PassingScore,
		Subjects:     subjects,
		Students:     students,
		Scores:       scores,
		Layout:       h.cfg.Layout,
		Title:        h.cfg.UI.Title,
		Lang:         h.cfg.UI.Lang,
		Direction:    h.cfg.UI.Direction,
		Labels:       h.cfg.UI.Labels,
	})
}
