package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"gradepath/internal/config"
	"gradepath/internal/exporter"
	"gradepath/internal/importer"
	"gradepath/internal/metrics"
	"gradepath/internal/model"
	"gradepath/internal/presentation"
)

// Handler 进度 API 处理器
// 每个请求独立加载三张表并重新分析，处理器本身只持有只读配置
type Handler struct {
	cfg      *config.AppConfig
	logger   *slog.Logger
	metrics  *metrics.Metrics
	adapter  *presentation.Adapter
	exporter *exporter.Exporter
}

// NewHandler 创建 API 处理器；logger 为空时使用 slog.Default
func NewHandler(cfg *config.AppConfig, logger *slog.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		adapter:  presentation.NewAdapter(cfg.UI.Labels),
		exporter: exporter.NewExporter(cfg.UI),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	// 配置（只读）
	router.GET("/config", h.GetConfig)

	// 学生与进度
	router.GET("/students", h.ListStudents)
	router.GET("/students/:id/progress", h.GetProgress)

	// 导出
	router.GET("/export", h.Export)
	router.GET("/students/:id/export", h.ExportStudent)
}

// Load 执行一次完整的加载与分析
func (h *Handler) Load() (*importer.Result, error) {
	coord := importer.NewCoordinator(importer.OptionsFromConfig(h.cfg), h.logger, h.metrics)
	return coord.Run(nil)
}

// Adapter 表格转换器（页面渲染复用）
func (h *Handler) Adapter() *presentation.Adapter {
	return h.adapter
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error  string          `json:"error"`
	Detail *MalformedInput `json:"detail,omitempty"`
}

// MalformedInput 输入文件结构错误的定位信息
type MalformedInput struct {
	File   string `json:"file"`
	Sheet  string `json:"sheet,omitempty"`
	Row    int    `json:"row,omitempty"`
	Column int    `json:"column"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// NewErrorResponse 由加载错误生成响应体
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var mie *model.MalformedInputError
	if errors.As(err, &mie) {
		resp.Detail = &MalformedInput{
			File:   mie.File,
			Sheet:  mie.Sheet,
			Row:    mie.Row,
			Column: mie.Column,
			Field:  mie.Field,
			Reason: mie.Reason,
		}
	}
	return resp
}

// loadOrAbort 加载失败时直接写出 500
func (h *Handler) loadOrAbort(c *gin.Context) (*importer.Result, bool) {
	res, err := h.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return nil, false
	}
	return res, true
}
