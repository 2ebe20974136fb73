package server

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"gradepath/internal/api"
	"gradepath/internal/config"
	"gradepath/internal/metrics"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Server HTTP服务器
type Server struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	api     *api.Handler
	metrics *metrics.Metrics
	logger  *slog.Logger
	http    *http.Server
}

// NewServer 创建服务器；m 为空时不暴露 /metrics
func NewServer(cfg *config.AppConfig, logger *slog.Logger, m *metrics.Metrics) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}

	s := &Server{
		cfg:     cfg,
		router:  gin.New(),
		api:     api.NewHandler(cfg, logger, m),
		metrics: m,
		logger:  logger,
	}
	s.http = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.router.SetHTMLTemplate(tmpl)
	s.setupRoutes()

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), requestLogger(s.logger))

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	// 字体等静态资源：配置目录下的 static/，不存在时跳过
	staticDir := filepath.Join(s.cfg.BaseDir, "static")
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		s.router.Static("/static", staticDir)
	}

	// 首页
	s.router.GET("/", s.dashboard)
}

// requestLogger 请求日志
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}

// Handler 底层 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，直到 Shutdown 被调用
func (s *Server) Run(addr string) error {
	s.http.Addr = addr
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
