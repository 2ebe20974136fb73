package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gradepath/internal/config"
	"gradepath/internal/metrics"
	"gradepath/internal/server"
	"gradepath/internal/util"
)

var (
	port       = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode    = flag.Bool("dev", false, "开发模式")
	configPath = flag.String("config", "", "配置文件路径 (默认为可执行文件同目录下的 config.toml)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  GradePath - 学生学业进度看板")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if info.Path != "" {
		fmt.Printf("配置文件: %s\n", info.Path)
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	logger := util.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	subjects, students, scores := cfg.Sources()
	fmt.Printf("课程表: %s\n学生表: %s\n成绩表: %s\n", subjects.Path, students.Path, scores.Path)
	fmt.Printf("及格线: %g\n", cfg.Business.PassingScore)

	// 创建服务器
	srv, err := server.NewServer(cfg, logger, metrics.New())
	if err != nil {
		logger.Error("create server", slog.Any("error", err))
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := util.DashboardURL(cfg.Server.Port, "")

	// 启动服务器
	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			logger.Error("server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// 打开浏览器
	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown", slog.Any("error", err))
	}
}
