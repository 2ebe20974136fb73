package main

import (
	"flag"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"gradepath/internal/config"
	"gradepath/internal/exporter"
	"gradepath/internal/importer"
	"gradepath/internal/presentation"
	"gradepath/internal/util"
)

var (
	studentID  = flag.String("student", "", "学号 (为空时输出全部学生概览)")
	configPath = flag.String("config", "", "配置文件路径 (默认为可执行文件同目录下的 config.toml)")
	xlsxPath   = flag.String("xlsx", "", "同时导出为 Excel 文件")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := config.LoadConfigWithInfo(*configPath)
	if err != nil {
		return err
	}
	logger := util.NewLogger(cfg.Log, os.Stderr)

	res, err := importer.NewCoordinator(importer.OptionsFromConfig(cfg), logger, nil).Run(nil)
	if err != nil {
		return err
	}

	adapter := presentation.NewAdapter(cfg.UI.Labels)
	p := res.Progress

	id := *studentID
	if id == "" && len(p.Students) == 1 {
		id = p.Students[0].StudentID
	}
	exp := exporter.NewExporter(cfg.UI)

	if id == "" {
		adapter.WriteRoster(os.Stdout, p)
		return exportFile(func() (*excelize.File, error) { return exp.Export(p) })
	}

	sp, ok := p.Student(id)
	if !ok {
		return errors.Errorf("student not found: %s", id)
	}
	adapter.WriteReport(os.Stdout, sp)
	return exportFile(func() (*excelize.File, error) { return exp.ExportStudent(sp) })
}

// exportFile 指定 -xlsx 时写出工作簿
func exportFile(build func() (*excelize.File, error)) error {
	if *xlsxPath == "" {
		return nil
	}
	f, err := build()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(*xlsxPath); err != nil {
		return errors.Wrapf(err, "save %s", *xlsxPath)
	}
	color.Green("已导出: %s", *xlsxPath)
	return nil
}
