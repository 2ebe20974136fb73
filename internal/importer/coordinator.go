package importer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"gradepath/internal/config"
	"gradepath/internal/metrics"
	"gradepath/internal/model"
	"gradepath/internal/parser"
	"gradepath/internal/service/progress"
)

// Options 一次运行的输入与参数
type Options struct {
	Subjects parser.Source
	Students parser.Source
	Scores   parser.Source

	SubjectLayout parser.SubjectLayout
	StudentLayout parser.StudentLayout
	ScoreLayout   parser.ScoreLayout

	PassingScore float64
}

// OptionsFromConfig 由应用配置生成运行参数
func OptionsFromConfig(cfg *config.AppConfig) Options {
	subjects, students, scores := cfg.Sources()
	return Options{
		Subjects:      subjects,
		Students:      students,
		Scores:        scores,
		SubjectLayout: cfg.SubjectLayout(),
		StudentLayout: cfg.StudentLayout(),
		ScoreLayout:   cfg.ScoreLayout(),
		PassingScore:  cfg.Business.PassingScore,
	}
}

// ProgressEvent 运行进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/table_start/table_done/analyze/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data"`    // 附加数据
	Timestamp time.Time   `json:"timestamp"`
}

// ImportReport 加载报告
type ImportReport struct {
	RunID    string               `json:"runId"`
	Tables   []parser.ParseResult `json:"tables"`
	Duration time.Duration        `json:"duration"`
}

// Result 一次完整运行的产物
type Result struct {
	RunID       string
	Dataset     *model.Dataset
	Progress    *model.Progress
	Diagnostics progress.Diagnostics
	Report      *ImportReport
}

// Coordinator 加载协调器：读取三张表 -> 关联分析
// 每次 Run 都从头读取文件，不保留跨运行状态
type Coordinator struct {
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCoordinator 创建协调器；logger 为空时使用 slog.Default，metrics 可为空
func NewCoordinator(opts Options, logger *slog.Logger, m *metrics.Metrics) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{opts: opts, logger: logger, metrics: m}
}

// Run 同步执行一次加载与分析；任一文件结构错误都会终止本次运行
func (c *Coordinator) Run(onProgress func(ProgressEvent)) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := c.logger.With(slog.String("run_id", runID))

	analyzer, err := progress.NewAnalyzer(c.opts.PassingScore)
	if err != nil {
		c.metrics.ObserveFailure(time.Since(start))
		return nil, err
	}

	reportProgress(onProgress, "start", "开始加载输入文件", nil)

	ds := model.NewDataset()
	report := &ImportReport{RunID: runID}

	steps := []struct {
		kind parser.TableKind
		src  parser.Source
		run  func(f *excelize.File, src parser.Source) (*parser.ParseResult, error)
	}{
		{parser.TableSubjects, c.opts.Subjects, func(f *excelize.File, src parser.Source) (*parser.ParseResult, error) {
			return parser.NewSubjectParser(f, c.opts.SubjectLayout).ParseSheet(src.Sheet, src.HeaderRows, ds.Subjects)
		}},
		{parser.TableStudents, c.opts.Students, func(f *excelize.File, src parser.Source) (*parser.ParseResult, error) {
			return parser.NewStudentParser(f, c.opts.StudentLayout).ParseSheet(src.Sheet, src.HeaderRows, ds.Students)
		}},
		{parser.TableScores, c.opts.Scores, func(f *excelize.File, src parser.Source) (*parser.ParseResult, error) {
			return parser.NewScoreParser(f, c.opts.ScoreLayout).ParseSheet(src.Sheet, src.HeaderRows, ds.Scores)
		}},
	}

	for _, step := range steps {
		reportProgress(onProgress, "table_start", fmt.Sprintf("正在解析 %s: %s", step.kind, step.src.Path), map[string]string{
			"table": string(step.kind),
			"path":  step.src.Path,
		})

		res, err := loadTable(step.src, step.run)
		if err != nil {
			log.Error("load failed", slog.String("table", string(step.kind)), slog.String("path", step.src.Path), slog.Any("error", err))
			reportProgress(onProgress, "error", err.Error(), map[string]string{"table": string(step.kind)})
			c.metrics.ObserveFailure(time.Since(start))
			return nil, errors.Wrapf(err, "load %s", step.kind)
		}

		log.Info("table loaded",
			slog.String("table", string(step.kind)),
			slog.String("file", res.File),
			slog.String("sheet", res.Sheet),
			slog.Int("rows", res.Rows),
			slog.Int("records", res.Records),
			slog.Int("overwritten", res.Overwritten),
			slog.Duration("elapsed", res.Duration),
		)
		log.Debug("header snapshot", slog.String("table", string(step.kind)), slog.Any("headers", res.Headers))

		report.Tables = append(report.Tables, *res)
		reportProgress(onProgress, "table_done", fmt.Sprintf("%s: %d 条记录", step.kind, res.Records), res)
	}

	reportProgress(onProgress, "analyze", "正在分析学生进度", nil)
	result := &Result{
		RunID:       runID,
		Dataset:     ds,
		Progress:    analyzer.Analyze(ds),
		Diagnostics: progress.Diagnose(ds),
		Report:      report,
	}
	c.logDiagnostics(log, result.Diagnostics)

	report.Duration = time.Since(start)
	c.metrics.ObserveSuccess(report.Duration, ds, result.Progress)
	log.Info("run complete",
		slog.Int("students", len(result.Progress.Students)),
		slog.Float64("passing_score", analyzer.PassingScore()),
		slog.Duration("elapsed", report.Duration),
	)
	reportProgress(onProgress, "done", "完成", report)

	return result, nil
}

func (c *Coordinator) logDiagnostics(log *slog.Logger, d progress.Diagnostics) {
	if len(d.OrphanMajors) > 0 {
		log.Warn("subjects without students of matching major", slog.Any("majors", d.OrphanMajors))
	}
	if len(d.EmptyCurricula) > 0 {
		log.Warn("students without subjects of matching major", slog.Int("count", len(d.EmptyCurricula)))
	}
	if d.UnknownScoreStudent > 0 || d.UnknownScoreSubject > 0 {
		log.Info("score rows outside roster or catalog",
			slog.Int("unknown_student", d.UnknownScoreStudent),
			slog.Int("unknown_subject", d.UnknownScoreSubject),
		)
	}
}

// loadTable 打开工作簿并执行单张表的解析
func loadTable(src parser.Source, run func(f *excelize.File, src parser.Source) (*parser.ParseResult, error)) (*parser.ParseResult, error) {
	f, err := parser.OpenWorkbook(src.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return run(f, src)
}

func reportProgress(fn func(ProgressEvent), typ, message string, data interface{}) {
	if fn == nil {
		return
	}
	fn(ProgressEvent{
		Type:      typ,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}
