package config

import (
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"gradepath/internal/parser"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "GRADEPATH"

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
	Layout   LayoutConfig   `toml:"layout"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`

	// BaseDir 相对路径的基准目录（配置文件所在目录，无配置文件时为工作目录）
	BaseDir string `toml:"-"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port" validate:"min=1,max=65535"`
	DevMode bool `toml:"dev_mode"`
}

// InputConfig 单个输入文件
type InputConfig struct {
	File       string `toml:"file" validate:"required"`
	Sheet      string `toml:"sheet"` // 为空时读取活动工作表
	HeaderRows int    `toml:"header_rows" validate:"gte=0"`
}

// DataConfig 数据配置
type DataConfig struct {
	Dir      string      `toml:"dir"`
	Subjects InputConfig `toml:"subjects"`
	Students InputConfig `toml:"students"`
	Scores   InputConfig `toml:"scores"`
}

// BusinessConfig 业务配置
type BusinessConfig struct {
	PassingScore float64 `toml:"passing_score" validate:"gte=0"`
}

// SubjectColumns 课程表列偏移（0-based）
type SubjectColumns struct {
	Code         int `toml:"code" validate:"gte=0"`
	Name         int `toml:"name" validate:"gte=0"`
	TermRequired int `toml:"term_required" validate:"gte=0"`
	MajorCode    int `toml:"major_code" validate:"gte=0"`
}

// StudentColumns 学生表列偏移（0-based）
type StudentColumns struct {
	ID         int    `toml:"id" validate:"gte=0"`
	LastName   int    `toml:"last_name" validate:"gte=0"`
	FirstName  int    `toml:"first_name" validate:"gte=0"`
	MajorParts [3]int `toml:"major_parts" validate:"dive,gte=0"`
	MajorName  int    `toml:"major_name" validate:"gte=0"`
}

// ScoreColumns 成绩表列偏移（0-based）
type ScoreColumns struct {
	StudentID        int    `toml:"student_id" validate:"gte=0"`
	Subject          int    `toml:"subject" validate:"gte=0"`
	Score            int    `toml:"score" validate:"gte=0"`
	SubjectSeparator string `toml:"subject_separator"`
}

// LayoutConfig 三张表的列布局
type LayoutConfig struct {
	Subjects SubjectColumns `toml:"subjects"`
	Students StudentColumns `toml:"students"`
	Scores   ScoreColumns   `toml:"scores"`
}

// UIConfig 页面展示配置
type UIConfig struct {
	Title     string       `toml:"title"`
	Lang      string       `toml:"lang"`
	Direction string       `toml:"direction" validate:"oneof=rtl ltr"`
	Font      FontConfig   `toml:"font"`
	Labels    LabelsConfig `toml:"labels"`
}

// FontConfig 页面字体
type FontConfig struct {
	Family string `toml:"family"`
	URL    string `toml:"url"`
}

// LabelsConfig 页面与报表文案
type LabelsConfig struct {
	Heading       string `toml:"heading"`
	SelectStudent string `toml:"select_student"`
	Student       string `toml:"student"`
	MajorCode     string `toml:"major_code"`
	MajorName     string `toml:"major_name"`
	NoSelection   string `toml:"no_selection"`
	Status        string `toml:"status"`
	Term          string `toml:"term"`
	SubjectName   string `toml:"subject_name"`
	SubjectCode   string `toml:"subject_code"`
	Score         string `toml:"score"`
	Passed        string `toml:"passed"`
	NotPassed     string `toml:"not_passed"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string // 实际读取的配置文件，未找到时为空
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			Dir:      "data",
			Subjects: InputConfig{File: "Subjects.xlsx", HeaderRows: 1},
			Students: InputConfig{File: "Students.xlsx", HeaderRows: 1},
			Scores:   InputConfig{File: "Scores.xlsx", HeaderRows: 1},
		},
		Business: BusinessConfig{
			PassingScore: 12,
		},
		Layout: defaultLayout(),
		UI: UIConfig{
			Title:     "Nakhchivan pnu",
			Lang:      "fa",
			Direction: "rtl",
			Font: FontConfig{
				Family: "vazirmatn",
				URL:    "static/vazirmatn/fonts/ttf/Vazirmatn-Regular.woff2",
			},
			Labels: LabelsConfig{
				Heading:       "پیشرفت تحصیلی دانشجو",
				SelectStudent: "شماره دانشجویی",
				Student:       "دانشجو",
				MajorCode:     "کد رشته",
				MajorName:     "نام رشته",
				NoSelection:   "Please select a student to view their progress.",
				Status:        "وضعیت",
				Term:          "ترم",
				SubjectName:   "نام درس",
				SubjectCode:   "کد",
				Score:         "نمره",
				Passed:        "✔",
				NotPassed:     "✘",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		BaseDir: ".",
	}
}

func defaultLayout() LayoutConfig {
	s := parser.DefaultSubjectLayout()
	st := parser.DefaultStudentLayout()
	sc := parser.DefaultScoreLayout()
	return LayoutConfig{
		Subjects: SubjectColumns{Code: s.Code, Name: s.Name, TermRequired: s.TermRequired, MajorCode: s.MajorCode},
		Students: StudentColumns{ID: st.ID, LastName: st.LastName, FirstName: st.FirstName, MajorParts: st.MajorParts, MajorName: st.MajorName},
		Scores:   ScoreColumns{StudentID: sc.StudentID, Subject: sc.Subject, Score: sc.Score, SubjectSeparator: sc.SubjectSeparator},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 默认配置文件：可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 加载配置并返回元信息
// 顺序：默认值 -> config.toml -> .env / 环境变量 -> 校验
// path 为空时使用 DefaultConfigPath；文件不存在时沿用默认值
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.Path = path
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, errors.Wrapf(err, "parse %s", path)
		}
		config.BaseDir = filepath.Dir(path)
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, errors.Wrapf(err, "read %s", path)
	}

	if err := loadDotEnv(); err != nil {
		return nil, info, err
	}
	if err := applyEnv(config, &info); err != nil {
		return nil, info, err
	}
	if err := Validate(config); err != nil {
		return nil, info, err
	}

	return config, info, nil
}

// LoadConfig 加载默认位置的配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo("")
	return config, err
}

// SaveConfig 保存配置到指定路径
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return os.WriteFile(path, data, 0644)
}

// loadDotEnv 读取工作目录下的 .env（不存在时忽略，不覆盖已有环境变量）
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return errors.Wrap(err, "load .env")
	}
	return nil
}

// envOverlay 可由环境变量覆盖的配置项，例如 GRADEPATH_PASSING_SCORE
type envOverlay struct {
	Port         int     `envconfig:"PORT"`
	DevMode      bool    `envconfig:"DEV_MODE"`
	DataDir      string  `envconfig:"DATA_DIR"`
	SubjectsFile string  `envconfig:"SUBJECTS_FILE"`
	StudentsFile string  `envconfig:"STUDENTS_FILE"`
	ScoresFile   string  `envconfig:"SCORES_FILE"`
	PassingScore float64 `envconfig:"PASSING_SCORE"`
	LogLevel     string  `envconfig:"LOG_LEVEL"`
	LogFormat    string  `envconfig:"LOG_FORMAT"`
}

func applyEnv(config *AppConfig, info *LoadConfigInfo) error {
	overlay := envOverlay{
		Port:         config.Server.Port,
		DevMode:      config.Server.DevMode,
		DataDir:      config.Data.Dir,
		SubjectsFile: config.Data.Subjects.File,
		StudentsFile: config.Data.Students.File,
		ScoresFile:   config.Data.Scores.File,
		PassingScore: config.Business.PassingScore,
		LogLevel:     config.Log.Level,
		LogFormat:    config.Log.Format,
	}
	if err := envconfig.Process(EnvPrefix, &overlay); err != nil {
		return errors.Wrap(err, "read environment")
	}

	if overlay.Port != config.Server.Port {
		info.PortSpecified = true
	}
	config.Server.Port = overlay.Port
	config.Server.DevMode = overlay.DevMode
	config.Data.Dir = overlay.DataDir
	config.Data.Subjects.File = overlay.SubjectsFile
	config.Data.Students.File = overlay.StudentsFile
	config.Data.Scores.File = overlay.ScoresFile
	config.Business.PassingScore = overlay.PassingScore
	config.Log.Level = overlay.LogLevel
	config.Log.Format = overlay.LogFormat
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate 校验配置
func Validate(config *AppConfig) error {
	if err := validate.Struct(config); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if ps := config.Business.PassingScore; math.IsNaN(ps) || math.IsInf(ps, 0) {
		return errors.Errorf("invalid config: passing_score must be finite, got %v", ps)
	}
	return nil
}

// ResolvePath 解析输入文件路径：绝对路径原样返回，否则相对于 BaseDir/Data.Dir
func (c *AppConfig) ResolvePath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	dir := c.Data.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.BaseDir, dir)
	}
	return filepath.Join(dir, file)
}

// Sources 三个输入文件的位置
func (c *AppConfig) Sources() (subjects, students, scores parser.Source) {
	src := func(in InputConfig) parser.Source {
		return parser.Source{Path: c.ResolvePath(in.File), Sheet: in.Sheet, HeaderRows: in.HeaderRows}
	}
	return src(c.Data.Subjects), src(c.Data.Students), src(c.Data.Scores)
}

// SubjectLayout 课程表布局
func (c *AppConfig) SubjectLayout() parser.SubjectLayout {
	l := c.Layout.Subjects
	return parser.SubjectLayout{Code: l.Code, Name: l.Name, TermRequired: l.TermRequired, MajorCode: l.MajorCode}
}

// StudentLayout 学生表布局
func (c *AppConfig) StudentLayout() parser.StudentLayout {
	l := c.Layout.Students
	return parser.StudentLayout{ID: l.ID, LastName: l.LastName, FirstName: l.FirstName, MajorParts: l.MajorParts, MajorName: l.MajorName}
}

// ScoreLayout 成绩表布局
func (c *AppConfig) ScoreLayout() parser.ScoreLayout {
	l := c.Layout.Scores
	return parser.ScoreLayout{StudentID: l.StudentID, Subject: l.Subject, Score: l.Score, SubjectSeparator: l.SubjectSeparator}
}
