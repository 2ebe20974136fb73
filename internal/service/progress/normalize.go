package progress

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"gradepath/internal/model"
)

// ScoreSeparator 整数部分与小数部分之间的分隔符，如 "15/5" 表示 15.5
const ScoreSeparator = "/"

var (
	// ErrMultipleSeparators 成绩中出现多个 "/"
	ErrMultipleSeparators = errors.New("more than one score separator")
	// ErrNotNumeric 成绩不是整数或小数
	ErrNotNumeric = errors.New("not a number")
)

var (
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	wholePattern   = regexp.MustCompile(`^[+-]?\d+$`)
	digitsPattern  = regexp.MustCompile(`^\d+$`)
)

// ParseError 成绩无法解析
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse score %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseScore 将原始成绩解析为数值
// "a/b" 按文本拼接为 "a.b" 再解析（不是除法）："15/5" -> 15.5，"15/50" -> 15.50
func ParseScore(raw string) (float64, error) {
	token := model.ASCIIDigits(strings.TrimSpace(raw))

	switch strings.Count(token, ScoreSeparator) {
	case 0:
	case 1:
		whole, frac, _ := strings.Cut(token, ScoreSeparator)
		whole, frac = strings.TrimSpace(whole), strings.TrimSpace(frac)
		if !wholePattern.MatchString(whole) || !digitsPattern.MatchString(frac) {
			return 0, &ParseError{Raw: raw, Err: ErrNotNumeric}
		}
		token = whole + "." + frac
	default:
		return 0, &ParseError{Raw: raw, Err: ErrMultipleSeparators}
	}

	if !decimalPattern.MatchString(token) {
		return 0, &ParseError{Raw: raw, Err: ErrNotNumeric}
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &ParseError{Raw: raw, Err: errors.Wrap(ErrNotNumeric, err.Error())}
	}
	return v, nil
}

// Normalize 规范化成绩：空值为 Unscored，无法解析为 Invalid
func Normalize(raw string) model.Score {
	if strings.TrimSpace(raw) == "" {
		return model.Score{Kind: model.ScoreUnscored, Raw: raw}
	}
	v, err := ParseScore(raw)
	if err != nil {
		return model.Score{Kind: model.ScoreInvalid, Raw: raw, Err: err}
	}
	return model.Score{Kind: model.ScoreScored, Value: v, Raw: raw}
}

// Missing 未登记成绩
func Missing() model.Score {
	return model.Score{Kind: model.ScoreUnscored}
}
