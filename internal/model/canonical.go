package model

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// integralFloat 形如 "101.0" / "101.00" 的整数浮点写法（数值单元格转文本时出现）
var integralFloat = regexp.MustCompile(`^([+-]?\d+)\.0+$`)

// CanonicalKey 统一口径的键值（学号、课程代码、专业代码）
// 两个来源的键在比较或入库前都必须经过该函数，避免数字/文本混用导致关联失败
func CanonicalKey(raw string) string {
	key := strings.TrimSpace(norm.NFKC.String(raw))
	key = ASCIIDigits(key)
	if m := integralFloat.FindStringSubmatch(key); m != nil {
		key = m[1]
	}
	return key
}

// ASCIIDigits 将波斯/阿拉伯-印度数字替换为 ASCII 数字
func ASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		}
		return r
	}, s)
}
