package parser

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeLabel 规范化标签：压缩换行、制表符与连续空格，去除首尾空格
func NormalizeLabel(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// NormalizeSheetName 规范化 Sheet 名，用于宽松匹配
func NormalizeSheetName(name string) string {
	return strings.ToLower(whitespaceRe.ReplaceAllString(name, ""))
}

// IsBlank 单元格是否为空白
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// padRow 补齐到指定宽度
func padRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
