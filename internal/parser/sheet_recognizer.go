package parser

import (
	"strings"
)

// SheetRecognizer 在工作簿中定位目标 Sheet
type SheetRecognizer struct {
	target string
}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer(target string) *SheetRecognizer {
	if target == "" {
		target = DefaultSheetName
	}
	return &SheetRecognizer{target: target}
}

// Recognize 从 Sheet 列表中挑选置信度最高的目标 Sheet
func (r *SheetRecognizer) Recognize(sheetNames []string) SheetRecognitionResult {
	best := SheetRecognitionResult{}
	for _, name := range sheetNames {
		res := r.score(name)
		if res.Confidence > best.Confidence {
			best = res
		}
	}
	return best
}

func (r *SheetRecognizer) score(name string) SheetRecognitionResult {
	// 完全一致
	if name == r.target {
		return SheetRecognitionResult{SheetName: name, Confidence: 1}
	}

	// 忽略大小写与空白
	normalized := NormalizeSheetName(name)
	want := NormalizeSheetName(r.target)
	if normalized == want {
		return SheetRecognitionResult{SheetName: name, Confidence: 0.8}
	}

	// 关键词全部命中（如 "Scoring Summary (Q3)"）
	keywords := strings.Fields(strings.ToLower(r.target))
	hit := 0
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			hit++
		}
	}
	if len(keywords) > 0 && hit == len(keywords) {
		return SheetRecognitionResult{SheetName: name, Confidence: 0.5}
	}

	return SheetRecognitionResult{SheetName: name, Confidence: 0}
}
