package parser

import "errors"

var (
	// ErrSheetNotFound 工作簿中没有目标 Sheet
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrEmptySheet Sheet 没有可用数据行
	ErrEmptySheet = errors.New("empty sheet")
	// ErrUnexpectedLayout 列结构与预期不符
	ErrUnexpectedLayout = errors.New("unexpected sheet layout")
)

// DefaultSheetName 季度汇总报告中的评分汇总 Sheet
const DefaultSheetName = "Scoring Summary"

// SheetRecognitionResult Sheet 识别结果
type SheetRecognitionResult struct {
	SheetName  string  `json:"sheetName"`
	Confidence float64 `json:"confidence"` // 置信度 0-1
}

// 源表列布局：0 主标签，2 子标签，1/3/4 为占位列
const (
	labelColumn    = 0
	subLabelColumn = 2
)

var placeholderColumns = []int{1, 3, 4}
