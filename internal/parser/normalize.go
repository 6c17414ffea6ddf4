package parser

import (
	"fmt"
	"strings"

	"strokedash/internal/model"
)

// Normalize 将评分汇总 Sheet 的原始行转换为标准化原始表
//
// 步骤：
//  1. 首个非空行作为表头，其余行按最大宽度补齐
//  2. 子标签列为空的行视为结构性冗余行，丢弃
//  3. 丢弃占位列（表头必须为空，否则视为结构异常）
//  4. 主标签向下填充，仍为空时用单个空格代替，与子标签拼接为唯一标签列
func Normalize(q model.Quarter, rows [][]string) (*model.RawTable, error) {
	start := 0
	for start < len(rows) && isEmptyRow(rows[start]) {
		start++
	}
	if start >= len(rows) {
		return nil, ErrEmptySheet
	}

	width := 0
	for _, row := range rows[start:] {
		if len(row) > width {
			width = len(row)
		}
	}
	// 至少需要：主标签、占位、子标签、两个占位、一个实体列
	if width < 6 {
		return nil, fmt.Errorf("%w: only %d columns", ErrUnexpectedLayout, width)
	}

	header := padRow(rows[start], width)
	for _, idx := range placeholderColumns {
		if !IsBlank(header[idx]) {
			return nil, fmt.Errorf("%w: column %d has header %q, expected placeholder", ErrUnexpectedLayout, idx, header[idx])
		}
	}

	entityColumns := entityColumnIndexes(width)

	table := &model.RawTable{
		Quarter: q,
		Header:  make([]string, 0, len(entityColumns)+1),
	}
	table.Header = append(table.Header, strings.TrimSpace(header[labelColumn]))
	for _, idx := range entityColumns {
		table.Header = append(table.Header, strings.TrimSpace(header[idx]))
	}

	primary := ""
	for _, raw := range rows[start+1:] {
		row := padRow(raw, width)
		if IsBlank(row[subLabelColumn]) {
			continue
		}

		// 主标签向下填充
		if p := NormalizeLabel(row[labelColumn]); p != "" {
			primary = p
		}
		lead := primary
		if lead == "" {
			lead = " "
		}

		cells := make([]string, len(entityColumns))
		for i, idx := range entityColumns {
			cells[i] = strings.TrimSpace(row[idx])
		}
		table.Rows = append(table.Rows, model.RawRow{
			Label: strings.TrimSpace(lead + " " + NormalizeLabel(row[subLabelColumn])),
			Cells: cells,
		})
	}

	if len(table.Rows) == 0 {
		return nil, ErrEmptySheet
	}
	return table, nil
}

// entityColumnIndexes 实体列在源表中的索引（除标签列与占位列外的全部列）
func entityColumnIndexes(width int) []int {
	skip := map[int]bool{labelColumn: true, subLabelColumn: true}
	for _, idx := range placeholderColumns {
		skip[idx] = true
	}
	out := make([]int, 0, width)
	for i := 0; i < width; i++ {
		if !skip[i] {
			out = append(out, i)
		}
	}
	return out
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if !IsBlank(c) {
			return false
		}
	}
	return true
}

// ParseWorkbook 读取 xlsx 字节流并标准化
func ParseWorkbook(q model.Quarter, data []byte, sheetName string) (*model.RawTable, error) {
	rows, err := ReadSheet(data, sheetName)
	if err != nil {
		return nil, err
	}
	table, err := Normalize(q, rows)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", q, err)
	}
	return table, nil
}
