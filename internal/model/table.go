package model

import "strings"

// RawRow 标准化原始表的一行：合并后的行标签 + 各实体列取值
type RawRow struct {
	Label string
	Cells []string
}

// RawTable 单季度标准化原始表
// 首列为行标签（指标名或层级标签行），其余列为最细粒度实体，顺序同源表
type RawTable struct {
	Quarter Quarter
	Header  []string // Header[0] 为标签列表头
	Rows    []RawRow
}

// Width 实体列数
func (t *RawTable) Width() int {
	if len(t.Header) == 0 {
		return 0
	}
	return len(t.Header) - 1
}

// Row 按标签查找行（取第一处匹配）
func (t *RawTable) Row(label string) (RawRow, bool) {
	for _, r := range t.Rows {
		if strings.TrimSpace(r.Label) == label {
			return r, true
		}
	}
	return RawRow{}, false
}

// LevelNames 层级标签行上的原始实体名
func (t *RawTable) LevelNames(level Level) ([]string, bool) {
	r, ok := t.Row(level.Label())
	if !ok {
		return nil, false
	}
	return r.Cells, true
}

// OverviewTable 某 (层级, 指标) 的时间序列总表
// Cells[i][j] 为 Quarters[i] 下 Entities[j] 的得分
type OverviewTable struct {
	Level    Level     `json:"level"`
	Metric   string    `json:"metric"`
	Quarters []Quarter `json:"quarters"`
	Entities []string  `json:"entities"`
	Cells    [][]Value `json:"cells"`
}

// Value 取单元格，不存在时返回缺失
func (o *OverviewTable) Value(q Quarter, entity string) Value {
	qi, ei := -1, -1
	for i, x := range o.Quarters {
		if x == q {
			qi = i
			break
		}
	}
	for j, e := range o.Entities {
		if e == entity {
			ei = j
			break
		}
	}
	if qi < 0 || ei < 0 || ei >= len(o.Cells[qi]) {
		return Missing()
	}
	return o.Cells[qi][ei]
}

// SeriesTable 单实体跨指标时间序列
// Cells[i][j] 为 Metrics[i] 在 Quarters[j] 的取值
type SeriesTable struct {
	Level    Level     `json:"level"`
	Entity   string    `json:"entity"`
	Quarters []Quarter `json:"quarters"`
	Metrics  []string  `json:"metrics"`
	Cells    [][]Value `json:"cells"`
}
