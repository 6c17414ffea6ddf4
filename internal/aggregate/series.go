package aggregate

import (
	"errors"
	"fmt"

	"strokedash/internal/model"
)

// ErrEntityNotFound 实体在任何季度中都不存在，无法构建序列
var ErrEntityNotFound = errors.New("entity not found in any quarter")

// BuildEntitySeries 汇总单个实体在所有季度中的全部指标
// 每季度取该实体所在列（层级标签行以下），丢弃缺失单元格后按季度拼接；列按日期升序
func BuildEntitySeries(tables []*model.RawTable, level model.Level, entity string) (*model.SeriesTable, error) {
	type column struct {
		quarter model.Quarter
		values  map[string]model.Value
	}

	var (
		columns []column
		metrics []string
		seen    = map[string]bool{}
	)
	for _, t := range sortedTables(tables) {
		rawNames, ok := t.LevelNames(level)
		if !ok {
			continue
		}
		idx := indexOf(SanitizeNames(rawNames), entity)
		if idx < 0 {
			continue
		}

		col := column{quarter: t.Quarter, values: map[string]model.Value{}}
		for _, row := range t.Rows {
			if model.IsLevelLabel(row.Label) || idx >= len(row.Cells) {
				continue
			}
			v := model.ParseValue(row.Cells[idx])
			if v.IsMissing() {
				continue
			}
			// 同一季度内标签重复时保留第一处
			if _, dup := col.values[row.Label]; dup {
				continue
			}
			col.values[row.Label] = v
			if !seen[row.Label] {
				seen[row.Label] = true
				metrics = append(metrics, row.Label)
			}
		}
		columns = append(columns, col)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("%s %q: %w", level.Label(), entity, ErrEntityNotFound)
	}

	series := &model.SeriesTable{
		Level:    level,
		Entity:   entity,
		Quarters: make([]model.Quarter, len(columns)),
		Metrics:  metrics,
		Cells:    make([][]model.Value, len(metrics)),
	}
	for j, col := range columns {
		series.Quarters[j] = col.quarter
	}
	for i, metric := range metrics {
		row := make([]model.Value, len(columns))
		for j, col := range columns {
			row[j] = col.values[metric]
		}
		series.Cells[i] = row
	}
	return series, nil
}

func indexOf(names []string, target string) int {
	for i, name := range names {
		if name == target {
			return i
		}
	}
	return -1
}
