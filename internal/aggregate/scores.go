package aggregate

import (
	"errors"
	"fmt"

	"strokedash/internal/model"
)

// DefaultMetric 默认指标
const DefaultMetric = "SSNAP score"

// ErrRowNotFound 季度表中缺少层级行或指标行
var ErrRowNotFound = errors.New("row not found")

// Scores 单季度各实体得分
type Scores struct {
	Names  []string               // 规范化实体名，按列顺序去重
	ByName map[string]model.Value // 同名实体按列顺序后者覆盖前者
}

// ExtractScores 提取某季度某层级下各实体的指定指标得分
// 层级行或指标行缺失时返回 ErrRowNotFound，与单元格缺失（Missing）区分
func ExtractScores(table *model.RawTable, level model.Level, metric string) (*Scores, error) {
	if metric == "" {
		metric = DefaultMetric
	}

	rawNames, ok := table.LevelNames(level)
	if !ok {
		return nil, fmt.Errorf("%s: level row %q: %w", table.Quarter, level.Label(), ErrRowNotFound)
	}
	metricRow, ok := table.Row(metric)
	if !ok {
		return nil, fmt.Errorf("%s: metric row %q: %w", table.Quarter, metric, ErrRowNotFound)
	}

	names := SanitizeNames(rawNames)
	scores := &Scores{
		Names:  make([]string, 0, len(names)),
		ByName: make(map[string]model.Value, len(names)),
	}
	for i, name := range names {
		value := model.Missing()
		if i < len(metricRow.Cells) {
			value = model.ParseNumeric(metricRow.Cells[i])
		}
		if _, seen := scores.ByName[name]; !seen {
			scores.Names = append(scores.Names, name)
		}
		scores.ByName[name] = value
	}
	return scores, nil
}
