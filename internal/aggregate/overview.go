package aggregate

import (
	"errors"
	"sort"

	"strokedash/internal/model"
)

// BuildOverview 汇总所有季度的某 (层级, 指标) 得分为时间序列总表
// 缺行的季度被跳过并在第二个返回值中列出；实体在某季度缺失时单元格保持缺失，不跨季度填充
func BuildOverview(tables []*model.RawTable, level model.Level, metric string) (*model.OverviewTable, []model.Quarter) {
	if metric == "" {
		metric = DefaultMetric
	}

	sorted := sortedTables(tables)

	type quarterScores struct {
		quarter model.Quarter
		scores  *Scores
	}
	var (
		valid    []quarterScores
		skipped  []model.Quarter
		entities []string
		seen     = map[string]bool{}
	)
	for _, t := range sorted {
		scores, err := ExtractScores(t, level, metric)
		if err != nil {
			if errors.Is(err, ErrRowNotFound) {
				skipped = append(skipped, t.Quarter)
			}
			continue
		}
		valid = append(valid, quarterScores{quarter: t.Quarter, scores: scores})
		for _, name := range scores.Names {
			if !seen[name] {
				seen[name] = true
				entities = append(entities, name)
			}
		}
	}

	ov := &model.OverviewTable{
		Level:    level,
		Metric:   metric,
		Quarters: make([]model.Quarter, 0, len(valid)),
		Entities: entities,
		Cells:    make([][]model.Value, 0, len(valid)),
	}
	for _, qs := range valid {
		row := make([]model.Value, len(entities))
		for j, name := range entities {
			if v, ok := qs.scores.ByName[name]; ok {
				row[j] = v
			}
		}
		ov.Quarters = append(ov.Quarters, qs.quarter)
		ov.Cells = append(ov.Cells, row)
	}
	return ov, skipped
}

// sortedTables 按报告期日期升序返回副本
func sortedTables(tables []*model.RawTable) []*model.RawTable {
	out := make([]*model.RawTable, 0, len(tables))
	for _, t := range tables {
		if t != nil {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Quarter.Date().Before(out[j].Quarter.Date())
	})
	return out
}
