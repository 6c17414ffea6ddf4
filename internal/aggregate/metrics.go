package aggregate

import "strokedash/internal/model"

// DiscoverMetrics 列出所有季度出现过的指标行标签（排除层级标签行），按首次出现顺序
func DiscoverMetrics(tables []*model.RawTable) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range sortedTables(tables) {
		for _, row := range t.Rows {
			if row.Label == "" || model.IsLevelLabel(row.Label) || seen[row.Label] {
				continue
			}
			seen[row.Label] = true
			out = append(out, row.Label)
		}
	}
	return out
}
