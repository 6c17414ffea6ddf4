package aggregate

import "strokedash/internal/model"

func q(season model.Season, year int) model.Quarter {
	return model.Quarter{Season: season, Year: year}
}

// rawTable 构造测试用原始表：rows 的首元素为标签
func rawTable(quarter model.Quarter, rows ...[]string) *model.RawTable {
	width := 0
	for _, r := range rows {
		if len(r)-1 > width {
			width = len(r) - 1
		}
	}
	t := &model.RawTable{Quarter: quarter, Header: make([]string, width+1)}
	for _, r := range rows {
		cells := make([]string, width)
		copy(cells, r[1:])
		t.Rows = append(t.Rows, model.RawRow{Label: r[0], Cells: cells})
	}
	return t
}
