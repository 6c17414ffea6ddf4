package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strokedash/internal/model"
)

func TestBuildOverview_ExcludesQuartersWithoutMetricRow(t *testing.T) {
	t.Parallel()

	tables := []*model.RawTable{
		rawTable(q(model.JanMar, 2015),
			[]string{"ISDN", "A", "B"},
			[]string{"SSNAP score", "62", "58"},
		),
		// 缺少指标行：整季度排除
		rawTable(q(model.OctDec, 2014),
			[]string{"ISDN", "A", "B"},
			[]string{"SSNAP level", "C", "D"},
		),
		// 旧命名 + 实体 B 缺失值：保留该行，单元格缺失
		rawTable(q(model.JulSep, 2014),
			[]string{"ISDN", "A SCN", "B SCN"},
			[]string{"SSNAP score", "55", "."},
		),
	}

	ov, skipped := BuildOverview(tables, model.LevelISDN, "SSNAP score")
	require.NotNil(t, ov)

	assert.Equal(t, []model.Quarter{q(model.OctDec, 2014)}, skipped)
	assert.Equal(t, []model.Quarter{q(model.JulSep, 2014), q(model.JanMar, 2015)}, ov.Quarters)
	assert.Equal(t, []string{"A", "B"}, ov.Entities)
	assert.Equal(t, [][]model.Value{
		{model.Numeric(55), model.Missing()},
		{model.Numeric(62), model.Numeric(58)},
	}, ov.Cells)
}

func TestBuildOverview_EntityAbsentInQuarterStaysMissing(t *testing.T) {
	t.Parallel()

	tables := []*model.RawTable{
		rawTable(q(model.JulSep, 2013), []string{"Team", "X"}, []string{"SSNAP score", "40"}),
		rawTable(q(model.OctDec, 2013), []string{"Team", "Y"}, []string{"SSNAP score", "45"}),
		rawTable(q(model.JanMar, 2014), []string{"Team", "X"}, []string{"SSNAP score", "50"}),
	}

	ov, skipped := BuildOverview(tables, model.LevelTeam, "")
	assert.Empty(t, skipped)
	assert.Equal(t, DefaultMetric, ov.Metric)
	assert.Equal(t, []string{"X", "Y"}, ov.Entities)

	// 不跨季度填充
	assert.True(t, ov.Value(q(model.OctDec, 2013), "X").IsMissing())
	assert.True(t, ov.Value(q(model.JanMar, 2014), "Y").IsMissing())
	assert.Equal(t, model.Numeric(50), ov.Value(q(model.JanMar, 2014), "X"))
}

func TestBuildOverview_NoTables(t *testing.T) {
	t.Parallel()

	ov, skipped := BuildOverview(nil, model.LevelTrust, "SSNAP score")
	assert.Empty(t, skipped)
	assert.Empty(t, ov.Quarters)
	assert.Empty(t, ov.Entities)
}

func TestDiscoverMetrics(t *testing.T) {
	t.Parallel()

	tables := []*model.RawTable{
		rawTable(q(model.JanMar, 2015),
			[]string{"ISDN", "A"},
			[]string{"SSNAP score", "1"},
			[]string{"Domain 2 Stroke unit", "B"},
		),
		rawTable(q(model.JulSep, 2014),
			[]string{"ISDN", "A"},
			[]string{"Trust", "T"},
			[]string{"SSNAP score", "1"},
			[]string{"Domain 1 Scanning", "A"},
		),
	}
	assert.Equal(t, []string{"SSNAP score", "Domain 1 Scanning", "Domain 2 Stroke unit"}, DiscoverMetrics(tables))
}
