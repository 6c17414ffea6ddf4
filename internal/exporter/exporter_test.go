package exporter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"strokedash/internal/model"
)

func overview(level model.Level, metric string) *model.OverviewTable {
	return &model.OverviewTable{
		Level:  level,
		Metric: metric,
		Quarters: []model.Quarter{
			{Season: model.JulSep, Year: 2013},
			{Season: model.OctDec, Year: 2013},
		},
		Entities: []string{"North", "South"},
		Cells: [][]model.Value{
			{model.Numeric(61.5), model.Missing()},
			{model.Numeric(70), model.Numeric(55.25)},
		},
	}
}

func TestWriteOverviewWorkbook_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "overview.xlsx")

	var stages []string
	e := NewExporter(func(ev ProgressEvent) { stages = append(stages, ev.Stage) })
	require.NoError(t, e.Write(path, []*model.OverviewTable{
		overview(model.LevelTeam, "SSNAP score"),
		overview(model.LevelTrust, "SSNAP score"),
	}))
	assert.Equal(t, []string{"Team-SSNAP score", "Trust-SSNAP score", "完成"}, stages)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{"Team-SSNAP score", "Trust-SSNAP score"}, f.GetSheetList())

	rows, err := f.GetRows("Team-SSNAP score")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Quarter", "North", "South"}, rows[0])
	assert.Equal(t, []string{"2013-07-01", "61.5"}, rows[1])
	assert.Equal(t, []string{"2013-10-01", "70", "55.25"}, rows[2])
}

func TestWriteOverviewWorkbook_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overview.xlsx")
	require.NoError(t, WriteOverviewWorkbook(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	assert.Equal(t, []string{"Overview"}, f.GetSheetList())
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "ISDN-Door to needle (mins)", SheetName(model.LevelISDN, "Door to needle (mins)"))
	assert.Equal(t, "Team-a b c", SheetName(model.LevelTeam, "a/b?c"))

	long := SheetName(model.LevelTrust, strings.Repeat("x", 40))
	assert.Len(t, []rune(long), maxSheetNameLen)

	used := map[string]bool{}
	first := uniqueSheetName(long, used)
	second := uniqueSheetName(long, used)
	assert.Equal(t, long, first)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(second, " (2)"))
	assert.Len(t, []rune(second), maxSheetNameLen)
}
