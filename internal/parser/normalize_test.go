package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strokedash/internal/model"
)

var jul2013 = model.Quarter{Season: model.JulSep, Year: 2013}

func scoringSummaryRows() [][]string {
	return [][]string{
		{"SSNAP Scoring Summary", "", "", "", "", "RLH", "BAR", "KCH"},
		{},
		{"", "", "ISDN", "", "", "North London SCN", "North London SCN", "South SCN"},
		{"", "", "Trust", "", "", "Barts Trust", "Barts Trust", "Kings Trust"},
		{"", "", "Team", "", "", "Royal London HASU", "Barts HASU", "Kings HASU"},
		{"", "", "SSNAP score", "", "", "71.2", "bad", "65"},
		{"", "", "SSNAP level", "", "", "B", "", "C"},
		{"Note: provisional", "", "", "", "", "", "", ""},
		{"Domain 1", "", "Scanning", "", "", "A", "B", "C"},
		{"", "", "Thrombolysis", "", "", "90", "80"},
		{"Domain 2\n", "x", " Stroke  unit ", "y", "z", "D", "E", "A"},
	}
}

func TestNormalize_MergesLabelsAndDropsPlaceholders(t *testing.T) {
	t.Parallel()

	table, err := Normalize(jul2013, scoringSummaryRows())
	require.NoError(t, err)

	assert.Equal(t, jul2013, table.Quarter)
	assert.Equal(t, []string{"SSNAP Scoring Summary", "RLH", "BAR", "KCH"}, table.Header)
	assert.Equal(t, 3, table.Width())

	want := []model.RawRow{
		{Label: "ISDN", Cells: []string{"North London SCN", "North London SCN", "South SCN"}},
		{Label: "Trust", Cells: []string{"Barts Trust", "Barts Trust", "Kings Trust"}},
		{Label: "Team", Cells: []string{"Royal London HASU", "Barts HASU", "Kings HASU"}},
		{Label: "SSNAP score", Cells: []string{"71.2", "bad", "65"}},
		{Label: "SSNAP level", Cells: []string{"B", "", "C"}},
		{Label: "Domain 1 Scanning", Cells: []string{"A", "B", "C"}},
		{Label: "Domain 1 Thrombolysis", Cells: []string{"90", "80", ""}},
		{Label: "Domain 2 Stroke unit", Cells: []string{"D", "E", "A"}},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	a, err := Normalize(jul2013, scoringSummaryRows())
	require.NoError(t, err)
	b, err := Normalize(jul2013, scoringSummaryRows())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNormalize_LeadingBlankRowsSkipped(t *testing.T) {
	t.Parallel()

	rows := append([][]string{{}, {"", "  "}}, scoringSummaryRows()...)
	table, err := Normalize(jul2013, rows)
	require.NoError(t, err)
	assert.Equal(t, "SSNAP Scoring Summary", table.Header[0])
	assert.Equal(t, "ISDN", table.Rows[0].Label)
}

func TestNormalize_PlaceholderHeaderMustBeBlank(t *testing.T) {
	t.Parallel()

	rows := scoringSummaryRows()
	rows[0][3] = "Region"
	_, err := Normalize(jul2013, rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedLayout))
}

func TestNormalize_StructureAbsent(t *testing.T) {
	t.Parallel()

	_, err := Normalize(jul2013, nil)
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = Normalize(jul2013, [][]string{{"a", "b", "c"}, {"x", "", "y"}})
	assert.ErrorIs(t, err, ErrUnexpectedLayout)

	_, err = Normalize(jul2013, [][]string{{"title", "", "", "", "", "A"}, {"only", "", "", "", "", "1"}})
	assert.ErrorIs(t, err, ErrEmptySheet)
}
