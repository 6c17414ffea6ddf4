package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	cases := map[string]Value{
		"71.2":    Numeric(71.2),
		" 80 ":    Numeric(80),
		"1,234.5": Numeric(1234.5),
		"B":       Grade('B'),
		"e":       Grade('E'),
		"F":       Missing(),
		"":        Missing(),
		".":       Missing(),
		"bad":     Missing(),
		"NaN":     Missing(),
		"Inf":     Missing(),
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseValue(in), "input %q", in)
	}
}

func TestParseNumeric_GradeIsMissing(t *testing.T) {
	t.Parallel()

	assert.True(t, ParseNumeric("A").IsMissing())
	f, ok := ParseNumeric("63").Float()
	require.True(t, ok)
	assert.Equal(t, 63.0, f)
}

func TestValue_StringAndJSON(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "71.2", Numeric(71.2).String())
	assert.Equal(t, "C", Grade('C').String())
	assert.Equal(t, "", Missing().String())

	b, err := json.Marshal([]Value{Numeric(1.5), Grade('A'), Missing()})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, "A", null]`, string(b))
}

func TestLevel(t *testing.T) {
	t.Parallel()

	l, err := ParseLevel("trust")
	require.NoError(t, err)
	assert.Equal(t, LevelTrust, l)
	assert.Equal(t, "TRUST", l.Name())
	assert.Equal(t, "Trust", l.Label())

	_, err = ParseLevel("region")
	assert.Error(t, err)

	assert.True(t, IsLevelLabel("Team"))
	assert.False(t, IsLevelLabel("SSNAP score"))
}

func TestRawTable_RowLookupIsLabelKeyed(t *testing.T) {
	t.Parallel()

	tbl := &RawTable{
		Header: []string{"", "c1", "c2"},
		Rows: []RawRow{
			{Label: "Trust", Cells: []string{"T1", "T2"}},
			{Label: "ISDN", Cells: []string{"I1", "I1"}},
			{Label: "SSNAP score", Cells: []string{"70", "B"}},
		},
	}
	assert.Equal(t, 2, tbl.Width())

	names, ok := tbl.LevelNames(LevelISDN)
	require.True(t, ok)
	assert.Equal(t, []string{"I1", "I1"}, names)

	_, ok = tbl.LevelNames(LevelTeam)
	assert.False(t, ok)
}
