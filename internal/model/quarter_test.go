package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarters_StrictlyIncreasingAndComplete(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	qs := Quarters(now)

	require.NotEmpty(t, qs)
	assert.Equal(t, FirstQuarter, qs[0])
	assert.Equal(t, Quarter{Season: OctDec, Year: 2026}, qs[len(qs)-1])

	// 2013 两个季度 + 2014..2025 每年四个 + 2026 四个
	assert.Len(t, qs, 2+12*4+4)

	seen := map[Quarter]bool{}
	for i, q := range qs {
		assert.False(t, seen[q], "duplicate quarter %s", q)
		seen[q] = true
		if i > 0 {
			assert.True(t, qs[i-1].Before(q), "%s should precede %s", qs[i-1], q)
			assert.True(t, qs[i-1].Date().Before(q.Date()))
		}
	}
}

func TestQuarters_BoundaryMonths(t *testing.T) {
	t.Parallel()

	qs := Quarters(time.Date(2013, time.July, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []Quarter{FirstQuarter}, qs)

	qs = Quarters(time.Date(2014, time.March, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, []Quarter{
		{Season: JulSep, Year: 2013},
		{Season: OctDec, Year: 2013},
		{Season: JanMar, Year: 2014},
	}, qs)

	assert.Empty(t, Quarters(time.Date(2013, time.June, 30, 0, 0, 0, 0, time.UTC)))
}

func TestQuarters_Restartable(t *testing.T) {
	t.Parallel()

	now := time.Date(2020, time.May, 2, 0, 0, 0, 0, time.UTC)
	first := Quarters(now)
	first[0] = Quarter{}
	assert.Equal(t, FirstQuarter, Quarters(now)[0])
}

func TestQuarter_StringDateAndParse(t *testing.T) {
	t.Parallel()

	q := Quarter{Season: JulSep, Year: 2013}
	assert.Equal(t, "JulSep2013", q.String())
	assert.Equal(t, time.Date(2013, time.July, 1, 0, 0, 0, 0, time.UTC), q.Date())
	assert.Equal(t, time.October, OctDec.StartMonth())

	parsed, err := ParseQuarter("OctDec2019")
	require.NoError(t, err)
	assert.Equal(t, Quarter{Season: OctDec, Year: 2019}, parsed)

	for _, bad := range []string{"", "Q32013", "JulSep13", "FooBar2013", "JulSepABCD"} {
		_, err := ParseQuarter(bad)
		assert.Error(t, err, bad)
	}
}

func TestSortQuarters(t *testing.T) {
	t.Parallel()

	qs := []Quarter{
		{Season: JanMar, Year: 2015},
		{Season: OctDec, Year: 2014},
		{Season: AprJun, Year: 2015},
	}
	SortQuarters(qs)
	assert.Equal(t, []Quarter{
		{Season: OctDec, Year: 2014},
		{Season: JanMar, Year: 2015},
		{Season: AprJun, Year: 2015},
	}, qs)
}
