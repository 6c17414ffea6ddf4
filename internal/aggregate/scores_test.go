package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strokedash/internal/model"
)

func TestExtractScores_CoercesNonNumericToMissing(t *testing.T) {
	t.Parallel()

	table := rawTable(q(model.JulSep, 2013),
		[]string{"ISDN", "A SCN", "B SCN"},
		[]string{"SSNAP score", "71.2", "bad"},
	)

	scores, err := ExtractScores(table, model.LevelISDN, "SSNAP score")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, scores.Names)
	assert.Equal(t, map[string]model.Value{
		"A": model.Numeric(71.2),
		"B": model.Missing(),
	}, scores.ByName)
}

func TestExtractScores_DefaultMetricAndDuplicatesLastWins(t *testing.T) {
	t.Parallel()

	table := rawTable(q(model.JanMar, 2020),
		[]string{"Trust", "T1", "T2", "T1"},
		[]string{"SSNAP score", "60", "70", "80"},
	)

	scores, err := ExtractScores(table, model.LevelTrust, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, scores.Names)
	assert.Equal(t, model.Numeric(80), scores.ByName["T1"])
}

func TestExtractScores_GradeIsMissing(t *testing.T) {
	t.Parallel()

	table := rawTable(q(model.JanMar, 2020),
		[]string{"Team", "X"},
		[]string{"SSNAP level", "B"},
	)
	scores, err := ExtractScores(table, model.LevelTeam, "SSNAP level")
	require.NoError(t, err)
	assert.True(t, scores.ByName["X"].IsMissing())
}

func TestExtractScores_MissingRowsAreDistinctFailures(t *testing.T) {
	t.Parallel()

	table := rawTable(q(model.AprJun, 2016),
		[]string{"ISDN", "A"},
		[]string{"SSNAP score", "50"},
	)

	_, err := ExtractScores(table, model.LevelTeam, DefaultMetric)
	assert.ErrorIs(t, err, ErrRowNotFound)

	_, err = ExtractScores(table, model.LevelISDN, "Domain 9")
	assert.ErrorIs(t, err, ErrRowNotFound)
}
