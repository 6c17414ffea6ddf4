package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeNames_LegacySuffixRemovedFromAll(t *testing.T) {
	t.Parallel()

	got := SanitizeNames([]string{"North ISDN SCN", "South SCN"})
	assert.Equal(t, []string{"North ISDN", "South"}, got)
}

func TestSanitizeNames_AllOrNothing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"North ISDN", "South"}, SanitizeNames([]string{"North ISDN", "South"}))
	assert.Equal(t, []string{"North ISDN", "South"}, SanitizeNames([]string{" North ISDN ", "South\t"}))

	// 混合命名：有一个带 SCN 即全部处理
	assert.Equal(t, []string{"East", "West"}, SanitizeNames([]string{"East", "West SCN"}))
}

func TestSanitizeNames_NonSuffixVariantsStayDistinct(t *testing.T) {
	t.Parallel()

	got := SanitizeNames([]string{"Hospital Trust", "Hospitals Trust"})
	assert.NotEqual(t, got[0], got[1])
}

func TestSanitizeNames_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, SanitizeNames(nil))
}
