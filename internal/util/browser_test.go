package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowserCommands(t *testing.T) {
	t.Parallel()

	url := "http://localhost:20261/api/status"
	assert.Equal(t, [][]string{{"open", url}}, browserCommands("darwin", url))

	win := browserCommands("windows", url)
	assert.Equal(t, "rundll32", win[0][0])
	assert.Equal(t, url, win[0][len(win[0])-1])

	for _, args := range browserCommands("linux", url) {
		assert.Equal(t, url, args[len(args)-1])
	}
}
