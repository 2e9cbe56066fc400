package render

import (
	"testing"

	"github.com/fatih/color"
)

// forceColor enables escape sequences for the duration of the test, even
// though test output is not a terminal.
func forceColor(t *testing.T) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = false
	t.Cleanup(func() {
		color.NoColor = previous
	})
}
