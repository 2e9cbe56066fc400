// Package render produces terminal display text: styled cells that remember
// their visible width, status colors, and bordered tables.
package render

import (
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "..."

// Cell is display text paired with the width it occupies on screen. Width is
// measured on the text before styling, since escape sequences take no columns.
type Cell struct {
	Text  string
	Width int
}

// Plain builds an unstyled cell.
func Plain(s string) Cell {
	return Cell{Text: s, Width: VisibleWidth(s)}
}

// Styled applies c to s. A nil style yields a plain cell.
func Styled(s string, c *color.Color) Cell {
	if c == nil {
		return Plain(s)
	}
	return Cell{Text: c.Sprint(s), Width: VisibleWidth(s)}
}

// Bold is shorthand for a bold plain cell.
func Bold(s string) Cell {
	return Styled(s, color.New(color.Bold))
}

// VisibleWidth returns the number of terminal columns s occupies. s must not
// contain escape sequences.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Pad returns the cell text followed by enough spaces to fill width columns.
// Cells already at least width wide are returned as is.
func (c Cell) Pad(width int) string {
	if c.Width >= width {
		return c.Text
	}
	return c.Text + strings.Repeat(" ", width-c.Width)
}

// String returns the styled text.
func (c Cell) String() string {
	return c.Text
}

// Truncate shortens s to max characters, replacing the tail with Ellipsis.
// It counts and cuts runes, so multi-byte characters are never split. The
// limit is in characters, not terminal columns: wide runes may occupy more.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	if max <= len(Ellipsis) {
		return string(runes[:max])
	}
	return string(runes[:max-len(Ellipsis)]) + Ellipsis
}
