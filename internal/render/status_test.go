package render

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	testCases := []struct {
		label    string
		expected *color.Color
	}{
		{label: "Done", expected: statusRules[0].style},
		{label: "COMPLETED", expected: statusRules[0].style},
		{label: "Resolved", expected: statusRules[0].style},
		{label: "In Progress", expected: statusRules[1].style},
		{label: "Implementing", expected: statusRules[1].style},
		{label: "In Testing", expected: statusRules[1].style},
		{label: "Code Review", expected: statusRules[2].style},
		{label: "To Do", expected: defaultStatusStyle},
		{label: "TODO", expected: statusRules[3].style},
		{label: "Reopened", expected: statusRules[3].style},
		{label: "Backlog", expected: statusRules[4].style},
		{label: "Selected for Development", expected: statusRules[5].style},
		{label: "Blocked", expected: statusRules[6].style},
		{label: "Impediment", expected: statusRules[6].style},
		{label: "Cancelled", expected: statusRules[7].style},
		{label: "Won't Do", expected: statusRules[7].style},
		{label: "wont fix", expected: statusRules[7].style},
		{label: "Triage", expected: defaultStatusStyle},
		{label: "", expected: defaultStatusStyle},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			assert.Same(t, tc.expected, StatusStyle(tc.label))
		})
	}
}

func TestStatusFirstMatchWins(t *testing.T) {
	// Contains both "progress" and "review"; the earlier rule applies.
	assert.Same(t, statusRules[1].style, StatusStyle("Review in progress"))
	// "Done" outranks "blocked".
	assert.Same(t, statusRules[0].style, StatusStyle("Blocked - done"))
	// "implement" outranks "review".
	assert.Same(t, statusRules[1].style, StatusStyle("Implementation Review"))
}

func TestStatusCell(t *testing.T) {
	forceColor(t)

	cell := Status("In Progress")
	assert.Equal(t, len("In Progress"), cell.Width)
	assert.NotEqual(t, "In Progress", cell.Text)
	assert.Equal(t, "In Progress", ansi.Strip(cell.Text))
	assert.Equal(t, cell.Width, ansi.StringWidth(cell.Text))
}

func TestStatusCellWithoutColor(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	cell := Status("Blocked")
	assert.Equal(t, "Blocked", cell.Text)
	assert.Equal(t, 7, cell.Width)
}
