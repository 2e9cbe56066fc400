package render

import (
	"strings"

	"github.com/fatih/color"
)

type statusRule struct {
	keywords []string
	style    *color.Color
}

// statusRules is checked in order; the first rule with a keyword contained in
// the lower-cased label wins.
var statusRules = []statusRule{
	{keywords: []string{"done", "complete", "resolved"}, style: color.New(color.FgHiGreen, color.Bold)},
	{keywords: []string{"progress", "implement", "testing"}, style: color.New(color.FgHiYellow, color.Bold)},
	{keywords: []string{"review"}, style: color.New(color.FgYellow, color.Bold)},
	{keywords: []string{"todo", "open"}, style: color.New(color.FgHiBlue)},
	{keywords: []string{"backlog"}, style: color.New(color.FgBlue)},
	{keywords: []string{"selected"}, style: color.New(color.FgCyan)},
	{keywords: []string{"block", "impediment"}, style: color.New(color.FgHiRed, color.Bold)},
	{keywords: []string{"cancel", "won't", "wont"}, style: color.New(color.FgRed, color.Bold)},
}

var defaultStatusStyle = color.New(color.FgWhite)

// StatusStyle returns the style for a workflow status label.
func StatusStyle(label string) *color.Color {
	lower := strings.ToLower(label)
	for _, rule := range statusRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.style
			}
		}
	}
	return defaultStatusStyle
}

// Status colorizes a status label. The cell's width is that of the label.
func Status(label string) Cell {
	return Styled(label, StatusStyle(label))
}
