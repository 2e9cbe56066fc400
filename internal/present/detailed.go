package present

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/danielolaszy/jit/internal/adf"
	"github.com/danielolaszy/jit/internal/logging"
	"github.com/danielolaszy/jit/internal/render"
	"github.com/danielolaszy/jit/pkg/models"
	"github.com/fatih/color"
)

const (
	labelWidth = 12
	valueWidth = 18
)

const (
	noDescription      = "No description provided."
	unreadableDocument = "Cannot display description."
)

type gridField struct {
	label string
	value render.Cell
}

// Detailed prints a header, a label/value grid, and the description.
func (p *Presenter) Detailed(issue *models.Issue) error {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, render.Bold("TICKET DETAILS"))
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%s: %s\n", render.Bold(issue.Key), render.Bold(issue.Summary))
	fmt.Fprintln(&buf)

	sprint := NotInSprint
	if s, ok := issue.ActiveSprint(); ok {
		sprint = s.Name
	}

	rows := [][]gridField{
		{
			{"Type:", render.Plain(orDefault(issue.Type, NotSet))},
			{"Priority:", render.Plain(orDefault(issue.Priority, NotSet))},
		},
		{
			{"Status:", render.Status(orDefault(issue.Status, NotSet))},
			{"Sprint:", render.Plain(sprint)},
		},
		{
			{"Assignee:", render.Plain(orDefault(issue.Assignee, Unassigned))},
			{"Reporter:", render.Plain(orDefault(issue.Reporter, Unknown))},
		},
		{
			{"Created:", render.Plain(FormatDate(issue.Created))},
			{"Updated:", render.Plain(FormatDate(issue.Updated))},
		},
		{
			{"Due Date:", render.Plain(FormatDate(issue.DueDate))},
		},
	}
	for _, row := range rows {
		writeGridRow(&buf, row)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, render.Bold("DESCRIPTION"))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, description(issue))

	return p.flush(&buf)
}

// writeGridRow pads by visible width so colored values keep the columns
// aligned.
func writeGridRow(buf *bytes.Buffer, fields []gridField) {
	parts := make([]string, 0, len(fields)*2)
	for _, f := range fields {
		parts = append(parts, render.Bold(f.label).Pad(labelWidth), f.value.Pad(valueWidth))
	}
	buf.WriteString(strings.Join(parts, " "))
	buf.WriteByte('\n')
}

// description prefers extracted plain text, then a dump of the raw value.
func description(issue *models.Issue) string {
	if !issue.HasDescription() {
		return noDescription
	}

	text, err := adf.ExtractPlainText(issue.Description)
	if err != nil {
		logging.Warn("could not extract description text", "key", issue.Key, "error", err)
		text = ""
	}
	if text != "" {
		return text
	}

	return dumpRaw(issue.RawDescription)
}

func dumpRaw(raw json.RawMessage) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		logging.Debug("description is not valid JSON", "error", err)
		return unreadableDocument
	}

	if color.NoColor {
		return pretty.String()
	}

	var highlighted strings.Builder
	if err := quick.Highlight(&highlighted, pretty.String(), "json", "terminal256", "monokai"); err != nil {
		return pretty.String()
	}
	return strings.TrimRight(highlighted.String(), "\n")
}
