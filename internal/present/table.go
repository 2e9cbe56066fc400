package present

import (
	"bytes"
	"fmt"

	"github.com/danielolaszy/jit/internal/render"
	"github.com/danielolaszy/jit/pkg/models"
)

const (
	// SummaryMaxWidth caps the Summary column, in characters.
	SummaryMaxWidth = 58
	// KeyColumnMinWidth keeps keys of different lengths in a stable column.
	KeyColumnMinWidth = 20
)

const noTickets = "No tickets found in the current sprint."

// SprintTable prints the sprint banner and a Key/Summary/Status table.
func (p *Presenter) SprintTable(issues []models.Issue) error {
	var buf bytes.Buffer

	if len(issues) == 0 {
		fmt.Fprintln(&buf, noTickets)
		return p.flush(&buf)
	}

	fmt.Fprintf(&buf, "Current Sprint: %s\n", SprintName(issues))
	fmt.Fprintln(&buf)

	table := render.NewTable("Key", "Summary", "Status")
	table.MinWidths = []int{KeyColumnMinWidth}
	for _, issue := range issues {
		table.AddRow(
			render.Plain(issue.Key),
			render.Plain(render.Truncate(issue.Summary, SummaryMaxWidth)),
			render.Status(orDefault(issue.Status, Unknown)),
		)
	}

	out, err := table.Render()
	if err != nil {
		return err
	}
	buf.WriteString(out)

	return p.flush(&buf)
}
