// Package present turns fetched issues into the views jit prints: brief,
// JSON, one-line text, detailed, and the active-sprint table.
package present

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danielolaszy/jit/pkg/models"
)

// Mode selects the single-issue view.
type Mode int

const (
	ModeBrief Mode = iota
	ModeJSON
	ModeText
	ModeDetailed
)

func (m Mode) String() string {
	switch m {
	case ModeBrief:
		return "brief"
	case ModeJSON:
		return "json"
	case ModeText:
		return "text"
	case ModeDetailed:
		return "detailed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Placeholders for fields Jira did not return.
const (
	NotSet        = "Not set"
	Unassigned    = "Unassigned"
	Unknown       = "Unknown"
	NotInSprint   = "Not in sprint"
	UnknownSprint = "Unknown Sprint"
)

// Presenter writes views to out. Each view is assembled in memory and written
// in one call, so a failed render prints nothing.
type Presenter struct {
	out io.Writer
}

// New returns a Presenter writing to out.
func New(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Issue renders issue in the given mode.
func (p *Presenter) Issue(mode Mode, issue *models.Issue) error {
	switch mode {
	case ModeBrief:
		return p.Brief(issue)
	case ModeJSON:
		return p.JSON(issue)
	case ModeText:
		return p.Text(issue)
	case ModeDetailed:
		return p.Detailed(issue)
	default:
		return fmt.Errorf("unknown output mode %v", mode)
	}
}

// Brief prints the key and summary on two aligned lines.
func (p *Presenter) Brief(issue *models.Issue) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Ticket:   %s\n", issue.Key)
	fmt.Fprintf(&buf, "Summary:  %s\n", issue.Summary)
	return p.flush(&buf)
}

// jsonView is the stable shape scripts consume; add nothing to it.
type jsonView struct {
	Ticket  string `json:"ticket"`
	Summary string `json:"summary"`
}

// JSON prints {"ticket": ..., "summary": ...} on one line.
func (p *Presenter) JSON(issue *models.Issue) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(jsonView{Ticket: issue.Key, Summary: issue.Summary}); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return p.flush(&buf)
}

// Text prints "KEY: Summary".
func (p *Presenter) Text(issue *models.Issue) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s\n", issue.Key, issue.Summary)
	return p.flush(&buf)
}

func (p *Presenter) flush(buf *bytes.Buffer) error {
	if _, err := p.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// FormatDate keeps the date part of a Jira date-time ("2024-03-01T10:15:00.000+0000"
// becomes "2024-03-01"). Values without a 'T' are returned unchanged.
func FormatDate(value string) string {
	if value == "" {
		return NotSet
	}
	if i := strings.IndexByte(value, 'T'); i >= 0 {
		return value[:i]
	}
	return value
}

// SprintName returns the sprint shown above the sprint table: the first
// issue's active sprint, else its first sprint.
func SprintName(issues []models.Issue) string {
	if len(issues) == 0 {
		return UnknownSprint
	}
	if sprint, ok := issues[0].CurrentSprint(); ok {
		return sprint.Name
	}
	return UnknownSprint
}

func orDefault(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
