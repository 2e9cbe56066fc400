package render

import (
	"fmt"
	"strings"
)

// CellPadding is added to the widest cell of every column: one leading space
// and at least one trailing space.
const CellPadding = 2

// Row is one line of a table.
type Row []Cell

// RenderError reports a table whose shape cannot be drawn.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return "cannot render table: " + e.Reason
}

type border struct {
	left, middle, right string
}

var (
	topBorder       = border{"┌", "┬", "┐"}
	separatorBorder = border{"├", "┼", "┤"}
	bottomBorder    = border{"└", "┴", "┘"}
)

const (
	horizontal = "─"
	vertical   = "│"
)

// Table is a bordered, left-aligned grid. MinWidths optionally sets a floor
// for the leading columns and may be shorter than the header.
type Table struct {
	Header    Row
	Rows      []Row
	MinWidths []int
}

// NewTable creates a table with plain header cells.
func NewTable(header ...string) *Table {
	t := &Table{}
	for _, h := range header {
		t.Header = append(t.Header, Plain(h))
	}
	return t
}

// AddRow appends a data row.
func (t *Table) AddRow(cells ...Cell) {
	t.Rows = append(t.Rows, Row(cells))
}

func (t *Table) validate() error {
	columns := len(t.Header)
	if columns == 0 {
		return &RenderError{Reason: "table has no columns"}
	}
	if len(t.MinWidths) > columns {
		return &RenderError{Reason: fmt.Sprintf("%d minimum widths given for %d columns", len(t.MinWidths), columns)}
	}
	for i, w := range t.MinWidths {
		if w < 0 {
			return &RenderError{Reason: fmt.Sprintf("negative minimum width %d for column %d", w, i)}
		}
	}
	for i, row := range t.Rows {
		if len(row) != columns {
			return &RenderError{Reason: fmt.Sprintf("row %d has %d cells, expected %d", i, len(row), columns)}
		}
	}
	return nil
}

// ColumnWidths computes the width of every column from all rows, header
// included, before anything is drawn.
func (t *Table) ColumnWidths() ([]int, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	widths := make([]int, len(t.Header))
	copy(widths, t.MinWidths)

	for _, row := range t.allRows() {
		for i, cell := range row {
			if w := cell.Width + CellPadding; w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths, nil
}

func (t *Table) allRows() []Row {
	rows := make([]Row, 0, len(t.Rows)+1)
	rows = append(rows, t.Header)
	return append(rows, t.Rows...)
}

// Render draws the table. Every line, borders included, has the same visible
// width regardless of styling inside the cells.
func (t *Table) Render() (string, error) {
	widths, err := t.ColumnWidths()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeBorder(&b, topBorder, widths)

	rows := t.allRows()
	for i, row := range rows {
		b.WriteString(vertical)
		for col, cell := range row {
			b.WriteString(" ")
			b.WriteString(cell.Pad(widths[col] - 1))
			b.WriteString(vertical)
		}
		b.WriteString("\n")

		if i < len(rows)-1 {
			writeBorder(&b, separatorBorder, widths)
		}
	}

	writeBorder(&b, bottomBorder, widths)
	return b.String(), nil
}

func writeBorder(b *strings.Builder, edge border, widths []int) {
	b.WriteString(edge.left)
	for i, w := range widths {
		b.WriteString(strings.Repeat(horizontal, w))
		if i < len(widths)-1 {
			b.WriteString(edge.middle)
		}
	}
	b.WriteString(edge.right)
	b.WriteString("\n")
}

// RenderTable draws header and rows with the given minimum column widths.
func RenderTable(header Row, rows []Row, minWidths []int) (string, error) {
	t := &Table{Header: header, Rows: rows, MinWidths: minWidths}
	return t.Render()
}
