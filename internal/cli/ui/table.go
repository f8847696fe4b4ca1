// Package ui renders resolution results for the terminal: plan tables,
// diagnostic listings and step progress.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Table renders aligned columns for component and plan listings. Columns are
// left-aligned unless marked numeric via AlignRight.
type Table struct {
	writer     io.Writer
	headers    []string
	rows       [][]string
	rightAlign map[int]bool
	noColor    bool
}

// NewTable creates a table with the given column headers.
func NewTable(w io.Writer, headers []string, noColor bool) *Table {
	return &Table{
		writer:     w,
		headers:    headers,
		rightAlign: make(map[int]bool),
		noColor:    noColor,
	}
}

// AlignRight right-aligns the given column indexes, for numeric columns
// such as priorities.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.rightAlign[c] = true
	}
	return t
}

// AddRow appends one row. Rows shorter than the header are padded with
// empty cells; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render writes the table. A table without headers renders nothing.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}
	widths := t.columnWidths()

	headline := color.New(color.Bold, color.FgCyan)
	rule := color.New(color.FgHiBlack)
	if t.noColor {
		headline.DisableColor()
		rule.DisableColor()
	}

	t.writeRow(t.headers, widths, headline)

	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("─", w)
	}
	t.writeRow(dashes, widths, rule)

	for _, row := range t.rows {
		t.writeRow(row, widths, nil)
	}
}

// columnWidths sizes every column to its widest cell, headers included.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// writeRow prints one line of cells separated by two spaces, painted with
// paint when given. The trailing cell is never padded on the right.
func (t *Table) writeRow(cells []string, widths []int, paint *color.Color) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		switch {
		case t.rightAlign[i]:
			parts[i] = pad(cell, widths[i], false)
		case i == len(cells)-1:
			parts[i] = cell
		default:
			parts[i] = pad(cell, widths[i], true)
		}
	}
	line := strings.Join(parts, "  ")
	if paint != nil {
		paint.Fprintln(t.writer, line)
		return
	}
	fmt.Fprintln(t.writer, line)
}

// pad fills s with spaces up to width, on the right when left-aligned and
// on the left otherwise.
func pad(s string, width int, left bool) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if left {
		return s + fill
	}
	return fill + s
}

// KeyValueTable renders labelled values, one per line, with the labels
// padded to a shared width.
type KeyValueTable struct {
	writer  io.Writer
	labels  []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates an empty key-value table.
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow appends one label-value pair.
func (t *KeyValueTable) AddRow(label, value string) {
	t.labels = append(t.labels, label)
	t.values = append(t.values, value)
}

// Render writes the pairs as "label: value" lines.
func (t *KeyValueTable) Render() {
	width := 0
	for _, label := range t.labels {
		if len(label) > width {
			width = len(label)
		}
	}

	cyan := color.New(color.FgCyan)
	if t.noColor {
		cyan.DisableColor()
	}
	for i, label := range t.labels {
		cyan.Fprint(t.writer, pad(label+":", width+1, true))
		fmt.Fprintf(t.writer, " %s\n", t.values[i])
	}
}

// Header renders a styled section title with an underline.
func Header(w io.Writer, title string, noColor bool) {
	bold := color.New(color.Bold, color.FgCyan)
	rule := color.New(color.FgHiBlack)
	if noColor {
		bold.DisableColor()
		rule.DisableColor()
	}
	bold.Fprintln(w, title)
	rule.Fprintln(w, strings.Repeat("─", len(title)))
}
