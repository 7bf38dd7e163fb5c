package pretty

import (
	"strings"

	"github.com/samber/lo"
)

// Table formatting constants.
const (
	tableGap       = "  "
	heavySeparator = "="
	lightSeparator = "-"
)

// Table is a plain column layout with a styled header. Rows may be split
// into groups separated by a light rule.
type Table struct {
	styles  *Styles
	headers []string
	groups  [][][]string
}

// NewTable creates a table with the given column headers.
func NewTable(styles *Styles, headers ...string) *Table {
	return &Table{styles: styles, headers: headers}
}

// AddGroup appends a group of rows. Empty groups are ignored.
func (t *Table) AddGroup(rows ...[]string) {
	if len(rows) > 0 {
		t.groups = append(t.groups, rows)
	}
}

// String renders the table. Cells are padded before styling so ANSI codes
// do not disturb the alignment.
func (t *Table) String() string {
	widths := t.columnWidths()
	total := lo.Sum(widths) + len(tableGap)*(len(widths)-1)

	var builder strings.Builder

	builder.WriteString(t.styles.TableHeader.Render(t.formatRow(t.headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	for i, group := range t.groups {
		if i > 0 {
			builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	return builder.String()
}

func (t *Table) columnWidths() []int {
	widths := lo.Map(t.headers, func(h string, _ int) int { return len(h) })
	for _, group := range t.groups {
		for _, row := range group {
			for i, cell := range row {
				if i < len(widths) && len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}
	}
	return widths
}

func (t *Table) formatRow(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = padRight(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, tableGap), " ")
}

// padRight pads a string to the given width with spaces on the right.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
