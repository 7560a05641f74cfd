package display

import (
	"strings"
	"unicode/utf8"
)

// Table renders an aligned text table with optional row styles.
type Table struct {
	headers []string
	rows    [][]string
	styles  map[int]func(string) string // row index -> style
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		styles:  make(map[int]func(string) string),
	}
}

// AddRow appends a row of values. Missing cells render empty.
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Highlight renders row idx (0-based) with style, e.g. Accent or Urgent.
func (t *Table) Highlight(idx int, style func(string) string) {
	t.styles[idx] = style
}

// Render produces the formatted table string with leading indent.
// Widths count runes, so Arabic names and degree signs align.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder

	sb.WriteString("  " + Bold(formatRow(t.headers, widths)) + "\n")

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim("  "+strings.Join(sep, "  ")) + "\n")

	for i, row := range t.rows {
		line := formatRow(row, widths)
		if style, ok := t.styles[i]; ok {
			line = style(line)
		}
		sb.WriteString("  " + line + "\n")
	}

	return sb.String()
}

// formatRow pads each cell to its column width. The last column is not
// padded.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i < len(widths)-1 {
			cell += strings.Repeat(" ", w-utf8.RuneCountInString(cell))
		}
		parts[i] = cell
	}
	return strings.Join(parts, "  ")
}
