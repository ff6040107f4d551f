package view

import (
	"strings"

	"portalctl/internal/color"

	"github.com/mattn/go-runewidth"
)

// column is one table column with a display width in cells.
type column struct {
	title string
	width int
}

// cell truncates or pads s to exactly width terminal cells.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// fitColumns shrinks the widest columns until the row fits into total cells.
func fitColumns(cols []column, total int) []column {
	out := append([]column(nil), cols...)
	sep := len(out) - 1
	for {
		sum := sep
		widest := 0
		for i, c := range out {
			sum += c.width
			if c.width > out[widest].width {
				widest = i
			}
		}
		if sum <= total || out[widest].width <= 4 {
			return out
		}
		out[widest].width--
	}
}

// renderTable renders a header row and rows, highlighting the selected row.
func renderTable(cols []column, rows [][]string, selected, width int) string {
	cols = fitColumns(cols, width)

	var b strings.Builder
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = cell(c.title, c.width)
	}
	b.WriteString(color.TableHeaderStyle.Render(strings.Join(header, " ")))

	if len(rows) == 0 {
		b.WriteString("\n" + color.MutedStyle.Render("(none)"))
		return b.String()
	}
	for r, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			cells[i] = cell(v, c.width)
		}
		line := strings.Join(cells, " ")
		if r == selected {
			line = color.SelectedRowStyle.Render(line)
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}
