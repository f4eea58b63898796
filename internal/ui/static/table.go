// Package static renders non-interactive terminal output: the borderless
// tables used by list and wt list.
package static

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	noteStyle   = lipgloss.NewStyle().Faint(true).PaddingRight(2)
)

// RenderTable renders headers and rows without borders; lipgloss/table
// sizes the columns from the content. Returns "" for an empty row set so
// callers can print the result unconditionally. A trailing column headed
// "NOTES" is dimmed.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	notesCol := -1
	if len(headers) > 0 && headers[len(headers)-1] == "NOTES" {
		notesCol = len(headers) - 1
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == notesCol {
				return noteStyle
			}
			return cellStyle
		})

	return t.String() + "\n"
}
