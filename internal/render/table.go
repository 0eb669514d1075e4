package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dmartins/dbchat/internal/format"
	"github.com/dmartins/dbchat/internal/models"
)

// maxTableRows caps how many rows are rendered inline; the header still
// reports the full count.
const maxTableRows = 50

// ResultTable renders a result set as a bordered table. Column order is
// the first row's key order; headers are upper-cased with underscores
// replaced by spaces, matching the web UI.
func ResultTable(rs *models.ResultSet, width int) string {
	if rs.Empty() {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	if width > 0 {
		t.SetAllowedRowLength(width)
	}

	header := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = strings.ToUpper(strings.ReplaceAll(col, "_", " "))
	}
	t.AppendHeader(header)

	rows := rs.Rows
	truncated := false
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
		truncated = true
	}

	for _, r := range rows {
		row := make(table.Row, len(rs.Columns))
		for i, col := range rs.Columns {
			row[i] = format.Cell(r[col])
		}
		t.AppendRow(row)
	}

	label := fmt.Sprintf("Results (%d rows)", rs.Len())
	if truncated {
		label += fmt.Sprintf(", showing first %d", maxTableRows)
	}

	return label + "\n" + t.Render()
}
