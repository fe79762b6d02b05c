package tui

import (
	table "github.com/charmbracelet/bubbles/table"
)

// maxTableRows bounds the selected-rows table; the footer has the counts.
const maxTableRows = 500

// refreshAttrs rebuilds the table from the current selection.
func (m *Model) refreshAttrs() {
	m.s.selDirty = false
	cols := m.s.plot.Order()
	if len(cols) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 6})
	const maxColW = 16
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(maxColW, len(c)+2)})
	}
	sel := m.s.data.Selected().Get()
	n := min(len(sel), maxTableRows)
	trows := make([]table.Row, 0, n)
	for _, r := range sel[:n] {
		row := make(table.Row, 0, len(tcols))
		row = append(row, r.UID)
		for _, c := range cols {
			row = append(row, r.Get(c).String())
		}
		trows = append(trows, row)
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}
