package tui

// plotLayout places the plot in the window, in cells. The axis labels sit
// above the plot and the panel (table, paste box or summary) below it.
type plotLayout struct {
	contentH int
	originX  int
	mainW    int
	labelTop int
	plotTop  int
	plotRows int
	panelTop int
	panelH   int
}

func (m Model) layout() plotLayout {
	var l plotLayout
	l.contentH = max(4, m.height-headerHeight-footerHeight)
	if m.showSidebar {
		l.originX = sidebarWidth + 1
	}
	l.mainW = max(10, m.width-l.originX)
	l.labelTop = headerHeight
	l.plotTop = l.labelTop + labelRows
	l.plotRows = clamp(m.plotRows, minPlotRow, max(minPlotRow, l.contentH-labelRows))
	l.panelTop = l.plotTop + l.plotRows
	l.panelH = max(0, l.contentH-labelRows-l.plotRows)
	return l
}

func (l plotLayout) inLabels(cx, cy int) bool {
	return cx >= l.originX && cx < l.originX+l.mainW && cy >= l.labelTop && cy < l.plotTop
}

func (l plotLayout) inPlot(cx, cy int) bool {
	return cx >= l.originX && cx < l.originX+l.mainW && cy >= l.plotTop && cy < l.panelTop
}

// toPlot converts a cell to plot pixels, taking the middle of the cell.
// Braille cells are 2 dots wide and 4 tall.
func (l plotLayout) toPlot(cx, cy int) (x, y float64) {
	return float64(cx-l.originX)*2 + 1, float64(cy-l.plotTop)*4 + 2
}
