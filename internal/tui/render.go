package tui

import (
	"strings"

	"parcoords/internal/canvas"
)

// renderPlot draws the label rows and the plot area: the braille surfaces
// composed at their opacity, then axes, brushes, ticks and the menu on top.
func (m Model) renderPlot(l plotLayout) string {
	p := m.s.plot
	labels := canvas.Compose(l.mainW, labelRows, plotBg)
	g := canvas.Compose(l.mainW, l.plotRows, plotBg,
		canvas.Layer{Surface: m.s.fg, Opacity: p.ForegroundOpacity()},
		canvas.Layer{Surface: m.s.hl, Opacity: 1},
	)
	drag := p.Drag()
	pending := p.PendingRemoval()
	nTicks := max(2, l.plotRows/3)

	for i, dim := range p.Order() {
		x := clamp(int(p.Position(dim)/2), 0, l.mainW-1)
		ext, active := p.Extent(dim)
		dragged := drag.Active && drag.Dim == dim

		for y := 0; y < l.plotRows; y++ {
			g.Put(x, y, canvas.GridCell{Rune: '│', Color: axisColor})
		}
		if active {
			c := brushColor
			if dragged && pending {
				c = removeColor
			}
			for y := int(ext.Lo / 4); y <= int(ext.Hi/4) && y < l.plotRows; y++ {
				g.Put(x, y, canvas.GridCell{Rune: '┃', Color: c, Bold: true})
			}
		}
		if sc, ok := p.Scale(dim); ok && !dragged {
			for _, tk := range sc.Ticks(nTicks) {
				if active && !ext.Contains(tk.Y) {
					continue
				}
				y := clamp(int(tk.Y/4), 0, l.plotRows-1)
				g.Put(x, y, canvas.GridCell{Rune: '├', Color: axisColor})
				g.Text(x+1, y, truncate(tk.Label, 8), canvas.GridCell{Color: axisColor})
			}
		}

		name := truncate(dim, 16)
		w := len([]rune(name))
		lx := clamp(x-w/2, 0, max(0, l.mainW-w))
		style := canvas.GridCell{Color: labelColor, Bold: active}
		if sc, ok := p.Scale(dim); ok && sc.Inverted {
			style.Underline = true
		}
		switch {
		case dragged && pending:
			style.Color = removeColor
		case dragged:
			style.Color = brushColor
		}
		labels.Text(lx, i%labelRows, name, style)
	}

	out := canvas.Stack(labels, g)
	m.s.menu.draw(out)
	return strings.Join(out.Lines(), "\n")
}
