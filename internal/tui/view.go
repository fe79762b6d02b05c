package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()
	contentWidth := max(10, m.width)

	// Header
	header := titleStyle.Render(" parcoords ─ parallel coordinates ")
	if m.selPath != "" {
		header += dimStyle.Render("  " + m.selPath)
	}
	header = lipgloss.NewStyle().Width(contentWidth).MaxHeight(headerHeight).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Height(l.contentH).Render(m.l.View())
	}

	main := m.renderPlot(l)
	if l.panelH > 0 {
		main = lipgloss.JoinVertical(lipgloss.Left, main, m.renderPanel(l))
	}
	main = lipgloss.NewStyle().Width(l.mainW).Height(l.contentH).MaxHeight(l.contentH).Render(main)

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
	} else {
		body = main
	}

	footer := lipgloss.NewStyle().Width(contentWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.renderStatus(contentWidth), m.renderHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).MaxHeight(m.height).Render(ui)
}

// renderPanel fills the rows under the plot.
func (m Model) renderPanel(l plotLayout) string {
	switch {
	case m.pasteMode:
		m.ta.SetWidth(max(10, l.mainW-2))
		m.ta.SetHeight(max(1, min(l.panelH-1, 12)))
		return m.ta.View()
	case m.showAttrs:
		m.tbl.SetWidth(max(10, l.mainW-4))
		m.tbl.SetHeight(max(1, l.panelH-3))
		return boxStyle.Width(l.mainW - 2).Render(m.tbl.View())
	}
	return ""
}

// renderStatus is the first footer row: the status message on the left,
// render progress and counts on the right.
func (m Model) renderStatus(width int) string {
	s := m.s
	all := len(s.data.All().Get())
	sel := len(s.data.Selected().Get())
	rendered := len(s.data.Rendered().Get())

	ratio := 1.0
	if sel > 0 {
		ratio = float64(rendered) / float64(sel)
	}
	m.bar.Width = 16
	right := lipgloss.JoinHorizontal(lipgloss.Center,
		dimStyle.Render(fmt.Sprintf(" %d/%d ", rendered, sel)),
		m.bar.ViewAs(ratio),
		dimStyle.Render(fmt.Sprintf("  selected %d of %d  selection #%d  color: %s ",
			sel, all, s.plot.SelectionID(), orNone(s.colorby.Get()))),
	)
	left := dimStyle.Render(" " + truncate(m.status, max(0, width-lipgloss.Width(right)-2)) + " ")
	spacer := strings.Repeat(" ", max(0, width-lipgloss.Width(left)-lipgloss.Width(right)))
	return left + spacer + right
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag label move",
		"click label invert",
		"drag axis brush",
		"right-click menu",
		"c clear",
		"r restore",
		"[ ] height",
		"Tab files",
		"p paste",
		"a table",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
