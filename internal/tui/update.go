package tui

import (
	"fmt"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"parcoords/internal/frame"
	"parcoords/internal/logging"
	"parcoords/internal/observe"
	"parcoords/internal/parallel"
)

// renderStepMsg asks for the next batch of a render generation.
type renderStepMsg struct{ gen uint64 }

// brushFireMsg and resizeFireMsg end a debounce window.
type brushFireMsg struct{ token uint64 }
type resizeFireMsg struct{ token uint64 }

const (
	// axisHitTol is how far from an axis, in dots, a press still grabs it.
	axisHitTol = 4
	hoverTol   = 4
	hoverLimit = 10
	minPlotRow = 2
)

func renderStep(gen uint64) tea.Cmd {
	return func() tea.Msg { return renderStepMsg{gen} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.handle(msg)
	if m.showAttrs && m.s.selDirty {
		m.refreshAttrs()
	}
	return m, tea.Batch(cmd, m.scheduleRender())
}

// scheduleRender yields the first batch of a render generation that has
// not been scheduled yet. Later batches are chained from renderStepMsg.
func (m *Model) scheduleRender() tea.Cmd {
	gen := m.s.plot.Generation()
	if gen == m.renderGen || !m.s.plot.Pending(gen) {
		return nil
	}
	m.renderGen = gen
	return renderStep(gen)
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case renderStepMsg:
		if m.s.plot.Step(msg.gen) {
			return renderStep(msg.gen)
		}
		return nil
	case brushFireMsg:
		if m.s.brushDeb.Fire(msg.token) {
			m.s.plot.Recompute()
		}
		return nil
	case resizeFireMsg:
		if m.s.resizeDeb.Fire(msg.token) {
			m.applySize()
		}
		return nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
		// the first size is applied at once so there is something to show
		if m.s.plot.Width() == 0 {
			m.applySize()
			return nil
		}
		tok := m.s.resizeDeb.Trigger()
		return tea.Tick(m.s.resizeDeb.Delay(), func(time.Time) tea.Msg { return resizeFireMsg{tok} })
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return cmd
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			m.status = "view mode"
			return nil
		case "enter":
			m.applyPaste()
			return nil
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return cmd
	}
	if menu := m.s.menu; menu.visible {
		switch msg.String() {
		case "up", "k":
			menu.move(-1)
		case "down", "j":
			menu.move(1)
		case "enter":
			menu.activate(menu.cursor)
		case "esc":
			menu.Hide()
		case "ctrl+c", "q":
			m.Close()
			return tea.Quit
		}
		return nil
	}
	switch msg.String() {
	case "ctrl+c", "q":
		m.Close()
		return tea.Quit
	case "esc":
		m.brush = brushing{}
	case "c":
		m.s.brushDeb.Cancel()
		m.s.plot.ClearAll()
		m.s.plot.Recompute()
		m.status = "brushes cleared"
	case "r":
		m.restoreAxes()
	case "[":
		m.plotRows = max(minPlotRow, m.layout().plotRows-2)
		m.applySize()
		m.status = fmt.Sprintf("plot height: %d rows", m.layout().plotRows)
	case "]":
		m.plotRows = m.layout().plotRows + 2
		m.applySize()
		m.status = fmt.Sprintf("plot height: %d rows", m.layout().plotRows)
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
		m.applySize()
	case "p":
		m.pasteMode = !m.pasteMode
		if m.pasteMode {
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		} else {
			m.status = "view mode"
			m.ta.Blur()
		}
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
			return nil
		}
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return cmd
	}
	if m.showAttrs {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return cmd
	}
	return nil
}

// restoreAxes brings back every removed axis, to the right of the visible
// ones.
func (m *Model) restoreAxes() {
	n := len(m.s.plot.Order())
	restored := 0
	for _, name := range m.s.reg.Names() {
		if d, ok := m.s.reg.Get(name); ok && d.ParallelOrder < 0 {
			d.SetOrder(n + restored)
			restored++
		}
	}
	if restored == 0 {
		m.status = "no removed axes"
		return
	}
	m.s.data.All().Append(nil)
	m.status = fmt.Sprintf("restored %d axes", restored)
}

// applyPaste appends the pasted CSV rows to the dataset.
func (m *Model) applyPaste() {
	text := strings.TrimSpace(m.ta.Value())
	if text == "" {
		m.status = "paste: empty"
		return
	}
	f, err := frame.ParseCSV(strings.NewReader(text))
	if err != nil {
		m.status = "paste error: " + err.Error()
		return
	}
	// pasted rows are numbered after the loaded ones
	for i := range f.Rows {
		f.Rows[i].UID = ""
	}
	rows := m.s.frame.Append(f.Rows)
	m.s.reg.SetColumns(m.s.frame.Columns)
	m.s.data.Get(observe.ExperimentAll).Append(rows)
	m.s.data.All().Append(rows)
	m.ensureColorBy()
	m.pasteMode = false
	m.ta.Blur()
	m.status = fmt.Sprintf("appended %d rows", len(rows))
	logging.Infof("tui: pasted %d rows", len(rows))
	if m.showAttrs {
		m.refreshAttrs()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	l := m.layout()
	gx, gy := msg.X-l.originX, msg.Y-l.labelTop
	plot := m.s.plot

	if menu := m.s.menu; menu.visible {
		i := menu.itemAt(gx, gy)
		switch msg.Action {
		case tea.MouseActionPress:
			if i < 0 || !menu.activate(i) {
				menu.Hide()
			}
		case tea.MouseActionMotion:
			if i >= 0 && !menu.items[i].header && !menu.items[i].disabled {
				menu.cursor = i
			}
		}
		return nil
	}

	px, py := l.toPlot(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonRight && l.inLabels(msg.X, msg.Y) {
			if dim, ok := plot.AxisAt(px, axisHitTol); ok {
				plot.ShowMenu(float64(gx), float64(gy), dim)
			}
			return nil
		}
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		switch {
		case l.inLabels(msg.X, msg.Y):
			if dim, ok := plot.AxisAt(px, axisHitTol); ok && plot.PointerDown(dim) {
				m.dragLastX = msg.X
			}
		case l.inPlot(msg.X, msg.Y):
			if dim, ok := plot.AxisAt(px, axisHitTol); ok {
				m.brush = brushing{active: true, dim: dim, startY: py}
			}
		}
	case tea.MouseActionMotion:
		if plot.Drag().Active {
			if dx := msg.X - m.dragLastX; dx != 0 {
				plot.PointerMove(float64(dx * 2))
				m.dragLastX = msg.X
			}
			if plot.PendingRemoval() {
				m.status = "release to remove " + plot.Drag().Dim
			} else {
				m.status = "moving " + plot.Drag().Dim
			}
			return nil
		}
		if m.brush.active {
			if msg.Button != tea.MouseButtonLeft {
				return nil
			}
			y := clampf(py, 0, plot.Height())
			plot.SetExtent(m.brush.dim, &parallel.Extent{Lo: m.brush.startY, Hi: y})
			m.brush.moved = true
			return m.brushChanged()
		}
		m.hover(l, msg.X, msg.Y, px, py)
	case tea.MouseActionRelease:
		if plot.Drag().Active {
			dim := plot.Drag().Dim
			out := plot.PointerUp()
			m.status = fmt.Sprintf("%s %s", out, dim)
			return nil
		}
		if m.brush.active {
			b := m.brush
			m.brush = brushing{}
			if !b.moved {
				// a tap clears the brush of the axis
				plot.SetExtent(b.dim, nil)
			}
			return m.brushChanged()
		}
	}
	return nil
}

// brushChanged restarts the brush debounce window.
func (m *Model) brushChanged() tea.Cmd {
	tok := m.s.brushDeb.Trigger()
	return tea.Tick(m.s.brushDeb.Delay(), func(time.Time) tea.Msg { return brushFireMsg{tok} })
}

// hover highlights the selected rows passing near the pointer on the
// closest axis.
func (m *Model) hover(l plotLayout, cx, cy int, px, py float64) {
	if m.hoverCell == [2]int{cx, cy} {
		return
	}
	m.hoverCell = [2]int{cx, cy}
	if !l.inPlot(cx, cy) {
		m.s.plot.ClearHighlight()
		return
	}
	dim, ok := m.s.plot.AxisAt(px, axisHitTol)
	if !ok {
		m.s.plot.ClearHighlight()
		return
	}
	m.s.plot.HighlightNear(dim, py, hoverTol, hoverLimit)
}

// applySize lays the plot out in the current window.
func (m *Model) applySize() {
	m.s.resizeDeb.Cancel()
	l := m.layout()
	box := parallel.Box{Width: float64(l.mainW * 2), Height: float64(l.plotRows * 4)}
	if box.Width == m.s.plot.Width() && box.Height == m.s.plot.Height() {
		return
	}
	if m.s.plot.Resize(box) {
		logging.Debugf("tui: plot resized to %vx%v", box.Width, box.Height)
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
