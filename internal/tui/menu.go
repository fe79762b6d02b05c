package tui

import (
	"strings"

	"parcoords/internal/canvas"
	"parcoords/internal/observe"
	"parcoords/internal/params"
	"parcoords/internal/parallel"
)

type menuItem struct {
	label    string
	header   bool
	disabled bool
	action   func()
}

type menuBuilder struct {
	build func(dim string) []menuItem
	owner any
}

// contextMenu is the axis menu. Builders registered with AddCallback each
// contribute items for the axis the menu is opened on.
type contextMenu struct {
	visible  bool
	x, y     int
	dim      string
	items    []menuItem
	cursor   int
	builders []menuBuilder
}

func newContextMenu() *contextMenu { return &contextMenu{} }

func (c *contextMenu) AddCallback(fn func(dim string) []menuItem, owner any) {
	c.builders = append(c.builders, menuBuilder{build: fn, owner: owner})
}

func (c *contextMenu) RemoveCallbacks(owner any) {
	kept := c.builders[:0]
	for _, b := range c.builders {
		if b.owner != owner {
			kept = append(kept, b)
		}
	}
	c.builders = kept
}

// Show opens the menu at cell x, y relative to the plot.
func (c *contextMenu) Show(x, y float64, dim string) {
	c.items = c.items[:0]
	for _, b := range c.builders {
		c.items = append(c.items, b.build(dim)...)
	}
	if len(c.items) == 0 {
		return
	}
	c.visible, c.x, c.y, c.dim = true, int(x), int(y), dim
	c.cursor = -1
	c.move(1)
}

func (c *contextMenu) Hide() { c.visible = false }

// move steps the cursor over selectable items.
func (c *contextMenu) move(d int) {
	n := len(c.items)
	for i := 1; i <= n; i++ {
		j := ((c.cursor+d*i)%n + n) % n
		if it := c.items[j]; !it.header && !it.disabled {
			c.cursor = j
			return
		}
	}
}

// activate runs item i and closes the menu.
func (c *contextMenu) activate(i int) bool {
	if i < 0 || i >= len(c.items) {
		return false
	}
	it := c.items[i]
	if it.header || it.disabled || it.action == nil {
		return false
	}
	c.Hide()
	it.action()
	return true
}

func (c *contextMenu) width() int {
	w := 0
	for _, it := range c.items {
		if len(it.label) > w {
			w = len(it.label)
		}
	}
	return w + 4
}

// itemAt maps a cell to an item index, -1 when outside.
func (c *contextMenu) itemAt(x, y int) int {
	if !c.visible || x < c.x || x >= c.x+c.width() {
		return -1
	}
	i := y - c.y - 1
	if i < 0 || i >= len(c.items) {
		return -1
	}
	return i
}

// draw writes the menu box into g.
func (c *contextMenu) draw(g *canvas.Grid) {
	if !c.visible {
		return
	}
	w := c.width()
	if c.x+w > g.Cols() {
		c.x = max(0, g.Cols()-w)
	}
	if c.y+len(c.items)+2 > g.Rows() {
		c.y = max(0, g.Rows()-len(c.items)-2)
	}
	border := canvas.GridCell{Color: menuDim}
	g.Text(c.x, c.y, "╭"+strings.Repeat("─", w-2)+"╮", border)
	for i, it := range c.items {
		row := c.y + 1 + i
		cell := canvas.GridCell{Color: menuColor}
		prefix := "  "
		switch {
		case it.header:
			cell = canvas.GridCell{Color: axisColor, Bold: true}
			prefix = ""
		case it.disabled:
			cell.Color = menuDim
		case i == c.cursor:
			cell = canvas.GridCell{Color: brushColor, Bold: true}
			prefix = "› "
		}
		g.Text(c.x, row, "│", border)
		g.Text(c.x+1, row, padRight(prefix+it.label, w-2-len([]rune(prefix+it.label))), cell)
		g.Text(c.x+w-1, row, "│", border)
	}
	g.Text(c.x, c.y+len(c.items)+1, "╰"+strings.Repeat("─", w-2)+"╯", border)
}

// axisMenu offers the scale types of an axis and coloring by it. Changing
// the type asks every view of the rows to recompute.
func axisMenu(p *parallel.Plot, reg *params.Registry, colorby *observe.Property[string]) func(string) []menuItem {
	return func(dim string) []menuItem {
		d, ok := reg.Get(dim)
		if !ok {
			return nil
		}
		items := []menuItem{{label: "Data scaling", header: true}}
		for _, t := range d.TypeOptions {
			t := t
			items = append(items, menuItem{
				label:    t.Label(),
				disabled: t == d.Type,
				action:   func() { p.SetType(dim, t) },
			})
		}
		items = append(items, menuItem{
			label:    "Use for coloring",
			disabled: colorby.Get() == dim,
			action:   func() { colorby.Set(dim) },
		})
		return items
	}
}
