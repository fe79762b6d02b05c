package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Layer is a surface shown at an opacity. Later layers are drawn on top.
type Layer struct {
	Surface *Braille
	Opacity float64
}

// GridCell is a terminal cell ready to print.
type GridCell struct {
	Rune      rune
	Color     colorful.Color
	Bold      bool
	Underline bool
	// Plain cells are printed without a color.
	Plain bool
}

// Grid is a block of cells composed from layers plus text overlays.
type Grid struct {
	cols, rows int
	cells      [][]GridCell
}

// Compose blends layers over bg into a grid cols x rows cells.
func Compose(cols, rows int, bg colorful.Color, layers ...Layer) *Grid {
	g := &Grid{cols: cols, rows: rows, cells: make([][]GridCell, rows)}
	for y := range g.cells {
		g.cells[y] = make([]GridCell, cols)
		for x := range g.cells[y] {
			g.cells[y][x] = GridCell{Rune: ' ', Plain: true}
			top := -1
			var mask rune
			for i, l := range layers {
				if l.Surface == nil {
					continue
				}
				c := l.Surface.At(x, y)
				if c.Empty {
					continue
				}
				mask |= c.Rune - 0x2800
				top = i
			}
			if top < 0 {
				continue
			}
			c := layers[top].Surface.At(x, y)
			a := c.Alpha * layers[top].Opacity
			g.cells[y][x] = GridCell{Rune: 0x2800 + mask, Color: bg.BlendRgb(c.Color, clamp01(a)).Clamped()}
		}
	}
	return g
}

// Stack joins grids top to bottom. The result is as wide as the widest one.
func Stack(grids ...*Grid) *Grid {
	out := &Grid{}
	for _, g := range grids {
		out.cols = max(out.cols, g.cols)
	}
	for _, g := range grids {
		for _, row := range g.cells {
			r := make([]GridCell, out.cols)
			copy(r, row)
			for x := len(row); x < out.cols; x++ {
				r[x] = GridCell{Rune: ' ', Plain: true}
			}
			out.cells = append(out.cells, r)
		}
		out.rows += g.rows
	}
	return out
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Put overlays one cell; out of range positions are ignored.
func (g *Grid) Put(x, y int, c GridCell) {
	if y < 0 || y >= g.rows || x < 0 || x >= g.cols {
		return
	}
	g.cells[y][x] = c
}

// Text writes s from x on row y with the style of tmpl.
func (g *Grid) Text(x, y int, s string, tmpl GridCell) {
	for _, r := range s {
		tmpl.Rune = r
		g.Put(x, y, tmpl)
		x++
	}
}

// Lines renders the grid, one styled string per row. Runs of cells with the
// same style share one escape sequence.
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	var sb, run strings.Builder
	for y, row := range g.cells {
		sb.Reset()
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameStyle(row[x], row[start]) {
				continue
			}
			run.Reset()
			for _, c := range row[start:x] {
				run.WriteRune(c.Rune)
			}
			sb.WriteString(styleFor(row[start]).Render(run.String()))
			start = x
		}
		out[y] = sb.String()
	}
	return out
}

func sameStyle(a, b GridCell) bool {
	if a.Plain || b.Plain {
		return a.Plain == b.Plain
	}
	return a.Bold == b.Bold && a.Underline == b.Underline && a.Color.Hex() == b.Color.Hex()
}

func styleFor(c GridCell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.Plain {
		return s
	}
	return s.Foreground(lipgloss.Color(c.Color.Hex())).Bold(c.Bold).Underline(c.Underline)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
