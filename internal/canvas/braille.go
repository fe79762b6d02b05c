// Package canvas is a braille draw surface. Every terminal cell holds a 2x4
// grid of dots, so one pixel here is one braille dot.
package canvas

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// braille dot bits indexed by [row][col] inside a cell
var dots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type cell struct {
	mask  uint8
	color colorful.Color
	alpha float64
	hits  int
	// stroke that last touched the cell
	stamp uint32
}

type point struct{ x, y float64 }

// Braille implements a vector surface over braille cells. The first stroke
// to reach a cell fixes its color, as if later strokes were drawn beneath;
// every further stroke through the cell builds up its opacity.
type Braille struct {
	w, h  int // in dots
	cells [][]cell

	stroke      colorful.Color
	strokeAlpha float64
	path        [][]point
	stamp       uint32
}

func NewBraille(w, h int) *Braille {
	b := &Braille{stroke: colorful.Color{R: 1, G: 1, B: 1}, strokeAlpha: 1}
	b.Resize(w, h)
	return b
}

// Resize sets the size in dots and clears the surface.
func (b *Braille) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.w, b.h = w, h
	cols, rows := (w+1)/2, (h+3)/4
	b.cells = make([][]cell, rows)
	for i := range b.cells {
		b.cells[i] = make([]cell, cols)
	}
	b.path = nil
}

func (b *Braille) Cols() int {
	if len(b.cells) == 0 {
		return 0
	}
	return len(b.cells[0])
}

func (b *Braille) Rows() int { return len(b.cells) }

func (b *Braille) Clear() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = cell{}
		}
	}
	b.path = nil
}

func (b *Braille) SetStroke(c color.Color) {
	if c == nil {
		return
	}
	_, _, _, a := c.RGBA()
	b.strokeAlpha = float64(a) / 0xffff
	if a == 0 {
		return
	}
	// MakeColor un-premultiplies and fails on zero alpha
	b.stroke, _ = colorful.MakeColor(c)
}

func (b *Braille) MoveTo(x, y float64) {
	b.path = append(b.path, []point{{x, y}})
}

func (b *Braille) LineTo(x, y float64) {
	if len(b.path) == 0 {
		b.MoveTo(x, y)
		return
	}
	i := len(b.path) - 1
	b.path[i] = append(b.path[i], point{x, y})
}

// CurveTo flattens a cubic bezier from the current point.
func (b *Braille) CurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(b.path) == 0 {
		b.MoveTo(c1x, c1y)
	}
	sub := b.path[len(b.path)-1]
	p0 := sub[len(sub)-1]
	p1, p2, p3 := point{c1x, c1y}, point{c2x, c2y}, point{x, y}
	n := int(math.Ceil((dist(p0, p1) + dist(p1, p2) + dist(p2, p3)) / 2))
	if n < 1 {
		n = 1
	}
	if n > 64 {
		n = 64
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		sub = append(sub, point{
			x: u*u*u*p0.x + 3*u*u*t*p1.x + 3*u*t*t*p2.x + t*t*t*p3.x,
			y: u*u*u*p0.y + 3*u*u*t*p1.y + 3*u*t*t*p2.y + t*t*t*p3.y,
		})
	}
	b.path[len(b.path)-1] = sub
}

// Stroke rasterizes the current path and starts a new one.
func (b *Braille) Stroke() {
	b.stamp++
	for _, sub := range b.path {
		if len(sub) == 1 {
			b.plot(round(sub[0].x), round(sub[0].y))
		}
		for i := 1; i < len(sub); i++ {
			b.line(round(sub[i-1].x), round(sub[i-1].y), round(sub[i].x), round(sub[i].y))
		}
	}
	b.path = nil
}

// plot sets one dot with the current stroke.
func (b *Braille) plot(mx, my int) {
	if mx < 0 || my < 0 || mx >= b.w || my >= b.h {
		return
	}
	c := &b.cells[my/4][mx/2]
	c.mask |= dots[my%4][mx%2]
	if c.stamp == b.stamp {
		return
	}
	c.stamp = b.stamp
	if c.hits == 0 {
		c.color = b.stroke
		c.alpha = b.strokeAlpha
	}
	c.hits++
}

// line draws with Bresenham on the dot grid.
func (b *Braille) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Cell is one composited terminal cell.
type Cell struct {
	Rune  rune
	Color colorful.Color
	// Alpha is the coverage after all strokes through the cell.
	Alpha float64
	Empty bool
}

// At returns the cell at column cx, row cy.
func (b *Braille) At(cx, cy int) Cell {
	if cy < 0 || cy >= len(b.cells) || cx < 0 || cx >= len(b.cells[cy]) {
		return Cell{Rune: ' ', Empty: true}
	}
	c := b.cells[cy][cx]
	if c.mask == 0 {
		return Cell{Rune: ' ', Empty: true}
	}
	return Cell{
		Rune:  rune(0x2800 + int(c.mask)),
		Color: c.color,
		Alpha: 1 - math.Pow(1-c.alpha, float64(c.hits)),
	}
}

func dist(a, b point) float64 { return math.Hypot(b.x-a.x, b.y-a.y) }

func round(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return -1
	}
	return int(math.Round(f))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
