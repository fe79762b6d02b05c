// Package parallel is the parallel-coordinates engine: axis layout and
// scales, brush filtering, the axis drag gesture, incremental rendering and
// geometry. It draws through the Surface interface and knows nothing about
// the terminal.
package parallel

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"parcoords/internal/frame"
	"parcoords/internal/logging"
	"parcoords/internal/observe"
	"parcoords/internal/params"
)

// ContextMenu is the per-axis menu shown by the host.
type ContextMenu interface {
	Show(x, y float64, dim string)
	Hide()
}

type Options struct {
	Margins       Margins
	EdgeThreshold float64
	AxisInset     float64
	Render        RenderOptions
	Rand          *rand.Rand
}

func DefaultOptions() Options {
	return Options{
		EdgeThreshold: 12,
		AxisInset:     16,
		Render: RenderOptions{
			Budget:    30 * time.Millisecond,
			MinBatch:  8,
			MaxBatch:  300,
			Initial:   10,
			Overshoot: 15,
		},
	}
}

const (
	dimWhileDragging   = 0.35
	dimWhileHighlights = 0.25
)

// Plot ties the layout, brushes, drag gesture and renderer to the shared
// row collections. Changes flow all -> layout -> selected -> renderer.
type Plot struct {
	data    *observe.Datasets
	reg     *params.Registry
	colorby *observe.Property[string]
	menu    ContextMenu

	opts     Options
	layout   *Layout
	brushes  *Brushes
	drag     DragState
	renderer *Renderer

	box         Box
	highlighted bool
	selectionID int
}

func New(data *observe.Datasets, reg *params.Registry, colorby *observe.Property[string], fg, hl Surface, opts Options) *Plot {
	p := &Plot{
		data:    data,
		reg:     reg,
		colorby: colorby,
		opts:    opts,
		layout:  NewLayout(reg, opts.AxisInset),
		brushes: NewBrushes(),
	}
	p.renderer = NewRenderer(fg, hl, p, data.Rendered(), opts.Render, opts.Rand)
	p.renderer.SetColor(p.rowColor)
	return p
}

func (p *Plot) SetContextMenu(m ContextMenu) { p.menu = m }

// Attach subscribes to the collections and lays out the current rows.
func (p *Plot) Attach() {
	all := p.data.All()
	p.reg.Watch(all)
	all.OnChange(p.onAll, p)
	p.data.Selected().OnChange(p.onSelected, p)
	p.data.Highlighted().OnChange(p.onHighlighted, p)
	p.colorby.OnChange(func(string) { p.Recompute() }, p)

	p.reg.Infer(all.Get())
	p.onAll(all.Get())
}

// Detach drops every subscription of the plot and stops rendering.
func (p *Plot) Detach() {
	p.reg.Unwatch(p.data.All())
	p.data.Off(p)
	p.colorby.Off(p)
	p.renderer.Invalidate()
}

func (p *Plot) onAll([]frame.Row) {
	p.brushes.ClearAll()
	// highlighted rows may be gone and were drawn on the old scales
	p.ClearHighlight()
	p.layout.Rebuild()
	logging.Debugf("parallel: relayout with %d axes", len(p.layout.dims))
	p.Recompute()
}

func (p *Plot) onSelected(rows []frame.Row) {
	p.renderer.Start(rows)
}

func (p *Plot) onHighlighted(rows []frame.Row) {
	p.highlighted = len(rows) > 0
	p.renderer.Highlight(rows)
}

// Recompute filters all through the brushes and publishes the selection.
func (p *Plot) Recompute() {
	if p.menu != nil {
		p.menu.Hide()
	}
	p.brushes.Prune(p.layout)
	sel := p.brushes.Select(p.data.All().Get(), p.layout)
	p.selectionID++
	p.data.Selected().Set(sel)
}

func (p *Plot) rowColor(r frame.Row, alpha float64) color.Color {
	d, ok := p.reg.Get(p.colorby.Get())
	if !ok {
		return color.NRGBA{R: 0x8c, G: 0x8c, B: 0x8c, A: uint8(math.Round(alpha * 255))}
	}
	return d.Color(r.Get(d.Name), alpha)
}

// Order, Position and Project make the plot the renderer's Projection.
// Position follows the pointer for the dragged axis.

func (p *Plot) Order() []string { return p.layout.dims }

func (p *Plot) Position(dim string) float64 {
	if p.drag.Active && p.drag.Dim == dim {
		return p.drag.X
	}
	return p.layout.Pos(dim)
}

func (p *Plot) Project(dim string, v frame.Value) float64 { return p.layout.Map(dim, v) }

// Resize lays the plot out in b. It does nothing and returns false when the
// area inside the margins is empty.
func (p *Plot) Resize(b Box) bool {
	w, h, ok := b.Inner(p.opts.Margins)
	if !ok {
		logging.Debugf("parallel: ignoring resize to %vx%v", b.Width, b.Height)
		return false
	}
	p.box = b
	if old := p.layout.Height(); old > 0 && h != old {
		p.brushes.Rescale(h / old)
	}
	p.layout.SetSize(w, h)
	p.renderer.Resize(int(math.Ceil(w)), int(math.Ceil(h)))
	p.ClearHighlight()
	p.Recompute()
	return true
}

// Width and Height are the plot area inside the margins.
func (p *Plot) Width() float64  { return p.layout.Width() }
func (p *Plot) Height() float64 { return p.layout.Height() }

func (p *Plot) Scale(dim string) (Scale, bool) { return p.layout.Scale(dim) }

// SetExtent brushes dim, or clears its brush when e is nil. Hidden axes are
// ignored. The selection is updated by the next Recompute.
func (p *Plot) SetExtent(dim string, e *Extent) bool {
	if !p.layout.Visible(dim) {
		return false
	}
	p.brushes.Set(dim, e)
	return true
}

func (p *Plot) Extent(dim string) (Extent, bool) { return p.brushes.Get(dim) }

// ClearAll removes every brush; Recompute applies it.
func (p *Plot) ClearAll() { p.brushes.ClearAll() }

// ActiveDims lists the visible axes that carry a brush.
func (p *Plot) ActiveDims() []string { return p.brushes.Active(p.layout.dims) }

// PointerDown starts dragging the axis of dim.
func (p *Plot) PointerDown(dim string) bool {
	if p.drag.Active || !p.layout.Visible(dim) {
		return false
	}
	p.drag = p.drag.Down(dim, p.layout.Pos(dim))
	return true
}

// PointerMove drags the axis by dx and reorders the axes by position.
// Drawing in flight is abandoned.
func (p *Plot) PointerMove(dx float64) {
	if !p.drag.Active {
		return
	}
	p.drag = p.drag.Move(dx, p.layout.Width())
	p.layout.SortBy(p.Position)
	p.renderer.Invalidate()
}

// PointerUp finishes the drag and applies its outcome.
func (p *Plot) PointerUp() Outcome {
	dim := p.drag.Dim
	var out Outcome
	p.drag, out = p.drag.Up(p.layout.Width(), p.opts.EdgeThreshold)
	switch out {
	case OutcomeNone:
		return out
	case OutcomeInvert:
		p.invert(dim)
	case OutcomeRemove:
		p.remove(dim)
	case OutcomeReorder:
		p.layout.SaveOrder()
	}
	logging.Debugf("parallel: %s %q", out, dim)
	p.Recompute()
	return out
}

// Drag is the gesture in progress, if any.
func (p *Plot) Drag() DragState { return p.drag }

// PendingRemoval reports whether releasing now would remove the axis.
func (p *Plot) PendingRemoval() bool {
	return p.drag.NearEdge(p.layout.Width(), p.opts.EdgeThreshold)
}

// Invert flips dim and recomputes. Hidden axes are a no-op.
func (p *Plot) Invert(dim string) bool {
	if !p.invert(dim) {
		return false
	}
	p.Recompute()
	return true
}

func (p *Plot) invert(dim string) bool {
	if !p.layout.Invert(dim) {
		return false
	}
	p.brushes.Mirror(dim, p.layout.Height())
	return true
}

// Remove hides dim and recomputes. Hidden axes are a no-op.
func (p *Plot) Remove(dim string) bool {
	if !p.remove(dim) {
		return false
	}
	p.Recompute()
	return true
}

func (p *Plot) remove(dim string) bool {
	p.brushes.Set(dim, nil)
	return p.layout.Remove(dim)
}

// SetType changes the scale type of dim and asks every view of all to
// recompute.
func (p *Plot) SetType(dim string, t params.Type) bool {
	d, ok := p.reg.Get(dim)
	if !ok || !d.SetType(t) {
		return false
	}
	p.data.All().Append(nil)
	return true
}

// ShowMenu opens the context menu for dim at x, y.
func (p *Plot) ShowMenu(x, y float64, dim string) {
	if p.menu != nil && p.layout.Visible(dim) {
		p.menu.Show(x, y, dim)
	}
}

// AxisAt returns the axis closest to x, if one is within tol.
func (p *Plot) AxisAt(x, tol float64) (string, bool) {
	best, dist := "", math.Inf(1)
	for _, d := range p.layout.dims {
		if dd := math.Abs(p.Position(d) - x); dd < dist {
			best, dist = d, dd
		}
	}
	return best, best != "" && dist <= tol
}

// HighlightNear highlights up to limit selected rows whose value on dim is
// within tol pixels of y.
func (p *Plot) HighlightNear(dim string, y, tol float64, limit int) {
	var rows []frame.Row
	for _, r := range p.data.Selected().Get() {
		if len(rows) >= limit {
			break
		}
		if math.Abs(p.layout.Map(dim, r.Get(dim))-y) <= tol {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 && !p.highlighted {
		return
	}
	p.data.Highlighted().Set(rows)
}

func (p *Plot) ClearHighlight() {
	if p.highlighted {
		p.data.Highlighted().Set(nil)
	}
}

// ForegroundOpacity is how strongly the foreground should be shown.
func (p *Plot) ForegroundOpacity() float64 {
	switch {
	case p.drag.Active:
		return dimWhileDragging
	case p.highlighted:
		return dimWhileHighlights
	}
	return 1
}

// SelectionID increases with every published selection.
func (p *Plot) SelectionID() int { return p.selectionID }

// Generation is the current render generation.
func (p *Plot) Generation() uint64 { return p.renderer.Generation() }

// Step draws the next batch of gen; see Renderer.Step.
func (p *Plot) Step(gen uint64) bool { return p.renderer.Step(gen) }

func (p *Plot) Pending(gen uint64) bool { return p.renderer.Pending(gen) }

func (p *Plot) BatchSize() int { return p.renderer.BatchSize() }

// SetClock replaces the renderer clock.
func (p *Plot) SetClock(now func() time.Time) { p.renderer.Now = now }
