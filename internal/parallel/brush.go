package parallel

import "parcoords/internal/frame"

// Extent is a closed pixel interval on one axis.
type Extent struct {
	Lo, Hi float64
}

func (e Extent) norm() Extent {
	if e.Lo > e.Hi {
		e.Lo, e.Hi = e.Hi, e.Lo
	}
	return e
}

// Contains is the inclusive test; NaN is never contained.
func (e Extent) Contains(y float64) bool { return e.Lo <= y && y <= e.Hi }

// Brushes holds the active extent of each axis. An axis without an entry
// does not filter.
type Brushes struct {
	ext map[string]Extent
}

func NewBrushes() *Brushes { return &Brushes{ext: map[string]Extent{}} }

// Set installs e on dim, or clears it when e is nil.
func (b *Brushes) Set(dim string, e *Extent) {
	if e == nil {
		delete(b.ext, dim)
		return
	}
	b.ext[dim] = e.norm()
}

func (b *Brushes) Get(dim string) (Extent, bool) {
	e, ok := b.ext[dim]
	return e, ok
}

func (b *Brushes) Len() int { return len(b.ext) }

func (b *Brushes) ClearAll() { b.ext = map[string]Extent{} }

// Mirror reflects the extent of dim across an axis h tall so it keeps
// covering the same values after the axis is inverted.
func (b *Brushes) Mirror(dim string, h float64) {
	e, ok := b.ext[dim]
	if !ok {
		return
	}
	b.ext[dim] = Extent{Lo: h - e.Hi, Hi: h - e.Lo}
}

// Rescale multiplies every extent by f, used when the axis height changes.
func (b *Brushes) Rescale(f float64) {
	for d, e := range b.ext {
		b.ext[d] = Extent{Lo: e.Lo * f, Hi: e.Hi * f}
	}
}

// Prune drops extents of dimensions that are not visible.
func (b *Brushes) Prune(l *Layout) {
	for d := range b.ext {
		if !l.Visible(d) {
			delete(b.ext, d)
		}
	}
}

// Active lists the dimensions of order that carry an extent.
func (b *Brushes) Active(order []string) []string {
	var out []string
	for _, d := range order {
		if _, ok := b.ext[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Select returns the rows whose projected value lies inside every extent.
func (b *Brushes) Select(rows []frame.Row, l *Layout) []frame.Row {
	active := b.Active(l.Order())
	if len(active) == 0 {
		return append([]frame.Row(nil), rows...)
	}
	out := make([]frame.Row, 0, len(rows))
	for _, r := range rows {
		keep := true
		for _, d := range active {
			if !b.ext[d].Contains(l.Map(d, r.Get(d))) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}
