package parallel

import (
	"math"
	"sort"

	"parcoords/internal/frame"
	"parcoords/internal/logging"
	"parcoords/internal/params"
)

// Layout is the ordered set of visible dimensions, their horizontal
// positions and one vertical scale each.
type Layout struct {
	reg    *params.Registry
	inset  float64
	w, h   float64
	dims   []string
	scales map[string]Scale
}

func NewLayout(reg *params.Registry, inset float64) *Layout {
	return &Layout{reg: reg, inset: inset, scales: map[string]Scale{}}
}

// Rebuild recreates every scale from the registry. Dimensions with order
// -1 stay hidden; dimensions without a usable domain are removed.
func (l *Layout) Rebuild() {
	names := l.reg.Names()
	rank := make(map[string]int, len(names))
	var dims []string
	for i, n := range names {
		rank[n] = i
		if d, _ := l.reg.Get(n); d.ParallelOrder >= 0 {
			dims = append(dims, n)
		}
	}
	sort.SliceStable(dims, func(i, j int) bool {
		a, _ := l.reg.Get(dims[i])
		b, _ := l.reg.Get(dims[j])
		if a.ParallelOrder != b.ParallelOrder {
			return a.ParallelOrder < b.ParallelOrder
		}
		return rank[dims[i]] < rank[dims[j]]
	})

	l.dims = l.dims[:0]
	l.scales = make(map[string]Scale, len(dims))
	for _, n := range dims {
		d, _ := l.reg.Get(n)
		s, ok := newScale(d, l.h)
		if !ok {
			logging.Debugf("parallel: dropping %q, no usable domain", n)
			d.SetOrder(-1)
			continue
		}
		l.dims = append(l.dims, n)
		l.scales[n] = s
	}
	l.SaveOrder()
}

// SaveOrder writes the dense order 0..k-1 back to the registry.
func (l *Layout) SaveOrder() {
	for i, n := range l.dims {
		if d, ok := l.reg.Get(n); ok && d.ParallelOrder != i {
			d.SetOrder(i)
		}
	}
}

// Order returns the visible dimensions, left to right.
func (l *Layout) Order() []string { return append([]string(nil), l.dims...) }

func (l *Layout) Visible(dim string) bool {
	_, ok := l.scales[dim]
	return ok
}

func (l *Layout) Width() float64  { return l.w }
func (l *Layout) Height() float64 { return l.h }

// SetSize updates the plot area and every scale range.
func (l *Layout) SetSize(w, h float64) {
	l.w, l.h = w, h
	for n, s := range l.scales {
		s.SetHeight(h)
		l.scales[n] = s
	}
}

// Pos is the evenly spaced x of a visible dimension, NaN otherwise.
func (l *Layout) Pos(dim string) float64 {
	i := l.index(dim)
	if i < 0 {
		return math.NaN()
	}
	lo, hi := l.inset, l.w-l.inset
	if len(l.dims) == 1 {
		return (lo + hi) / 2
	}
	return lo + float64(i)*(hi-lo)/float64(len(l.dims)-1)
}

func (l *Layout) index(dim string) int {
	for i, d := range l.dims {
		if d == dim {
			return i
		}
	}
	return -1
}

func (l *Layout) Scale(dim string) (Scale, bool) {
	s, ok := l.scales[dim]
	return s, ok
}

// Map projects v on the axis of dim; NaN if dim is hidden or v unmappable.
func (l *Layout) Map(dim string, v frame.Value) float64 {
	s, ok := l.scales[dim]
	if !ok {
		return math.NaN()
	}
	return s.Map(v)
}

// SortBy reorders the visible dimensions by x. Ties keep their order.
func (l *Layout) SortBy(x func(dim string) float64) {
	px := make(map[string]float64, len(l.dims))
	for _, d := range l.dims {
		px[d] = x(d)
	}
	sort.SliceStable(l.dims, func(i, j int) bool { return px[l.dims[i]] < px[l.dims[j]] })
}

// Invert flips the axis of dim. It reports false if dim is not visible.
func (l *Layout) Invert(dim string) bool {
	s, ok := l.scales[dim]
	if !ok {
		return false
	}
	s.SetInverted(!s.Inverted)
	l.scales[dim] = s
	if d, ok := l.reg.Get(dim); ok {
		d.SetInverted(s.Inverted)
	}
	return true
}

// Remove hides dim and persists order -1. Hidden dimensions are a no-op.
func (l *Layout) Remove(dim string) bool {
	i := l.index(dim)
	if i < 0 {
		return false
	}
	l.dims = append(l.dims[:i], l.dims[i+1:]...)
	delete(l.scales, dim)
	if d, ok := l.reg.Get(dim); ok {
		d.SetOrder(-1)
	}
	l.SaveOrder()
	return true
}
