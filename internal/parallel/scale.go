package parallel

import (
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-moremath/scale"

	"parcoords/internal/frame"
	"parcoords/internal/params"
)

// Scale maps values of one dimension onto its vertical pixel range. The
// domain minimum maps to Range[0] and the maximum to Range[1].
type Scale struct {
	Kind     params.Type
	Min, Max float64
	// Quantile breakpoints for percentile scales.
	Quantiles []float64
	// Sorted categories for categorical scales.
	Categories []string
	Range      [2]float64
	Inverted   bool

	index map[string]int
	// log is the domain mapping of a NumericLog scale.
	log scale.Log
}

// newScale builds the scale of def for an axis of height h. ok is false when
// the dimension has no usable domain.
func newScale(def *params.Def, h float64) (Scale, bool) {
	if def == nil {
		return Scale{}, false
	}
	s := Scale{Kind: def.Type, Min: def.Min, Max: def.Max, Inverted: def.ParallelInverted}
	switch def.Type {
	case params.Categorical:
		if len(def.Categories) == 0 {
			return Scale{}, false
		}
		s.Categories = def.Categories
		s.index = make(map[string]int, len(def.Categories))
		for i, c := range def.Categories {
			s.index[c] = i
		}
	case params.NumericPercentile:
		if len(def.Quantiles) < 2 {
			return Scale{}, false
		}
		s.Quantiles = def.Quantiles
		fallthrough
	case params.Numeric:
		if !finite(def.Min) || !finite(def.Max) {
			return Scale{}, false
		}
	case params.NumericLog:
		if !finite(def.Min) || !finite(def.Max) || def.Min <= 0 {
			return Scale{}, false
		}
		l, err := scale.NewLog(def.Min, def.Max, 10)
		if err != nil {
			return Scale{}, false
		}
		s.log = l
	default:
		return Scale{}, false
	}
	s.SetHeight(h)
	return s, true
}

// SetHeight sets the pixel range for an axis h pixels tall. Pixel y grows
// downward, so an upright axis puts the domain minimum at the bottom.
func (s *Scale) SetHeight(h float64) {
	if s.Inverted {
		s.Range = [2]float64{0, h}
	} else {
		s.Range = [2]float64{h, 0}
	}
}

func (s *Scale) SetInverted(inv bool) {
	h := math.Max(s.Range[0], s.Range[1])
	s.Inverted = inv
	s.SetHeight(h)
}

// Map returns the pixel y of v, or NaN when v cannot be placed on the axis.
func (s Scale) Map(v frame.Value) float64 {
	t := s.normalize(v)
	if math.IsNaN(t) {
		return t
	}
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// normalize maps v into [0, 1] over the domain.
func (s Scale) normalize(v frame.Value) float64 {
	if v.IsMissing() {
		return math.NaN()
	}
	if s.Kind == params.Categorical {
		i, ok := s.index[v.String()]
		if !ok {
			return math.NaN()
		}
		if len(s.Categories) == 1 {
			return 0.5
		}
		return float64(i) / float64(len(s.Categories)-1)
	}
	if v.Kind != frame.Number || !v.Finite() {
		return math.NaN()
	}
	x := v.Num
	if s.Min == s.Max {
		return 0.5
	}
	switch s.Kind {
	case params.NumericLog:
		if x <= 0 {
			return math.NaN()
		}
		return s.log.Map(x)
	case params.NumericPercentile:
		return percentile(s.Quantiles, x)
	}
	lin := scale.Linear{Min: s.Min, Max: s.Max}
	return lin.Map(x)
}

// percentile interpolates x between quantile breakpoints. Values outside the
// breakpoints clamp; a run of equal breakpoints maps to its middle.
func percentile(q []float64, x float64) float64 {
	n := len(q) - 1
	if x <= q[0] {
		x = q[0]
	}
	if x >= q[n] {
		x = q[n]
	}
	lo := sort.SearchFloat64s(q, x)
	if q[lo] == x {
		hi := lo
		for hi < n && q[hi+1] == x {
			hi++
		}
		return float64(lo+hi) / 2 / float64(n)
	}
	i := lo - 1
	f := (x - q[i]) / (q[lo] - q[i])
	return (float64(i) + f) / float64(n)
}

// Tick is a labelled position on an axis.
type Tick struct {
	Label string
	Y     float64
}

// Ticks returns at most max labelled positions.
func (s Scale) Ticks(max int) []Tick {
	if max < 2 {
		max = 2
	}
	var vals []frame.Value
	switch s.Kind {
	case params.Categorical:
		step := 1
		if len(s.Categories) > max {
			step = (len(s.Categories) + max - 1) / max
		}
		for i := 0; i < len(s.Categories); i += step {
			vals = append(vals, frame.Str(s.Categories[i]))
		}
	case params.NumericPercentile:
		step := 1
		if len(s.Quantiles) > max {
			step = (len(s.Quantiles) + max - 1) / max
		}
		for i := 0; i < len(s.Quantiles); i += step {
			vals = append(vals, frame.Num(s.Quantiles[i]))
		}
	default:
		for _, x := range s.numericTicks(max) {
			vals = append(vals, frame.Num(x))
		}
	}
	out := make([]Tick, 0, len(vals))
	for _, v := range vals {
		y := s.Map(v)
		if math.IsNaN(y) {
			continue
		}
		label := v.Str
		if v.Kind == frame.Number {
			label = strconv.FormatFloat(v.Num, 'g', 4, 64)
		}
		out = append(out, Tick{Label: label, Y: y})
	}
	return out
}

func (s Scale) numericTicks(max int) []float64 {
	if s.Min == s.Max {
		return []float64{s.Min}
	}
	if s.Kind == params.NumericLog {
		major, _ := s.log.Ticks(scale.TickOptions{Max: max})
		if len(major) >= 2 {
			return major
		}
		return []float64{s.Min, s.Max}
	}
	lin := scale.Linear{Min: s.Min, Max: s.Max}
	major, _ := lin.Ticks(scale.TickOptions{Max: max})
	return major
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
