// Package params is the parameter registry: one definition per column with
// its scale type, the types it may be switched to, its live value domain and
// color scheme, and the persisted parallel-plot order and inversion.
package params

import (
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-moremath/stats"

	"parcoords/internal/frame"
	"parcoords/internal/logging"
	"parcoords/internal/observe"
	"parcoords/internal/state"
)

// Type is how a column is scaled on its axis.
type Type int

const (
	Categorical Type = iota
	Numeric
	NumericLog
	NumericPercentile
)

var typeNames = map[Type]string{
	Categorical:       "categorical",
	Numeric:           "numeric",
	NumericLog:        "numericlog",
	NumericPercentile: "numericpercentile",
}

func (t Type) String() string { return typeNames[t] }

// Label is the menu text for a type.
func (t Type) Label() string {
	switch t {
	case Numeric:
		return "Number"
	case NumericLog:
		return "Number (log-scale)"
	case NumericPercentile:
		return "Number (percentile-scale)"
	}
	return "Categorical"
}

// ParseType is the inverse of String.
func ParseType(s string) (Type, bool) {
	for t, n := range typeNames {
		if n == s {
			return t, true
		}
	}
	return Categorical, false
}

// PercentileSteps is the number of equal-count segments of a percentile scale.
const PercentileSteps = 10

// Def describes one column.
type Def struct {
	Name        string
	Type        Type
	TypeOptions []Type
	Numeric     bool
	// Optional is set when some rows lack a value for the column.
	Optional bool

	// Live domain.
	Min, Max   float64
	Quantiles  []float64
	Categories []string

	ParallelOrder    int
	ParallelInverted bool

	state *state.Store
}

// SetOrder records the axis position; -1 removes the axis.
func (d *Def) SetOrder(idx int) {
	d.ParallelOrder = idx
	d.persist("order", idx)
}

func (d *Def) SetInverted(inv bool) {
	d.ParallelInverted = inv
	d.persist("inverted", inv)
}

// SetType switches the scale type if t is one of the allowed options.
func (d *Def) SetType(t Type) bool {
	if !d.allows(t) {
		return false
	}
	d.Type = t
	d.persist("type", t.String())
	return true
}

func (d *Def) allows(t Type) bool {
	for _, o := range d.TypeOptions {
		if o == t {
			return true
		}
	}
	return false
}

func (d *Def) persist(key string, v any) {
	if d.state == nil {
		return
	}
	if err := d.state.Set(key, v); err != nil {
		logging.Warnf("persist %s.%s: %v", d.Name, key, err)
	}
}

// CategoryIndex returns the position of v among the categories.
func (d *Def) CategoryIndex(v frame.Value) (int, bool) {
	if v.IsMissing() {
		return 0, false
	}
	key := v.String()
	i := sort.Search(len(d.Categories), func(i int) bool { return !categoryLess(d.Categories[i], key) })
	if i < len(d.Categories) && d.Categories[i] == key {
		return i, true
	}
	return 0, false
}

// Registry holds the definitions of every known column.
type Registry struct {
	store   *state.Store
	columns []string
	defs    map[string]*Def
}

// NewRegistry persists per-column settings under store's "params" child.
func NewRegistry(store *state.Store) *Registry {
	if store == nil {
		store = state.New()
	}
	return &Registry{store: store.Children("params"), defs: map[string]*Def{}}
}

// Get returns the definition of a column present in the current rows.
func (r *Registry) Get(name string) (*Def, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names lists columns in their first-seen order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.columns))
	for _, c := range r.columns {
		if _, ok := r.defs[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// SetColumns fixes the preferred column order, typically the file header.
func (r *Registry) SetColumns(cols []string) {
	r.columns = append([]string(nil), cols...)
}

// Infer recomputes every definition from rows. Type, order and inversion
// come from the store when set, so user choices survive re-inference;
// columns absent from rows lose their definition.
func (r *Registry) Infer(rows []frame.Row) {
	known := map[string]bool{}
	for _, c := range r.columns {
		known[c] = true
	}
	var extra []string
	for _, row := range rows {
		for k := range row.Values {
			if !known[k] {
				known[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	r.columns = append(r.columns, extra...)

	present := map[string]bool{}
	for _, row := range rows {
		for k := range row.Values {
			present[k] = true
		}
	}
	defs := make(map[string]*Def, len(present))
	idx := 0
	for _, c := range r.columns {
		if !present[c] {
			continue
		}
		defs[c] = r.infer(c, idx, rows)
		idx++
	}
	r.defs = defs
	logging.Debugf("params: inferred %d columns from %d rows", len(defs), len(rows))
}

func (r *Registry) infer(name string, idx int, rows []frame.Row) *Def {
	d := &Def{Name: name, Numeric: true, state: r.store.Children(name)}
	var nums []float64
	cats := map[string]bool{}
	for _, row := range rows {
		v := row.Get(name)
		switch v.Kind {
		case frame.Missing:
			d.Optional = true
			continue
		case frame.Text:
			d.Numeric = false
		case frame.Number:
			if v.Finite() {
				nums = append(nums, v.Num)
			}
		}
		cats[v.String()] = true
	}
	for c := range cats {
		d.Categories = append(d.Categories, c)
	}
	sort.Slice(d.Categories, func(i, j int) bool { return categoryLess(d.Categories[i], d.Categories[j]) })

	d.TypeOptions = []Type{Categorical}
	d.Type = Categorical
	if d.Numeric && len(nums) > 0 {
		sort.Float64s(nums)
		d.Min, d.Max = stats.Bounds(nums)
		s := stats.Sample{Xs: nums, Sorted: true}
		d.Quantiles = make([]float64, PercentileSteps+1)
		for i := range d.Quantiles {
			d.Quantiles[i] = s.Quantile(float64(i) / PercentileSteps)
		}
		d.TypeOptions = append(d.TypeOptions, Numeric)
		if d.Min > 0 {
			d.TypeOptions = append(d.TypeOptions, NumericLog)
		}
		d.TypeOptions = append(d.TypeOptions, NumericPercentile)
		d.Type = Numeric
	} else {
		d.Numeric = false
		d.Min, d.Max = math.NaN(), math.NaN()
	}

	if t, ok := ParseType(d.state.GetString("type", "")); ok && d.allows(t) {
		d.Type = t
	}
	d.ParallelOrder = d.state.GetInt("order", idx)
	d.ParallelInverted = d.state.GetBool("inverted", false)
	return d
}

// DefaultColorBy picks the column used for coloring when none is set:
// numeric before categorical, complete before optional, then column order.
func (r *Registry) DefaultColorBy() string {
	names := r.Names()
	score := func(n string) int {
		d := r.defs[n]
		s := 0
		if d.Type == Categorical {
			s -= 20
		}
		if d.Optional {
			s -= 40
		}
		return s
	}
	sort.SliceStable(names, func(i, j int) bool { return score(names[i]) > score(names[j]) })
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// categoryLess orders numbers numerically before free text.
func categoryLess(a, b string) bool {
	fa, na := categoryNum(a)
	fb, nb := categoryNum(b)
	switch {
	case na && nb:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case na:
		return true
	case nb:
		return false
	}
	return a < b
}

func categoryNum(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Watch re-infers the definitions whenever c changes. It must be registered
// before any view of c so views see fresh definitions.
func (r *Registry) Watch(c *observe.Collection) {
	c.OnChange(r.Infer, r)
}

func (r *Registry) Unwatch(c *observe.Collection) { c.Off(r) }
