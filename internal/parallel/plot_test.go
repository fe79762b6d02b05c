package parallel

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"testing"
	"time"

	"parcoords/internal/frame"
	"parcoords/internal/observe"
	"parcoords/internal/params"
	"parcoords/internal/state"
)

// recorder is a Surface that logs its calls.
type recorder struct {
	w, h    int
	ops     []string
	strokes int
	clears  int
	onDraw  func()
}

func (r *recorder) Resize(w, h int)                          { r.w, r.h = w, h }
func (r *recorder) Clear()                                   { r.clears++; r.ops = r.ops[:0] }
func (r *recorder) SetStroke(c color.Color)                  {}
func (r *recorder) MoveTo(x, y float64)                      { r.op("M") }
func (r *recorder) LineTo(x, y float64)                      { r.op("L") }
func (r *recorder) CurveTo(c1x, c1y, c2x, c2y, x, y float64) { r.op("C") }
func (r *recorder) Stroke()                                  { r.strokes++; r.op("S") }

func (r *recorder) op(s string) {
	if r.onDraw != nil {
		r.onDraw()
	}
	r.ops = append(r.ops, s)
}

type fixture struct {
	data    *observe.Datasets
	reg     *params.Registry
	colorby *observe.Property[string]
	fg, hl  *recorder
	plot    *Plot
	menu    *fakeMenu
}

type fakeMenu struct{ shown, hidden int }

func (m *fakeMenu) Show(x, y float64, dim string) { m.shown++ }
func (m *fakeMenu) Hide()                         { m.hidden++ }

func mkRows(cols []string, vals ...[]float64) []frame.Row {
	out := make([]frame.Row, len(vals))
	for i, v := range vals {
		r := frame.Row{UID: strconv.Itoa(i), Values: map[string]frame.Value{}}
		for j, c := range cols {
			if !math.IsNaN(v[j]) {
				r.Values[c] = frame.Num(v[j])
			}
		}
		out[i] = r
	}
	return out
}

func newFixture(t *testing.T, cols []string, rows []frame.Row, w, h float64) *fixture {
	t.Helper()
	f := &fixture{
		data:    observe.NewDatasets(),
		reg:     params.NewRegistry(state.New()),
		colorby: observe.NewProperty[string]("colorby"),
		fg:      &recorder{},
		hl:      &recorder{},
		menu:    &fakeMenu{},
	}
	f.reg.SetColumns(cols)
	f.data.All().Set(rows)
	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(1))
	f.plot = New(f.data, f.reg, f.colorby, f.fg, f.hl, opts)
	f.plot.SetContextMenu(f.menu)
	f.plot.Attach()
	if !f.plot.Resize(Box{Width: w, Height: h}) {
		t.Fatalf("resize %vx%v rejected", w, h)
	}
	return f
}

// drain runs the current render to completion.
func (f *fixture) drain() {
	gen := f.plot.Generation()
	for f.plot.Step(gen) {
	}
}

func uids(rows []frame.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.UID
	}
	sort.Strings(out)
	return out
}

func extentFor(t *testing.T, p *Plot, dim string, lo, hi float64) *Extent {
	t.Helper()
	s, ok := p.Scale(dim)
	if !ok {
		t.Fatalf("%s has no scale", dim)
	}
	a, b := s.Map(frame.Num(lo)), s.Map(frame.Num(hi))
	return &Extent{Lo: math.Min(a, b), Hi: math.Max(a, b)}
}

func orders(t *testing.T, reg *params.Registry, dims []string) []int {
	t.Helper()
	out := make([]int, len(dims))
	for i, d := range dims {
		def, ok := reg.Get(d)
		if !ok {
			t.Fatalf("no def for %s", d)
		}
		out[i] = def.ParallelOrder
	}
	return out
}

func assertDense(t *testing.T, f *fixture) {
	t.Helper()
	order := f.plot.Order()
	for i, d := range order {
		def, _ := f.reg.Get(d)
		if def.ParallelOrder != i {
			t.Fatalf("order of %s = %d, want %d (axes %v)", d, def.ParallelOrder, i, order)
		}
	}
}

func TestScenarioBrushSelectsRange(t *testing.T) {
	cols := []string{"A", "B"}
	f := newFixture(t, cols, mkRows(cols, []float64{1, 7}, []float64{5, 0}, []float64{12, 3}), 200, 600)
	if len(f.data.Selected().Get()) != 3 {
		t.Fatalf("no brush should select everything")
	}
	f.plot.SetExtent("A", extentFor(t, f.plot, "A", 0, 10))
	f.plot.Recompute()
	if got := uids(f.data.Selected().Get()); fmt.Sprint(got) != "[0 1]" {
		t.Fatalf("selected %v, want rows with A in {1,5}", got)
	}
	if f.menu.hidden == 0 {
		t.Fatalf("recompute should hide the context menu")
	}
}

func TestSelectionMatchesBruteForce(t *testing.T) {
	cols := []string{"x", "y", "z"}
	rnd := rand.New(rand.NewSource(7))
	var vals [][]float64
	for i := 0; i < 200; i++ {
		v := []float64{rnd.Float64() * 10, rnd.NormFloat64(), float64(rnd.Intn(5))}
		if i%17 == 0 {
			v[1] = math.NaN()
		}
		if i%23 == 0 {
			v[0] = math.Inf(1)
		}
		if i%29 == 5 {
			v[2] = math.Inf(-1)
		}
		vals = append(vals, v)
	}
	f := newFixture(t, cols, mkRows(cols, vals...), 300, 400)
	for trial := 0; trial < 20; trial++ {
		f.plot.ClearAll()
		for _, d := range cols {
			// the first trial brushes every axis over its full height
			if trial == 0 {
				f.plot.SetExtent(d, &Extent{Lo: 0, Hi: 400})
				continue
			}
			if rnd.Intn(2) == 0 {
				a, b := rnd.Float64()*400, rnd.Float64()*400
				f.plot.SetExtent(d, &Extent{Lo: a, Hi: b})
			}
		}
		f.plot.Recompute()

		var want []frame.Row
		for _, r := range f.data.All().Get() {
			keep := true
			for _, d := range cols {
				e, ok := f.plot.Extent(d)
				if !ok {
					continue
				}
				y := f.plot.Project(d, r.Get(d))
				if !(e.Lo <= y && y <= e.Hi) {
					keep = false
				}
			}
			if keep {
				want = append(want, r)
			}
		}
		if fmt.Sprint(uids(want)) != fmt.Sprint(uids(f.data.Selected().Get())) {
			t.Fatalf("trial %d: selection differs from brute force", trial)
		}
		for _, r := range f.data.Selected().Get() {
			for _, d := range cols {
				if _, ok := f.plot.Extent(d); ok && !r.Get(d).Finite() {
					t.Fatalf("trial %d: row %s with %s=%v passed the brush", trial, r.UID, d, r.Get(d))
				}
			}
		}
		if trial == 0 {
			// 12 NaN, 9 +Inf and 7 -Inf rows, with rows 0, 34 and 92 in two sets
			if got := len(f.data.Selected().Get()); got != 200-25 {
				t.Fatalf("full-height brushes selected %d rows", got)
			}
		}
	}
}

func TestScenarioDragToEdgeRemoves(t *testing.T) {
	cols := []string{"A", "B", "C"}
	f := newFixture(t, cols, mkRows(cols, []float64{1, 2, 3}, []float64{4, 5, 6}), 200, 100)
	f.plot.SetExtent("A", &Extent{Lo: 10, Hi: 50})
	f.plot.Recompute()

	if !f.plot.PointerDown("A") {
		t.Fatal("pointer down refused")
	}
	f.plot.PointerMove(-100)
	if !f.plot.PendingRemoval() {
		t.Fatalf("axis near edge should be pending removal")
	}
	if got := f.plot.ForegroundOpacity(); got != dimWhileDragging {
		t.Fatalf("opacity while dragging = %v", got)
	}
	if out := f.plot.PointerUp(); out != OutcomeRemove {
		t.Fatalf("outcome = %v", out)
	}
	a, _ := f.reg.Get("A")
	if a.ParallelOrder != -1 {
		t.Fatalf("A order = %d", a.ParallelOrder)
	}
	if _, ok := f.plot.Extent("A"); ok {
		t.Fatalf("A extent survived removal")
	}
	if got := orders(t, f.reg, []string{"B", "C"}); fmt.Sprint(got) != "[0 1]" {
		t.Fatalf("remaining orders = %v", got)
	}
	if len(f.data.Selected().Get()) != 2 {
		t.Fatalf("removed axis still filters")
	}
	if f.plot.Remove("A") {
		t.Fatalf("removing a hidden axis should be a no-op")
	}
}

func TestScenarioResizeRescalesExtents(t *testing.T) {
	cols := []string{"A", "B"}
	var vals [][]float64
	for i := 0; i <= 60; i++ {
		vals = append(vals, []float64{float64(i), float64(i % 7)})
	}
	f := newFixture(t, cols, mkRows(cols, vals...), 200, 600)
	f.plot.SetExtent("A", &Extent{Lo: 100, Hi: 200})
	f.plot.Recompute()
	before := uids(f.data.Selected().Get())

	f.plot.Resize(Box{Width: 200, Height: 300})
	e, _ := f.plot.Extent("A")
	if !near(e.Lo, 50) || !near(e.Hi, 100) {
		t.Fatalf("extent = %+v, want [50,100]", e)
	}
	s, _ := f.plot.Scale("A")
	if s.Range != [2]float64{300, 0} {
		t.Fatalf("range = %v", s.Range)
	}
	if fmt.Sprint(before) != fmt.Sprint(uids(f.data.Selected().Get())) {
		t.Fatalf("resize changed the selected values")
	}
}

func TestResizeToNothingIsIgnored(t *testing.T) {
	cols := []string{"A"}
	f := newFixture(t, cols, mkRows(cols, []float64{1}, []float64{2}), 100, 100)
	gen := f.plot.Generation()
	if f.plot.Resize(Box{Width: 0, Height: 50}) {
		t.Fatal("zero width accepted")
	}
	if f.plot.Resize(Box{Width: 50, Height: -3}) {
		t.Fatal("negative height accepted")
	}
	if f.plot.Height() != 100 || f.plot.Generation() != gen {
		t.Fatalf("ignored resize changed state")
	}
	s, _ := f.plot.Scale("A")
	if math.IsNaN(s.Range[0]) {
		t.Fatalf("NaN leaked into scale")
	}
}

func TestClickInvertsTwice(t *testing.T) {
	cols := []string{"A", "B"}
	f := newFixture(t, cols, mkRows(cols, []float64{0, 1}, []float64{10, 2}, []float64{5, 3}), 200, 600)
	f.plot.SetExtent("A", &Extent{Lo: 280, Hi: 400})
	f.plot.Recompute()
	sel := uids(f.data.Selected().Get())
	if fmt.Sprint(sel) != "[2]" {
		t.Fatalf("selected %v before inverting", sel)
	}
	orig, _ := f.plot.Scale("A")

	f.plot.PointerDown("A")
	if out := f.plot.PointerUp(); out != OutcomeInvert {
		t.Fatalf("outcome = %v", out)
	}
	e, _ := f.plot.Extent("A")
	if !near(e.Lo, 200) || !near(e.Hi, 320) {
		t.Fatalf("mirrored extent = %+v", e)
	}
	if def, _ := f.reg.Get("A"); !def.ParallelInverted {
		t.Fatalf("inverted flag not persisted")
	}
	if fmt.Sprint(sel) != fmt.Sprint(uids(f.data.Selected().Get())) {
		t.Fatalf("inversion changed the selection")
	}

	f.plot.PointerDown("A")
	f.plot.PointerUp()
	s, _ := f.plot.Scale("A")
	e, _ = f.plot.Extent("A")
	if s.Range != orig.Range || !near(e.Lo, 280) || !near(e.Hi, 400) {
		t.Fatalf("double invert: range %v extent %+v", s.Range, e)
	}
	if f.plot.Invert("missing") {
		t.Fatalf("inverting an unknown axis should be a no-op")
	}
}

func TestDragReorderKeepsOrderDense(t *testing.T) {
	cols := []string{"a", "b", "c", "d", "e"}
	f := newFixture(t, cols, mkRows(cols, []float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1}), 400, 100)
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 40; i++ {
		order := f.plot.Order()
		if len(order) == 0 {
			break
		}
		d := order[rnd.Intn(len(order))]
		f.plot.PointerDown(d)
		for j := rnd.Intn(4); j > 0; j-- {
			f.plot.PointerMove(rnd.Float64()*300 - 150)
		}
		f.plot.PointerUp()
		assertDense(t, f)
	}
}

func TestDragMoveReordersAxes(t *testing.T) {
	cols := []string{"a", "b", "c"}
	f := newFixture(t, cols, mkRows(cols, []float64{1, 2, 3}, []float64{3, 2, 1}), 232, 100)
	// axes at 16, 116, 216
	f.plot.PointerDown("a")
	f.plot.PointerMove(150)
	if got := fmt.Sprint(f.plot.Order()); got != "[b a c]" {
		t.Fatalf("order while dragging = %s", got)
	}
	if out := f.plot.PointerUp(); out != OutcomeReorder {
		t.Fatalf("outcome = %v", out)
	}
	if got := orders(t, f.reg, cols); fmt.Sprint(got) != "[1 0 2]" {
		t.Fatalf("persisted orders = %v", got)
	}
}

func TestDragCancelsRendering(t *testing.T) {
	cols := []string{"a", "b"}
	var vals [][]float64
	for i := 0; i < 100; i++ {
		vals = append(vals, []float64{float64(i), float64(100 - i)})
	}
	f := newFixture(t, cols, mkRows(cols, vals...), 200, 100)
	gen := f.plot.Generation()
	f.plot.Step(gen)
	f.plot.PointerDown("a")
	f.plot.PointerMove(5)
	strokes := f.fg.strokes
	if f.plot.Step(gen) || f.fg.strokes != strokes {
		t.Fatalf("stale generation drew after a drag move")
	}
}

func TestGenerationCancellation(t *testing.T) {
	cols := []string{"a", "b"}
	var vals [][]float64
	for i := 0; i < 500; i++ {
		vals = append(vals, []float64{float64(i), float64(i * i)})
	}
	f := newFixture(t, cols, mkRows(cols, vals...), 200, 100)

	var stale int
	var drawingFor uint64
	f.fg.onDraw = func() {
		if drawingFor != f.plot.Generation() {
			stale++
		}
	}
	g := f.plot.Generation()
	drawingFor = g
	if !f.plot.Step(g) {
		t.Fatal("first batch finished everything")
	}
	f.plot.SetExtent("a", &Extent{Lo: 0, Hi: 50})
	f.plot.Recompute()
	g2 := f.plot.Generation()
	if g2 <= g {
		t.Fatalf("recompute did not start a new generation")
	}
	for f.plot.Step(g) {
	}
	drawingFor = g2
	f.drain()
	if stale != 0 {
		t.Fatalf("%d draw calls ran for a superseded generation", stale)
	}
	if got := len(f.data.Rendered().Get()); got != len(f.data.Selected().Get()) {
		t.Fatalf("rendered %d of %d", got, len(f.data.Selected().Get()))
	}
}

func TestColorByChangeRerenders(t *testing.T) {
	cols := []string{"a", "b"}
	f := newFixture(t, cols, mkRows(cols, []float64{1, 2}, []float64{2, 1}), 200, 100)
	f.plot.SetExtent("a", &Extent{Lo: 0, Hi: 100})
	g := f.plot.Generation()
	f.colorby.Set("b")
	if f.plot.Generation() == g {
		t.Fatalf("color change did not start a generation")
	}
	if _, ok := f.plot.Extent("a"); !ok {
		t.Fatalf("color change cleared a brush")
	}
}

func TestDatasetReplaceClearsBrushes(t *testing.T) {
	cols := []string{"a", "b"}
	f := newFixture(t, cols, mkRows(cols, []float64{1, 2}, []float64{2, 1}), 200, 100)
	f.plot.SetExtent("a", &Extent{Lo: 0, Hi: 10})
	f.plot.Recompute()

	next := []frame.Row{
		{UID: "x", Values: map[string]frame.Value{"b": frame.Num(3)}},
		{UID: "y", Values: map[string]frame.Value{"b": frame.Num(4)}},
	}
	f.data.All().Set(next)
	if _, ok := f.plot.Extent("a"); ok {
		t.Fatalf("extent survived dataset replace")
	}
	if got := fmt.Sprint(f.plot.Order()); got != "[b]" {
		t.Fatalf("axes = %s, want the vanished column dropped", got)
	}
	if got := uids(f.data.Selected().Get()); fmt.Sprint(got) != "[x y]" {
		t.Fatalf("selected = %v", got)
	}
}

func TestSetTypeRebuildsScale(t *testing.T) {
	cols := []string{"a"}
	f := newFixture(t, cols, mkRows(cols, []float64{1}, []float64{100}), 100, 100)
	if !f.plot.SetType("a", params.NumericLog) {
		t.Fatal("log type refused")
	}
	s, _ := f.plot.Scale("a")
	if s.Kind != params.NumericLog {
		t.Fatalf("kind = %v", s.Kind)
	}
	if f.plot.SetType("a", params.Type(99)) {
		t.Fatal("unknown type accepted")
	}
}

func TestLineBreaksOnMissingValue(t *testing.T) {
	cols := []string{"a", "b", "c"}
	rows := mkRows(cols, []float64{1, math.NaN(), 3}, []float64{2, 5, 4},
		[]float64{1, math.Inf(1), 3}, []float64{1, math.Inf(-1), 3})
	f := newFixture(t, cols, rows, 300, 100)
	for _, i := range []int{0, 2, 3} {
		f.fg.ops = nil
		f.plot.renderer.path(f.fg, rows[i], color.Black)
		if got := fmt.Sprint(f.fg.ops); got != "[M C L S M C L S]" {
			t.Fatalf("row %d: ops = %s", i, got)
		}
	}
	f.fg.ops = nil
	f.plot.renderer.path(f.fg, rows[1], color.Black)
	if got := fmt.Sprint(f.fg.ops); got != "[M C C C L S]" {
		t.Fatalf("ops = %s", got)
	}
}

func TestHighlightDimsForeground(t *testing.T) {
	cols := []string{"a", "b"}
	f := newFixture(t, cols, mkRows(cols, []float64{0, 1}, []float64{10, 2}), 200, 100)
	s, _ := f.plot.Scale("a")
	f.plot.HighlightNear("a", s.Map(frame.Num(10)), 1, 5)
	if got := uids(f.data.Highlighted().Get()); fmt.Sprint(got) != "[1]" {
		t.Fatalf("highlighted = %v", got)
	}
	if f.hl.strokes != 1 {
		t.Fatalf("overlay strokes = %d", f.hl.strokes)
	}
	if f.plot.ForegroundOpacity() != dimWhileHighlights {
		t.Fatalf("opacity = %v", f.plot.ForegroundOpacity())
	}
	f.plot.ClearHighlight()
	if f.plot.ForegroundOpacity() != 1 || f.hl.clears < 2 {
		t.Fatalf("highlight not cleared")
	}
}

func TestDatasetReplaceClearsHighlight(t *testing.T) {
	cols := []string{"a", "b"}
	f := newFixture(t, cols, mkRows(cols, []float64{0, 1}, []float64{10, 2}), 200, 100)
	s, _ := f.plot.Scale("a")
	f.plot.HighlightNear("a", s.Map(frame.Num(10)), 1, 5)
	if len(f.data.Highlighted().Get()) != 1 {
		t.Fatalf("nothing highlighted")
	}
	clears := f.hl.clears
	f.data.All().Set(mkRows(cols, []float64{3, 4}, []float64{5, 6}))
	if got := f.data.Highlighted().Get(); len(got) != 0 {
		t.Fatalf("highlight survived dataset replace: %v", uids(got))
	}
	if f.plot.ForegroundOpacity() != 1 {
		t.Fatalf("opacity = %v after replace", f.plot.ForegroundOpacity())
	}
	if f.hl.clears == clears {
		t.Fatalf("overlay not cleared")
	}
}

func TestResizeClearsHighlight(t *testing.T) {
	cols := []string{"a", "b"}
	f := newFixture(t, cols, mkRows(cols, []float64{0, 1}, []float64{10, 2}), 200, 100)
	s, _ := f.plot.Scale("a")
	f.plot.HighlightNear("a", s.Map(frame.Num(10)), 1, 5)
	if f.plot.ForegroundOpacity() != dimWhileHighlights {
		t.Fatalf("opacity = %v", f.plot.ForegroundOpacity())
	}
	f.plot.Resize(Box{Width: 300, Height: 160})
	if got := f.data.Highlighted().Get(); len(got) != 0 {
		t.Fatalf("highlight survived resize: %v", uids(got))
	}
	if f.plot.ForegroundOpacity() != 1 {
		t.Fatalf("opacity = %v after resize", f.plot.ForegroundOpacity())
	}
}

func TestNonPositiveInitialBatchStillDraws(t *testing.T) {
	rendered := observe.NewCollection(observe.Rendered)
	for _, initial := range []int{0, -5} {
		opts := DefaultOptions().Render
		opts.Initial = initial
		r := NewRenderer(&recorder{}, &recorder{}, &staticProj{}, rendered, opts, rand.New(rand.NewSource(1)))
		if r.BatchSize() != opts.MinBatch {
			t.Fatalf("initial %d: batch size %d, want %d", initial, r.BatchSize(), opts.MinBatch)
		}
		rows := make([]frame.Row, 20)
		for i := range rows {
			rows[i] = frame.Row{UID: strconv.Itoa(i)}
		}
		gen := r.Start(rows)
		for r.Step(gen) {
		}
		if got := len(rendered.Get()); got != len(rows) {
			t.Fatalf("initial %d: rendered %d rows", initial, got)
		}
	}
}

func TestDetachStopsNotifications(t *testing.T) {
	cols := []string{"a"}
	f := newFixture(t, cols, mkRows(cols, []float64{1}, []float64{2}), 100, 100)
	f.plot.Detach()
	id := f.plot.SelectionID()
	f.data.All().Set(mkRows(cols, []float64{3}))
	f.colorby.Set("a")
	if f.plot.SelectionID() != id {
		t.Fatalf("detached plot recomputed")
	}
}

func TestBatchSizeAdapts(t *testing.T) {
	fg, hl := &recorder{}, &recorder{}
	rendered := observe.NewCollection(observe.Rendered)
	opts := DefaultOptions().Render
	proj := &staticProj{}
	r := NewRenderer(fg, hl, proj, rendered, opts, rand.New(rand.NewSource(1)))
	now := time.Unix(0, 0)
	step := 60 * time.Millisecond
	r.Now = func() time.Time { return now }

	rows := make([]frame.Row, 1000)
	for i := range rows {
		rows[i] = frame.Row{UID: strconv.Itoa(i)}
	}
	gen := r.Start(rows)
	now = now.Add(step)
	r.Step(gen)
	if r.BatchSize() != opts.MinBatch {
		t.Fatalf("slow batch: size %d, want clamp to %d", r.BatchSize(), opts.MinBatch)
	}
	step = 10 * time.Millisecond
	now = now.Add(step)
	r.Step(gen)
	if r.BatchSize() != 24 {
		t.Fatalf("fast batch: size %d, want 24", r.BatchSize())
	}
	r.Step(gen)
	if r.BatchSize() != opts.MaxBatch {
		t.Fatalf("instant batch: size %d, want %d", r.BatchSize(), opts.MaxBatch)
	}
	if got := len(rendered.Get()); got != 10+8+24 {
		t.Fatalf("rendered %d rows", got)
	}
}

type staticProj struct{}

func (staticProj) Order() []string                     { return []string{"a"} }
func (staticProj) Position(string) float64             { return 1 }
func (staticProj) Project(string, frame.Value) float64 { return 1 }

func TestOpacity(t *testing.T) {
	if Opacity(0) != 1 || Opacity(1) != 1 {
		t.Fatalf("small selections should be opaque")
	}
	if got := Opacity(1000); math.Abs(got-2/math.Pow(1000, 0.3)) > 1e-12 || got >= 1 {
		t.Fatalf("Opacity(1000) = %v", got)
	}
	if Opacity(100) <= Opacity(10000) {
		t.Fatalf("opacity must decrease with size")
	}
}

func TestAxisAt(t *testing.T) {
	cols := []string{"a", "b"}
	f := newFixture(t, cols, mkRows(cols, []float64{1, 2}), 232, 100)
	if d, ok := f.plot.AxisAt(18, 3); !ok || d != "a" {
		t.Fatalf("AxisAt(18) = %q,%v", d, ok)
	}
	if _, ok := f.plot.AxisAt(100, 3); ok {
		t.Fatalf("AxisAt between axes should miss")
	}
}
