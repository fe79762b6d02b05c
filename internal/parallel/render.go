package parallel

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"parcoords/internal/frame"
	"parcoords/internal/logging"
	"parcoords/internal/observe"
)

// Surface is a vector draw target. MoveTo starts a new path and Stroke
// draws the current one with the stroke color.
type Surface interface {
	Resize(w, h int)
	Clear()
	SetStroke(c color.Color)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(c1x, c1y, c2x, c2y, x, y float64)
	Stroke()
}

// Projection places row values on the plot.
type Projection interface {
	Order() []string
	Position(dim string) float64
	Project(dim string, v frame.Value) float64
}

type RenderOptions struct {
	Budget    time.Duration
	MinBatch  int
	MaxBatch  int
	Initial   int
	Overshoot float64
}

// Renderer draws rows in batches onto the foreground and on demand onto
// the highlight surface. Every Start begins a new generation; Step only
// draws for the current one.
type Renderer struct {
	fg, hl   Surface
	proj     Projection
	color    func(r frame.Row, alpha float64) color.Color
	rendered *observe.Collection
	opts     RenderOptions

	Now  func() time.Time
	rand *rand.Rand

	gen   uint64
	speed int
	job   *renderJob
}

type renderJob struct {
	gen     uint64
	rows    []frame.Row
	next    int
	opacity float64
	timer   time.Time
}

func NewRenderer(fg, hl Surface, proj Projection, rendered *observe.Collection, opts RenderOptions, rnd *rand.Rand) *Renderer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Renderer{
		fg:       fg,
		hl:       hl,
		proj:     proj,
		rendered: rendered,
		opts:     opts,
		Now:      time.Now,
		rand:     rnd,
		speed:    clampBatch(opts.Initial, opts),
		color:    func(frame.Row, float64) color.Color { return color.Gray{Y: 0x8c} },
	}
}

// SetColor sets the row color function used by later draws.
func (r *Renderer) SetColor(fn func(frame.Row, float64) color.Color) { r.color = fn }

func (r *Renderer) Generation() uint64 { return r.gen }

// BatchSize is the current adaptive batch size.
func (r *Renderer) BatchSize() int { return r.speed }

// Invalidate starts a new generation without drawing, abandoning any
// render in flight.
func (r *Renderer) Invalidate() uint64 {
	r.gen++
	r.job = nil
	return r.gen
}

// Resize resizes both surfaces, which drops what was drawn.
func (r *Renderer) Resize(w, h int) {
	r.Invalidate()
	r.fg.Resize(w, h)
	r.hl.Resize(w, h)
}

// Opacity is the per-line alpha for a selection of n rows.
func Opacity(n int) float64 {
	return math.Min(2/math.Pow(float64(n), 0.3), 1)
}

// Start clears the foreground and schedules rows for drawing under a new
// generation, which it returns.
func (r *Renderer) Start(rows []frame.Row) uint64 {
	gen := r.Invalidate()
	shuffled := append([]frame.Row(nil), rows...)
	r.rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	r.rendered.Set(nil)
	r.fg.Clear()
	r.job = &renderJob{gen: gen, rows: shuffled, opacity: Opacity(len(rows)), timer: r.Now()}
	logging.Debugf("render: gen %d started with %d rows", gen, len(rows))
	return gen
}

// Pending reports whether gen still has rows to draw.
func (r *Renderer) Pending(gen uint64) bool {
	return r.job != nil && r.job.gen == gen && gen == r.gen && r.job.next < len(r.job.rows)
}

// Step draws the next batch of gen and reports whether more remain. A
// superseded generation draws nothing.
func (r *Renderer) Step(gen uint64) bool {
	if !r.Pending(gen) {
		return false
	}
	j := r.job
	end := j.next + r.speed
	if end > len(j.rows) {
		end = len(j.rows)
	}
	batch := j.rows[j.next:end]
	j.next = end
	r.rendered.Append(batch)
	for _, row := range batch {
		r.path(r.fg, row, r.color(row, j.opacity))
	}
	now := r.Now()
	r.speed = r.adapt(now.Sub(j.timer))
	j.timer = now
	if j.next >= len(j.rows) {
		logging.Debugf("render: gen %d done, batch size %d", gen, r.speed)
		r.job = nil
		return false
	}
	return true
}

// adapt scales the batch size toward the time budget.
func (r *Renderer) adapt(delta time.Duration) int {
	if delta <= 0 {
		return r.opts.MaxBatch
	}
	return clampBatch(int(math.Ceil(float64(r.speed)*float64(r.opts.Budget)/float64(delta))), r.opts)
}

// clampBatch keeps n within the batch limits, and never below one row.
func clampBatch(n int, opts RenderOptions) int {
	if n < opts.MinBatch {
		n = opts.MinBatch
	}
	if n > opts.MaxBatch {
		n = opts.MaxBatch
	}
	return max(n, 1)
}

// Highlight redraws the overlay with rows at full opacity.
func (r *Renderer) Highlight(rows []frame.Row) {
	r.hl.Clear()
	for _, row := range rows {
		r.path(r.hl, row, r.color(row, 1))
	}
}

// path strokes one row as smooth curves through its axis points. An
// unplaceable value ends the current stroke; the next valid point starts a
// new one. Strokes overshoot the first and last vertex horizontally.
func (r *Renderer) path(s Surface, row frame.Row, c color.Color) {
	s.SetStroke(c)
	over := r.opts.Overshoot
	started := false
	var x0, y0 float64
	for _, d := range r.proj.Order() {
		x := r.proj.Position(d)
		y := r.proj.Project(d, row.Get(d))
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(y, 0) {
			if started {
				s.LineTo(x0+over, y0)
				s.Stroke()
			}
			started = false
			continue
		}
		if !started {
			x0, y0 = x-over, y
			s.MoveTo(x0, y0)
			started = true
		}
		s.CurveTo(x-0.88*(x-x0), y0, x-0.12*(x-x0), y, x, y)
		x0, y0 = x, y
	}
	if started {
		s.LineTo(x0+over, y0)
		s.Stroke()
	}
}
