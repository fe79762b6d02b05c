package parallel

import "math"

// DragState is the axis drag gesture. The zero value is Idle.
type DragState struct {
	Active bool
	Dim    string
	// Origin is the axis x when the pointer went down; Acc accumulates the
	// unclamped pointer travel from there.
	Origin float64
	Acc    float64
	X      float64
	Moved  bool
}

// Outcome is what releasing the pointer does to the dragged axis.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeInvert
	OutcomeReorder
	OutcomeRemove
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvert:
		return "invert"
	case OutcomeReorder:
		return "reorder"
	case OutcomeRemove:
		return "remove"
	}
	return "none"
}

// Down starts dragging dim from its current x. It is ignored while another
// drag is in progress.
func (s DragState) Down(dim string, x float64) DragState {
	if s.Active {
		return s
	}
	return DragState{Active: true, Dim: dim, Origin: x, Acc: x, X: x}
}

// Move applies dx of pointer travel, clamping the provisional x to
// [0, width]. Any move, even of zero length, counts as a drag.
func (s DragState) Move(dx, width float64) DragState {
	if !s.Active {
		return s
	}
	s.Acc += dx
	s.X = math.Min(width, math.Max(0, s.Acc))
	s.Moved = true
	return s
}

// NearEdge reports whether the provisional x is within threshold of either
// side of the plot.
func (s DragState) NearEdge(width, threshold float64) bool {
	return s.Active && (s.X < threshold || s.X > width-threshold)
}

// Up ends the gesture. Near an edge the axis is removed; otherwise a press
// without movement inverts it and a drag commits the new order.
func (s DragState) Up(width, threshold float64) (DragState, Outcome) {
	if !s.Active {
		return s, OutcomeNone
	}
	out := OutcomeReorder
	switch {
	case s.NearEdge(width, threshold):
		out = OutcomeRemove
	case !s.Moved:
		out = OutcomeInvert
	}
	return DragState{}, out
}
