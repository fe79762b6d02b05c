package parallel

// Margins around the plot area, in pixels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Box is the size of the container holding the plot.
type Box struct {
	Width, Height float64
}

// Inner is the plot area left inside b. ok is false when either side is not
// positive, in which case nothing should be laid out.
func (b Box) Inner(m Margins) (w, h float64, ok bool) {
	w = b.Width - m.Left - m.Right
	h = b.Height - m.Top - m.Bottom
	if !(w > 0) || !(h > 0) {
		return 0, 0, false
	}
	return w, h, true
}
