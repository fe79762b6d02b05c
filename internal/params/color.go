package params

import (
	"image/color"
	"math"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/scale"
	"github.com/lucasb-eyer/go-colorful"

	"parcoords/internal/frame"
)

// Sequential gradient for numeric columns, dark blue through yellow.
var numericGradient = palette.RGBGradient{Colors: []color.RGBA{
	{0x44, 0x01, 0x54, 0xff},
	{0x3b, 0x52, 0x8b, 0xff},
	{0x21, 0x90, 0x8d, 0xff},
	{0x5d, 0xc9, 0x63, 0xff},
	{0xfd, 0xe7, 0x25, 0xff},
}}

var missingColor = colorful.Color{R: 0.55, G: 0.55, B: 0.55}

// Color maps a value of this column to a line color with the given alpha.
func (d *Def) Color(v frame.Value, alpha float64) color.Color {
	c := missingColor
	switch {
	case v.IsMissing():
	case d.Type != Categorical && v.Kind == frame.Number && v.Finite():
		if x, ok := d.normalize(v.Num); ok {
			c, _ = colorful.MakeColor(numericGradient.Map(x))
		}
	default:
		if i, ok := d.CategoryIndex(v); ok {
			c = categoryColor(i, len(d.Categories))
		}
	}
	return withAlpha(c, alpha)
}

func (d *Def) normalize(x float64) (float64, bool) {
	if d.Max == d.Min {
		return 0.5, true
	}
	if d.Type == NumericLog && d.Min > 0 && x > 0 {
		l, err := scale.NewLog(d.Min, d.Max, 10)
		if err == nil {
			l.Clamp = true
			return l.Map(x), true
		}
	}
	lin := scale.Linear{Min: d.Min, Max: d.Max, Clamp: true}
	return lin.Map(x), true
}

// categoryColor spaces hues evenly around the HCL wheel.
func categoryColor(i, n int) colorful.Color {
	if n <= 0 {
		return missingColor
	}
	h := 360 * float64(i) / float64(n)
	return colorful.Hcl(h, 0.6, 0.65).Clamped()
}

func withAlpha(c colorful.Color, alpha float64) color.NRGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}
