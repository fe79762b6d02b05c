package canvas

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestResizeCells(t *testing.T) {
	b := NewBraille(5, 9)
	if b.Cols() != 3 || b.Rows() != 3 {
		t.Fatalf("cells = %dx%d", b.Cols(), b.Rows())
	}
	b.Resize(-1, 0)
	if b.Cols() != 0 || b.Rows() != 0 {
		t.Fatalf("negative resize = %dx%d", b.Cols(), b.Rows())
	}
}

func TestStrokeSetsDots(t *testing.T) {
	b := NewBraille(4, 4)
	b.SetStroke(color.NRGBA{R: 255, A: 255})
	b.MoveTo(0, 0)
	b.LineTo(1, 0)
	b.Stroke()
	c := b.At(0, 0)
	if c.Empty || c.Rune != 0x2800+0x01+0x08 {
		t.Fatalf("cell rune = %U", c.Rune)
	}
	if c.Alpha != 1 {
		t.Fatalf("alpha = %v", c.Alpha)
	}
	if !b.At(1, 0).Empty {
		t.Fatalf("untouched cell is set")
	}
}

func TestFirstStrokeKeepsColor(t *testing.T) {
	b := NewBraille(2, 4)
	b.SetStroke(color.NRGBA{R: 255, A: 128})
	b.MoveTo(0, 0)
	b.LineTo(0, 3)
	b.Stroke()
	b.SetStroke(color.NRGBA{B: 255, A: 128})
	b.MoveTo(1, 0)
	b.LineTo(1, 3)
	b.Stroke()

	c := b.At(0, 0)
	if c.Rune != 0x28ff {
		t.Fatalf("rune = %U", c.Rune)
	}
	if c.Color.R < 0.99 || c.Color.B > 0.01 {
		t.Fatalf("color = %v, want first stroke's red", c.Color)
	}
	a := 128.0 / 255
	want := 1 - math.Pow(1-a, 2)
	if math.Abs(c.Alpha-want) > 1e-3 {
		t.Fatalf("alpha = %v, want %v", c.Alpha, want)
	}
}

func TestOneStrokeCountsOncePerCell(t *testing.T) {
	b := NewBraille(2, 4)
	b.SetStroke(color.NRGBA{G: 255, A: 51})
	b.MoveTo(0, 0)
	b.LineTo(0, 3)
	b.LineTo(1, 3)
	b.LineTo(1, 0)
	b.Stroke()
	if got := b.At(0, 0).Alpha; math.Abs(got-0.2) > 1e-3 {
		t.Fatalf("alpha = %v, want 0.2", got)
	}
}

func TestCurveEndsAtTarget(t *testing.T) {
	b := NewBraille(40, 40)
	b.MoveTo(0, 0)
	b.CurveTo(10, 0, 30, 39, 39, 39)
	b.Stroke()
	if b.At(0, 0).Empty || b.At(19, 9).Empty {
		t.Fatalf("curve end points not drawn")
	}
}

func TestClearAndClip(t *testing.T) {
	b := NewBraille(4, 4)
	b.MoveTo(-20, 2)
	b.LineTo(30, 2)
	b.Stroke()
	if b.At(0, 0).Empty || b.At(1, 0).Empty {
		t.Fatalf("clipped line missing inside the surface")
	}
	b.Clear()
	if !b.At(0, 0).Empty {
		t.Fatalf("clear left dots")
	}
}

func TestComposeAndLines(t *testing.T) {
	fg := NewBraille(4, 4)
	fg.SetStroke(color.NRGBA{R: 255, A: 255})
	fg.MoveTo(0, 0)
	fg.LineTo(0, 3)
	fg.Stroke()
	hl := NewBraille(4, 4)
	hl.SetStroke(color.NRGBA{B: 255, A: 255})
	hl.MoveTo(1, 0)
	hl.LineTo(1, 3)
	hl.Stroke()

	g := Compose(2, 1, colorful.Color{}, Layer{fg, 0.5}, Layer{hl, 1})
	if g.cells[0][0].Rune != 0x28ff {
		t.Fatalf("masks not merged: %U", g.cells[0][0].Rune)
	}
	if c := g.cells[0][0].Color; c.B < 0.99 || c.R > 0.01 {
		t.Fatalf("top layer color not used: %v", c)
	}
	if !g.cells[0][1].Plain {
		t.Fatalf("empty cell should be plain")
	}

	g.Text(1, 0, "xyz", GridCell{Color: colorful.Color{R: 1, G: 1, B: 1}, Bold: true})
	lines := g.Lines()
	if len(lines) != 1 || !strings.Contains(lines[0], "x") || strings.Contains(lines[0], "y") {
		t.Fatalf("lines = %q", lines)
	}
}

func TestStack(t *testing.T) {
	top := Compose(3, 1, colorful.Color{})
	bottom := Compose(2, 2, colorful.Color{})
	bottom.Text(0, 1, "ab", GridCell{})
	g := Stack(top, bottom)
	if g.Cols() != 3 || g.Rows() != 3 {
		t.Fatalf("stacked = %dx%d", g.Cols(), g.Rows())
	}
	if g.cells[2][1].Rune != 'b' || g.cells[2][2].Rune != ' ' || !g.cells[2][2].Plain {
		t.Fatalf("row 2 = %+v", g.cells[2])
	}
}
