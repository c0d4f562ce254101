package widget

import (
	"image/color"
	"math"

	"github.com/paulmach/orb"
	"github.com/tdewolff/patchanim/layout"
)

// glyphs are 6 pixels wide and lines are 10 pixels high
type fakeText struct {
	s   string
	col color.Color
}

func (t fakeText) Size() layout.Size {
	return layout.Size{6.0 * float64(len(t.s)), 10.0}
}

type fakeFont struct {
	rendered int
}

func (f *fakeFont) LineHeight() float64 {
	return 10.0
}

func (f *fakeFont) Render(s string, col color.Color) Text {
	f.rendered++
	return fakeText{s, col}
}

type op struct {
	kind string
	rect layout.Rect
	col  color.Color
	text string
}

type fakeSurface struct {
	bounds layout.Rect
	ops    []op
}

func newFakeSurface(w, h float64) *fakeSurface {
	return &fakeSurface{bounds: layout.Rect{0, 0, w, h}}
}

func boundsOf(points ...layout.Point) layout.Rect {
	if len(points) == 0 {
		return layout.Rect{}
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		x0, y0 = math.Min(x0, p.X), math.Min(y0, p.Y)
		x1, y1 = math.Max(x1, p.X), math.Max(y1, p.Y)
	}
	return layout.Rect{x0, y0, x1 - x0, y1 - y0}
}

func (s *fakeSurface) record(kind string, rect layout.Rect, col color.Color, text string) layout.Rect {
	s.ops = append(s.ops, op{kind, rect, col, text})
	return rect
}

func (s *fakeSurface) Bounds() layout.Rect {
	return s.bounds
}

func (s *fakeSurface) Fill(col color.Color) {
	s.record("fill", s.bounds, col, "")
}

func (s *fakeSurface) FillPolygon(rings [][]layout.Point, col color.Color) layout.Rect {
	var points []layout.Point
	for _, ring := range rings {
		points = append(points, ring...)
	}
	return s.record("polygon", boundsOf(points...), col, "")
}

func (s *fakeSurface) Polygon(ring []layout.Point, col color.Color, width float64) layout.Rect {
	return s.record("outline", boundsOf(ring...), col, "")
}

func (s *fakeSurface) Line(a, b layout.Point, col color.Color) layout.Rect {
	return s.record("line", boundsOf(a, b), col, "")
}

func (s *fakeSurface) AALines(points []layout.Point, col color.Color) layout.Rect {
	return s.record("aalines", boundsOf(points...), col, "")
}

func (s *fakeSurface) Blit(text Text, at layout.Point) layout.Rect {
	t := text.(fakeText)
	return s.record("blit", layout.RectAt(at, t.Size()), t.col, t.s)
}

func (s *fakeSurface) filter(kind string) []op {
	var ops []op
	for _, o := range s.ops {
		if o.kind == kind {
			ops = append(ops, o)
		}
	}
	return ops
}

func (s *fakeSurface) texts() []string {
	var texts []string
	for _, o := range s.filter("blit") {
		texts = append(texts, o.text)
	}
	return texts
}

////////////////////////////////////////////////////////////////

// fakeDomain maps values onto shades of grey
type fakeDomain struct {
	min, max float64
}

func (d fakeDomain) Min() float64 { return d.min }
func (d fakeDomain) Max() float64 { return d.max }

func (d fakeDomain) Colour(v float64) color.Color {
	return color.Gray{uint8(255.0 * relative(v, d.min, d.max))}
}

type fakeValues struct {
	fakeDomain
	patches []Patch
	values  []map[int]float64
}

func (v fakeValues) Patches() []Patch {
	return v.patches
}

func (v fakeValues) Bound() orb.Bound {
	b := v.patches[0].Shape.Bound()
	for _, patch := range v.patches[1:] {
		b = b.Union(patch.Shape.Bound())
	}
	return b
}

func (v fakeValues) Value(row, patch int) (float64, bool) {
	if row < 0 || len(v.values) <= row {
		return 0.0, false
	}
	value, ok := v.values[row][patch]
	return value, ok
}

func square(x, y, size float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y}}}}
}

type fakeGraphable struct {
	label string
	rows  [][]float64
}

func (g fakeGraphable) Min() float64 {
	min := math.Inf(1)
	for _, row := range g.rows {
		for _, v := range row {
			min = math.Min(min, v)
		}
	}
	return min
}

func (g fakeGraphable) Max() float64 {
	max := math.Inf(-1)
	for _, row := range g.rows {
		for _, v := range row {
			max = math.Max(max, v)
		}
	}
	return max
}

func (g fakeGraphable) Label() string {
	return g.label
}

func (g fakeGraphable) At(row int) []float64 {
	return g.rows[row]
}
