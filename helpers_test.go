package patchanim

import (
	"fmt"
	"image/color"
	"math"

	"github.com/paulmach/orb"
	"github.com/tdewolff/patchanim/layout"
	"github.com/tdewolff/patchanim/widget"
)

// glyphs are 6 pixels wide and lines are 10 pixels high
type fakeText string

func (t fakeText) Size() layout.Size {
	return layout.Size{6.0 * float64(len(t)), 10.0}
}

type fakeFont struct{}

func (fakeFont) LineHeight() float64 {
	return 10.0
}

func (fakeFont) Render(s string, col color.Color) widget.Text {
	return fakeText(s)
}

type fakeSurface struct {
	bounds layout.Rect
	fills  int
	texts  map[string]layout.Rect
}

func newFakeSurface(w, h float64) *fakeSurface {
	return &fakeSurface{
		bounds: layout.Rect{0, 0, w, h},
		texts:  map[string]layout.Rect{},
	}
}

func boundsOf(points ...layout.Point) layout.Rect {
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		x0, y0 = math.Min(x0, p.X), math.Min(y0, p.Y)
		x1, y1 = math.Max(x1, p.X), math.Max(y1, p.Y)
	}
	return layout.Rect{x0, y0, x1 - x0, y1 - y0}
}

func (s *fakeSurface) Bounds() layout.Rect {
	return s.bounds
}

func (s *fakeSurface) Fill(color.Color) {
	s.fills++
}

func (s *fakeSurface) FillPolygon(rings [][]layout.Point, col color.Color) layout.Rect {
	var points []layout.Point
	for _, ring := range rings {
		points = append(points, ring...)
	}
	return boundsOf(points...)
}

func (s *fakeSurface) Polygon(ring []layout.Point, col color.Color, width float64) layout.Rect {
	return boundsOf(ring...)
}

func (s *fakeSurface) Line(a, b layout.Point, col color.Color) layout.Rect {
	return boundsOf(a, b)
}

func (s *fakeSurface) AALines(points []layout.Point, col color.Color) layout.Rect {
	return boundsOf(points...)
}

func (s *fakeSurface) Blit(text widget.Text, at layout.Point) layout.Rect {
	rect := layout.RectAt(at, text.Size())
	s.texts[string(text.(fakeText))] = rect
	return rect
}

////////////////////////////////////////////////////////////////

// fakeValues has a row per date with the value of every patch
type fakeValues struct {
	dates []string
	rows  [][]float64
}

func newFakeValues(n int, values ...float64) fakeValues {
	v := fakeValues{}
	for i := 0; i < len(values)/n; i++ {
		v.dates = append(v.dates, fmt.Sprintf("2020-01-%02d", i+1))
		v.rows = append(v.rows, values[i*n:(i+1)*n])
	}
	return v
}

func (v fakeValues) Min() float64 {
	min := math.Inf(1)
	for _, row := range v.rows {
		for _, x := range row {
			min = math.Min(min, x)
		}
	}
	return min
}

func (v fakeValues) Max() float64 {
	max := math.Inf(-1)
	for _, row := range v.rows {
		for _, x := range row {
			max = math.Max(max, x)
		}
	}
	return max
}

func (v fakeValues) Colour(x float64) color.Color {
	return color.Gray{uint8(255.0 * (x - v.Min()) / (v.Max() - v.Min()))}
}

// Patches are squares of 10 by 10 next to each other.
func (v fakeValues) Patches() []widget.Patch {
	patches := make([]widget.Patch, len(v.rows[0]))
	for i := range patches {
		x := 10.0 * float64(i)
		patches[i] = widget.Patch{ID: i, Shape: orb.MultiPolygon{{{{x, 0}, {x + 10, 0}, {x + 10, 10}, {x, 10}, {x, 0}}}}}
	}
	return patches
}

func (v fakeValues) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10.0 * float64(len(v.rows[0])), 10}}
}

func (v fakeValues) Value(row, patch int) (float64, bool) {
	if row < 0 || len(v.rows) <= row || patch < 0 || len(v.rows[row]) <= patch {
		return 0.0, false
	}
	return v.rows[row][patch], true
}

func (v fakeValues) Dates() []string {
	return v.dates
}

func (v fakeValues) Row(row int) []float64 {
	return v.rows[row]
}

type fakeGraphable struct {
	fakeValues
}

func (g fakeGraphable) Label() string {
	return "mean"
}

func (g fakeGraphable) At(row int) []float64 {
	return []float64{g.rows[row][0]}
}
