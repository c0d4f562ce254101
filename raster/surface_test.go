package raster

import (
	"image/color"
	"testing"

	"github.com/tdewolff/patchanim/layout"
	"github.com/tdewolff/patchanim/widget"
	"github.com/tdewolff/test"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

var _ widget.Surface = &Surface{}
var _ widget.Font = &Font{}

func TestSurfaceFill(t *testing.T) {
	s := NewSurface(40, 30)
	test.T(t, s.Bounds(), layout.Rect{0, 0, 40, 30})
	s.Fill(white)
	test.T(t, s.Image().RGBAAt(0, 0), white)
	test.T(t, s.Image().RGBAAt(39, 29), white)
}

func TestSurfaceFillPolygon(t *testing.T) {
	s := NewSurface(40, 40)
	s.Fill(white)
	outer := []layout.Point{{0, 0}, {30, 0}, {30, 30}, {0, 30}}
	hole := []layout.Point{{10, 10}, {10, 20}, {20, 20}, {20, 10}}
	rect := s.FillPolygon([][]layout.Point{outer, hole}, red)
	test.T(t, rect, layout.Rect{0, 0, 30, 30})
	test.T(t, s.Image().RGBAAt(5, 5), red)
	test.T(t, s.Image().RGBAAt(15, 15), white)
	test.T(t, s.Image().RGBAAt(35, 35), white)
}

func TestSurfaceFillPolygonOutside(t *testing.T) {
	s := NewSurface(10, 10)
	s.Fill(white)
	square := []layout.Point{{20, 20}, {30, 20}, {30, 30}, {20, 30}}
	rect := s.FillPolygon([][]layout.Point{square}, red)
	test.T(t, rect, layout.Rect{20, 20, 10, 10})
	test.T(t, s.Image().RGBAAt(9, 9), white)
}

func TestSurfaceLine(t *testing.T) {
	s := NewSurface(20, 20)
	s.Fill(white)
	rect := s.Line(layout.Point{2, 5}, layout.Point{8, 5}, black)
	test.T(t, rect, layout.Rect{2, 5, 6, 0})
	for x := 2; x <= 8; x++ {
		test.T(t, s.Image().RGBAAt(x, 5), black, "pixel", x)
	}
	test.T(t, s.Image().RGBAAt(1, 5), white)
	test.T(t, s.Image().RGBAAt(9, 5), white)
	test.T(t, s.Image().RGBAAt(5, 4), white)
	test.T(t, s.Image().RGBAAt(5, 6), white)

	s.Line(layout.Point{12, 12}, layout.Point{12, 12}, black)
	test.T(t, s.Image().RGBAAt(12, 12), black)
}

func TestSurfaceStroke(t *testing.T) {
	s := NewSurface(30, 30)
	s.Fill(white)
	rect := s.AALines([]layout.Point{{2, 10}, {25, 10}}, black)
	test.T(t, rect, layout.Rect{2, 10, 23, 0})
	test.That(t, s.Image().RGBAAt(12, 9) != white || s.Image().RGBAAt(12, 10) != white)
	test.T(t, s.Image().RGBAAt(12, 20), white)

	rect = s.Polygon([]layout.Point{{5, 15}, {20, 15}, {20, 25}, {5, 25}}, red, 2.0)
	test.T(t, rect, layout.Rect{5, 15, 15, 10})
	test.T(t, s.Image().RGBAAt(12, 20), white)
	test.That(t, s.Image().RGBAAt(12, 15) != white)
}

func inked(s *Surface, r layout.Rect) bool {
	for y := int(r.Y); y < int(r.Y+r.H); y++ {
		for x := int(r.X); x < int(r.X+r.W); x++ {
			if s.Image().RGBAAt(x, y) != white {
				return true
			}
		}
	}
	return false
}

func TestFont(t *testing.T) {
	font, err := DefaultFont(12.0)
	test.Error(t, err)
	test.That(t, 12.0 <= font.LineHeight(), font.LineHeight())

	text := font.Render("Hello", black)
	size := text.Size()
	test.Float(t, size.H, font.LineHeight())
	test.That(t, 0.0 < size.W)
	test.That(t, font.Render("Hello, World", black).Size().W > size.W)

	s := NewSurface(100, 40)
	s.Fill(white)
	rect := s.Blit(text, layout.Point{10, 10})
	test.T(t, rect, layout.RectAt(layout.Point{10, 10}, size))
	test.That(t, inked(s, rect), "no text drawn")
	test.T(t, s.Image().RGBAAt(5, 5), white)
	test.That(t, !inked(s, layout.Rect{0, 30, 100, 10}), "text below its line")
}

func TestNamedFont(t *testing.T) {
	for _, name := range []string{"goregular", "latin-modern"} {
		t.Run(name, func(t *testing.T) {
			font, err := NamedFont(name, 20.0)
			test.Error(t, err)
			test.That(t, 20.0 <= font.LineHeight(), font.LineHeight())

			text := font.Render("Patch 42", black)
			test.That(t, 0.0 < text.Size().W)

			s := NewSurface(200, 60)
			s.Fill(white)
			rect := s.Blit(text, layout.Point{20, 20})
			test.That(t, inked(s, rect), "no text drawn")
			test.That(t, !inked(s, layout.Rect{0, 0, 200, 18}), "text above its line")
		})
	}

	_, err := NamedFont("comic-sans", 10.0)
	test.That(t, err != nil)
	_, err = NewFont([]byte("not a font"), 10.0)
	test.That(t, err != nil)
	_, err = DefaultFont(0.0)
	test.That(t, err != nil)
}
