// Package raster draws widgets onto an RGBA image through a canvas context.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/patchanim/layout"
	"github.com/tdewolff/patchanim/widget"
	"golang.org/x/image/draw"
)

// Surface is a widget.Surface backed by an RGBA image. Coordinates are in pixels with the origin at the top-left.
type Surface struct {
	img *image.RGBA
	ctx *canvas.Context
}

// New returns a surface that draws to img, which must not be empty.
func New(img *image.RGBA) *Surface {
	// one canvas millimeter per pixel
	ras := rasterizer.FromImage(img, canvas.DPMM(1.0), canvas.LinearColorSpace{})
	ctx := canvas.NewContext(ras)
	ctx.SetCoordSystem(canvas.CartesianIV)
	return &Surface{img, ctx}
}

// NewSurface returns a surface of w by h pixels.
func NewSurface(w, h int) *Surface {
	return New(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// Image returns the image being drawn to.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Bounds returns the extent of the image.
func (s *Surface) Bounds() layout.Rect {
	b := s.img.Bounds()
	return layout.Rect{float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy())}
}

// Fill replaces the whole image by col.
func (s *Surface) Fill(col color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (s *Surface) fill(p *canvas.Path, col color.Color) {
	if p.Empty() {
		return
	}
	s.ctx.Push()
	s.ctx.SetFill(col)
	s.ctx.SetStroke(nil)
	s.ctx.SetFillRule(canvas.NonZero)
	s.ctx.DrawPath(0.0, 0.0, p)
	s.ctx.Pop()
}

func (s *Surface) stroke(p *canvas.Path, col color.Color, width float64) {
	if p.Empty() || width <= 0.0 {
		return
	}
	s.ctx.Push()
	s.ctx.SetFill(nil)
	s.ctx.SetStroke(col)
	s.ctx.SetStrokeWidth(width)
	s.ctx.SetStrokeCapper(canvas.RoundCap)
	s.ctx.SetStrokeJoiner(canvas.RoundJoin)
	s.ctx.DrawPath(0.0, 0.0, p)
	s.ctx.Pop()
}

// FillPolygon fills the area enclosed by rings.
func (s *Surface) FillPolygon(rings [][]layout.Point, col color.Color) layout.Rect {
	var bounds layout.Rect
	p := &canvas.Path{}
	for _, ring := range rings {
		bounds = bounds.Add(boundsOf(ring))
		if len(ring) < 3 {
			continue
		}
		p.MoveTo(ring[0].X, ring[0].Y)
		for _, q := range ring[1:] {
			p.LineTo(q.X, q.Y)
		}
		p.Close()
	}
	if finite(bounds) {
		s.fill(p, col)
	}
	return bounds
}

// Line draws a one pixel wide line through the pixels at a and b, both included.
func (s *Surface) Line(a, b layout.Point, col color.Color) layout.Rect {
	bounds := boundsOf([]layout.Point{a, b})
	if !finite(bounds) {
		return bounds
	}

	// rectangle around the pixel centres, extended by half a pixel at both ends
	d := canvas.Point{b.X - a.X, b.Y - a.Y}
	if d.IsZero() {
		d = canvas.Point{0.5, 0.0}
	} else {
		d = d.Norm(0.5)
	}
	n := d.Rot90CCW()
	p0 := canvas.Point{a.X + 0.5, a.Y + 0.5}.Sub(d)
	p1 := canvas.Point{b.X + 0.5, b.Y + 0.5}.Add(d)

	p := &canvas.Path{}
	p.MoveTo(p0.X+n.X, p0.Y+n.Y)
	p.LineTo(p1.X+n.X, p1.Y+n.Y)
	p.LineTo(p1.X-n.X, p1.Y-n.Y)
	p.LineTo(p0.X-n.X, p0.Y-n.Y)
	p.Close()
	s.fill(p, col)
	return bounds
}

// AALines draws an anti-aliased polyline through points.
func (s *Surface) AALines(points []layout.Point, col color.Color) layout.Rect {
	bounds := boundsOf(points)
	if finite(bounds) {
		s.stroke(polyline(points, false), col, 1.0)
	}
	return bounds
}

// Polygon strokes the outline of ring with the given width.
func (s *Surface) Polygon(ring []layout.Point, col color.Color, width float64) layout.Rect {
	bounds := boundsOf(ring)
	if finite(bounds) {
		s.stroke(polyline(ring, true), col, width)
	}
	return bounds
}

func polyline(points []layout.Point, closed bool) *canvas.Path {
	p := &canvas.Path{}
	if len(points) < 2 {
		return p
	}
	p.MoveTo(points[0].X, points[0].Y)
	for _, q := range points[1:] {
		p.LineTo(q.X, q.Y)
	}
	if closed {
		p.Close()
	}
	return p
}

// Blit draws text with its top-left corner at the given point. Text not rendered by a Font of this package only reports its rectangle.
func (s *Surface) Blit(text widget.Text, at layout.Point) layout.Rect {
	rect := layout.RectAt(at, text.Size())
	if t, ok := text.(*Text); ok {
		s.ctx.DrawText(at.X, at.Y+t.ascent, t.text)
	}
	return rect
}

func boundsOf(points []layout.Point) layout.Rect {
	if len(points) == 0 {
		return layout.Rect{}
	}
	x0, y0 := points[0].X, points[0].Y
	x1, y1 := x0, y0
	for _, p := range points[1:] {
		x0, y0 = min(x0, p.X), min(y0, p.Y)
		x1, y1 = max(x1, p.X), max(y1, p.Y)
	}
	return layout.Rect{x0, y0, x1 - x0, y1 - y0}
}

func finite(r layout.Rect) bool {
	for _, v := range []float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
