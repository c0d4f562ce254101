// Package widget implements the drawable parts of an animation frame: text, a colour scale, a line graph and the coloured map of patches.
//
// A widget is rendered with the data row of the frame, a layout.Positioner that decides where it goes once its size is known, and the size the layout allots to it. Every render returns the rectangle it drew to, so that the caller can audit widgets for overlap.
package widget

import (
	"errors"
	"image/color"

	"github.com/paulmach/orb"
	"github.com/tdewolff/patchanim/layout"
)

// ErrTooManySeries is returned when a graph has more series than distinguishable colours.
var ErrTooManySeries = errors.New("too many series for the colour palette")

// ErrNoSeries is returned when a graph has no series to draw.
var ErrNoSeries = errors.New("no series to graph")

// Text is a string rasterised by a Font.
type Text interface {
	Size() layout.Size
}

// Font renders strings into Text that can be blitted onto a Surface.
type Font interface {
	LineHeight() float64
	Render(s string, col color.Color) Text
}

// Surface is a drawing target. Every drawing call returns the rectangle of the geometry it drew.
type Surface interface {
	Bounds() layout.Rect
	Fill(col color.Color)
	FillPolygon(rings [][]layout.Point, col color.Color) layout.Rect // inner rings wound opposite to the outer ring are holes
	Polygon(ring []layout.Point, col color.Color, width float64) layout.Rect
	Line(a, b layout.Point, col color.Color) layout.Rect
	AALines(points []layout.Point, col color.Color) layout.Rect
	Blit(text Text, at layout.Point) layout.Rect
}

// Widget is something that can be drawn onto a Surface for a given data row.
type Widget interface {
	// Size returns the size of the widget for row and true if the widget sizes itself. Widgets that fill the size allotted to them return false.
	Size(row int) (layout.Size, bool)

	// Render draws the widget at the position returned by pos and returns the rectangle it drew to.
	Render(dst Surface, row int, pos layout.Positioner, allotted layout.Size) layout.Rect
}

////////////////////////////////////////////////////////////////

// Domain is a range of values with a colour for every value.
type Domain interface {
	Min() float64
	Max() float64
	Colour(v float64) color.Color
}

// Patch is a geographic unit with its polygons in projected coordinates.
type Patch struct {
	ID    int
	Shape orb.MultiPolygon
}

// Values is a Domain with a value per patch per row.
type Values interface {
	Domain
	Patches() []Patch
	Bound() orb.Bound
	Value(row, patch int) (float64, bool)
}

// Graphable is a named time series with one or more statistics per row, such as the minimum and maximum over all patches.
type Graphable interface {
	Min() float64
	Max() float64
	Label() string
	At(row int) []float64
}

// relative maps v to its position in [min,max], or zero for an empty domain.
func relative(v, min, max float64) float64 {
	if max == min {
		return 0.0
	}
	return (v - min) / (max - min)
}
