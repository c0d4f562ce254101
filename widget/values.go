package widget

import (
	"image/color"
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/tdewolff/patchanim/layout"
)

// ValuesOptions are the drawing options of a ValuesWidget.
type ValuesOptions struct {
	Broken    color.Color // colour of patches without a value
	Edge      color.Color
	EdgeWidth float64 // zero disables edges
	Logger    *log.Logger
}

// DefaultValuesOptions are the default values options.
var DefaultValuesOptions = ValuesOptions{
	Broken:    color.White,
	Edge:      color.Black,
	EdgeWidth: 1.0,
}

// ValuesWidget draws every patch filled with the colour of its value. The map is scaled to fit the allotted size while keeping its aspect ratio.
type ValuesWidget struct {
	values Values
	ValuesOptions
}

// NewValuesWidget returns a map of values.
func NewValuesWidget(values Values, opts ValuesOptions) *ValuesWidget {
	return &ValuesWidget{
		values:        values,
		ValuesOptions: opts,
	}
}

// Size returns false, the map fills the size allotted to it.
func (w *ValuesWidget) Size(int) (layout.Size, bool) {
	return layout.Size{}, false
}

// transform returns the function mapping projected coordinates to the surface. The y-axis is flipped.
func (w *ValuesWidget) transform(pos layout.Positioner, allotted layout.Size) func(orb.Point) layout.Point {
	bound := w.values.Bound()
	bw, bh := bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1]
	scale := math.Inf(1)
	if 0.0 < bw {
		scale = allotted.W / bw
	}
	if 0.0 < bh {
		scale = math.Min(scale, allotted.H/bh)
	}
	if math.IsInf(scale, 1) {
		scale = 1.0
	}

	size := layout.Size{bw * scale, bh * scale}
	offset := pos.Position(size)
	center := bound.Center()
	return func(pt orb.Point) layout.Point {
		return layout.Point{
			offset.X + size.W/2.0 + (pt[0]-center[0])*scale,
			offset.Y + size.H/2.0 - (pt[1]-center[1])*scale,
		}
	}
}

// Render draws the patches for row. Patches without a value for row are drawn in the broken colour and logged.
func (w *ValuesWidget) Render(dst Surface, row int, pos layout.Positioner, allotted layout.Size) layout.Rect {
	logger := w.Logger
	if logger == nil {
		logger = log.Default()
	}

	transform := w.transform(pos, allotted)
	dirty := layout.Rect{}
	var edges [][]layout.Point
	for _, patch := range w.values.Patches() {
		colour := w.Broken
		if v, ok := w.values.Value(row, patch.ID); ok {
			colour = w.values.Colour(v)
		} else {
			logger.Printf("WARNING: no data for patch %d at row %d", patch.ID, row)
		}
		for _, polygon := range patch.Shape {
			rings := make([][]layout.Point, 0, len(polygon))
			for _, ring := range polygon {
				points := make([]layout.Point, len(ring))
				for i, pt := range ring {
					points[i] = transform(pt)
				}
				rings = append(rings, points)
			}
			dirty = dirty.Add(dst.FillPolygon(rings, colour))
			edges = append(edges, rings...)
		}
	}
	if 0.0 < w.EdgeWidth {
		for _, ring := range edges {
			dirty = dirty.Add(dst.Polygon(ring, w.Edge, w.EdgeWidth))
		}
	}
	return dirty
}
