package widget

import (
	"image/color"
	"math"
	"strconv"

	"github.com/tdewolff/patchanim/layout"
)

// ScaleOptions are the drawing options of a ScaleWidget.
type ScaleOptions struct {
	TextOffset float64 // gap between the bar and its labels
	MarkerSize float64 // length of the tick marks past the bar
	SigFigs    int     // significant figures of the labels
	TextColour color.Color
}

// DefaultScaleOptions are the default scale options.
var DefaultScaleOptions = ScaleOptions{
	TextOffset: 5.0,
	MarkerSize: 2.0,
	SigFigs:    2,
	TextColour: color.Black,
}

// ScaleWidget is a vertical colour bar over the domain, with the minimum at the bottom and labelled values along its right side.
type ScaleWidget struct {
	domain Domain
	font   Font
	ScaleOptions
}

// NewScaleWidget returns a scale for domain.
func NewScaleWidget(domain Domain, font Font, opts ScaleOptions) *ScaleWidget {
	return &ScaleWidget{
		domain:       domain,
		font:         font,
		ScaleOptions: opts,
	}
}

// Size returns false, the scale fills the size allotted to it.
func (w *ScaleWidget) Size(int) (layout.Size, bool) {
	return layout.Size{}, false
}

// rowValue returns the value at row of a bar of the given height.
func (w *ScaleWidget) rowValue(row, height float64) float64 {
	min, max := w.domain.Min(), w.domain.Max()
	if height <= 0.0 || max == min {
		return min
	}
	return min + (max-min)*row/height
}

// Render draws the scale into the allotted size. Labels are moved apart when they would overlap, but their tick marks stay at the row of their value.
func (w *ScaleWidget) Render(dst Surface, row int, pos layout.Positioner, allotted layout.Size) layout.Rect {
	p := pos.Position(allotted)
	lineHeight := w.font.LineHeight()
	height := math.Max(allotted.H-lineHeight, 0.0)
	base := p.Y + allotted.H - lineHeight/2.0 // y of the bottom row

	texts := map[float64]Text{}
	labels := map[float64]float64{}
	textWidth := 0.0
	for anchor := range layout.Anchors(height, lineHeight, lineHeight, 0) {
		text := w.font.Render(FormatValue(w.rowValue(anchor, height), w.SigFigs), w.TextColour)
		texts[anchor] = text
		labels[anchor] = text.Size().H
		textWidth = math.Max(textWidth, text.Size().W)
	}
	maxX := math.Max(p.X+allotted.W-textWidth-w.TextOffset, p.X)

	dirty := layout.Rect{}
	for y := 0; y <= int(height); y++ {
		colour := w.domain.Colour(w.rowValue(float64(y), height))
		dirty = dirty.Add(dst.Line(layout.Point{p.X, base - float64(y)}, layout.Point{maxX, base - float64(y)}, colour))
	}

	placement := layout.Place(layout.Extent{-lineHeight / 2.0, height + lineHeight/2.0}, labels)
	for _, anchor := range sortedKeys(texts) {
		text := texts[anchor]
		h := text.Size().H
		placed := clamp(placement.Positions[anchor], h/2.0-lineHeight/2.0, height+lineHeight/2.0-h/2.0)
		dirty = dirty.Add(dst.Blit(text, layout.Point{maxX + w.TextOffset, base - placed - h/2.0}))
		dirty = dirty.Add(dst.Line(layout.Point{p.X, base - anchor}, layout.Point{maxX + w.MarkerSize, base - anchor}, w.TextColour))
	}
	return dirty
}

////////////////////////////////////////////////////////////////

// FormatValue formats v rounded to sigFigs significant figures.
func FormatValue(v float64, sigFigs int) string {
	if v == 0.0 {
		return "0"
	} else if sigFigs <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	digits := sigFigs - int(math.Floor(math.Log10(math.Abs(v)))) - 1
	if 0 <= digits {
		scale := math.Pow10(digits)
		v = math.Round(v*scale) / scale
	} else {
		scale := math.Pow10(-digits)
		v = math.Round(v/scale) * scale
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// clamp returns v limited to [lo,hi], or the midpoint when the interval is empty.
func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2.0
	}
	return math.Max(lo, math.Min(v, hi))
}
