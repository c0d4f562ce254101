package widget

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/tdewolff/patchanim/layout"
)

// Palette is the default list of series colours of a graph.
var Palette = []color.Color{
	color.RGBA{255, 0, 0, 255},
	color.RGBA{0, 255, 0, 255},
	color.RGBA{0, 0, 255, 255},
	color.RGBA{100, 100, 0, 255},
	color.RGBA{100, 0, 100, 255},
	color.RGBA{0, 100, 100, 255},
	color.RGBA{100, 100, 100, 255},
	color.RGBA{0, 0, 0, 255},
}

// GraphOptions are the drawing options of a GraphWidget.
type GraphOptions struct {
	ScaleOptions
	Palette []color.Color
	Key     string // text in front of the series labels
	Alpha   uint8  // opacity of the shading between the first and last statistic
}

// DefaultGraphOptions are the default graph options.
var DefaultGraphOptions = GraphOptions{
	ScaleOptions: DefaultScaleOptions,
	Palette:      Palette,
	Key:          "Key: ",
	Alpha:        150,
}

// GraphWidget draws series against the dates, with a value axis on the left, a date axis at the bottom, a cursor at the current row and a key naming the series in their colours.
type GraphWidget struct {
	font   Font
	dates  []Text
	series []Graphable
	min    float64
	max    float64
	GraphOptions
}

// NewGraphWidget returns a graph of series over dates. Every series gets its own colour from the palette.
func NewGraphWidget(font Font, dates []string, series []Graphable, opts GraphOptions) (*GraphWidget, error) {
	if len(series) == 0 {
		return nil, ErrNoSeries
	} else if len(opts.Palette) < len(series) {
		return nil, fmt.Errorf("%d series, %d colours: %w", len(series), len(opts.Palette), ErrTooManySeries)
	}

	w := &GraphWidget{
		font:         font,
		dates:        make([]Text, len(dates)),
		series:       series,
		min:          math.Inf(1),
		max:          math.Inf(-1),
		GraphOptions: opts,
	}
	for i, date := range dates {
		w.dates[i] = font.Render(date, opts.TextColour)
	}
	for _, s := range series {
		w.min = math.Min(w.min, s.Min())
		w.max = math.Max(w.max, s.Max())
	}
	return w, nil
}

// Size returns false, the graph fills the size allotted to it.
func (w *GraphWidget) Size(int) (layout.Size, bool) {
	return layout.Size{}, false
}

// nearest returns the row nearest to x along a date axis of the given width.
func (w *GraphWidget) nearest(x, width float64) int {
	if len(w.dates) < 2 || width <= 0.0 {
		return 0
	}
	row := int(math.Round(x / width * float64(len(w.dates)-1)))
	return max(0, min(row, len(w.dates)-1))
}

// column returns the x of row along a date axis of the given width.
func (w *GraphWidget) column(row int, width float64) float64 {
	if len(w.dates) < 2 {
		return 0.0
	}
	return width * float64(row) / float64(len(w.dates)-1)
}

// Render draws the graph into the allotted size for row.
func (w *GraphWidget) Render(dst Surface, row int, pos layout.Positioner, allotted layout.Size) layout.Rect {
	p := pos.Position(allotted)
	lineHeight := w.font.LineHeight()

	keyY := p.Y + allotted.H - lineHeight
	dateY := keyY - lineHeight
	bottom := dateY - w.MarkerSize
	top := p.Y + lineHeight/2.0
	height := math.Max(bottom-top, 0.0)

	dirty := layout.Rect{}

	// value axis
	texts := map[float64]Text{}
	labels := map[float64]float64{}
	textWidth := 0.0
	for anchor := range layout.Anchors(height, lineHeight, lineHeight, 0) {
		value := w.min
		if 0.0 < height {
			value += (w.max - w.min) * anchor / height
		}
		text := w.font.Render(FormatValue(value, w.SigFigs), w.TextColour)
		texts[anchor] = text
		labels[anchor] = text.Size().H
		textWidth = math.Max(textWidth, text.Size().W)
	}
	left := math.Min(p.X+textWidth+w.TextOffset, p.X+allotted.W)
	width := p.X + allotted.W - left

	placement := layout.Place(layout.Extent{-lineHeight / 2.0, height + lineHeight/2.0}, labels)
	for _, anchor := range sortedKeys(texts) {
		text := texts[anchor]
		size := text.Size()
		placed := clamp(placement.Positions[anchor], size.H/2.0-lineHeight/2.0, height+lineHeight/2.0-size.H/2.0)
		dirty = dirty.Add(dst.Blit(text, layout.Point{left - w.TextOffset - size.W, bottom - placed - size.H/2.0}))
		dirty = dirty.Add(dst.Line(layout.Point{left - w.MarkerSize, bottom - anchor}, layout.Point{left, bottom - anchor}, w.TextColour))
	}
	dirty = dirty.Add(dst.Line(layout.Point{left, top}, layout.Point{left, bottom}, w.TextColour))
	dirty = dirty.Add(dst.Line(layout.Point{left, bottom}, layout.Point{left + width, bottom}, w.TextColour))

	// date axis, a subset of the dates snapped to their rows
	if 0 < len(w.dates) {
		dateWidth := 0.0
		for _, date := range w.dates {
			dateWidth = math.Max(dateWidth, date.Size().W)
		}
		rows := map[float64]int{}
		labels := map[float64]float64{}
		for anchor := range layout.Anchors(width, dateWidth, lineHeight, len(w.dates)) {
			r := w.nearest(anchor, width)
			x := w.column(r, width)
			rows[x] = r
			labels[x] = w.dates[r].Size().W
		}
		placement := layout.Place(layout.Extent{p.X - left, width}, labels)
		for _, x := range sortedKeys(rows) {
			text := w.dates[rows[x]]
			size := text.Size()
			placed := clamp(placement.Positions[x], p.X-left+size.W/2.0, width-size.W/2.0)
			dirty = dirty.Add(dst.Blit(text, layout.Point{left + placed - size.W/2.0, dateY}))
			dirty = dirty.Add(dst.Line(layout.Point{left + x, bottom}, layout.Point{left + x, bottom + w.MarkerSize}, w.TextColour))
		}
	}

	// series
	y := func(v float64) float64 {
		return bottom - relative(v, w.min, w.max)*height
	}
	for i, s := range w.series {
		colour := w.Palette[i]
		var stats [][]layout.Point
		for col := 0; col <= int(width); col++ {
			x := float64(col)
			values := s.At(w.nearest(x, width))
			for j, v := range values {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					continue
				}
				for len(stats) <= j {
					stats = append(stats, nil)
				}
				stats[j] = append(stats[j], layout.Point{left + x, y(v)})
			}
		}
		if 2 <= len(stats) && 0 < w.Alpha {
			first, last := stats[0], stats[len(stats)-1]
			ring := make([]layout.Point, 0, len(first)+len(last))
			ring = append(ring, first...)
			for k := len(last) - 1; 0 <= k; k-- {
				ring = append(ring, last[k])
			}
			dirty = dirty.Add(dst.FillPolygon([][]layout.Point{ring}, withAlpha(colour, w.Alpha)))
		}
		for _, points := range stats {
			if 1 < len(points) {
				dirty = dirty.Add(dst.AALines(points, colour))
			}
		}
	}

	// cursor
	if 0 < len(w.dates) {
		x := left + w.column(max(0, min(row, len(w.dates)-1)), width)
		dirty = dirty.Add(dst.Line(layout.Point{x, top}, layout.Point{x, bottom}, w.TextColour))
	}

	// key
	key := w.font.Render(w.Key, w.TextColour)
	dirty = dirty.Add(dst.Blit(key, layout.Point{p.X, keyY}))
	x := p.X + key.Size().W
	for i, s := range w.series {
		text := w.font.Render(s.Label(), w.Palette[i])
		dirty = dirty.Add(dst.Blit(text, layout.Point{x, keyY}))
		x += text.Size().W + w.TextOffset
	}
	return dirty
}

func sortedKeys[T any](m map[float64]T) []float64 {
	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

// withAlpha returns col with its opacity replaced by alpha.
func withAlpha(col color.Color, alpha uint8) color.Color {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	c.A = alpha
	return c
}
