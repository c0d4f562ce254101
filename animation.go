// Package patchanim renders the simulated values of geographic patches as an animated map, with a colour scale, a description per map, the current date and an optional graph of statistics over time.
package patchanim

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/tdewolff/patchanim/layout"
	"github.com/tdewolff/patchanim/timewarp"
	"github.com/tdewolff/patchanim/widget"
)

// Values are the values of one map, dated by row.
type Values interface {
	widget.Values
	timewarp.Series
}

// Panel is a map of values with its description, drawn in its own column.
type Panel struct {
	Values      Values
	Description string
	Graphs      []widget.Graphable // drawn together in the graph strip
	GraphKey    string             // key text of the graph, the first panel with a key wins
}

// Options are the layout and drawing options of an animation. Distances are in pixels.
type Options struct {
	Title      string
	Timewarp   string // see timewarp.Mappings
	MinFrames  int    // per row, for the delta timewarp
	MaxFrames  int
	Border     float64
	ScaleWidth float64
	GraphRatio float64 // height over width of the graph strip
	GraphMax   float64 // maximum height of the graph strip as a fraction of the frame
	Background color.Color
	TextColour color.Color
	Scale      widget.ScaleOptions
	Graph      widget.GraphOptions
	Values     widget.ValuesOptions
	Logger     *log.Logger
}

// DefaultOptions are the default animation options.
var DefaultOptions = Options{
	Title:      "Model render",
	Timewarp:   "basic",
	MinFrames:  1,
	MaxFrames:  5,
	Border:     20.0,
	ScaleWidth: 20.0,
	GraphRatio: 0.5,
	GraphMax:   0.3,
	Background: color.White,
	TextColour: color.Black,
	Scale:      widget.DefaultScaleOptions,
	Graph:      widget.DefaultGraphOptions,
	Values:     widget.DefaultValuesOptions,
}

type column struct {
	values      *widget.ValuesWidget
	scale       *widget.ScaleWidget
	description *widget.TextWidget
}

// Animation renders the frames of a set of panels. It is not safe for concurrent use.
type Animation struct {
	Options
	frames  timewarp.FrameMap
	dates   []string
	header  *widget.TextWidget
	date    *widget.DynamicTextWidget
	columns []column
	graph   *widget.GraphWidget

	reported map[[2]string]bool
}

// NewAnimation builds the widgets of panels and maps frames to rows. All panels must share the same dates.
func NewAnimation(font widget.Font, panels []Panel, opts Options) (*Animation, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("no panels: %w", timewarp.ErrNoSeries)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	opts.Values.Logger = opts.Logger

	series := make([]timewarp.Series, len(panels))
	for i, panel := range panels {
		series[i] = panel.Values
	}
	frames, err := timewarp.ByName(opts.Timewarp, opts.MinFrames, opts.MaxFrames, series...)
	if err != nil {
		return nil, err
	}

	a := &Animation{
		Options:  opts,
		frames:   frames,
		dates:    panels[0].Values.Dates(),
		header:   widget.NewTextWidget(opts.Title, font, opts.TextColour),
		reported: map[[2]string]bool{},
	}
	a.date = widget.NewDynamicTextWidget(func(row int) string {
		if row < 0 || len(a.dates) <= row {
			return ""
		}
		return a.dates[row]
	}, font, opts.TextColour)

	var graphs []widget.Graphable
	key := ""
	for _, panel := range panels {
		a.columns = append(a.columns, column{
			values:      widget.NewValuesWidget(panel.Values, opts.Values),
			scale:       widget.NewScaleWidget(panel.Values, font, opts.Scale),
			description: widget.NewTextWidget(panel.Description, font, opts.TextColour),
		})
		graphs = append(graphs, panel.Graphs...)
		if key == "" {
			key = panel.GraphKey
		}
	}
	if 0 < len(graphs) {
		graphOpts := opts.Graph
		if key != "" {
			graphOpts.Key = key
		}
		if a.graph, err = widget.NewGraphWidget(font, a.dates, graphs, graphOpts); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Frames returns the number of frames.
func (a *Animation) Frames() int {
	return a.frames.Frames()
}

// Row returns the data row shown in frame.
func (a *Animation) Row(frame int) int {
	return a.frames.Row(frame)
}

// Dirty is the rectangle a widget drew to.
type Dirty struct {
	Name string
	Rect layout.Rect
}

// Overlap is the intersection of the rectangles of two widgets.
type Overlap struct {
	A, B string
	Rect layout.Rect
}

// RenderFrame clears dst and draws frame onto it. It returns the rectangle of every widget drawn.
func (a *Animation) RenderFrame(dst widget.Surface, frame int) []Dirty {
	row := a.frames.Row(frame)
	bounds := dst.Bounds()
	dst.Fill(a.Background)
	b := a.Border

	var dirty []Dirty
	draw := func(name string, w widget.Widget, pos layout.Positioner, allotted layout.Size) {
		dirty = append(dirty, Dirty{name, w.Render(dst, row, pos, allotted)})
	}

	mapsH := bounds.H
	if a.graph != nil {
		graphH := math.Min(bounds.W*a.GraphRatio, bounds.H*a.GraphMax)
		mapsH -= graphH
		region := layout.Rect{bounds.X + b, bounds.Y + mapsH, bounds.W - 2.0*b, graphH - b}
		draw("graph", a.graph, layout.Fixed(region.Min()), region.Size())
	}

	colW := bounds.W / float64(len(a.columns))
	mapSize := layout.Size{colW - 2.0*b, mapsH - 2.0*b}
	for i, col := range a.columns {
		region := layout.Rect{bounds.X + colW*float64(i) + b, bounds.Y + b, mapSize.W, mapSize.H}
		draw(fmt.Sprintf("map %d", i+1), col.values, layout.Centered(region), mapSize)
		draw(fmt.Sprintf("scale %d", i+1), col.scale, layout.Aligned{region, layout.Start, layout.End}, layout.Size{a.ScaleWidth, mapsH / 3.0})
		draw(fmt.Sprintf("description %d", i+1), col.description, layout.Aligned{layout.Rect{region.X, region.Y, region.W, 0.0}, layout.Middle, layout.Start}, layout.Size{})
	}

	top := layout.Rect{bounds.X + b, bounds.Y + b, bounds.W - 2.0*b, 0.0}
	draw("date", a.date, layout.Aligned{top, layout.End, layout.Start}, layout.Size{})
	draw("header", a.header, layout.Fixed(top.Min()), layout.Size{})

	for _, overlap := range Overlaps(dirty) {
		pair := [2]string{overlap.A, overlap.B}
		if !a.reported[pair] {
			a.reported[pair] = true
			a.Logger.Printf("WARNING: %s overlaps %s at %v", overlap.A, overlap.B, overlap.Rect)
		}
	}
	return dirty
}

// Overlaps returns the intersections of every pair of rectangles that share a positive area.
func Overlaps(dirty []Dirty) []Overlap {
	var overlaps []Overlap
	for i := range dirty {
		for j := i + 1; j < len(dirty); j++ {
			if r := dirty[i].Rect.And(dirty[j].Rect); !r.Empty() {
				overlaps = append(overlaps, Overlap{dirty[i].Name, dirty[j].Name, r})
			}
		}
	}
	return overlaps
}
