package raster

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/patchanim/layout"
	"github.com/tdewolff/patchanim/widget"
	"golang.org/x/image/font/gofont/goregular"
)

const ptPerPx = 72.0 / 25.4 // at one canvas millimeter per pixel

// Font is a font face at a fixed size in pixels.
type Font struct {
	family     *canvas.FontFamily
	size       float64 // in points
	ascent     float64
	lineHeight float64
}

// NewFont parses a TrueType or OpenType font and returns its face at size pixels.
func NewFont(sfnt []byte, size float64) (*Font, error) {
	if size <= 0.0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("bad font size %v", size)
	}
	family := canvas.NewFontFamily("patchanim")
	if err := family.LoadFont(sfnt, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	f := &Font{
		family: family,
		size:   size * ptPerPx,
	}
	metrics := family.Face(f.size).Metrics()
	f.ascent = metrics.Ascent
	f.lineHeight = math.Ceil(metrics.LineHeight)
	return f, nil
}

// DefaultFont returns the Go Regular font at size pixels.
func DefaultFont(size float64) (*Font, error) {
	return NewFont(goregular.TTF, size)
}

// Fonts are the fonts built into the binary by name.
var Fonts = map[string][]byte{
	"goregular":    goregular.TTF,
	"latin-modern": lmroman10regular.TTF,
}

// NamedFont returns a built-in font at size pixels.
func NamedFont(name string, size float64) (*Font, error) {
	sfnt, ok := Fonts[name]
	if !ok {
		return nil, fmt.Errorf("unknown font %q", name)
	}
	return NewFont(sfnt, size)
}

// LineHeight returns the distance between baselines in pixels.
func (f *Font) LineHeight() float64 {
	return f.lineHeight
}

// Render lays out s in col as a single line.
func (f *Font) Render(s string, col color.Color) widget.Text {
	face := f.family.Face(f.size, col)
	return &Text{
		text:   canvas.NewTextLine(face, s, canvas.Left),
		ascent: f.ascent,
		size:   layout.Size{math.Ceil(face.TextWidth(s)), f.lineHeight},
	}
}

// Text is a string laid out by a Font.
type Text struct {
	text   *canvas.Text
	ascent float64
	size   layout.Size
}

// Size returns the size of the text in pixels.
func (t *Text) Size() layout.Size {
	return t.size
}
