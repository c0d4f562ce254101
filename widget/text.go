package widget

import (
	"image/color"
	"math"
	"strings"

	"github.com/tdewolff/patchanim/layout"
)

// TextWidget is static, left-aligned text. Lines are rendered once at construction.
type TextWidget struct {
	lineHeight float64
	lines      []Text
	size       layout.Size
}

// NewTextWidget returns a widget showing text, split on newlines, in font and colour col.
func NewTextWidget(text string, font Font, col color.Color) *TextWidget {
	w := &TextWidget{
		lineHeight: font.LineHeight(),
	}
	w.set(text, font, col)
	return w
}

func (w *TextWidget) set(text string, font Font, col color.Color) {
	w.lines = w.lines[:0]
	width := 0.0
	for _, line := range strings.Split(text, "\n") {
		t := font.Render(line, col)
		width = math.Max(width, t.Size().W)
		w.lines = append(w.lines, t)
	}
	w.size = layout.Size{width, w.lineHeight * float64(len(w.lines))}
}

// Size returns the size of the text.
func (w *TextWidget) Size(int) (layout.Size, bool) {
	return w.size, true
}

// Render blits the lines below each other. The returned rectangle always has the widget's size.
func (w *TextWidget) Render(dst Surface, row int, pos layout.Positioner, allotted layout.Size) layout.Rect {
	p := pos.Position(w.size)
	for i, line := range w.lines {
		dst.Blit(line, layout.Point{p.X, p.Y + float64(i)*w.lineHeight})
	}
	return layout.RectAt(p, w.size)
}

////////////////////////////////////////////////////////////////

// DynamicTextWidget is text that depends on the row, such as the date. The text of the last row is cached, so rendering the same row repeatedly does not rasterise the text again.
type DynamicTextWidget struct {
	TextWidget
	font Font
	col  color.Color
	text func(row int) string

	row   int
	valid bool
}

// NewDynamicTextWidget returns a widget showing text(row) in font and colour col.
func NewDynamicTextWidget(text func(row int) string, font Font, col color.Color) *DynamicTextWidget {
	return &DynamicTextWidget{
		TextWidget: TextWidget{lineHeight: font.LineHeight()},
		font:       font,
		col:        col,
		text:       text,
	}
}

func (w *DynamicTextWidget) update(row int) {
	if !w.valid || w.row != row {
		w.set(w.text(row), w.font, w.col)
		w.row = row
		w.valid = true
	}
}

// Size returns the size of the text for row.
func (w *DynamicTextWidget) Size(row int) (layout.Size, bool) {
	w.update(row)
	return w.size, true
}

// Render blits the text for row.
func (w *DynamicTextWidget) Render(dst Surface, row int, pos layout.Positioner, allotted layout.Size) layout.Rect {
	w.update(row)
	return w.TextWidget.Render(dst, row, pos, allotted)
}
