package widget

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/tdewolff/patchanim/layout"
	"github.com/tdewolff/test"
)

func TestTextWidget(t *testing.T) {
	font := &fakeFont{}
	w := NewTextWidget("Hello\nWorld!", font, color.Black)

	size, ok := w.Size(0)
	test.That(t, ok)
	test.T(t, size, layout.Size{36, 20})

	dst := newFakeSurface(100, 100)
	rect := w.Render(dst, 0, layout.Fixed{5, 7}, layout.Size{})
	test.T(t, rect, layout.Rect{5, 7, 36, 20})
	test.T(t, dst.texts(), []string{"Hello", "World!"})
	test.T(t, dst.ops[1].rect.Min(), layout.Point{5, 17})
}

func TestTextWidgetPositioner(t *testing.T) {
	w := NewTextWidget("abc", &fakeFont{}, color.Black)
	dst := newFakeSurface(100, 100)
	rect := w.Render(dst, 0, layout.Aligned{layout.Rect{0, 0, 100, 100}, layout.End, layout.Start}, layout.Size{})
	test.T(t, rect, layout.Rect{82, 0, 18, 10})
}

func TestDynamicTextWidget(t *testing.T) {
	font := &fakeFont{}
	calls := 0
	w := NewDynamicTextWidget(func(row int) string {
		calls++
		return fmt.Sprint("row ", row)
	}, font, color.Black)
	test.T(t, calls, 0)

	size, ok := w.Size(3)
	test.That(t, ok)
	test.T(t, size, layout.Size{30, 10})
	test.T(t, calls, 1)

	dst := newFakeSurface(100, 100)
	rect := w.Render(dst, 3, layout.Fixed{0, 0}, layout.Size{})
	test.T(t, rect.Size(), size)
	test.T(t, calls, 1)
	test.T(t, font.rendered, 1)

	rect = w.Render(dst, 12, layout.Fixed{0, 0}, layout.Size{})
	test.T(t, rect.Size(), layout.Size{36, 10})
	test.T(t, calls, 2)
	w.Render(dst, 12, layout.Fixed{0, 0}, layout.Size{})
	test.T(t, calls, 2)
	test.T(t, dst.texts(), []string{"row 3", "row 12", "row 12"})

	// going back invalidates the cache
	w.Render(dst, 3, layout.Fixed{0, 0}, layout.Size{})
	test.T(t, calls, 3)
}

func TestDynamicTextWidgetMultiline(t *testing.T) {
	w := NewDynamicTextWidget(func(row int) string {
		return fmt.Sprintf("a\nrow %d", row)
	}, &fakeFont{}, color.Black)
	size, _ := w.Size(0)
	test.T(t, size, layout.Size{30, 20})

	dst := newFakeSurface(100, 100)
	rect := w.Render(dst, 0, layout.Fixed{1, 1}, layout.Size{})
	test.T(t, rect, layout.Rect{1, 1, 30, 20})
}
