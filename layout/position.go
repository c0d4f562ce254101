package layout

import "strconv"

// Positioner decides where a widget's top-left corner goes once the size of the widget is known. Widgets call it from Render, so that layout code can place widgets without the widgets knowing about each other.
type Positioner interface {
	Position(size Size) Point
}

// PositionerFunc adapts a function to a Positioner.
type PositionerFunc func(Size) Point

// Position calls f(size).
func (f PositionerFunc) Position(size Size) Point {
	return f(size)
}

// Fixed puts the top-left corner at a fixed point regardless of size.
type Fixed Point

// Position returns the fixed point.
func (f Fixed) Position(Size) Point {
	return Point(f)
}

// Align is the alignment along one axis.
type Align int

// see Align
const (
	Start Align = iota // left or top
	Middle
	End // right or bottom
)

func (a Align) String() string {
	switch a {
	case Start:
		return "Start"
	case Middle:
		return "Middle"
	case End:
		return "End"
	}
	return "Invalid(" + strconv.Itoa(int(a)) + ")"
}

func (a Align) offset(space, size float64) float64 {
	switch a {
	case Middle:
		return (space - size) / 2.0
	case End:
		return space - size
	}
	return 0.0
}

// Aligned aligns the widget inside a region, horizontally by H and vertically by V. A widget larger than the region overflows it on the side opposite to the alignment.
type Aligned struct {
	Region Rect
	H, V   Align
}

// Position returns the top-left corner of size aligned inside the region.
func (a Aligned) Position(size Size) Point {
	return Point{
		a.Region.X + a.H.offset(a.Region.W, size.W),
		a.Region.Y + a.V.offset(a.Region.H, size.H),
	}
}

// Centered centres the widget inside region.
func Centered(region Rect) Aligned {
	return Aligned{region, Middle, Middle}
}
