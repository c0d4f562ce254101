package layout

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for float comparisons.
const Epsilon = 1e-10

// equal returns true if a and b are equal with tolerance Epsilon.
func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in pixel space, with Y pointing down.
type Point struct {
	X, Y float64
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return equal(p.X, q.X) && equal(p.Y, q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("[%g; %g]", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// Empty returns true if either dimension is not positive.
func (s Size) Empty() bool {
	return s.W <= 0.0 || s.H <= 0.0
}

// Fits returns true if S fits inside Q with tolerance Epsilon.
func (s Size) Fits(q Size) bool {
	return s.W <= q.W+Epsilon && s.H <= q.H+Epsilon
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.W, s.H)
}

////////////////////////////////////////////////////////////////

// Rect is an axis-aligned rectangle with its top-left corner at (X,Y).
type Rect struct {
	X, Y, W, H float64
}

// RectAt returns the rectangle of size s with its top-left corner at p.
func RectAt(p Point, s Size) Rect {
	return Rect{p.X, p.Y, s.W, s.H}
}

// Empty returns true if the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0.0 || r.H <= 0.0
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{r.X, r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{r.X + r.W, r.Y + r.H}
}

// Size returns the width and height.
func (r Rect) Size() Size {
	return Size{r.W, r.H}
}

// Move translates the rectangle by p.
func (r Rect) Move(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// Add returns the smallest rectangle that contains both R and Q. The zero rectangle is ignored, but a rectangle of zero width or height such as a horizontal line is not.
func (r Rect) Add(q Rect) Rect {
	if q == (Rect{}) {
		return r
	} else if r == (Rect{}) {
		return q
	}
	x0 := math.Min(r.X, q.X)
	y0 := math.Min(r.Y, q.Y)
	x1 := math.Max(r.X+r.W, q.X+q.W)
	y1 := math.Max(r.Y+r.H, q.Y+q.H)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// And returns the intersection of R and Q, which is empty when they do not overlap.
func (r Rect) And(q Rect) Rect {
	x0 := math.Max(r.X, q.X)
	y0 := math.Max(r.Y, q.Y)
	x1 := math.Min(r.X+r.W, q.X+q.W)
	y1 := math.Min(r.Y+r.H, q.Y+q.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Overlaps returns true if R and Q share a region of positive area.
func (r Rect) Overlaps(q Rect) bool {
	return !r.And(q).Empty()
}

// Contains returns true if Q lies inside R with tolerance Epsilon.
func (r Rect) Contains(q Rect) bool {
	return r.X <= q.X+Epsilon && r.Y <= q.Y+Epsilon && q.X+q.W <= r.X+r.W+Epsilon && q.Y+q.H <= r.Y+r.H+Epsilon
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g; %g]--[%g; %g]", r.X, r.Y, r.X+r.W, r.Y+r.H)
}

////////////////////////////////////////////////////////////////

// Extent is the half-open interval [Min,Max) available to labels along one axis.
type Extent struct {
	Min, Max float64
}

// Len returns the length of the extent, which may be negative.
func (e Extent) Len() float64 {
	return e.Max - e.Min
}

// Pad grows the extent by d on both sides.
func (e Extent) Pad(d float64) Extent {
	return Extent{e.Min - d, e.Max + d}
}
