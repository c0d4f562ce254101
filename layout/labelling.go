package layout

import (
	"iter"
	"math"
)

// Markers returns the number of evenly spaced labels of the given footprint and spacing that fit along length. It never returns fewer than two, so that both ends are always labelled even when the labels will overlap. A positive limit caps the count.
func Markers(length, footprint, spacing float64, limit int) int {
	markers := 2
	if step := footprint + spacing; 0.0 < step {
		if n := math.Floor(length/step) + 1.0; 2.0 < n {
			markers = int(math.Min(n, math.MaxInt32))
		}
	} else if 0 < limit {
		markers = limit
	}
	if 0 < limit && limit < markers {
		markers = limit
	}
	return max(markers, 2)
}

// Anchors returns the label anchors evenly spaced over [0,length], the first at zero and the last at length. The sequence can be iterated any number of times. A non-positive length still yields two anchors near zero; callers should avoid it.
func Anchors(length, footprint, spacing float64, limit int) iter.Seq[float64] {
	markers := Markers(length, footprint, spacing, limit)
	return func(yield func(float64) bool) {
		for i := 0; i < markers-1; i++ {
			if !yield(float64(i) * length / float64(markers-1)) {
				return
			}
		}
		yield(length)
	}
}
