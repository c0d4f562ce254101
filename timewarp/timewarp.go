// Package timewarp maps the frames of an animation onto the rows of its data.
package timewarp

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrDateMismatch is returned when series do not share the same dates.
var ErrDateMismatch = errors.New("series have different dates")

// ErrFrameRange is returned for an invalid range of frames per row.
var ErrFrameRange = errors.New("invalid frames per row")

// ErrNoSeries is returned when there is nothing to map.
var ErrNoSeries = errors.New("no series")

// ErrUnknownMapping is returned by ByName for an unknown mapping.
var ErrUnknownMapping = errors.New("unknown time mapping")

// Series is a sequence of dated rows with a value per patch.
type Series interface {
	Dates() []string
	Row(row int) []float64
}

// FrameMap maps a frame index to a data row. Rows are in increasing order and every row has at least one frame.
type FrameMap []int

// Frames returns the number of frames.
func (m FrameMap) Frames() int {
	return len(m)
}

// Row returns the data row of frame. Frames past either end map to the first or last row.
func (m FrameMap) Row(frame int) int {
	if len(m) == 0 {
		return 0
	}
	return m[max(0, min(frame, len(m)-1))]
}

// sharedDates returns the dates shared by all series.
func sharedDates(series []Series) ([]string, error) {
	if len(series) == 0 {
		return nil, ErrNoSeries
	}
	dates := series[0].Dates()
	for i, s := range series[1:] {
		if !slices.Equal(dates, s.Dates()) {
			return nil, fmt.Errorf("series %d: %w", i+1, ErrDateMismatch)
		}
	}
	return dates, nil
}

// MapBasic maps every row onto exactly one frame.
func MapBasic(series ...Series) (FrameMap, error) {
	dates, err := sharedDates(series)
	if err != nil {
		return nil, err
	}
	m := make(FrameMap, len(dates))
	for i := range m {
		m[i] = i
	}
	return m, nil
}

// MapDelta gives each row between minFrames and maxFrames frames, so that the animation slows down on days that change a lot. The change of a row is the largest over all series of the difference between the largest absolute value of the row and that of the previous row, and the first row changes as much as the second. Changes are normalised over all rows; when all changes are equal every row gets minFrames.
func MapDelta(minFrames, maxFrames int, series ...Series) (FrameMap, error) {
	if minFrames < 1 || maxFrames < minFrames {
		return nil, fmt.Errorf("%d to %d: %w", minFrames, maxFrames, ErrFrameRange)
	}
	dates, err := sharedDates(series)
	if err != nil {
		return nil, err
	}

	deltas := make([]float64, len(dates))
	for _, s := range series {
		prev := 0.0
		for row := range dates {
			peak := 0.0
			for _, v := range s.Row(row) {
				if !math.IsNaN(v) && !math.IsInf(v, 0) {
					peak = math.Max(peak, math.Abs(v))
				}
			}
			if 0 < row {
				deltas[row] = math.Max(deltas[row], math.Abs(peak-prev))
			}
			prev = peak
		}
	}
	if 1 < len(deltas) {
		deltas[0] = deltas[1] // the first row has no previous row
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, delta := range deltas {
		lo, hi = math.Min(lo, delta), math.Max(hi, delta)
	}

	m := FrameMap{}
	for row, delta := range deltas {
		rel := 0.0
		if lo < hi {
			rel = (delta - lo) / (hi - lo)
		}
		frames := int(float64(maxFrames-minFrames)*rel + float64(minFrames))
		for i := 0; i < frames; i++ {
			m = append(m, row)
		}
	}
	return m, nil
}

// Mappings are the names accepted by ByName.
var Mappings = []string{"basic", "delta"}

// ByName returns the frame map of the named mapping, either "basic" or "delta".
func ByName(name string, minFrames, maxFrames int, series ...Series) (FrameMap, error) {
	switch name {
	case "basic":
		return MapBasic(series...)
	case "delta":
		return MapDelta(minFrames, maxFrames, series...)
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownMapping)
}
