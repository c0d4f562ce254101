package timewarp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

type series struct {
	dates []string
	rows  [][]float64
}

func (s series) Dates() []string {
	return s.dates
}

func (s series) Row(row int) []float64 {
	return s.rows[row]
}

// peaks returns a series with one patch per row
func peaks(vs ...float64) series {
	s := series{}
	for i, v := range vs {
		s.dates = append(s.dates, fmt.Sprintf("2020-01-%02d", i+1))
		s.rows = append(s.rows, []float64{v})
	}
	return s
}

func TestMapBasic(t *testing.T) {
	m, err := MapBasic(peaks(1, 2, 3), peaks(5, 5, 5))
	test.Error(t, err)
	test.T(t, m, FrameMap{0, 1, 2})
	test.T(t, m.Frames(), 3)

	_, err = MapBasic(peaks(1, 2, 3), peaks(1, 2))
	test.That(t, errors.Is(err, ErrDateMismatch))

	_, err = MapBasic()
	test.That(t, errors.Is(err, ErrNoSeries))
}

func TestMapDelta(t *testing.T) {
	var tts = []struct {
		name   string
		series []Series
		m      FrameMap
	}{
		{"constant", []Series{peaks(3, 3, 3, 3)}, FrameMap{0, 1, 2, 3}},
		{"equal deltas", []Series{peaks(1, 2, 3, 4), peaks(10, 9, 8, 7)}, FrameMap{0, 1, 2, 3}},
		{"varying", []Series{peaks(0, 0, 10, 10, 15)}, FrameMap{0, 1, 2, 2, 2, 2, 2, 3, 4, 4, 4}},
		{"largest per series", []Series{peaks(0, 0, 10, 10, 15), peaks(0, 5, 5, 5, 5)}, FrameMap{0, 0, 0, 1, 1, 1, 2, 2, 2, 2, 2, 3, 4, 4, 4}},
		{"absolute", []Series{peaks(0, 0, -10, -10, 15)}, FrameMap{0, 1, 2, 2, 2, 2, 2, 3, 4, 4, 4}},
		{"single row", []Series{peaks(42)}, FrameMap{0}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MapDelta(1, 5, tt.series...)
			test.Error(t, err)
			test.T(t, m, tt.m)
		})
	}
}

func TestMapDeltaPeak(t *testing.T) {
	// the change of a row compares the largest absolute values over all patches
	s := series{
		dates: []string{"a", "b", "c"},
		rows:  [][]float64{{1, -2}, {-2, 1}, {8, 0}},
	}
	m, err := MapDelta(2, 4, s)
	test.Error(t, err)
	test.T(t, m, FrameMap{0, 0, 1, 1, 2, 2, 2, 2})
}

func TestMapDeltaCoverage(t *testing.T) {
	s := peaks(3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9)
	for _, frames := range [][2]int{{1, 1}, {1, 5}, {2, 3}, {3, 10}} {
		t.Run(fmt.Sprint(frames), func(t *testing.T) {
			m, err := MapDelta(frames[0], frames[1], s)
			test.Error(t, err)
			test.That(t, len(s.dates)*frames[0] <= m.Frames())
			test.That(t, m.Frames() <= len(s.dates)*frames[1])
			test.T(t, m[0], 0)
			test.T(t, m[len(m)-1], len(s.dates)-1)
			for i := 1; i < len(m); i++ {
				test.That(t, m[i]-m[i-1] == 0 || m[i]-m[i-1] == 1, "frame", i)
			}
		})
	}
}

func TestMapDeltaErrors(t *testing.T) {
	_, err := MapDelta(0, 5, peaks(1, 2))
	test.That(t, errors.Is(err, ErrFrameRange))
	_, err = MapDelta(3, 2, peaks(1, 2))
	test.That(t, errors.Is(err, ErrFrameRange))
	_, err = MapDelta(1, 5, peaks(1, 2), peaks(1, 2, 3))
	test.That(t, errors.Is(err, ErrDateMismatch))
}

func TestFrameMapRow(t *testing.T) {
	m := FrameMap{0, 0, 1, 2, 2}
	test.T(t, m.Row(0), 0)
	test.T(t, m.Row(2), 1)
	test.T(t, m.Row(-1), 0)
	test.T(t, m.Row(99), 2)
	test.T(t, FrameMap{}.Row(3), 0)
}

func TestByName(t *testing.T) {
	m, err := ByName("basic", 1, 5, peaks(0, 0, 10))
	test.Error(t, err)
	test.T(t, m, FrameMap{0, 1, 2})

	m, err = ByName("delta", 1, 5, peaks(0, 0, 10))
	test.Error(t, err)
	test.T(t, m, FrameMap{0, 1, 2, 2, 2, 2, 2})

	_, err = ByName("smooth", 1, 5, peaks(0, 0, 10))
	test.That(t, errors.Is(err, ErrUnknownMapping))
}
