package gis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Statistic summarises the finite values of a row. The slice may be reordered.
type Statistic func(xs []float64) float64

// Statistics are the statistics by name.
var Statistics = map[string]Statistic{
	"min": func(xs []float64) float64 {
		m := math.Inf(1)
		for _, x := range xs {
			m = math.Min(m, x)
		}
		return m
	},
	"max": func(xs []float64) float64 {
		m := math.Inf(-1)
		for _, x := range xs {
			m = math.Max(m, x)
		}
		return m
	},
	"sum": sum,
	"mean": func(xs []float64) float64 {
		return sum(xs) / float64(len(xs))
	},
	"median": func(xs []float64) float64 {
		sort.Float64s(xs)
		if len(xs)%2 == 1 {
			return xs[len(xs)/2]
		}
		return (xs[len(xs)/2-1] + xs[len(xs)/2]) / 2.0
	},
}

func sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s
}

// Graphable is a series of statistics over the patches of a Values per row.
type Graphable struct {
	label string
	stats []Statistic
	rows  [][]float64
	min   float64
	max   float64
}

// NewGraphable computes the named statistics of values per row over the given patches, or over all patches when patches is nil.
func NewGraphable(values *Values, label string, statistics []string, patches []int) (*Graphable, error) {
	g := &Graphable{
		label: label,
		min:   math.Inf(1),
		max:   math.Inf(-1),
	}
	for _, name := range statistics {
		stat, ok := Statistics[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, ErrUnknownStatistic)
		}
		g.stats = append(g.stats, stat)
	}
	if patches == nil {
		patches = values.patches
	}

	g.rows = make([][]float64, values.Model.Rows())
	xs := make([]float64, 0, len(patches))
	for row := range g.rows {
		xs = xs[:0]
		for _, patch := range patches {
			if x, ok := values.Value(row, patch); ok {
				xs = append(xs, x)
			}
		}
		g.rows[row] = make([]float64, len(g.stats))
		for i, stat := range g.stats {
			if len(xs) == 0 {
				g.rows[row][i] = math.NaN()
				continue
			}
			y := stat(xs)
			g.rows[row][i] = y
			if finite(y) {
				g.min, g.max = math.Min(g.min, y), math.Max(g.max, y)
			}
		}
	}
	if g.max < g.min {
		g.min, g.max = 0.0, 0.0
	}
	return g, nil
}

// PerField returns a graphable per field number, labelled by that number.
func PerField(values *Values, statistics []string) ([]*Graphable, error) {
	numbers, err := values.Model.FieldNumbers()
	if err != nil {
		return nil, err
	}
	fields := map[int][]int{}
	for _, patch := range values.patches {
		if number, ok := numbers[patch]; ok {
			fields[number] = append(fields[number], patch)
		}
	}
	order := make([]int, 0, len(fields))
	for number := range fields {
		order = append(order, number)
	}
	sort.Ints(order)

	graphs := make([]*Graphable, 0, len(order))
	for _, number := range order {
		g, err := NewGraphable(values, strconv.Itoa(number), statistics, fields[number])
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// StatisticsLabel returns a label suffix listing the statistics, such as " (min, max)".
func StatisticsLabel(statistics []string) string {
	return " (" + strings.Join(statistics, ", ") + ")"
}

func (g *Graphable) Min() float64 {
	return g.min
}

func (g *Graphable) Max() float64 {
	return g.max
}

func (g *Graphable) Label() string {
	return g.label
}

// At returns the statistics at row, NaN where no patch has a value.
func (g *Graphable) At(row int) []float64 {
	if row < 0 || len(g.rows) <= row {
		nan := make([]float64, len(g.stats))
		for i := range nan {
			nan[i] = math.NaN()
		}
		return nan
	}
	return g.rows[row]
}
