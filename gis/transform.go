package gis

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

func parseFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Transformation maps the values of a field to new values. Missing values are NaN.
type Transformation func(m *Model, t Table) (Table, error)

// Transformations are the value transformations by name.
var Transformations = map[string]Transformation{
	"basic":       basicValue,
	"time_delta":  timeDeltaValue,
	"field_delta": fieldDeltaValue,
	"per_field":   perFieldValue,
	"exponential": mapValue(math.Exp),
	"log":         mapValue(math.Log),
}

// TransformationNames returns the names of all transformations in alphabetical order.
func TransformationNames() []string {
	names := make([]string, 0, len(Transformations))
	for name := range Transformations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t Table) copy() Table {
	c := make(Table, len(t))
	for patch, values := range t {
		c[patch] = append([]float64{}, values...)
	}
	return c
}

func (t Table) rows() int {
	n := 0
	for _, values := range t {
		n = max(n, len(values))
	}
	return n
}

func basicValue(_ *Model, t Table) (Table, error) {
	return t.copy(), nil
}

// timeDeltaValue is the change since the previous row. The first row has no change.
func timeDeltaValue(_ *Model, t Table) (Table, error) {
	r := make(Table, len(t))
	for patch, values := range t {
		deltas := make([]float64, len(values))
		for row := 1; row < len(values); row++ {
			deltas[row] = values[row] - values[row-1]
		}
		r[patch] = deltas
	}
	return r, nil
}

// fieldDeltaValue is the position of a value between the minimum and maximum of all patches on the same row.
func fieldDeltaValue(_ *Model, t Table) (Table, error) {
	r := t.copy()
	for row := 0; row < t.rows(); row++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, values := range t {
			if row < len(values) && finite(values[row]) {
				lo, hi = math.Min(lo, values[row]), math.Max(hi, values[row])
			}
		}
		for patch, values := range r {
			if row < len(values) && finite(values[row]) {
				r[patch][row] = scaled(values[row], lo, hi)
			}
		}
	}
	return r, nil
}

// perFieldValue is the position of a value between the minimum and maximum of all rows of the patches in the same field.
func perFieldValue(m *Model, t Table) (Table, error) {
	numbers, err := m.FieldNumbers()
	if err != nil {
		return nil, err
	}

	type extent struct{ lo, hi float64 }
	extents := map[int]extent{}
	for patch, values := range t {
		field := numbers[patch]
		e, ok := extents[field]
		if !ok {
			e = extent{math.Inf(1), math.Inf(-1)}
		}
		for _, v := range values {
			if finite(v) {
				e.lo, e.hi = math.Min(e.lo, v), math.Max(e.hi, v)
			}
		}
		extents[field] = e
	}

	r := t.copy()
	for patch, values := range r {
		e := extents[numbers[patch]]
		for row, v := range values {
			if finite(v) {
				values[row] = scaled(v, e.lo, e.hi)
			}
		}
	}
	return r, nil
}

func mapValue(f func(float64) float64) Transformation {
	return func(_ *Model, t Table) (Table, error) {
		r := t.copy()
		for _, values := range r {
			for row, v := range values {
				if v = f(v); finite(v) {
					values[row] = v
				} else {
					values[row] = math.NaN()
				}
			}
		}
		return r, nil
	}
}

// scaled maps v from [lo,hi] to [0,1], an empty range maps to zero.
func scaled(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.0
	}
	return (v - lo) / (hi - lo)
}

// ParseStatistics parses a list of statistics such as "Min + Max".
func ParseStatistics(s string) []string {
	stats := []string{}
	for _, stat := range strings.Split(s, "+") {
		if stat = strings.ToLower(strings.TrimSpace(stat)); stat != "" && stat != "none" {
			stats = append(stats, stat)
		}
	}
	return stats
}
