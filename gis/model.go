package gis

import (
	"fmt"
	"log"
	"slices"
	"sort"
	"sync"

	"github.com/paulmach/orb"
	"github.com/tdewolff/patchanim/widget"
)

// Model is a set of patches with their shapes and the reports of their simulation. Rows of all reports are aligned by date.
type Model struct {
	GIS, CSV string

	shapes  []Shape
	reports map[int]*Report
	dates   []string
	bound   orb.Bound

	mu     sync.Mutex
	fields map[string]map[int][]string
}

// LoadModel loads the shapes in gis and the reports in the csv directory.
func LoadModel(gis, csv string, logger *log.Logger) (*Model, error) {
	shapes, err := LoadShapes(gis)
	if err != nil {
		return nil, fmt.Errorf("load shapes: %w", err)
	}
	reports, err := LoadReports(csv, logger)
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}
	model, err := NewModel(shapes, reports)
	if err != nil {
		return nil, err
	}
	model.GIS, model.CSV = gis, csv
	return model, nil
}

// NewModel returns the model of shapes and reports by patch number. All reports must have the same dates.
func NewModel(shapes []Shape, reports map[int]*Report) (*Model, error) {
	if len(shapes) == 0 {
		return nil, ErrNoPatches
	}
	m := &Model{
		shapes:  shapes,
		reports: reports,
		fields:  map[string]map[int][]string{},
	}

	m.bound = shapes[0].Shape.Bound()
	for _, shape := range shapes[1:] {
		m.bound = m.bound.Union(shape.Shape.Bound())
	}

	dates, err := m.Field(DateField)
	if err != nil {
		return nil, err
	}
	for _, patch := range m.reportPatches() {
		if m.dates == nil {
			m.dates = dates[patch]
		} else if !slices.Equal(m.dates, dates[patch]) {
			return nil, fmt.Errorf("patch %d: %w", patch, ErrDateMismatch)
		}
	}
	return m, nil
}

// reportPatches returns the patch numbers with a report in increasing order.
func (m *Model) reportPatches() []int {
	patches := make([]int, 0, len(m.reports))
	for patch := range m.reports {
		patches = append(patches, patch)
	}
	sort.Ints(patches)
	return patches
}

// Shapes returns the shapes ordered by patch number.
func (m *Model) Shapes() []Shape {
	return m.shapes
}

// Patches returns the patches ordered by patch number.
func (m *Model) Patches() []widget.Patch {
	patches := make([]widget.Patch, len(m.shapes))
	for i, shape := range m.shapes {
		patches[i] = shape.Patch
	}
	return patches
}

// Bound returns the bounding box of all shapes.
func (m *Model) Bound() orb.Bound {
	return m.bound
}

// Dates returns the date of every row.
func (m *Model) Dates() []string {
	return m.dates
}

// Rows returns the number of rows.
func (m *Model) Rows() int {
	return len(m.dates)
}

// Fields returns the names of the columns of the reports.
func (m *Model) Fields() []string {
	names := map[string]bool{}
	for _, report := range m.reports {
		for _, name := range report.Header {
			names[name] = true
		}
	}
	fields := make([]string, 0, len(names))
	for name := range names {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// Field returns the column name of the report of every patch. Results are cached and must not be modified.
func (m *Model) Field(name string) (map[int][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if field, ok := m.fields[name]; ok {
		return field, nil
	}

	field := make(map[int][]string, len(m.reports))
	for patch, report := range m.reports {
		column, ok := report.Column(name)
		if !ok {
			return nil, &FieldError{Field: name, Patch: patch, Row: -1, Err: ErrUnknownField}
		}
		field[patch] = column
	}
	m.fields[name] = field
	return field, nil
}

// Table is a value per row per patch.
type Table map[int][]float64

// Floats returns the column name of every patch parsed as numbers.
func (m *Model) Floats(name string) (Table, error) {
	field, err := m.Field(name)
	if err != nil {
		return nil, err
	}
	table := make(Table, len(field))
	for patch, column := range field {
		values := make([]float64, len(column))
		for row, cell := range column {
			if values[row], err = parseFloat(cell); err != nil {
				return nil, &FieldError{Field: name, Patch: patch, Row: row, Err: err}
			}
		}
		table[patch] = values
	}
	return table, nil
}

// FieldNumbers returns the field number of every patch, taken from its first row.
func (m *Model) FieldNumbers() (map[int]int, error) {
	table, err := m.Floats(FieldNoField)
	if err != nil {
		return nil, err
	}
	numbers := make(map[int]int, len(table))
	for patch, values := range table {
		if 0 < len(values) {
			numbers[patch] = int(values[0])
		}
	}
	return numbers, nil
}
