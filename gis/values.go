package gis

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
	"github.com/tdewolff/patchanim/widget"
)

// Gradient is a range of hues as fractions of the colour wheel, at full saturation and value.
type Gradient struct {
	From, To float64
}

// Gradients are well separated hue ranges for maps shown side by side.
var Gradients = []Gradient{
	{0.02, 0.24},
	{0.36, 0.63},
	{0.7, 0.95},
}

// Colour returns the colour at t in [0,1].
func (g Gradient) Colour(t float64) color.RGBA {
	t = math.Max(0.0, math.Min(t, 1.0))
	if math.IsNaN(t) {
		t = 0.0
	}
	r, gr, b := colorful.Hsv((g.From+(g.To-g.From)*t)*360.0, 1.0, 1.0).RGB255()
	return color.RGBA{r, gr, b, 255}
}

// Values are the transformed values of a report field, coloured along a gradient between their minimum and maximum.
type Values struct {
	Model     *Model
	Field     string
	Transform string
	Gradient  Gradient

	table    Table
	patches  []int
	min, max float64
}

// NewValues extracts field from the reports of the model and applies the named transformation.
func NewValues(m *Model, field, transform string, gradient Gradient) (*Values, error) {
	f, ok := Transformations[transform]
	if !ok {
		return nil, fmt.Errorf("%s: %w", transform, ErrUnknownTransform)
	}
	table, err := m.Floats(field)
	if err != nil {
		return nil, err
	}
	if table, err = f(m, table); err != nil {
		return nil, fmt.Errorf("%s of %s: %w", transform, field, err)
	}

	v := &Values{
		Model:     m,
		Field:     field,
		Transform: transform,
		Gradient:  gradient,
		table:     table,
		min:       math.Inf(1),
		max:       math.Inf(-1),
	}
	for patch, values := range table {
		v.patches = append(v.patches, patch)
		for _, x := range values {
			if finite(x) {
				v.min, v.max = math.Min(v.min, x), math.Max(v.max, x)
			}
		}
	}
	sort.Ints(v.patches)
	if v.max < v.min {
		v.min, v.max = 0.0, 0.0
	}
	return v, nil
}

// Min returns the smallest value.
func (v *Values) Min() float64 {
	return v.min
}

// Max returns the largest value.
func (v *Values) Max() float64 {
	return v.max
}

// Colour returns the colour of x.
func (v *Values) Colour(x float64) color.Color {
	return v.Gradient.Colour(scaled(x, v.min, v.max))
}

func (v *Values) Patches() []widget.Patch {
	return v.Model.Patches()
}

func (v *Values) Bound() orb.Bound {
	return v.Model.Bound()
}

// Value returns the value of a patch at row, or false if it is missing.
func (v *Values) Value(row, patch int) (float64, bool) {
	values, ok := v.table[patch]
	if !ok || row < 0 || len(values) <= row || !finite(values[row]) {
		return 0.0, false
	}
	return values[row], true
}

// Dates returns the date of every row.
func (v *Values) Dates() []string {
	return v.Model.Dates()
}

// Row returns the values of all patches at row in order of patch number. Missing values are NaN.
func (v *Values) Row(row int) []float64 {
	values := make([]float64, len(v.patches))
	for i, patch := range v.patches {
		if x, ok := v.Value(row, patch); ok {
			values[i] = x
		} else {
			values[i] = math.NaN()
		}
	}
	return values
}

// DefaultDescription is the default format of Describe.
const DefaultDescription = "{name}:\n    Field of interest: {field}\n    CSV: {csv}\n    GIS: {gis}\n    Transform: {transform}"

// Describe fills in the {name}, {field}, {csv}, {gis} and {transform} placeholders of format.
func (v *Values) Describe(format, name string) string {
	return strings.NewReplacer(
		"{name}", name,
		"{field}", v.Field,
		"{csv}", v.Model.CSV,
		"{gis}", v.Model.GIS,
		"{transform}", v.Transform,
	).Replace(format)
}

// Description returns a description of the field, its files and transformation.
func (v *Values) Description() string {
	return fmt.Sprintf("Field of interest: %s\nGIS: %s\nCSV: %s\nTransformation type: %s", v.Field, v.Model.GIS, v.Model.CSV, v.Transform)
}
