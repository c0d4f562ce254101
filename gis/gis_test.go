package gis

import (
	"bytes"
	"errors"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

const squaresGeoJSON = `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"PN":2,"Soil":"clay"},"geometry":{"type":"Polygon","coordinates":[[[10,0],[20,0],[20,10],[10,10],[10,0]]]}},
{"type":"Feature","properties":{"PN":1,"Soil":"loam"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}}
]}`

var reports = map[string]string{
	"Report1.csv": "Clock.Today, Soil.Water, Manager_P.Script.This_field_no\n2020-01-01, 1, 1\n2020-01-02, 3, 1\n2020-01-03, 6, 1\n",
	"Report2.csv": "\ufeffClock.Today,Soil.Water,Manager_P.Script.This_field_no\n2020-01-01,2,2\n2020-01-02,2,2\n2020-01-03,,2\n",
	"Report0.csv": "Clock.Today\n",
	"notes.txt":   "not a report",
}

func writeFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newTestModel(t *testing.T) *Model {
	dir := writeFiles(t, reports)
	if err := os.WriteFile(filepath.Join(dir, "patches.geojson"), []byte(squaresGeoJSON), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadModel(filepath.Join(dir, "patches.geojson"), dir, log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestFindReports(t *testing.T) {
	dir := writeFiles(t, reports)
	buf := &bytes.Buffer{}
	files, err := FindReports(dir, log.New(buf, "", 0))
	test.Error(t, err)
	test.T(t, files, map[int]string{
		1: filepath.Join(dir, "Report1.csv"),
		2: filepath.Join(dir, "Report2.csv"),
	})
	test.That(t, strings.Contains(buf.String(), "ignoring notes.txt"), buf.String())
	test.That(t, strings.Contains(buf.String(), "ignoring Report0.csv"), buf.String())
}

func TestReadReport(t *testing.T) {
	report, err := ReadReport(strings.NewReader("\ufeff A , B\n1, 2\n3\n"))
	test.Error(t, err)
	test.T(t, report.Header, []string{"A", "B"})
	column, ok := report.Column("B")
	test.That(t, ok)
	test.T(t, column, []string{"2", ""})
	_, ok = report.Column("C")
	test.That(t, !ok)

	_, err = ReadReport(strings.NewReader(""))
	test.That(t, err != nil)
}

func TestModel(t *testing.T) {
	m := newTestModel(t)
	test.T(t, m.Dates(), []string{"2020-01-01", "2020-01-02", "2020-01-03"})
	test.T(t, m.Rows(), 3)
	test.T(t, len(m.Patches()), 2)
	test.T(t, m.Patches()[0].ID, 1)
	test.T(t, m.Shapes()[1].Attributes["Soil"], "clay")
	test.T(t, m.Bound().Min[0], 0.0)
	test.T(t, m.Bound().Max[0], 20.0)
	test.T(t, m.Fields(), []string{DateField, FieldNoField, "Soil.Water"})

	numbers, err := m.FieldNumbers()
	test.Error(t, err)
	test.T(t, numbers, map[int]int{1: 1, 2: 2})
}

func TestModelFieldCache(t *testing.T) {
	m := newTestModel(t)
	a, err := m.Field("Soil.Water")
	test.Error(t, err)
	b, err := m.Field("Soil.Water")
	test.Error(t, err)
	a[1][0] = "42"
	test.T(t, b[1][0], "42")

	_, err = m.Field("Soil.Air")
	test.That(t, errors.Is(err, ErrUnknownField))
	var fieldErr *FieldError
	test.That(t, errors.As(err, &fieldErr))
	test.T(t, fieldErr.Field, "Soil.Air")
}

func TestModelFloats(t *testing.T) {
	m := newTestModel(t)
	table, err := m.Floats("Soil.Water")
	test.Error(t, err)
	test.T(t, table[1], []float64{1, 3, 6})
	test.That(t, math.IsNaN(table[2][2]))

	_, err = m.Floats(DateField)
	var fieldErr *FieldError
	test.That(t, errors.As(err, &fieldErr))
	test.T(t, fieldErr.Row, 0)
}

func TestModelDateMismatch(t *testing.T) {
	shapes, err := ParseGeoJSON([]byte(squaresGeoJSON))
	test.Error(t, err)
	a, _ := ReadReport(strings.NewReader("Clock.Today\n2020-01-01\n2020-01-02\n"))
	b, _ := ReadReport(strings.NewReader("Clock.Today\n2020-01-01\n2020-01-03\n"))
	_, err = NewModel(shapes, map[int]*Report{1: a, 2: b})
	test.That(t, errors.Is(err, ErrDateMismatch))

	_, err = NewModel(nil, map[int]*Report{1: a})
	test.That(t, errors.Is(err, ErrNoPatches))
}
