package gis

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
	"github.com/tdewolff/patchanim/widget"
	"github.com/wroge/wgs84/v2"
)

// Shape is a patch with the attributes of its record in the GIS file.
type Shape struct {
	widget.Patch
	Attributes map[string]string
}

// LoadShapefile loads the polygons of a shapefile. The patch number of each record is read from the PN attribute.
func LoadShapefile(filename string) ([]Shape, error) {
	r, err := shp.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	fields := r.Fields()
	shapes := []Shape{}
	for r.Next() {
		row, geom := r.Shape()
		attrs := make(map[string]string, len(fields))
		for i, field := range fields {
			attrs[field.String()] = strings.Trim(r.ReadAttribute(row, i), " \x00")
		}

		var mp orb.MultiPolygon
		switch g := geom.(type) {
		case *shp.Polygon:
			mp = multiPolygon(g.Parts, g.Points)
		case *shp.PolygonZ:
			mp = multiPolygon(g.Parts, g.Points)
		case *shp.PolygonM:
			mp = multiPolygon(g.Parts, g.Points)
		case *shp.Null:
			continue
		default:
			return nil, fmt.Errorf("record %d: unsupported shape type %T", row, geom)
		}

		shape, err := newShape(mp, attrs)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", row, err)
		}
		shapes = append(shapes, shape)
	}
	return sortShapes(shapes)
}

// multiPolygon splits the parts of a shapefile polygon into polygons. Clockwise rings are outer rings, counter-clockwise rings are holes of the preceding outer ring.
func multiPolygon(parts []int32, points []shp.Point) orb.MultiPolygon {
	mp := orb.MultiPolygon{}
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if end <= start || int32(len(points)) < end {
			continue
		}

		ring := make(orb.Ring, 0, end-start)
		for _, p := range points[start:end] {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		if ring.Orientation() == orb.CCW && 0 < len(mp) {
			mp[len(mp)-1] = append(mp[len(mp)-1], ring)
		} else {
			mp = append(mp, orb.Polygon{ring})
		}
	}
	return mp
}

// LoadGeoJSON loads the polygons of a GeoJSON feature collection. The patch number of each feature is read from its PN property.
func LoadGeoJSON(filename string) ([]Shape, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(b)
}

// ParseGeoJSON parses the polygons of a GeoJSON feature collection.
func ParseGeoJSON(b []byte) ([]Shape, error) {
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, err
	}

	shapes := []Shape{}
	for i, f := range fc.Features {
		var mp orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			mp = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			mp = g
		default:
			return nil, fmt.Errorf("feature %d: unsupported geometry %s", i, f.Geometry.GeoJSONType())
		}

		attrs := make(map[string]string, len(f.Properties))
		for key, val := range f.Properties {
			attrs[key] = fmt.Sprint(val)
		}
		shape, err := newShape(mp, attrs)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		shapes = append(shapes, shape)
	}
	return sortShapes(shapes)
}

// LoadShapes loads a shapefile or, for the .geojson and .json extensions, a GeoJSON file.
func LoadShapes(filename string) ([]Shape, error) {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".geojson") || strings.HasSuffix(lower, ".json") {
		return LoadGeoJSON(filename)
	}
	return LoadShapefile(filename)
}

func newShape(mp orb.MultiPolygon, attrs map[string]string) (Shape, error) {
	pn, ok := attrs[PatchField]
	if !ok {
		return Shape{}, fmt.Errorf("missing %s attribute", PatchField)
	}
	f, err := strconv.ParseFloat(pn, 64)
	if err != nil || f != math.Trunc(f) {
		return Shape{}, fmt.Errorf("bad patch number %q", pn)
	}
	return Shape{
		Patch:      widget.Patch{ID: int(f), Shape: mp},
		Attributes: attrs,
	}, nil
}

// sortShapes orders shapes by patch number and fails on duplicates.
func sortShapes(shapes []Shape) ([]Shape, error) {
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].ID < shapes[j].ID
	})
	for i := 1; i < len(shapes); i++ {
		if shapes[i-1].ID == shapes[i].ID {
			return nil, fmt.Errorf("patch %d: %w", shapes[i].ID, ErrDuplicatePatch)
		}
	}
	return shapes, nil
}

// Reproject transforms the shapes in place from one EPSG coordinate reference system to another, such as from 4326 (WGS84) to 32759 (UTM 59 south).
func Reproject(shapes []Shape, from, to int) error {
	transform, err := wgs84.Transform(from, to)
	if err != nil {
		return fmt.Errorf("reproject EPSG:%d to EPSG:%d: %w", from, to, err)
	}

	var perr error
	proj := func(p orb.Point) orb.Point {
		x, y, _, err := transform(p[0], p[1], 0.0)
		if err != nil && perr == nil {
			perr = err
		}
		return orb.Point{x, y}
	}
	for i := range shapes {
		shapes[i].Shape = project.MultiPolygon(shapes[i].Shape, proj)
		if perr != nil {
			return fmt.Errorf("reproject patch %d: %w", shapes[i].ID, perr)
		}
	}
	return nil
}
