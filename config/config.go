// Package config holds the configuration of an animation job, loaded from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/patchanim/gis"
	"github.com/tdewolff/patchanim/raster"
	"github.com/tdewolff/patchanim/timewarp"
	"github.com/wroge/wgs84/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for a configuration with invalid values.
var ErrInvalid = errors.New("invalid configuration")

// Limits of the configurable values.
const (
	MinFPS        = 1
	MaxFPS        = 24
	MinTextHeight = 5
	MaxTextHeight = 60
)

// Panel is one map of the animation with its scale, description and optional graphs.
type Panel struct {
	Name        string `yaml:"name"`
	GIS         string `yaml:"gis"`         // shapefile or GeoJSON file of the patches
	CSV         string `yaml:"csv"`         // directory of ReportN.csv files
	Field       string `yaml:"field"`       // report column to show
	Transform   string `yaml:"transform"`   // value transformation, see gis.Transformations
	Statistics  string `yaml:"statistics"`  // graphed statistics such as "Min + Max", or "None"
	PerField    bool   `yaml:"per_field"`   // graph every field number separately
	Description string `yaml:"description"` // with {name}, {field}, {csv}, {gis} and {transform} placeholders
}

// Layout are the distances of the frame layout in pixels.
type Layout struct {
	Border         float64 `yaml:"border"`
	ScaleWidth     float64 `yaml:"scale_width"`
	TextOffset     float64 `yaml:"text_offset"`
	MarkerSize     float64 `yaml:"marker_size"`
	SigFigs        int     `yaml:"sig_figs"`
	GraphRatio     float64 `yaml:"graph_ratio"`      // height over width of the graph
	GraphMaxHeight float64 `yaml:"graph_max_height"` // fraction of the frame height
}

// Colours are hexadecimal colours such as "#ff0000".
type Colours struct {
	Background string `yaml:"background"`
	Text       string `yaml:"text"`
	Edge       string `yaml:"edge"`
	Broken     string `yaml:"broken"` // patches without data
}

// Projection reprojects patches between EPSG coordinate reference systems. Zero disables it.
type Projection struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// Config is an animation job.
type Config struct {
	Title      string     `yaml:"title"`
	Output     string     `yaml:"output"` // .gif, or an image sequence such as frame%05d.png
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	FPS        int        `yaml:"fps"`
	TextHeight int        `yaml:"text_height"`
	Font       string     `yaml:"font"`
	Timewarp   string     `yaml:"timewarp"`
	MinFrames  int        `yaml:"min_frames_per_day"`
	MaxFrames  int        `yaml:"max_frames_per_day"`
	EdgeRender bool       `yaml:"edge_render"`
	EdgeWidth  float64    `yaml:"edge_width"`
	Layout     Layout     `yaml:"layout"`
	Colours    Colours    `yaml:"colours"`
	Projection Projection `yaml:"projection"`
	Panels     []Panel    `yaml:"panels"`
}

// Default returns the default configuration without panels.
func Default() Config {
	return Config{
		Title:      "Model render",
		Output:     "movie.gif",
		Width:      1280,
		Height:     1024,
		FPS:        4,
		TextHeight: 25,
		Font:       "goregular",
		Timewarp:   "basic",
		MinFrames:  1,
		MaxFrames:  5,
		EdgeRender: true,
		EdgeWidth:  1.0,
		Layout: Layout{
			Border:         20.0,
			ScaleWidth:     20.0,
			TextOffset:     5.0,
			MarkerSize:     2.0,
			SigFigs:        2,
			GraphRatio:     0.5,
			GraphMaxHeight: 0.3,
		},
		Colours: Colours{
			Background: "#ffffff",
			Text:       "#000000",
			Edge:       "#000000",
			Broken:     "#ffffff",
		},
	}
}

// Load reads the configuration in filename over the defaults and validates it.
func Load(filename string) (Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(bytes.NewReader(b))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration over the defaults and validates it. Unknown keys are an error.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	for i := range cfg.Panels {
		if cfg.Panels[i].Transform == "" {
			cfg.Panels[i].Transform = "basic"
		}
		if cfg.Panels[i].Description == "" {
			cfg.Panels[i].Description = gis.DefaultDescription
		}
		if cfg.Panels[i].Name == "" {
			cfg.Panels[i].Name = fmt.Sprintf("Panel %d", i+1)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks all values and returns every problem found.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, invalid("size %dx%d", c.Width, c.Height))
	}
	if c.FPS < MinFPS || MaxFPS < c.FPS {
		errs = append(errs, invalid("fps %d not within [%d, %d]", c.FPS, MinFPS, MaxFPS))
	}
	if c.TextHeight < MinTextHeight || MaxTextHeight < c.TextHeight {
		errs = append(errs, invalid("text height %d not within [%d, %d]", c.TextHeight, MinTextHeight, MaxTextHeight))
	}
	if _, ok := raster.Fonts[c.Font]; !ok {
		errs = append(errs, invalid("unknown font %q", c.Font))
	}
	if !slices.Contains(timewarp.Mappings, c.Timewarp) {
		errs = append(errs, invalid("unknown timewarp %q", c.Timewarp))
	}
	if c.MinFrames < 1 || c.MaxFrames < c.MinFrames {
		errs = append(errs, invalid("frames per day [%d, %d]", c.MinFrames, c.MaxFrames))
	}
	if c.EdgeWidth < 0.0 {
		errs = append(errs, invalid("edge width %v", c.EdgeWidth))
	}
	if c.Layout.Border < 0.0 || c.Layout.ScaleWidth < 0.0 || c.Layout.TextOffset < 0.0 || c.Layout.MarkerSize < 0.0 {
		errs = append(errs, invalid("negative layout distance"))
	}
	if c.Layout.SigFigs < 1 {
		errs = append(errs, invalid("significant figures %d", c.Layout.SigFigs))
	}
	if c.Layout.GraphRatio <= 0.0 || c.Layout.GraphMaxHeight <= 0.0 || 1.0 < c.Layout.GraphMaxHeight {
		errs = append(errs, invalid("graph ratio %v and maximum height %v", c.Layout.GraphRatio, c.Layout.GraphMaxHeight))
	}
	for _, hex := range []string{c.Colours.Background, c.Colours.Text, c.Colours.Edge, c.Colours.Broken} {
		if _, err := Colour(hex); err != nil {
			errs = append(errs, invalid("colour %q", hex))
		}
	}
	if (c.Projection.From == 0) != (c.Projection.To == 0) {
		errs = append(errs, invalid("projection from %d to %d", c.Projection.From, c.Projection.To))
	} else if c.Projection.From != 0 {
		if _, err := wgs84.Transform(c.Projection.From, c.Projection.To); err != nil {
			errs = append(errs, invalid("projection from %d to %d: %v", c.Projection.From, c.Projection.To, err))
		}
	}

	if len(c.Panels) == 0 || len(gis.Gradients) < len(c.Panels) {
		errs = append(errs, invalid("%d panels not within [1, %d]", len(c.Panels), len(gis.Gradients)))
	}
	for i, panel := range c.Panels {
		if panel.GIS == "" || panel.CSV == "" || panel.Field == "" {
			errs = append(errs, invalid("panel %d: missing gis, csv or field", i+1))
		}
		if _, ok := gis.Transformations[panel.Transform]; !ok {
			errs = append(errs, invalid("panel %d: unknown transform %q", i+1, panel.Transform))
		}
		for _, stat := range gis.ParseStatistics(panel.Statistics) {
			if _, ok := gis.Statistics[stat]; !ok {
				errs = append(errs, invalid("panel %d: unknown statistic %q", i+1, stat))
			}
		}
	}
	return errors.Join(errs...)
}

// Colour parses a hexadecimal colour.
func Colour(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// MustColour parses a hexadecimal colour of a validated configuration.
func MustColour(hex string) color.RGBA {
	c, err := Colour(hex)
	if err != nil {
		panic(err)
	}
	return c
}
