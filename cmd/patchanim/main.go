package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/patchanim"
	"github.com/tdewolff/patchanim/config"
	"github.com/tdewolff/patchanim/gis"
	"github.com/tdewolff/patchanim/movie"
	"github.com/tdewolff/patchanim/raster"
	"github.com/tdewolff/patchanim/widget"
)

type Render struct {
	Output string `short:"o" desc:"Output filename, overrides the configuration"`
	Frame  int    `short:"f" default:"-1" desc:"Render a single frame to an image"`
	Quiet  bool   `short:"q" desc:"Only log errors"`
	Config string `index:"0" desc:"YAML configuration file"`
}

type Fields struct {
	GIS string `index:"0" desc:"Shapefile or GeoJSON file of the patches"`
	CSV string `index:"1" desc:"Directory of patch reports"`
}

func main() {
	root := argp.NewCmd(&Render{}, "Animate simulated values of geographic patches")
	root.AddCmd(&Fields{}, "fields", "List the fields of the patch reports")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Render) Run() error {
	if cmd.Config == "" {
		return argp.ShowUsage
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cmd.Quiet {
		logger.SetOutput(io.Discard)
	}

	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Output != "" {
		cfg.Output = cmd.Output
	}

	a, err := build(cfg, logger)
	if err != nil {
		return err
	}
	render := func(dst widget.Surface, frame int) {
		a.RenderFrame(dst, frame)
	}
	opts := movieOptions(cfg, logger)

	if 0 <= cmd.Frame {
		if a.Frames() <= cmd.Frame {
			return fmt.Errorf("frame %d out of range, animation has %d frames", cmd.Frame, a.Frames())
		}
		return writeFrame(cfg.Output, cmd.Frame, render, opts)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger.Printf("rendering %d frames", a.Frames())
	return movie.Write(ctx, cfg.Output, a.Frames(), render, opts)
}

func (cmd *Fields) Run() error {
	if cmd.GIS == "" || cmd.CSV == "" {
		return argp.ShowUsage
	}
	model, err := gis.LoadModel(cmd.GIS, cmd.CSV, log.New(os.Stderr, "", 0))
	if err != nil {
		return err
	}
	fmt.Printf("%d patches, %d rows from %s to %s\n", len(model.Patches()), model.Rows(), first(model.Dates()), last(model.Dates()))
	for _, field := range model.Fields() {
		fmt.Println(field)
	}
	return nil
}

func first(dates []string) string {
	if len(dates) == 0 {
		return "-"
	}
	return dates[0]
}

func last(dates []string) string {
	if len(dates) == 0 {
		return "-"
	}
	return dates[len(dates)-1]
}

func movieOptions(cfg config.Config, logger *log.Logger) movie.Options {
	return movie.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		FPS:        cfg.FPS,
		Background: config.MustColour(cfg.Colours.Background),
		Logger:     logger,
	}
}

func writeFrame(filename string, frame int, render movie.FrameFunc, opts movie.Options) error {
	writer, err := movie.WriterFor(filename)
	if err != nil {
		return err
	}
	surface := raster.NewSurface(opts.Width, opts.Height)
	surface.Fill(opts.Background)
	render(surface, frame)

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := writer(f, surface.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// build loads the models of all panels and lays them out as an animation.
func build(cfg config.Config, logger *log.Logger) (*patchanim.Animation, error) {
	type source struct{ gis, csv string }
	models := map[source]*gis.Model{}

	panels := make([]patchanim.Panel, len(cfg.Panels))
	for i, p := range cfg.Panels {
		src := source{p.GIS, p.CSV}
		model, ok := models[src]
		if !ok {
			var err error
			if model, err = loadModel(cfg, p.GIS, p.CSV, logger); err != nil {
				return nil, fmt.Errorf("%s: %w", p.Name, err)
			}
			models[src] = model
		}

		values, err := gis.NewValues(model, p.Field, p.Transform, gis.Gradients[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		panels[i] = patchanim.Panel{
			Values:      values,
			Description: values.Describe(p.Description, p.Name),
		}

		stats := gis.ParseStatistics(p.Statistics)
		if len(stats) == 0 {
			continue
		} else if p.PerField {
			graphs, err := gis.PerField(values, stats)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Name, err)
			}
			for _, g := range graphs {
				panels[i].Graphs = append(panels[i].Graphs, g)
			}
			panels[i].GraphKey = "Fields" + gis.StatisticsLabel(stats) + ": "
		} else {
			g, err := gis.NewGraphable(values, p.Field+gis.StatisticsLabel(stats), stats, nil)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Name, err)
			}
			panels[i].Graphs = []widget.Graphable{g}
		}
	}

	font, err := raster.NamedFont(cfg.Font, float64(cfg.TextHeight))
	if err != nil {
		return nil, err
	}

	textColour := config.MustColour(cfg.Colours.Text)
	opts := patchanim.DefaultOptions
	opts.Title = cfg.Title
	opts.Timewarp = cfg.Timewarp
	opts.MinFrames, opts.MaxFrames = cfg.MinFrames, cfg.MaxFrames
	opts.Border = cfg.Layout.Border
	opts.ScaleWidth = cfg.Layout.ScaleWidth
	opts.GraphRatio = cfg.Layout.GraphRatio
	opts.GraphMax = cfg.Layout.GraphMaxHeight
	opts.Background = config.MustColour(cfg.Colours.Background)
	opts.TextColour = textColour
	opts.Scale = widget.ScaleOptions{
		TextOffset: cfg.Layout.TextOffset,
		MarkerSize: cfg.Layout.MarkerSize,
		SigFigs:    cfg.Layout.SigFigs,
		TextColour: textColour,
	}
	opts.Graph.ScaleOptions = opts.Scale
	opts.Values = widget.ValuesOptions{
		Broken: config.MustColour(cfg.Colours.Broken),
		Edge:   config.MustColour(cfg.Colours.Edge),
	}
	if cfg.EdgeRender {
		opts.Values.EdgeWidth = cfg.EdgeWidth
	}
	opts.Logger = logger
	return patchanim.NewAnimation(font, panels, opts)
}

func loadModel(cfg config.Config, gisFile, csvDir string, logger *log.Logger) (*gis.Model, error) {
	shapes, err := gis.LoadShapes(gisFile)
	if err != nil {
		return nil, err
	}
	if cfg.Projection.From != 0 {
		if err := gis.Reproject(shapes, cfg.Projection.From, cfg.Projection.To); err != nil {
			return nil, err
		}
	}
	reports, err := gis.LoadReports(csvDir, logger)
	if err != nil {
		return nil, err
	}
	model, err := gis.NewModel(shapes, reports)
	if err != nil {
		return nil, err
	}
	model.GIS, model.CSV = gisFile, csvDir
	return model, nil
}
