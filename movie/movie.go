// Package movie renders the frames of an animation and writes them as an image sequence or an animated GIF.
package movie

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tdewolff/patchanim/raster"
	"github.com/tdewolff/patchanim/widget"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"
)

// Writer encodes a single frame.
type Writer func(w io.Writer, img image.Image) error

// PNGWriter writes frames as PNG files.
func PNGWriter() Writer {
	return func(w io.Writer, img image.Image) error {
		return png.Encode(w, img)
	}
}

// JPGWriter writes frames as JPG files.
func JPGWriter(opts *jpeg.Options) Writer {
	return func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, opts)
	}
}

// GIFWriter writes frames as single-image GIF files.
func GIFWriter(opts *gif.Options) Writer {
	return func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, opts)
	}
}

// TIFFWriter writes frames as TIFF files.
func TIFFWriter(opts *tiff.Options) Writer {
	return func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, opts)
	}
}

// WriterFor returns the frame writer for the extension of filename.
func WriterFor(filename string) (Writer, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
		return PNGWriter(), nil
	case ".jpg", ".jpeg":
		return JPGWriter(nil), nil
	case ".gif":
		return GIFWriter(nil), nil
	case ".tif", ".tiff":
		return TIFFWriter(&tiff.Options{Compression: tiff.Deflate}), nil
	default:
		return nil, fmt.Errorf("unknown image extension %q", ext)
	}
}

////////////////////////////////////////////////////////////////

// FrameFunc draws frame onto dst.
type FrameFunc func(dst widget.Surface, frame int)

// Options are the options of a movie.
type Options struct {
	Width, Height int
	FPS           int
	Background    color.Color
	Logger        *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// render draws frame onto a new image.
func (o Options) render(render FrameFunc, frame int) *image.RGBA {
	surface := raster.NewSurface(o.Width, o.Height)
	if o.Background != nil {
		surface.Fill(o.Background)
	}
	render(surface, frame)
	return surface.Image()
}

// FramePattern returns the filename pattern of an image sequence. A filename without a formatting verb gets a frame number before its extension.
func FramePattern(filename string) string {
	if strings.Contains(filename, "%") {
		return filename
	}
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "%05d" + ext
}

// WriteSequence writes frames as numbered images following pattern, such as "frame%05d.png". Frames are rendered in order and encoded in parallel.
func WriteSequence(ctx context.Context, pattern string, frames int, render FrameFunc, opts Options) error {
	writer, err := WriterFor(pattern)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for frame := 0; frame < frames; frame++ {
		if gctx.Err() != nil {
			break
		}
		img := opts.render(render, frame)
		filename := fmt.Sprintf(pattern, frame)
		g.Go(func() error {
			f, err := os.Create(filename)
			if err != nil {
				return err
			}
			if err := writer(f, img); err != nil {
				f.Close()
				return fmt.Errorf("%s: %w", filename, err)
			}
			return f.Close()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	} else if err := ctx.Err(); err != nil {
		return err
	}
	opts.logger().Printf("wrote %d frames to %s", frames, pattern)
	return nil
}

// Delay returns the delay between frames of a GIF in hundredths of a second.
func Delay(fps int) int {
	if fps <= 0 {
		return 100
	}
	return max(1, (100+fps/2)/fps)
}

// WriteGIF writes frames as an animated GIF that loops forever. Frames are rendered in order and quantised to the web-safe palette in parallel.
func WriteGIF(ctx context.Context, w io.Writer, frames int, render FrameFunc, opts Options) error {
	anim := &gif.GIF{
		Image: make([]*image.Paletted, frames),
		Delay: make([]int, frames),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for frame := 0; frame < frames; frame++ {
		if gctx.Err() != nil {
			break
		}
		img := opts.render(render, frame)
		anim.Delay[frame] = Delay(opts.FPS)
		g.Go(func() error {
			paletted := image.NewPaletted(img.Bounds(), palette.WebSafe)
			draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, img.Bounds().Min)
			anim.Image[frame] = paletted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	} else if err := ctx.Err(); err != nil {
		return err
	}
	return gif.EncodeAll(w, anim)
}

// Write writes frames to filename, as an animated GIF for the .gif extension and as an image sequence otherwise.
func Write(ctx context.Context, filename string, frames int, render FrameFunc, opts Options) error {
	if strings.ToLower(filepath.Ext(filename)) != ".gif" || strings.Contains(filename, "%") {
		return WriteSequence(ctx, FramePattern(filename), frames, render, opts)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteGIF(ctx, f, frames, render, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	opts.logger().Printf("wrote %d frames to %s", frames, filename)
	return nil
}
