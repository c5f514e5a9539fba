// Package render turns labelled 2D scatter figures into files and, when
// asked, shows them in the platform viewer.
package render

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/cornerplot/internal/config"
	"github.com/banshee-data/cornerplot/internal/fsutil"
)

// ErrUnknownFormat is returned by New for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// XY is one plotted point.
type XY struct {
	X, Y float64
}

// Figure is a single labelled scatter plot.
type Figure struct {
	// Index orders figures within a run and names their output files.
	Index  int
	Title  string
	XLabel string
	YLabel string
	// Label is the legend entry for Points.
	Label  string
	Points []XY

	Grid        bool
	EqualAspect bool
	// SizeInches is the side of the square canvas.
	SizeInches float64
}

// Renderer displays figures.
type Renderer interface {
	Render(ctx context.Context, fig Figure) error
}

// Viewer shows a written figure file.
type Viewer interface {
	Show(path string) error
}

// New returns the renderer for cfg's output format, writing under its output
// directory. viewer may be nil.
func New(cfg *config.PlotConfig, fs fsutil.FileSystem, viewer Viewer) (Renderer, error) {
	dir := cfg.GetOutputDir()
	switch format := cfg.GetFormat(); format {
	case config.FormatPNG:
		return NewPNGRenderer(fs, dir, viewer), nil
	case config.FormatHTML:
		return NewHTMLRenderer(fs, dir, cfg.GetAssetsHost(), viewer), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// boundsPad is the fraction of the data span added around the points.
const boundsPad = 0.25

// Bounds returns axis limits that contain every point. With EqualAspect both
// axes share the same span so a square renders undistorted on a square canvas.
func (f Figure) Bounds() (xmin, xmax, ymin, ymax float64) {
	if len(f.Points) == 0 {
		return -1, 1, -1, 1
	}

	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, p := range f.Points {
		xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
		ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
	}

	xspan, yspan := xmax-xmin, ymax-ymin
	if f.EqualAspect {
		span := math.Max(math.Max(xspan, yspan)*(1+2*boundsPad), 1)
		cx, cy := (xmin+xmax)/2, (ymin+ymax)/2
		return cx - span/2, cx + span/2, cy - span/2, cy + span/2
	}

	xpad := math.Max(xspan*boundsPad, 0.5)
	ypad := math.Max(yspan*boundsPad, 0.5)
	return xmin - xpad, xmax + xpad, ymin - ypad, ymax + ypad
}

func (f Figure) fileName(ext string) string {
	return fmt.Sprintf("corners_%02d.%s", f.Index, ext)
}

func (f Figure) sizeInches() float64 {
	if f.SizeInches <= 0 {
		return 6
	}
	return f.SizeInches
}
