package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/cornerplot/internal/fsutil"
)

// PNGRenderer draws figures with gonum/plot and writes one PNG per figure.
type PNGRenderer struct {
	fs     fsutil.FileSystem
	dir    string
	viewer Viewer
}

// NewPNGRenderer creates a renderer writing into dir. viewer may be nil.
func NewPNGRenderer(fs fsutil.FileSystem, dir string, viewer Viewer) *PNGRenderer {
	return &PNGRenderer{fs: fs, dir: dir, viewer: viewer}
}

// Render writes fig to <dir>/corners_NN.png and shows it if a viewer is set.
func (r *PNGRenderer) Render(ctx context.Context, fig Figure) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	side := vg.Length(fig.sizeInches()) * vg.Inch
	p, err := buildPlot(fig, side)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(side, side, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	_, err = publish(r.fs, r.dir, fig.fileName("png"), buf.Bytes(), r.viewer)
	return err
}

// aspectPasses bounds the refinement of equal-aspect limits. Tick labels
// move with the limits, so the data area is re-measured after each pass.
const aspectPasses = 4

func buildPlot(fig Figure, side vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel

	if fig.Grid {
		p.Add(plotter.NewGrid())
	}

	pts := make(plotter.XYs, len(fig.Points))
	for i, pt := range fig.Points {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	sc.GlyphStyle.Radius = vg.Points(4)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)

	if fig.Label != "" {
		p.Legend.Add(fig.Label, sc)
		p.Legend.Top = true
		p.Legend.XOffs = -10
		p.Legend.YOffs = -10
	}

	// Fixed limits after Add, which would otherwise autoscale each axis.
	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = fig.Bounds()

	if fig.EqualAspect {
		equalizeScale(p, side)
	}
	return p, nil
}

// equalizeScale widens one axis so a data unit spans the same length on
// both axes of a side x side canvas. The title and axis decorations make
// the data area non-square even on a square canvas.
func equalizeScale(p *plot.Plot, side vg.Length) {
	xmid, ymid := (p.X.Min+p.X.Max)/2, (p.Y.Min+p.Y.Max)/2
	xspan, yspan := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min
	if xspan <= 0 || yspan <= 0 {
		return
	}

	for i := 0; i < aspectPasses; i++ {
		w, h := dataArea(p, side)
		if w <= 0 || h <= 0 {
			return
		}
		// Points per unit that fits both base spans.
		scale := math.Min(w/xspan, h/yspan)
		xs, ys := w/scale, h/scale
		p.X.Min, p.X.Max = xmid-xs/2, xmid+xs/2
		p.Y.Min, p.Y.Max = ymid-ys/2, ymid+ys/2
	}
}

// dataArea measures the width and height, in points, that p leaves for
// data on a side x side canvas.
func dataArea(p *plot.Plot, side vg.Length) (w, h float64) {
	da := p.DataCanvas(draw.New(vgimg.New(side, side)))
	return float64(da.Max.X - da.Min.X), float64(da.Max.Y - da.Min.Y)
}
