// Package cornerplot renders the corners of a rotating unit square as a
// sequence of x-z scatter figures.
package cornerplot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/banshee-data/cornerplot/internal/config"
	"github.com/banshee-data/cornerplot/internal/geometry"
	"github.com/banshee-data/cornerplot/internal/monitoring"
	"github.com/banshee-data/cornerplot/internal/render"
)

// figureSizeInches is the side of each square figure.
const figureSizeInches = 6

// Plotter renders the corners of the square at a fixed centre.
type Plotter struct {
	center   geometry.Point3D
	renderer render.Renderer

	// next is the index given to the next figure.
	next int
}

// NewPlotter creates a Plotter that hands its figures to r.
func NewPlotter(center geometry.Point3D, r render.Renderer) *Plotter {
	return &Plotter{center: center, renderer: r}
}

// Render draws one figure of the square rotated by rotation radians.
func (p *Plotter) Render(ctx context.Context, rotation float64) error {
	fig := CornerFigure(p.center, rotation)
	fig.Index = p.next
	p.next++

	if err := p.renderer.Render(ctx, fig); err != nil {
		return fmt.Errorf("render %s: %w", fig.Title, err)
	}
	return nil
}

// CornerFigure builds the x-z scatter figure of the square's corners.
func CornerFigure(center geometry.Point3D, rotation float64) render.Figure {
	corners := geometry.GenerateCorners(center, rotation)

	pts := make([]render.XY, 0, len(corners))
	for _, c := range geometry.ProjectXZ(corners[:]) {
		pts = append(pts, render.XY{X: c.X, Y: c.Z})
	}

	return render.Figure{
		Title:       Title(rotation),
		XLabel:      "X",
		YLabel:      "Z",
		Label:       "Corners",
		Points:      pts,
		Grid:        true,
		EqualAspect: true,
		SizeInches:  figureSizeInches,
	}
}

// Title labels a figure with the rotation in degrees.
func Title(rotation float64) string {
	return strconv.FormatFloat(geometry.Degrees(rotation), 'g', -1, 64) + " degrees"
}

// Run renders one figure per angle of cfg's sweep, in order. It stops at the
// first renderer error or when ctx is cancelled between figures.
func Run(ctx context.Context, cfg *config.PlotConfig, r render.Renderer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c := cfg.GetCenter()
	p := NewPlotter(geometry.Point3D{X: c[0], Y: c[1], Z: c[2]}, r)
	angles := geometry.Linspace(cfg.GetStartRad(), cfg.GetEndRad(), cfg.GetSamples())

	monitoring.Logf("Rendering %d figures around (%g, %g, %g)", len(angles), c[0], c[1], c[2])
	for i, rotation := range angles {
		if err := ctx.Err(); err != nil {
			return err
		}
		monitoring.Debugf("figure %d/%d: rotation=%.6f rad", i+1, len(angles), rotation)
		if err := p.Render(ctx, rotation); err != nil {
			return err
		}
	}
	monitoring.Logf("Rendered %d figures", len(angles))
	return nil
}
