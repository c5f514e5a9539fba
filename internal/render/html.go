package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/cornerplot/internal/fsutil"
)

// pixelsPerInch converts figure sizes to chart dimensions.
const pixelsPerInch = 100

// HTMLRenderer writes each figure as a standalone go-echarts scatter page.
type HTMLRenderer struct {
	fs     fsutil.FileSystem
	dir    string
	viewer Viewer

	// assetsHost overrides where the echarts javascript is loaded from.
	assetsHost string
}

// NewHTMLRenderer creates a renderer writing into dir. assetsHost may be
// empty to use the go-echarts default; viewer may be nil.
func NewHTMLRenderer(fs fsutil.FileSystem, dir, assetsHost string, viewer Viewer) *HTMLRenderer {
	return &HTMLRenderer{fs: fs, dir: dir, assetsHost: assetsHost, viewer: viewer}
}

// Render writes fig to <dir>/corners_NN.html and shows it if a viewer is set.
func (r *HTMLRenderer) Render(ctx context.Context, fig Figure) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.buildChart(fig).Render(&buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	_, err := publish(r.fs, r.dir, fig.fileName("html"), buf.Bytes(), r.viewer)
	return err
}

func (r *HTMLRenderer) buildChart(fig Figure) *charts.Scatter {
	px := fmt.Sprintf("%dpx", int(fig.sizeInches()*pixelsPerInch))
	xmin, xmax, ymin, ymax := fig.Bounds()

	initOpts := opts.Initialization{PageTitle: fig.Title, Width: px, Height: px}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(fig.Label != ""), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value", Name: fig.XLabel, NameLocation: "middle", NameGap: 25,
			Min: xmin, Max: xmax,
			SplitLine: &opts.SplitLine{Show: opts.Bool(fig.Grid)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value", Name: fig.YLabel, NameLocation: "middle", NameGap: 30,
			Min: ymin, Max: ymax,
			SplitLine: &opts.SplitLine{Show: opts.Bool(fig.Grid)},
		}),
	)

	data := make([]opts.ScatterData, 0, len(fig.Points))
	for _, p := range fig.Points {
		data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Y}})
	}
	scatter.AddSeries(fig.Label, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))

	return scatter
}
