package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/cornerplot/internal/config"
	"github.com/banshee-data/cornerplot/internal/fsutil"
	"github.com/banshee-data/cornerplot/internal/monitoring"
)

type recordingViewer struct {
	paths []string
	err   error
}

func (v *recordingViewer) Show(path string) error {
	v.paths = append(v.paths, path)
	return v.err
}

// shortWriteFS hands out writers that store the first few bytes and then fail.
type shortWriteFS struct {
	*fsutil.MemoryFileSystem
}

func (s shortWriteFS) Create(name string) (io.WriteCloser, error) {
	w, err := s.MemoryFileSystem.Create(name)
	if err != nil {
		return nil, err
	}
	return &shortWriter{WriteCloser: w}, nil
}

type shortWriter struct {
	io.WriteCloser
}

func (w *shortWriter) Write(p []byte) (int, error) {
	n := min(len(p), 8)
	if _, err := w.WriteCloser.Write(p[:n]); err != nil {
		return 0, err
	}
	return n, errors.New("disk full")
}

func squareFigure(index int) Figure {
	r := math.Sqrt2 / 2
	return Figure{
		Index:  index,
		Title:  "20 degrees",
		XLabel: "X",
		YLabel: "Z",
		Label:  "Corners",
		Points: []XY{
			{X: 2, Y: 2 + r}, {X: 2, Y: 2 - r},
			{X: 2 + r, Y: 2}, {X: 2 - r, Y: 2},
		},
		Grid:        true,
		EqualAspect: true,
		SizeInches:  6,
	}
}

func TestFigureBounds_EqualAspect(t *testing.T) {
	t.Parallel()
	fig := squareFigure(0)
	fig.Points = []XY{{X: 0, Y: 0}, {X: 4, Y: 1}}

	xmin, xmax, ymin, ymax := fig.Bounds()
	assert.InDelta(t, xmax-xmin, ymax-ymin, 1e-12, "spans must match")
	assert.InDelta(t, 2, (xmin+xmax)/2, 1e-12)
	assert.InDelta(t, 0.5, (ymin+ymax)/2, 1e-12)
	for _, p := range fig.Points {
		assert.True(t, p.X > xmin && p.X < xmax)
		assert.True(t, p.Y > ymin && p.Y < ymax)
	}
}

func TestFigureBounds_Independent(t *testing.T) {
	t.Parallel()
	fig := Figure{Points: []XY{{X: 0, Y: 0}, {X: 4, Y: 1}}}
	xmin, xmax, ymin, ymax := fig.Bounds()
	assert.Equal(t, -1.0, xmin)
	assert.Equal(t, 5.0, xmax)
	assert.Equal(t, -0.5, ymin)
	assert.Equal(t, 1.5, ymax)
}

func TestFigureBounds_Degenerate(t *testing.T) {
	t.Parallel()
	xmin, xmax, ymin, ymax := Figure{}.Bounds()
	assert.Equal(t, [4]float64{-1, 1, -1, 1}, [4]float64{xmin, xmax, ymin, ymax})

	single := Figure{EqualAspect: true, Points: []XY{{X: 3, Y: 3}}}
	xmin, xmax, ymin, ymax = single.Bounds()
	assert.Equal(t, [4]float64{2.5, 3.5, 2.5, 3.5}, [4]float64{xmin, xmax, ymin, ymax})
}

func TestNew(t *testing.T) {
	t.Parallel()
	mfs := fsutil.NewMemoryFileSystem()

	png, html, svg := config.FormatPNG, config.FormatHTML, "svg"
	host := "/static/"

	r, err := New(&config.PlotConfig{Format: &png}, mfs, nil)
	require.NoError(t, err)
	require.IsType(t, &PNGRenderer{}, r)
	assert.Equal(t, "plots", r.(*PNGRenderer).dir)

	r, err = New(&config.PlotConfig{Format: &html, AssetsHost: &host}, mfs, nil)
	require.NoError(t, err)
	require.IsType(t, &HTMLRenderer{}, r)
	assert.Equal(t, "/static/", r.(*HTMLRenderer).assetsHost)

	_, err = New(&config.PlotConfig{Format: &svg}, mfs, nil)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestPNGRenderer_WritesFile(t *testing.T) {
	t.Parallel()
	mfs := fsutil.NewMemoryFileSystem()
	viewer := &recordingViewer{}
	r := NewPNGRenderer(mfs, "plots", viewer)

	require.NoError(t, r.Render(context.Background(), squareFigure(3)))

	path := filepath.Join("plots", "corners_03.png")
	data, err := mfs.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")), "not a PNG")
	assert.Equal(t, []string{path}, viewer.paths)
}

func TestPNGRenderer_RejectsNaN(t *testing.T) {
	t.Parallel()
	mfs := fsutil.NewMemoryFileSystem()
	fig := squareFigure(0)
	fig.Points[0].X = math.NaN()

	err := NewPNGRenderer(mfs, "plots", nil).Render(context.Background(), fig)
	assert.Error(t, err)
	assert.Empty(t, mfs.Files("plots"))
}

func TestPNGRenderer_ViewerError(t *testing.T) {
	t.Parallel()
	mfs := fsutil.NewMemoryFileSystem()
	viewer := &recordingViewer{err: errors.New("no display")}

	err := NewPNGRenderer(mfs, "plots", viewer).Render(context.Background(), squareFigure(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
	// The file is still written before the viewer fails.
	assert.True(t, mfs.Exists(filepath.Join("plots", "corners_00.png")))
}

func TestPNGRenderer_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mfs := fsutil.NewMemoryFileSystem()

	err := NewPNGRenderer(mfs, "plots", nil).Render(ctx, squareFigure(0))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, mfs.Exists("plots"))
}

func TestBuildPlot(t *testing.T) {
	t.Parallel()
	fig := squareFigure(0)
	side := 6 * vg.Inch
	p, err := buildPlot(fig, side)
	require.NoError(t, err)

	assert.Equal(t, "20 degrees", p.Title.Text)
	assert.Equal(t, "X", p.X.Label.Text)
	assert.Equal(t, "Z", p.Y.Label.Text)
	for _, pt := range fig.Points {
		assert.True(t, pt.X > p.X.Min && pt.X < p.X.Max, "x=%v outside axis", pt.X)
		assert.True(t, pt.Y > p.Y.Min && pt.Y < p.Y.Max, "y=%v outside axis", pt.Y)
	}
}

func TestBuildPlot_EqualScaleOnDataCanvas(t *testing.T) {
	t.Parallel()
	for _, inches := range []float64{3, 6, 10} {
		t.Run(fmt.Sprintf("%gin", inches), func(t *testing.T) {
			side := vg.Length(inches) * vg.Inch
			p, err := buildPlot(squareFigure(0), side)
			require.NoError(t, err)

			da := p.DataCanvas(draw.New(vgimg.New(side, side)))
			w, h := float64(da.Max.X-da.Min.X), float64(da.Max.Y-da.Min.Y)
			require.Positive(t, w)
			require.Positive(t, h)

			// One data unit must cover the same length on both axes.
			ppuX := w / (p.X.Max - p.X.Min)
			ppuY := h / (p.Y.Max - p.Y.Min)
			assert.InEpsilon(t, ppuX, ppuY, 5e-3)
		})
	}
}

func TestBuildPlot_IndependentAxesKeepBounds(t *testing.T) {
	t.Parallel()
	fig := squareFigure(0)
	fig.EqualAspect = false
	p, err := buildPlot(fig, 6*vg.Inch)
	require.NoError(t, err)

	xmin, xmax, ymin, ymax := fig.Bounds()
	assert.Equal(t, [4]float64{xmin, xmax, ymin, ymax}, [4]float64{p.X.Min, p.X.Max, p.Y.Min, p.Y.Max})
}

func TestRender_FailedWriteLeavesNoFile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		mk   func(fs fsutil.FileSystem, viewer Viewer) Renderer
		file string
	}{
		{"png", func(fs fsutil.FileSystem, v Viewer) Renderer { return NewPNGRenderer(fs, "out", v) }, "corners_04.png"},
		{"html", func(fs fsutil.FileSystem, v Viewer) Renderer { return NewHTMLRenderer(fs, "out", "", v) }, "corners_04.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := fsutil.NewMemoryFileSystem()
			viewer := &recordingViewer{}

			err := tt.mk(shortWriteFS{mfs}, viewer).Render(context.Background(), squareFigure(4))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "disk full")
			assert.False(t, mfs.Exists(filepath.Join("out", tt.file)))
			assert.Empty(t, mfs.Files("out"))
			assert.Empty(t, viewer.paths, "viewer must not see a failed figure")
		})
	}
}

func TestRender_LogsWrittenPath(t *testing.T) {
	var lines []string
	original := monitoring.Logf
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.Logf = original })
	monitoring.SetVerbose(false)

	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, NewPNGRenderer(mfs, "plots", nil).Render(context.Background(), squareFigure(2)))
	require.NoError(t, NewHTMLRenderer(mfs, "plots", "", nil).Render(context.Background(), squareFigure(2)))

	assert.Equal(t, []string{
		"Wrote " + filepath.Join("plots", "corners_02.png"),
		"Wrote " + filepath.Join("plots", "corners_02.html"),
	}, lines)
}

func TestHTMLRenderer_WritesFile(t *testing.T) {
	t.Parallel()
	mfs := fsutil.NewMemoryFileSystem()
	viewer := &recordingViewer{}
	r := NewHTMLRenderer(mfs, "html", "", viewer)

	require.NoError(t, r.Render(context.Background(), squareFigure(7)))

	path := filepath.Join("html", "corners_07.html")
	data, err := mfs.ReadFile(path)
	require.NoError(t, err)
	page := string(data)
	assert.True(t, strings.Contains(page, "20 degrees"), "title missing")
	assert.True(t, strings.Contains(page, "Corners"), "legend missing")
	assert.True(t, strings.Contains(page, "600px"), "square size missing")
	assert.Equal(t, []string{path}, viewer.paths)
}

func TestHTMLRenderer_AssetsHost(t *testing.T) {
	t.Parallel()
	mfs := fsutil.NewMemoryFileSystem()
	r := NewHTMLRenderer(mfs, "html", "http://localhost:8080/assets/", nil)

	require.NoError(t, r.Render(context.Background(), squareFigure(1)))

	data, err := mfs.ReadFile(filepath.Join("html", "corners_01.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://localhost:8080/assets/echarts.min.js")
}

func TestViewerCommand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{goos: "linux", wantName: "xdg-open", wantArgs: []string{"f.png"}},
		{goos: "darwin", wantName: "open", wantArgs: []string{"f.png"}},
		{goos: "windows", wantName: "cmd", wantArgs: []string{"/c", "start", "", "f.png"}},
		{goos: "plan9", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := viewerCommand(tt.goos, "f.png")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOpenerShow(t *testing.T) {
	t.Parallel()
	var gotName string
	var gotArgs []string
	o := &Opener{goos: "linux", start: func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}}

	require.NoError(t, o.Show("plots/corners_00.png"))
	assert.Equal(t, "xdg-open", gotName)
	assert.Equal(t, []string{"plots/corners_00.png"}, gotArgs)

	o.goos = "plan9"
	assert.Error(t, o.Show("x"))
}
