// Package main renders the corners of a unit square rotated about the
// vertical axis, one x-z scatter figure per angle.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/banshee-data/cornerplot/internal/config"
	"github.com/banshee-data/cornerplot/internal/cornerplot"
	"github.com/banshee-data/cornerplot/internal/fsutil"
	"github.com/banshee-data/cornerplot/internal/monitoring"
	"github.com/banshee-data/cornerplot/internal/render"
	"github.com/banshee-data/cornerplot/internal/version"
)

// Options holds the parsed command line.
type Options struct {
	ConfigPath  string
	Verbose     bool
	ShowVersion bool
	// Overrides holds only the flags that were given explicitly.
	Overrides *config.PlotConfig
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	if opts.ShowVersion {
		fmt.Println(version.String())
		return
	}
	monitoring.SetVerbose(opts.Verbose)

	cfg, err := resolveConfig(opts)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	var viewer render.Viewer
	if cfg.GetOpen() {
		viewer = render.NewOpener()
	}
	r, err := render.New(cfg, fsutil.OSFileSystem{}, viewer)
	if err != nil {
		log.Fatalf("Renderer error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cornerplot.Run(ctx, cfg, r); err != nil {
		log.Fatalf("Plotting failed: %v", err)
	}
	if cfg.GetOpen() {
		monitoring.Logf("Figures written to %s", cfg.GetOutputDir())
	} else {
		monitoring.Logf("Figures written to %s (pass -open to show each one as it is drawn)", cfg.GetOutputDir())
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Options, error) {
	opts := Options{}

	var (
		samples    int
		start      float64
		end        float64
		center     string
		format     string
		outputDir  string
		open       bool
		assetsHost string
	)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to JSON plot configuration")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Print version and exit")
	fs.IntVar(&samples, "samples", 10, "Number of rotation angles to plot")
	fs.Float64Var(&start, "start", 0, "First rotation angle in radians")
	fs.Float64Var(&end, "end", math.Pi, "Last rotation angle in radians (inclusive)")
	fs.StringVar(&center, "center", "2,2,2", "Square centre as x,y,z")
	fs.StringVar(&format, "format", config.FormatPNG, "Output format: png or html")
	fs.StringVar(&outputDir, "out", "plots", "Directory for rendered figures")
	fs.BoolVar(&open, "open", false, "Show each figure in the system viewer")
	fs.StringVar(&assetsHost, "assets-host", "", "Base URL for echarts javascript in HTML figures (default: go-echarts CDN)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	over := config.EmptyPlotConfig()
	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "samples":
			over.Samples = &samples
		case "start":
			over.StartRad = &start
		case "end":
			over.EndRad = &end
		case "center":
			c, err := parseCenter(center)
			if err != nil {
				visitErr = err
				return
			}
			over.Center = c
		case "format":
			over.Format = &format
		case "out":
			over.OutputDir = &outputDir
		case "open":
			over.Open = &open
		case "assets-host":
			over.AssetsHost = &assetsHost
		}
	})
	if visitErr != nil {
		return opts, visitErr
	}
	opts.Overrides = over
	return opts, nil
}

// resolveConfig layers explicit flags over the optional config file.
func resolveConfig(opts Options) (*config.PlotConfig, error) {
	cfg := config.EmptyPlotConfig()
	if opts.ConfigPath != "" {
		loaded, err := config.LoadPlotConfig(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		monitoring.Debugf("loaded configuration from %s", opts.ConfigPath)
	}
	cfg.Merge(opts.Overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseCenter(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("center must be x,y,z, got %q", s)
	}
	out := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("center component %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
