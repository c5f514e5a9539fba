package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigPath is the path to the example plot configuration.
const DefaultConfigPath = "config/plot.defaults.json"

// Output formats understood by the renderers.
const (
	FormatPNG  = "png"
	FormatHTML = "html"
)

// PlotConfig drives a corner plotting run. Every field is optional; the Get*
// accessors fall back to the defaults of the original demonstration
// (10 samples over [0, π] around (2, 2, 2)).
type PlotConfig struct {
	// Angle sweep
	Samples  *int     `json:"samples,omitempty"`
	StartRad *float64 `json:"start_rad,omitempty"`
	EndRad   *float64 `json:"end_rad,omitempty"`

	// Square centre as [x, y, z]
	Center []float64 `json:"center,omitempty"`

	// Output
	Format    *string `json:"format,omitempty"` // "png" or "html"
	OutputDir *string `json:"output_dir,omitempty"`
	Open      *bool   `json:"open,omitempty"`

	// AssetsHost is where HTML figures load the echarts javascript from,
	// e.g. a local mirror for offline viewing. Empty uses the go-echarts CDN.
	AssetsHost *string `json:"assets_host,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyPlotConfig returns a PlotConfig with all fields unset.
func EmptyPlotConfig() *PlotConfig {
	return &PlotConfig{}
}

// DefaultPlotConfig returns a PlotConfig with every field populated.
func DefaultPlotConfig() *PlotConfig {
	return &PlotConfig{
		Samples:   ptrInt(10),
		StartRad:  ptrFloat64(0),
		EndRad:    ptrFloat64(math.Pi),
		Center:    []float64{2, 2, 2},
		Format:    ptrString(FormatPNG),
		OutputDir: ptrString("plots"),
		Open:      ptrBool(false),
	}
}

// LoadPlotConfig loads a PlotConfig from a JSON file.
// Fields omitted from the file keep their defaults through the Get* accessors.
func LoadPlotConfig(path string) (*PlotConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPlotConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *PlotConfig) Validate() error {
	if c.Samples != nil && *c.Samples < 1 {
		return fmt.Errorf("samples must be at least 1, got %d", *c.Samples)
	}

	if c.StartRad != nil && !isFinite(*c.StartRad) {
		return fmt.Errorf("start_rad must be finite, got %v", *c.StartRad)
	}
	if c.EndRad != nil && !isFinite(*c.EndRad) {
		return fmt.Errorf("end_rad must be finite, got %v", *c.EndRad)
	}

	if c.Center != nil {
		if len(c.Center) != 3 {
			return fmt.Errorf("center must have 3 components, got %d", len(c.Center))
		}
		for i, v := range c.Center {
			if !isFinite(v) {
				return fmt.Errorf("center[%d] must be finite, got %v", i, v)
			}
		}
	}

	if c.Format != nil {
		switch *c.Format {
		case FormatPNG, FormatHTML:
		default:
			return fmt.Errorf("format must be %q or %q, got %q", FormatPNG, FormatHTML, *c.Format)
		}
	}

	if c.OutputDir != nil && *c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}

	if c.AssetsHost != nil && *c.AssetsHost != "" && !strings.HasSuffix(*c.AssetsHost, "/") {
		return fmt.Errorf("assets_host must end with '/', got %q", *c.AssetsHost)
	}

	return nil
}

// Merge overlays every field set in other onto c.
func (c *PlotConfig) Merge(other *PlotConfig) {
	if other == nil {
		return
	}
	if other.Samples != nil {
		c.Samples = other.Samples
	}
	if other.StartRad != nil {
		c.StartRad = other.StartRad
	}
	if other.EndRad != nil {
		c.EndRad = other.EndRad
	}
	if other.Center != nil {
		c.Center = append([]float64(nil), other.Center...)
	}
	if other.Format != nil {
		c.Format = other.Format
	}
	if other.OutputDir != nil {
		c.OutputDir = other.OutputDir
	}
	if other.Open != nil {
		c.Open = other.Open
	}
	if other.AssetsHost != nil {
		c.AssetsHost = other.AssetsHost
	}
}

// GetSamples returns the number of angles to plot or the default.
func (c *PlotConfig) GetSamples() int {
	if c.Samples == nil {
		return 10
	}
	return *c.Samples
}

// GetStartRad returns the first angle in radians or the default.
func (c *PlotConfig) GetStartRad() float64 {
	if c.StartRad == nil {
		return 0
	}
	return *c.StartRad
}

// GetEndRad returns the last angle in radians or the default.
func (c *PlotConfig) GetEndRad() float64 {
	if c.EndRad == nil {
		return math.Pi
	}
	return *c.EndRad
}

// GetCenter returns the square centre or the default (2, 2, 2).
func (c *PlotConfig) GetCenter() [3]float64 {
	if len(c.Center) != 3 {
		return [3]float64{2, 2, 2}
	}
	return [3]float64{c.Center[0], c.Center[1], c.Center[2]}
}

// GetFormat returns the output format or the default.
func (c *PlotConfig) GetFormat() string {
	if c.Format == nil || *c.Format == "" {
		return FormatPNG
	}
	return *c.Format
}

// GetOutputDir returns the directory figures are written to or the default.
func (c *PlotConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "plots"
	}
	return *c.OutputDir
}

// GetOpen reports whether written figures should be shown in a viewer.
func (c *PlotConfig) GetOpen() bool {
	if c.Open == nil {
		return false
	}
	return *c.Open
}

// GetAssetsHost returns the echarts assets host, empty for the library default.
func (c *PlotConfig) GetAssetsHost() string {
	if c.AssetsHost == nil {
		return ""
	}
	return *c.AssetsHost
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
