// Package config loads renderer settings from a TOML file. Every field
// has a default, so a missing or partial file still yields a complete
// configuration.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Output controls the emitted SVG document dimensions.
type Output struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	MinX   float64 `toml:"min-x"`
	MinY   float64 `toml:"min-y"`
	// ViewWidth and ViewHeight are the viewBox extent, in viewport units.
	ViewWidth  float64 `toml:"view-width"`
	ViewHeight float64 `toml:"view-height"`
}

// Style holds the group-level SVG presentation attributes.
type Style struct {
	Fill           string  `toml:"fill"`
	FillOpacity    float64 `toml:"fill-opacity"`
	Stroke         string  `toml:"stroke"`
	StrokeLinejoin string  `toml:"stroke-linejoin"`
	StrokeWidth    float64 `toml:"stroke-width"`
}

// Kernel controls CSG tessellation.
type Kernel struct {
	// Cells is the marching cubes grid resolution.
	Cells int `toml:"cells"`
}

// Config is the top-level renderer configuration.
type Config struct {
	Output Output `toml:"output"`
	Style  Style  `toml:"style"`
	Kernel Kernel `toml:"kernel"`
}

// Default returns the built-in configuration: a 512x512 document with
// the unit viewBox and the standard white-fill black-stroke style.
func Default() Config {
	return Config{
		Output: Output{
			Width:      512,
			Height:     512,
			MinX:       -0.5,
			MinY:       -0.5,
			ViewWidth:  1,
			ViewHeight: 1,
		},
		Style: Style{
			Fill:           "white",
			FillOpacity:    1.0,
			Stroke:         "black",
			StrokeLinejoin: "round",
			StrokeWidth:    0.005,
		},
		Kernel: Kernel{
			Cells: 100,
		},
	}
}

// Load reads a TOML configuration file and overlays it on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) check() error {
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output dimensions must be positive, got %dx%d", c.Output.Width, c.Output.Height)
	}
	if c.Output.ViewWidth <= 0 || c.Output.ViewHeight <= 0 {
		return fmt.Errorf("viewBox extent must be positive, got %gx%g", c.Output.ViewWidth, c.Output.ViewHeight)
	}
	if c.Kernel.Cells <= 0 {
		return fmt.Errorf("kernel cells must be positive, got %d", c.Kernel.Cells)
	}
	return nil
}
