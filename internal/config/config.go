// Package config loads rendering configuration for the kisvg CLI from
// a TOML file and maps it onto symbol.Options.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/circuitsmith/kisvg/pkg/symbol"
)

// Config is the on-disk configuration.
type Config struct {
	Render Render `toml:"render"`
}

// Render holds the SVG generation settings.
type Render struct {
	// Scale converts symbol units to SVG units.
	Scale float64 `toml:"scale"`
	// ShowBBox draws a diagnostic rectangle around each rendered unit.
	ShowBBox bool `toml:"show_bbox"`
	// PinFontSize is the pin number label size in SVG pixels.
	PinFontSize float64 `toml:"pin_font_size"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	opts := symbol.DefaultOptions()
	return Config{
		Render: Render{
			Scale:       opts.Scale,
			ShowBBox:    opts.ShowBBox,
			PinFontSize: opts.PinFontSize,
		},
	}
}

// Load reads a TOML configuration file. Settings missing from the file
// keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Render.Scale <= 0 {
		return cfg, fmt.Errorf("%s: render.scale must be positive, got %v", path, cfg.Render.Scale)
	}
	if cfg.Render.PinFontSize <= 0 {
		return cfg, fmt.Errorf("%s: render.pin_font_size must be positive, got %v", path, cfg.Render.PinFontSize)
	}
	return cfg, nil
}

// Options converts the configuration into renderer options.
func (c Config) Options() symbol.Options {
	return symbol.Options{
		Scale:       c.Render.Scale,
		ShowBBox:    c.Render.ShowBBox,
		PinFontSize: c.Render.PinFontSize,
	}
}
