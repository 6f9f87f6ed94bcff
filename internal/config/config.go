// Package config loads tablelines settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/ironsheep/tablelines/internal/detection"
	"github.com/ironsheep/tablelines/internal/raster"
	"github.com/ironsheep/tablelines/internal/render"
)

const appName = "tablelines"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all tablelines settings, one TOML table per section.
type Config struct {
	Detection DetectionConfig `toml:"detection"`
	Raster    RasterConfig    `toml:"raster"`
	Render    RenderConfig    `toml:"render"`
	Log       LogConfig       `toml:"log"`
}

// DetectionConfig is the [detection] table. See detection.Options.
type DetectionConfig struct {
	LineWeight int `toml:"line_weight"`
	Tolerance  int `toml:"tolerance"`
	MergeGap   int `toml:"merge_gap"`
}

// RasterConfig is the [raster] table.
type RasterConfig struct {
	// Threshold is the binarization level; 0 disables binarization.
	Threshold int `toml:"threshold"`
}

// RenderConfig is the [render] table, shared by overlays, frames and cell
// exports.
type RenderConfig struct {
	Color     string  `toml:"color"` // empty: palette
	Thickness int     `toml:"thickness"`
	Fill      float64 `toml:"fill"`
	CellInset int     `toml:"cell_inset"`
	Format    string  `toml:"format"` // frame and cell file extension
}

// LogConfig is the [log] table.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty: stderr
}

// NewDefaultConfig returns the settings used when no config file exists.
func NewDefaultConfig() *Config {
	overlay := render.DefaultOverlayOptions()
	return &Config{
		Detection: DetectionConfig{
			LineWeight: detection.DefaultLineWeight,
			Tolerance:  detection.DefaultTolerance,
			MergeGap:   detection.DefaultMergeGap,
		},
		Raster: RasterConfig{
			Threshold: int(raster.DefaultThreshold),
		},
		Render: RenderConfig{
			Color:     overlay.Color,
			Thickness: overlay.Thickness,
			Fill:      overlay.Fill,
			CellInset: 0,
			Format:    "png",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tablelines/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// StateDir returns $XDG_STATE_HOME/tablelines, used for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// LoadConfigFromFile reads path over the defaults. A missing file is not an
// error and yields the defaults. An empty path means DefaultPath.
func LoadConfigFromFile(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.DetectionOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Raster.Threshold < 0 || c.Raster.Threshold > 255 {
		return fmt.Errorf("%w: raster threshold %d outside 0..255", ErrInvalidConfig, c.Raster.Threshold)
	}
	if c.Render.Color != "" {
		if _, err := render.ParseColor(c.Render.Color); err != nil {
			return fmt.Errorf("%w: render color: %v", ErrInvalidConfig, err)
		}
	}
	if c.Render.Fill < 0 || c.Render.Fill > 1 {
		return fmt.Errorf("%w: render fill %g outside 0..1", ErrInvalidConfig, c.Render.Fill)
	}
	if c.Render.CellInset < 0 {
		return fmt.Errorf("%w: cell inset %d < 0", ErrInvalidConfig, c.Render.CellInset)
	}
	return nil
}

// DetectionOptions converts the [detection] section.
func (c *Config) DetectionOptions() detection.Options {
	return detection.Options{
		LineWeight: c.Detection.LineWeight,
		Tolerance:  c.Detection.Tolerance,
		MergeGap:   c.Detection.MergeGap,
	}
}

// RasterOptions converts the [raster] section. Call Validate first.
func (c *Config) RasterOptions() raster.Options {
	return raster.Options{Threshold: uint8(c.Raster.Threshold)}
}

// OverlayOptions converts the overlay part of [render].
func (c *Config) OverlayOptions() render.OverlayOptions {
	return render.OverlayOptions{
		Color:     c.Render.Color,
		Thickness: c.Render.Thickness,
		Fill:      c.Render.Fill,
	}
}

// ExportOptions converts the cell export part of [render].
func (c *Config) ExportOptions() render.ExportOptions {
	return render.ExportOptions{
		Inset: c.Render.CellInset,
		Ext:   c.Render.Format,
	}
}
