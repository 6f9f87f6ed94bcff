package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/tablelines/internal/detection"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	c := NewDefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if c.DetectionOptions() != detection.DefaultOptions() {
		t.Errorf("unexpected detection options: %+v", c.DetectionOptions())
	}
	if c.RasterOptions().Threshold != 128 {
		t.Errorf("unexpected threshold: %d", c.RasterOptions().Threshold)
	}
}

func TestLoadConfigFromFile_Missing(t *testing.T) {
	c, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Detection.LineWeight != detection.DefaultLineWeight {
		t.Errorf("expected defaults, got %+v", c.Detection)
	}
}

func TestLoadConfigFromFile_Overrides(t *testing.T) {
	path := writeConfig(t, `
[detection]
line_weight = 20
tolerance = 3

[raster]
threshold = 0

[render]
color = "#00ff00"
format = "jpg"

[log]
level = "debug"
`)

	c, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}

	want := detection.Options{LineWeight: 20, Tolerance: 3, MergeGap: detection.DefaultMergeGap}
	if c.DetectionOptions() != want {
		t.Errorf("got %+v, want %+v", c.DetectionOptions(), want)
	}
	if c.RasterOptions().Threshold != 0 {
		t.Errorf("threshold: got %d, want 0", c.Raster.Threshold)
	}
	if c.OverlayOptions().Color != "#00ff00" || c.OverlayOptions().Thickness != 2 {
		t.Errorf("unexpected overlay options: %+v", c.OverlayOptions())
	}
	if c.ExportOptions().Ext != "jpg" {
		t.Errorf("unexpected export ext: %s", c.ExportOptions().Ext)
	}
	if c.Log.Level != "debug" {
		t.Errorf("log level: got %s", c.Log.Level)
	}
}

func TestLoadConfigFromFile_BadTOML(t *testing.T) {
	path := writeConfig(t, "[detection\nline_weight = ")
	if _, err := LoadConfigFromFile(path); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestLoadConfigFromFile_Invalid(t *testing.T) {
	path := writeConfig(t, "[detection]\nline_weight = 0\n")
	_, err := LoadConfigFromFile(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative tolerance", func(c *Config) { c.Detection.Tolerance = -1 }},
		{"negative merge gap", func(c *Config) { c.Detection.MergeGap = -1 }},
		{"zero merge gap", func(c *Config) { c.Detection.MergeGap = 0 }},
		{"threshold too high", func(c *Config) { c.Raster.Threshold = 256 }},
		{"bad color", func(c *Config) { c.Render.Color = "red" }},
		{"fill above one", func(c *Config) { c.Render.Fill = 1.5 }},
		{"negative inset", func(c *Config) { c.Render.CellInset = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefaultConfig()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	if filepath.Base(p) != "config.toml" || filepath.Base(filepath.Dir(p)) != "tablelines" {
		t.Errorf("unexpected default path: %s", p)
	}
	if filepath.Base(StateDir()) != "tablelines" {
		t.Errorf("unexpected state dir: %s", StateDir())
	}
}
