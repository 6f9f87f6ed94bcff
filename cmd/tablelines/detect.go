package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/tablelines/internal/config"
	"github.com/ironsheep/tablelines/internal/detection"
	"github.com/ironsheep/tablelines/internal/raster"
	"github.com/ironsheep/tablelines/internal/render"
)

var (
	headerStyle = color.New(color.Bold, color.FgHiWhite)
	cellStyle   = color.New(color.FgHiGreen)
	lineStyle   = color.New(color.FgHiCyan)
	pathStyle   = color.New(color.FgYellow)
)

// detectFlags holds the per-run overrides and outputs of the detect command.
type detectFlags struct {
	lineWeight int
	tolerance  int
	mergeGap   int
	threshold  int

	format       string
	includeLines bool

	overlay   string
	color     string
	framesDir string
	cellsDir  string
	cellInset int
}

func newDetectCmd(a *app) *cobra.Command {
	f := &detectFlags{}
	defaults := config.NewDefaultConfig()

	cmd := &cobra.Command{
		Use:   "detect <image>",
		Short: "Detect table cells in a page image",
		Example: `  tablelines detect page.png
  tablelines detect --format json --include-lines page.png
  tablelines detect --overlay out.png --cells cells/ page.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, a.config)
			if err := a.config.Validate(); err != nil {
				return err
			}
			return runDetect(cmd.OutOrStdout(), a.config, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.lineWeight, "line-weight", "w", defaults.Detection.LineWeight, "Minimum run length in pixels for a line")
	flags.IntVarP(&f.tolerance, "tolerance", "t", defaults.Detection.Tolerance, "Edge matching slack and interior inset in pixels")
	flags.IntVar(&f.mergeGap, "merge-gap", defaults.Detection.MergeGap, "Largest step in pixels between ink pixels of one line, 1 means contiguous")
	flags.IntVar(&f.threshold, "threshold", defaults.Raster.Threshold, "Binarization level 0-255, 0 keeps grayscale")
	flags.StringVarP(&f.format, "format", "f", "text", "Output format: text or json")
	flags.BoolVar(&f.includeLines, "include-lines", false, "Also print detected line segments")
	flags.StringVarP(&f.overlay, "overlay", "o", "", "Write the page with cells outlined to this file")
	flags.StringVar(&f.color, "color", defaults.Render.Color, "Overlay outline color (#RRGGBB), empty for a palette")
	flags.StringVar(&f.framesDir, "frames", "", "Write shaded resolution-order frames into this directory")
	flags.StringVar(&f.cellsDir, "cells", "", "Write one cropped image per cell into this directory")
	flags.IntVar(&f.cellInset, "cell-inset", defaults.Render.CellInset, "Pixels trimmed from each side of exported cells")

	return cmd
}

// apply copies explicitly set flags over the loaded config.
func (f *detectFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("line-weight") {
		cfg.Detection.LineWeight = f.lineWeight
	}
	if changed("tolerance") {
		cfg.Detection.Tolerance = f.tolerance
	}
	if changed("merge-gap") {
		cfg.Detection.MergeGap = f.mergeGap
	}
	if changed("threshold") {
		cfg.Raster.Threshold = f.threshold
	}
	if changed("color") {
		cfg.Render.Color = f.color
	}
	if changed("cell-inset") {
		cfg.Render.CellInset = f.cellInset
	}
}

// detectOutput is the JSON document printed by --format json.
type detectOutput struct {
	Path       string              `json:"path"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Options    detection.Options   `json:"options"`
	Cells      []detection.Rect    `json:"cells"`
	Vertical   []detection.Segment `json:"vertical,omitempty"`
	Horizontal []detection.Segment `json:"horizontal,omitempty"`
	Overlay    string              `json:"overlay,omitempty"`
	Frames     []string            `json:"frames,omitempty"`
	CellFiles  []string            `json:"cell_files,omitempty"`
}

func runDetect(w io.Writer, cfg *config.Config, f *detectFlags, path string) error {
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", f.format)
	}

	p, err := detection.NewPipeline(cfg.DetectionOptions())
	if err != nil {
		return err
	}

	cache := raster.NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		return err
	}
	r, err := raster.FromImage(img, cfg.RasterOptions())
	if err != nil {
		return err
	}

	res, err := p.Run(r)
	if err != nil {
		return err
	}
	slog.Info("detected cells", "path", path, "cells", len(res.Cells), "elapsed", res.Elapsed)

	out := &detectOutput{
		Path:    path,
		Width:   res.Width,
		Height:  res.Height,
		Options: p.Options(),
		Cells:   res.Cells,
	}
	if f.includeLines {
		out.Vertical = res.Vertical
		out.Horizontal = res.Horizontal
	}

	if f.overlay != "" {
		ov, err := render.Overlay(img, res.Cells, cfg.OverlayOptions())
		if err != nil {
			return err
		}
		if err := imaging.Save(ov.Image, f.overlay); err != nil {
			return fmt.Errorf("failed to save overlay: %w", err)
		}
		out.Overlay = f.overlay
	}

	if f.framesDir != "" {
		seq := render.Sequence(r, res.Cells, cfg.Detection.Tolerance)
		paths, err := render.SaveFrames(seq.Frames, f.framesDir, cfg.Render.Format)
		if err != nil {
			return err
		}
		out.Frames = paths
	}

	if f.cellsDir != "" {
		exported, err := render.ExportCells(img, res.Cells, f.cellsDir, cfg.ExportOptions())
		if err != nil {
			return err
		}
		for _, e := range exported {
			out.CellFiles = append(out.CellFiles, e.Path)
		}
	}

	if f.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printText(w, out)
	return nil
}

func printText(w io.Writer, out *detectOutput) {
	headerStyle.Fprintf(w, "%s", out.Path)
	fmt.Fprintf(w, " (%dx%d): %d cells\n", out.Width, out.Height, len(out.Cells))

	for i, c := range out.Cells {
		fmt.Fprintf(w, "  %3d  ", i)
		cellStyle.Fprintf(w, "%s", c)
		fmt.Fprintf(w, "  %dx%d\n", c.Width(), c.Height())
	}

	if len(out.Vertical)+len(out.Horizontal) > 0 {
		headerStyle.Fprintln(w, "lines:")
		for _, s := range out.Vertical {
			lineStyle.Fprintf(w, "  %s\n", s)
		}
		for _, s := range out.Horizontal {
			lineStyle.Fprintf(w, "  %s\n", s)
		}
	}

	if out.Overlay != "" {
		fmt.Fprint(w, "overlay: ")
		pathStyle.Fprintln(w, out.Overlay)
	}
	if len(out.Frames) > 0 {
		fmt.Fprintf(w, "frames: %d written to ", len(out.Frames))
		pathStyle.Fprintln(w, filepath.Dir(out.Frames[0]))
	}
	if len(out.CellFiles) > 0 {
		fmt.Fprintf(w, "cells: %d written to ", len(out.CellFiles))
		pathStyle.Fprintln(w, filepath.Dir(out.CellFiles[0]))
	}
}
