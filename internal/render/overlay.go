package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/tablelines/internal/detection"
)

// OverlayOptions controls how cells are drawn.
type OverlayOptions struct {
	// Color is a fixed outline color. Empty means one palette color per cell.
	Color string `json:"color,omitempty"`

	// Thickness is the outline width in pixels, drawn inward from the
	// ruled lines. Values below 1 are treated as 1.
	Thickness int `json:"thickness,omitempty"`

	// Fill tints each cell interior with its outline color at this
	// strength, 0 to 1. Zero leaves interiors untouched.
	Fill float64 `json:"fill,omitempty"`
}

// DefaultOverlayOptions returns palette colors, 2px outlines and a light fill.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{Thickness: 2, Fill: 0.2}
}

// CellColor pairs a cell with the color it was drawn in.
type CellColor struct {
	Cell  detection.Rect `json:"cell"`
	Color string         `json:"color"`
}

// OverlayResult contains the page with cells drawn over it.
type OverlayResult struct {
	Image *image.NRGBA `json:"-"`
	Cells []CellColor  `json:"cells"`
}

// Overlay draws every cell outline over a copy of img.
//
// Cell coordinates are relative to img's top-left pixel. Parts of a cell
// outside the image are clipped. The source image is not modified.
func Overlay(img image.Image, cells []detection.Rect, opts OverlayOptions) (*OverlayResult, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}

	colors := Palette(len(cells))
	if opts.Color != "" {
		c, err := ParseColor(opts.Color)
		if err != nil {
			return nil, err
		}
		for i := range colors {
			colors[i] = c
		}
	}

	thickness := opts.Thickness
	if thickness < 1 {
		thickness = 1
	}

	canvas := imaging.Clone(img)
	result := &OverlayResult{Image: canvas, Cells: make([]CellColor, len(cells))}

	for i, cell := range cells {
		c := colors[i]
		if opts.Fill > 0 {
			fillRect(canvas, cell.X1+thickness, cell.Y1+thickness, cell.X2-thickness, cell.Y2-thickness, c, opts.Fill)
		}
		drawOutline(canvas, cell, thickness, c)
		result.Cells[i] = CellColor{Cell: cell, Color: HexColor(c)}
	}
	return result, nil
}

// drawOutline strokes the cell edges, thickness pixels inward.
func drawOutline(img *image.NRGBA, cell detection.Rect, thickness int, c color.NRGBA) {
	for k := 0; k < thickness; k++ {
		for x := cell.X1; x <= cell.X2; x++ {
			setClipped(img, x, cell.Y1+k, c)
			setClipped(img, x, cell.Y2-k, c)
		}
		for y := cell.Y1; y <= cell.Y2; y++ {
			setClipped(img, cell.X1+k, y, c)
			setClipped(img, cell.X2-k, y, c)
		}
	}
}

// fillRect tints the inclusive box x1..x2, y1..y2 toward c.
func fillRect(img *image.NRGBA, x1, y1, x2, y2 int, c color.NRGBA, amount float64) {
	if amount > 1 {
		amount = 1
	}
	b := img.Bounds()
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if !image.Pt(x, y).In(b) {
				continue
			}
			img.SetNRGBA(x, y, blend(img.NRGBAAt(x, y), c, amount))
		}
	}
}

func setClipped(img *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

// EncodePNGBase64 encodes img as PNG and returns it base64 encoded.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
