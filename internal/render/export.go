package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/tablelines/internal/detection"
)

// ExportOptions controls cell cropping.
type ExportOptions struct {
	// Inset trims this many pixels from every side so the ruled lines are
	// left out of the crop.
	Inset int `json:"inset"`

	// Scale resizes each crop. 1 or 0 keeps the original size.
	Scale float64 `json:"scale"`

	// Ext is the file extension and therefore the format. Default "png".
	Ext string `json:"ext"`
}

// ExportedCell describes one written cell image.
type ExportedCell struct {
	Index  int            `json:"index"`
	Cell   detection.Rect `json:"cell"`
	Path   string         `json:"path"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
}

// CropCell extracts one cell from img.
//
// The crop covers the ruled lines themselves (X2 and Y2 are inclusive)
// shrunk by inset on every side, and is scaled when scale is positive and
// not 1. Cell coordinates are relative to img's top-left pixel.
func CropCell(img image.Image, cell detection.Rect, inset int, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	region := image.Rect(
		cell.X1+inset, cell.Y1+inset,
		cell.X2+1-inset, cell.Y2+1-inset,
	).Add(bounds.Min)

	if region.Empty() {
		return nil, fmt.Errorf("cell %v is empty after inset %d", cell, inset)
	}
	if !region.In(bounds) {
		return nil, fmt.Errorf("cell region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			region.Min.X, region.Min.Y, region.Max.X, region.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	cropped := imaging.Crop(img, region)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}
	return cropped, nil
}

// CellName returns the file name of cell i with the given extension.
func CellName(i int, ext string) string {
	return fmt.Sprintf("cell_%03d.%s", i, ext)
}

// ExportCells crops every cell from img and writes it into dir.
//
// Files are named cell_000.<ext>, cell_001.<ext>, ... in cell order. dir is
// created if needed. On error the cells written so far are returned.
func ExportCells(img image.Image, cells []detection.Rect, dir string, opts ExportOptions) ([]ExportedCell, error) {
	ext := opts.Ext
	if ext == "" {
		ext = "png"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cell directory: %w", err)
	}

	out := make([]ExportedCell, 0, len(cells))
	for i, cell := range cells {
		cropped, err := CropCell(img, cell, opts.Inset, opts.Scale)
		if err != nil {
			return out, fmt.Errorf("failed to crop cell %d: %w", i, err)
		}

		path := filepath.Join(dir, CellName(i, ext))
		if err := imaging.Save(cropped, path); err != nil {
			return out, fmt.Errorf("failed to save cell %d: %w", i, err)
		}

		out = append(out, ExportedCell{
			Index:  i,
			Cell:   cell,
			Path:   path,
			Width:  cropped.Bounds().Dx(),
			Height: cropped.Bounds().Dy(),
		})
	}
	return out, nil
}
