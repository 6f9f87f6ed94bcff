package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/tablelines/internal/detection"
	"github.com/ironsheep/tablelines/internal/raster"
)

// ShadeStep is how much each pass darkens the pixels around a cell.
const ShadeStep = 10

// Frame is one image of a shading sequence.
type Frame struct {
	Index int            `json:"index"`
	Cell  detection.Rect `json:"cell"`
	Image *image.Gray    `json:"-"`
}

// SequenceResult holds the cells that were still visible when shaded and
// the frame captured for each of them.
type SequenceResult struct {
	Visible []detection.Rect `json:"visible"`
	Frames  []Frame          `json:"frames"`
}

// Sequence replays the cells in order on a working copy of r.
//
// For each cell the box grown by tolerance on every side (inclusive, clipped
// to the raster) is sampled for its most frequent intensity and then
// darkened by ShadeStep. A cell whose most frequent intensity was
// raster.Background was not yet covered by an earlier cell: it is reported
// as visible and a frame of the working copy is captured. Ties between
// intensities go to the value seen first, scanning columns left to right.
//
// r itself is never modified.
func Sequence(r raster.Raster, cells []detection.Rect, tolerance int) *SequenceResult {
	work := raster.Copy(r)
	res := &SequenceResult{}
	if work.W == 0 || work.H == 0 {
		return res
	}

	for _, cell := range cells {
		x0, x1 := max(cell.X1-tolerance, 0), min(cell.X2+tolerance, work.W-1)
		y0, y1 := max(cell.Y1-tolerance, 0), min(cell.Y2+tolerance, work.H-1)
		if x0 > x1 || y0 > y1 {
			continue
		}

		var hist [256]int
		var firstSeen [256]int
		order := 0
		for x := x0; x <= x1; x++ {
			for y := y0; y <= y1; y++ {
				v := work.Intensity(x, y)
				if hist[v] == 0 {
					firstSeen[v] = order
					order++
				}
				hist[v]++
				work.Set(x, y, shade(v))
			}
		}

		if mode(hist, firstSeen) == raster.Background {
			res.Visible = append(res.Visible, cell)
			res.Frames = append(res.Frames, Frame{
				Index: len(res.Frames),
				Cell:  cell,
				Image: work.Image(),
			})
		}
	}
	return res
}

func shade(v uint8) uint8 {
	if v < ShadeStep {
		return 0
	}
	return v - ShadeStep
}

// mode returns the most frequent value, earliest first seen on ties.
func mode(hist, firstSeen [256]int) uint8 {
	best := -1
	for v := 0; v < 256; v++ {
		if hist[v] == 0 {
			continue
		}
		if best < 0 || hist[v] > hist[best] || (hist[v] == hist[best] && firstSeen[v] < firstSeen[best]) {
			best = v
		}
	}
	if best < 0 {
		return 0
	}
	return uint8(best)
}

// FrameName returns the file name of frame i with the given extension.
func FrameName(i int, ext string) string {
	return fmt.Sprintf("im%d.%s", i, ext)
}

// SaveFrame writes one frame to path. The format follows the extension.
func SaveFrame(f Frame, path string) error {
	if f.Image == nil {
		return fmt.Errorf("frame %d has no image", f.Index)
	}
	if err := imaging.Save(f.Image, path); err != nil {
		return fmt.Errorf("failed to save frame %d: %w", f.Index, err)
	}
	return nil
}

// SaveFrames writes every frame into dir as im0.<ext>, im1.<ext>, ...
// creating dir if needed. It returns the written paths in frame order.
func SaveFrames(frames []Frame, dir, ext string) ([]string, error) {
	if ext == "" {
		ext = "png"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}

	paths := make([]string, 0, len(frames))
	for _, f := range frames {
		path := filepath.Join(dir, FrameName(f.Index, ext))
		if err := SaveFrame(f, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
