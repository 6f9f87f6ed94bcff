package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Foreground is the intensity value treated as ink.
const Foreground uint8 = 0

// Background is the intensity FromImage assigns to non-ink pixels when
// binarizing, and the fill value of a raster created with New.
const Background uint8 = 255

// DefaultThreshold is the binarization level used when none is configured.
const DefaultThreshold uint8 = 128

// ErrInvalidRaster is returned for nil rasters and rasters with zero width or height.
var ErrInvalidRaster = errors.New("invalid raster")

// Raster is a read-only view over a grid of intensity values.
type Raster interface {
	// Width is the number of columns.
	Width() int

	// Height is the number of rows.
	Height() int

	// Intensity returns the value at (x, y). Callers keep x and y in range.
	Intensity(x, y int) uint8
}

// IsForeground reports whether the pixel at (x, y) is ink.
func IsForeground(r Raster, x, y int) bool {
	return r.Intensity(x, y) == Foreground
}

// Validate returns a wrapped ErrInvalidRaster when r cannot be scanned.
func Validate(r Raster) error {
	if r == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidRaster)
	}
	if r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidRaster, r.Width(), r.Height())
	}
	return nil
}

// Gray is an in-memory Raster backed by one byte per pixel.
//
// Pix holds the intensities row by row: the value at (x, y) is
// Pix[y*Stride+x]. Gray is the only Raster type in this module that can be
// written to; detection never calls Set.
type Gray struct {
	Pix    []uint8
	Stride int
	W, H   int
}

// New creates a w × h raster filled with Background.
func New(w, h int) *Gray {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	pix := make([]uint8, w*h)
	for i := range pix {
		pix[i] = Background
	}
	return &Gray{Pix: pix, Stride: w, W: w, H: h}
}

// Width returns the number of columns.
func (g *Gray) Width() int { return g.W }

// Height returns the number of rows.
func (g *Gray) Height() int { return g.H }

// Intensity returns the value at (x, y).
func (g *Gray) Intensity(x, y int) uint8 {
	return g.Pix[y*g.Stride+x]
}

// Set writes v at (x, y). Out-of-range coordinates are ignored.
func (g *Gray) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	g.Pix[y*g.Stride+x] = v
}

// Clone returns an independent copy.
func (g *Gray) Clone() *Gray {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &Gray{Pix: pix, Stride: g.Stride, W: g.W, H: g.H}
}

// Image returns the raster as an *image.Gray anchored at the origin.
func (g *Gray) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+g.W], g.Pix[y*g.Stride:y*g.Stride+g.W])
	}
	return img
}

// Copy materializes any Raster into a Gray.
func Copy(r Raster) *Gray {
	if g, ok := r.(*Gray); ok {
		return g.Clone()
	}
	out := New(r.Width(), r.Height())
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			out.Pix[y*out.Stride+x] = r.Intensity(x, y)
		}
	}
	return out
}

// Options controls how a decoded image is reduced to a raster.
type Options struct {
	// Threshold is the binarization level. Pixels with luminance below it
	// become Foreground, all others Background. Zero disables binarization
	// and keeps the grayscale intensities, so only pure black counts as ink.
	Threshold uint8
}

// DefaultOptions returns Options with DefaultThreshold.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// FromImage converts a decoded image into a Gray raster.
//
// Parameters:
//   - img: Source image. Any bounds are accepted; the result is re-anchored
//     so that the image's top-left pixel becomes (0, 0).
//   - opts: Reduction options. See Options.Threshold.
//
// Returns:
//   - *Gray: The intensity raster.
//   - error: Wrapped ErrInvalidRaster if img is nil or empty.
//
// # Conversion
//
// With a non-zero threshold the image is binarized by bild's segment.Threshold,
// which converts to luminance first. Otherwise imaging.Grayscale produces the
// luminance channel directly.
//
// Images with transparency are first flattened onto white, so a transparent
// background reads as paper rather than ink.
func FromImage(img image.Image, opts Options) (*Gray, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidRaster)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image bounds %v", ErrInvalidRaster, bounds)
	}

	out := New(bounds.Dx(), bounds.Dy())
	img = flatten(img)

	if opts.Threshold > 0 {
		bin := segment.Threshold(img, opts.Threshold)
		bb := bin.Bounds()
		for y := 0; y < out.H; y++ {
			for x := 0; x < out.W; x++ {
				out.Pix[y*out.Stride+x] = bin.GrayAt(bb.Min.X+x, bb.Min.Y+y).Y
			}
		}
		return out, nil
	}

	gray := imaging.Grayscale(img)
	gb := gray.Bounds()
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			c := gray.NRGBAAt(gb.Min.X+x, gb.Min.Y+y)
			out.Pix[y*out.Stride+x] = c.R
		}
	}
	return out, nil
}

// flatten composites img over an opaque white page. Opaque images are
// returned unchanged.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	page := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(page, img, image.Pt(0, 0), 1)
}
