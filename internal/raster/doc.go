// Package raster provides the intensity grid that table line detection reads.
//
// A Raster is a read-only view over a width × height grid of 8-bit intensity
// values. A pixel is foreground ("ink") when its intensity is exactly 0; every
// other value is background. Detection code only ever asks a Raster for its
// dimensions and for single intensities, so any decoded page can be adapted.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner:
//   - X increases rightward, valid range 0 to Width()-1
//   - Y increases downward, valid range 0 to Height()-1
//
// # Building a Raster
//
// Decoded images are reduced to a Gray raster with FromImage. Scanned pages
// are rarely clean bilevel images, so FromImage binarizes with a threshold
// by default: pixels darker than the threshold become 0 and the rest 255.
// A threshold of 0 keeps the grayscale intensities unchanged, which matches
// the behaviour of reading a page that is already bilevel.
//
// # Image Cache
//
// ImageCache keeps decoded images keyed by path so that repeated detection
// requests against the same page do not hit the disk again. It is safe for
// concurrent use.
//
// # Error Handling
//
// ErrInvalidRaster is returned, wrapped, for nil rasters and for rasters with
// zero width or height. It is the only fatal condition in the detection
// pipeline.
package raster
