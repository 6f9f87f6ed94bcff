// Package render draws detection results back onto page images.
//
// Nothing in this package affects detection. It turns the cells found by
// package detection into things a person can look at: an outlined overlay,
// a sequence of shaded frames that shows the order in which cells were
// resolved, and one cropped image per cell.
//
// # Coordinate System
//
// Cells use the detection convention: X1, Y1, X2, Y2 are the positions of
// the ruled lines, so both edges are inclusive. When a cell is turned into
// an image.Rectangle the maximum is therefore X2+1, Y2+1.
//
// # Colors
//
// Overlay colors come from a go-colorful palette of evenly spaced hues, so
// neighbouring cells stay distinguishable. A fixed color can be given as a
// hex string ("#RRGGBB" or "#RRGGBBAA").
//
// # Output
//
// Images are written with the imaging package. The file format follows the
// extension of the target path.
package render
