package detection

import (
	"errors"
	"fmt"
)

// Default option values.
const (
	DefaultLineWeight = 10
	DefaultTolerance  = 5
	DefaultMergeGap   = 5
)

// ErrInvalidOptions is returned when Options are out of range.
var ErrInvalidOptions = errors.New("invalid detection options")

// Options tunes the detection pipeline.
type Options struct {
	// LineWeight is the minimum run length in pixels. Axis groups with fewer
	// foreground hits are dropped and segments must exceed it. Must be >= 1.
	LineWeight int `json:"line_weight"`

	// Tolerance is the slack in pixels when matching rectangle edges to
	// segments, and the inset used when scanning rectangle interiors.
	Tolerance int `json:"tolerance"`

	// MergeGap is the largest step between consecutive foreground
	// coordinates absorbed when assembling a segment. Adjacent pixels are a
	// step of 1, so 1 bridges nothing and 5 bridges up to four missing
	// pixels. Larger steps start a new run. Must be >= 1.
	MergeGap int `json:"merge_gap"`
}

// DefaultOptions returns the options used by the reference behaviour.
func DefaultOptions() Options {
	return Options{
		LineWeight: DefaultLineWeight,
		Tolerance:  DefaultTolerance,
		MergeGap:   DefaultMergeGap,
	}
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	if o.LineWeight < 1 {
		return fmt.Errorf("%w: line weight %d < 1", ErrInvalidOptions, o.LineWeight)
	}
	if o.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %d < 0", ErrInvalidOptions, o.Tolerance)
	}
	if o.MergeGap < 1 {
		return fmt.Errorf("%w: merge gap %d < 1", ErrInvalidOptions, o.MergeGap)
	}
	return nil
}

// Orientation tags a Segment as vertical or horizontal.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// String returns "vertical" or "horizontal".
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// MarshalText encodes the orientation by name.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText accepts "vertical" or "horizontal".
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "vertical":
		*o = Vertical
	case "horizontal":
		*o = Horizontal
	default:
		return fmt.Errorf("unknown orientation %q", text)
	}
	return nil
}

// AxisGroup holds the foreground coordinates found along one column or row.
//
// For a column, Fixed is x and Coords are y values top to bottom. For a row,
// Fixed is y and Coords are x values left to right.
type AxisGroup struct {
	Fixed  int
	Coords []int
}

// Segment is one continuous run of ink along an axis.
//
// A vertical segment lies at x = Fixed and spans y from Start to End. A
// horizontal segment lies at y = Fixed and spans x from Start to End.
// Start <= End always holds.
type Segment struct {
	Orientation Orientation `json:"orientation"`
	Fixed       int         `json:"fixed"`
	Start       int         `json:"start"`
	End         int         `json:"end"`
}

// VerticalSegment builds the segment x, y1..y2.
func VerticalSegment(x, y1, y2 int) Segment {
	return Segment{Orientation: Vertical, Fixed: x, Start: y1, End: y2}
}

// HorizontalSegment builds the segment x1..x2, y.
func HorizontalSegment(x1, x2, y int) Segment {
	return Segment{Orientation: Horizontal, Fixed: y, Start: x1, End: x2}
}

// Length is End - Start.
func (s Segment) Length() int {
	return s.End - s.Start
}

// Endpoints returns the segment's two end points as (x1, y1, x2, y2).
func (s Segment) Endpoints() (x1, y1, x2, y2 int) {
	switch s.Orientation {
	case Vertical:
		return s.Fixed, s.Start, s.Fixed, s.End
	default:
		return s.Start, s.Fixed, s.End, s.Fixed
	}
}

func (s Segment) String() string {
	switch s.Orientation {
	case Vertical:
		return fmt.Sprintf("V{x=%d y=%d..%d}", s.Fixed, s.Start, s.End)
	default:
		return fmt.Sprintf("H{x=%d..%d y=%d}", s.Start, s.End, s.Fixed)
	}
}

// Rect is a rectangle given by the positions of its four ruled edges.
//
// Candidates are not normalized: X1 is the x of the first vertical of the
// pair in scan order, which for scanner output is always the leftmost.
type Rect struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Width is X2 - X1.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height is Y2 - Y1.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Degenerate reports whether r has zero or negative width or height.
func (r Rect) Degenerate() bool {
	return r.X2 <= r.X1 || r.Y2 <= r.Y1
}

// Edges returns the four edges r implies: left, right, top, bottom.
func (r Rect) Edges() [4]Segment {
	return [4]Segment{
		VerticalSegment(r.X1, r.Y1, r.Y2),
		VerticalSegment(r.X2, r.Y1, r.Y2),
		HorizontalSegment(r.X1, r.X2, r.Y1),
		HorizontalSegment(r.X1, r.X2, r.Y2),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}
