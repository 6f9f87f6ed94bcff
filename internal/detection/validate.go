package detection

import (
	"github.com/tidwall/rtree"
)

// segmentIndex answers "is this edge drawn?" for one set of segments.
//
// Segments are stored in an R-tree keyed by their extent, with the fixed
// coordinate on one axis and the span on the other. A lookup searches the
// box that any covering segment must intersect and re-checks each hit with
// the exact coverage rule, so results equal a linear scan of the segments.
type segmentIndex struct {
	tolerance  int
	vertical   rtree.RTreeG[Segment]
	horizontal rtree.RTreeG[Segment]
}

func newSegmentIndex(verticals, horizontals []Segment, tolerance int) *segmentIndex {
	idx := &segmentIndex{tolerance: tolerance}
	for _, s := range verticals {
		idx.insert(s)
	}
	for _, s := range horizontals {
		idx.insert(s)
	}
	return idx
}

// box returns the R-tree key for a segment: axis 0 is the fixed coordinate,
// axis 1 the span. Both orientations use the same layout in separate trees.
func box(fixedLo, fixedHi, spanLo, spanHi int) (lo, hi [2]float64) {
	return [2]float64{float64(fixedLo), float64(spanLo)},
		[2]float64{float64(fixedHi), float64(spanHi)}
}

func (idx *segmentIndex) insert(s Segment) {
	lo, hi := box(s.Fixed, s.Fixed, s.Start, s.End)
	switch s.Orientation {
	case Vertical:
		idx.vertical.Insert(lo, hi, s)
	case Horizontal:
		idx.horizontal.Insert(lo, hi, s)
	}
}

// covers reports whether some segment of the edge's orientation satisfies
// the edge: its fixed coordinate is within tolerance of the edge's, it starts
// no later than edge.Start+tolerance and ends no earlier than
// edge.End-tolerance.
//
// Edges with zero or negative span are never covered.
func (idx *segmentIndex) covers(edge Segment) bool {
	if edge.End <= edge.Start {
		return false
	}

	t := idx.tolerance
	spanLo, spanHi := edge.Start+t, edge.End-t
	if spanLo > spanHi {
		spanLo, spanHi = spanHi, spanLo
	}
	lo, hi := box(edge.Fixed-t, edge.Fixed+t, spanLo, spanHi)

	tree := &idx.vertical
	if edge.Orientation == Horizontal {
		tree = &idx.horizontal
	}

	found := false
	tree.Search(lo, hi, func(_, _ [2]float64, s Segment) bool {
		if segmentCovers(s, edge, t) {
			found = true
			return false
		}
		return true
	})
	return found
}

// segmentCovers is the exact coverage rule for one segment and one edge.
func segmentCovers(s, edge Segment, t int) bool {
	return s.Orientation == edge.Orientation &&
		abs(s.Fixed-edge.Fixed) <= t &&
		s.Start <= edge.Start+t &&
		s.End >= edge.End-t
}

// ValidateCandidates keeps the candidates whose four edges are all drawn.
//
// Each edge must be covered by a segment of the same orientation within
// tolerance pixels (see Options.Tolerance). There is no partial credit and
// no substitution between edges. Degenerate candidates, with X2 <= X1 or
// Y2 <= Y1, are rejected. The order of accepted candidates is preserved.
func ValidateCandidates(candidates []Rect, verticals, horizontals []Segment, tolerance int) []Rect {
	idx := newSegmentIndex(verticals, horizontals, tolerance)

	validated := make([]Rect, 0)
	for _, c := range candidates {
		if idx.validate(c) {
			validated = append(validated, c)
		}
	}
	return validated
}

func (idx *segmentIndex) validate(c Rect) bool {
	if c.Degenerate() {
		return false
	}
	for _, e := range c.Edges() {
		if !idx.covers(e) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
