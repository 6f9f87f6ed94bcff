package detection

// AssembleVertical turns column groups into vertical segments.
func AssembleVertical(groups []AxisGroup, opts Options) []Segment {
	return assemble(groups, Vertical, opts)
}

// AssembleHorizontal turns row groups into horizontal segments.
func AssembleHorizontal(groups []AxisGroup, opts Options) []Segment {
	return assemble(groups, Horizontal, opts)
}

func assemble(groups []AxisGroup, o Orientation, opts Options) []Segment {
	segments := make([]Segment, 0, len(groups))
	for _, g := range groups {
		if seg, ok := assembleGroup(g, o, opts); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

// assembleGroup converts one axis group into at most one segment.
//
// The coordinates are walked once. A gap wider than opts.MergeGap closes the
// current run and starts a new one at the current coordinate. A run
// qualifies when it holds more than opts.LineWeight coordinates.
//
// The result is the last qualifying run of the group. Earlier runs are
// discarded even when they are longer, and a group whose runs are all too
// short yields nothing.
func assembleGroup(g AxisGroup, o Orientation, opts Options) (Segment, bool) {
	coords := g.Coords
	if len(coords) <= opts.LineWeight {
		return Segment{}, false
	}

	var (
		start     = coords[0]
		startIdx  = 0
		found     bool
		bestStart int
		bestEnd   int
	)
	for i := 1; i < len(coords); i++ {
		if coords[i]-coords[i-1] > opts.MergeGap {
			if i-startIdx > opts.LineWeight {
				found = true
				bestStart, bestEnd = start, coords[i-1]
			}
			start, startIdx = coords[i], i
		}
	}

	end := coords[len(coords)-1]
	if len(coords)-startIdx > opts.LineWeight {
		found = true
		bestStart, bestEnd = start, end
	}
	if !found {
		return Segment{}, false
	}

	return Segment{Orientation: o, Fixed: g.Fixed, Start: bestStart, End: bestEnd}, true
}
