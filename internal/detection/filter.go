package detection

// FilterAdjacent collapses parallel segments that sit one pixel apart.
//
// Segments are visited in input order. A segment whose fixed coordinate is
// exactly one more than the last accepted segment's is dropped; every other
// segment is accepted and becomes the new reference. A 2px stroke therefore
// keeps its first line only, while strokes two or more pixels apart are kept
// as distinct lines.
//
// The input is not modified. Applying FilterAdjacent to its own output
// returns an identical slice.
func FilterAdjacent(segments []Segment) []Segment {
	filtered := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if len(filtered) > 0 && s.Fixed == filtered[len(filtered)-1].Fixed+1 {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}
