package detection

// GenerateCandidates pairs every two verticals with every two horizontals.
//
// For verticals a before b (in slice order) and horizontals c before d the
// candidate is Rect{X1: a.Fixed, Y1: c.Fixed, X2: b.Fixed, Y2: d.Fixed}.
// Pairs are enumerated in lexicographic order of their indices, verticals in
// the outer loop, producing C(n,2) × C(m,2) rectangles. Nothing is sorted or
// filtered.
func GenerateCandidates(verticals, horizontals []Segment) []Rect {
	n, m := len(verticals), len(horizontals)
	if n < 2 || m < 2 {
		return nil
	}

	candidates := make([]Rect, 0, pairs(n)*pairs(m))
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			for k := 0; k < m-1; k++ {
				for l := k + 1; l < m; l++ {
					candidates = append(candidates, Rect{
						X1: verticals[i].Fixed,
						Y1: horizontals[k].Fixed,
						X2: verticals[j].Fixed,
						Y2: horizontals[l].Fixed,
					})
				}
			}
		}
	}
	return candidates
}

// pairs returns C(n, 2).
func pairs(n int) int {
	return n * (n - 1) / 2
}
