package detection

import (
	"sort"

	"github.com/ironsheep/tablelines/internal/raster"
)

// SortForResolution orders rectangles the way Resolve visits them.
//
// The slice is first stably sorted by ascending height and the result is
// then stably sorted by ascending width. Height only decides the order among
// rectangles of equal width. A new slice is returned.
func SortForResolution(rects []Rect) []Rect {
	sorted := make([]Rect, len(rects))
	copy(sorted, rects)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Height() < sorted[j].Height()
	})
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Width() < sorted[j].Width()
	})
	return sorted
}

// InteriorHasForeground reports whether any ink lies inside rect once it is
// inset by tolerance on every side.
//
// The scanned area is x in [X1+tolerance, X2-tolerance) and y in
// [Y1+tolerance, Y2-tolerance), clipped to the raster. An empty area has no
// foreground. The raster is only read.
func InteriorHasForeground(r raster.Raster, rect Rect, tolerance int) bool {
	x0, x1 := rect.X1+tolerance, rect.X2-tolerance
	y0, y1 := rect.Y1+tolerance, rect.Y2-tolerance
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > r.Width() {
		x1 = r.Width()
	}
	if y1 > r.Height() {
		y1 = r.Height()
	}

	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			if raster.IsForeground(r, x, y) {
				return true
			}
		}
	}
	return false
}

// Resolve reduces validated rectangles to a set of cells.
//
// The rectangles are ordered by SortForResolution and each one's interior is
// checked with InteriorHasForeground. A rectangle with ink inside encloses
// other structure and is removed, along with every duplicate of it. The
// survivors are returned in sorted order.
func Resolve(r raster.Raster, validated []Rect, tolerance int) []Rect {
	sorted := SortForResolution(validated)

	enclosing := make(map[Rect]bool)
	for _, rect := range sorted {
		if enclosing[rect] {
			continue
		}
		if InteriorHasForeground(r, rect, tolerance) {
			enclosing[rect] = true
		}
	}

	cells := make([]Rect, 0, len(sorted))
	for _, rect := range sorted {
		if !enclosing[rect] {
			cells = append(cells, rect)
		}
	}
	return cells
}
