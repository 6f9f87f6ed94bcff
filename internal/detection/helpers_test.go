package detection

import "github.com/ironsheep/tablelines/internal/raster"

// drawVLine draws a 1px vertical line at x from y1 to y2 inclusive.
func drawVLine(g *raster.Gray, x, y1, y2 int) {
	for y := y1; y <= y2; y++ {
		g.Set(x, y, raster.Foreground)
	}
}

// drawHLine draws a 1px horizontal line at y from x1 to x2 inclusive.
func drawHLine(g *raster.Gray, x1, x2, y int) {
	for x := x1; x <= x2; x++ {
		g.Set(x, y, raster.Foreground)
	}
}

// drawBorder draws a 1px rectangle outline whose edges lie on x1, x2, y1, y2.
func drawBorder(g *raster.Gray, x1, y1, x2, y2 int) {
	drawHLine(g, x1, x2, y1)
	drawHLine(g, x1, x2, y2)
	drawVLine(g, x1, y1, y2)
	drawVLine(g, x2, y1, y2)
}

// createBorderRaster returns a 100x100 page with one border at 10..90.
func createBorderRaster() *raster.Gray {
	g := raster.New(100, 100)
	drawBorder(g, 10, 10, 90, 90)
	return g
}

// createNestedRaster returns a 100x100 page with a border at 10..90 and a
// second border at 20..80 inside it.
func createNestedRaster() *raster.Gray {
	g := createBorderRaster()
	drawBorder(g, 20, 20, 80, 80)
	return g
}

// createGridRaster returns a 100x100 page with a 2x2 table spanning 10..90.
func createGridRaster() *raster.Gray {
	g := createBorderRaster()
	drawVLine(g, 50, 10, 90)
	drawHLine(g, 10, 90, 50)
	return g
}

func fixedCoords(segments []Segment) []int {
	out := make([]int, len(segments))
	for i, s := range segments {
		out[i] = s.Fixed
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalRects(a, b []Rect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}
