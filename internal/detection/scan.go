package detection

import "github.com/ironsheep/tablelines/internal/raster"

// ScanColumns groups the foreground y values of every column.
//
// Columns are visited left to right and each column top to bottom. A column
// is kept only if it has at least lineWeight foreground pixels. A raster with
// no width or height yields nil.
func ScanColumns(r raster.Raster, lineWeight int) []AxisGroup {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return nil
	}

	groups := make([]AxisGroup, 0)
	for x := 0; x < w; x++ {
		var ys []int
		for y := 0; y < h; y++ {
			if raster.IsForeground(r, x, y) {
				ys = append(ys, y)
			}
		}
		if len(ys) >= lineWeight {
			groups = append(groups, AxisGroup{Fixed: x, Coords: ys})
		}
	}
	return groups
}

// ScanRows groups the foreground x values of every row.
//
// Rows are visited top to bottom and each row left to right, with the same
// lineWeight rule as ScanColumns.
func ScanRows(r raster.Raster, lineWeight int) []AxisGroup {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return nil
	}

	groups := make([]AxisGroup, 0)
	for y := 0; y < h; y++ {
		var xs []int
		for x := 0; x < w; x++ {
			if raster.IsForeground(r, x, y) {
				xs = append(xs, x)
			}
		}
		if len(xs) >= lineWeight {
			groups = append(groups, AxisGroup{Fixed: y, Coords: xs})
		}
	}
	return groups
}
