package detection

import (
	"testing"

	"github.com/ironsheep/tablelines/internal/raster"
)

func TestScanColumns(t *testing.T) {
	g := raster.New(20, 20)
	drawVLine(g, 3, 0, 9)  // 10 pixels
	drawVLine(g, 7, 5, 13) // 9 pixels
	g.Set(15, 2, raster.Foreground)

	groups := ScanColumns(g, 10)
	if len(groups) != 1 {
		t.Fatalf("expected 1 column group, got %d", len(groups))
	}
	if groups[0].Fixed != 3 {
		t.Errorf("expected column 3, got %d", groups[0].Fixed)
	}
	if !equalInts(groups[0].Coords, seq(0, 9)) {
		t.Errorf("unexpected coords: %v", groups[0].Coords)
	}

	if got := ScanColumns(g, 11); len(got) != 0 {
		t.Errorf("expected no groups with line weight 11, got %d", len(got))
	}
	if got := ScanColumns(g, 1); len(got) != 3 {
		t.Errorf("expected 3 groups with line weight 1, got %d", len(got))
	}
}

func TestScanRows(t *testing.T) {
	g := raster.New(30, 10)
	drawHLine(g, 2, 20, 4)
	drawHLine(g, 0, 5, 8)

	groups := ScanRows(g, 10)
	if len(groups) != 1 {
		t.Fatalf("expected 1 row group, got %d", len(groups))
	}
	if groups[0].Fixed != 4 {
		t.Errorf("expected row 4, got %d", groups[0].Fixed)
	}
	if !equalInts(groups[0].Coords, seq(2, 20)) {
		t.Errorf("unexpected coords: %v", groups[0].Coords)
	}
}

func TestScan_Order(t *testing.T) {
	g := createBorderRaster()

	cols := ScanColumns(g, 10)
	if len(cols) != 2 || cols[0].Fixed != 10 || cols[1].Fixed != 90 {
		t.Fatalf("unexpected columns: %+v", cols)
	}
	rows := ScanRows(g, 10)
	if len(rows) != 2 || rows[0].Fixed != 10 || rows[1].Fixed != 90 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	for i := 1; i < len(cols[0].Coords); i++ {
		if cols[0].Coords[i] <= cols[0].Coords[i-1] {
			t.Fatal("column coords not strictly ascending")
		}
	}
}

func TestScan_EmptyRaster(t *testing.T) {
	g := raster.New(0, 0)
	if got := ScanColumns(g, 1); got != nil {
		t.Errorf("expected nil columns, got %v", got)
	}
	if got := ScanRows(g, 1); got != nil {
		t.Errorf("expected nil rows, got %v", got)
	}
}

func TestScan_BlankRaster(t *testing.T) {
	g := raster.New(50, 50)
	if got := ScanColumns(g, 10); len(got) != 0 {
		t.Errorf("expected no columns, got %d", len(got))
	}
	if got := ScanRows(g, 10); len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}
