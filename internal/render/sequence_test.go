package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/tablelines/internal/detection"
	"github.com/ironsheep/tablelines/internal/raster"
)

func createGridRaster() *raster.Gray {
	g := raster.New(100, 100)
	for i := 10; i <= 90; i++ {
		for _, f := range []int{10, 50, 90} {
			g.Set(f, i, raster.Foreground)
			g.Set(i, f, raster.Foreground)
		}
	}
	return g
}

var gridCells = []detection.Rect{
	{X1: 10, Y1: 10, X2: 50, Y2: 50},
	{X1: 10, Y1: 50, X2: 50, Y2: 90},
	{X1: 50, Y1: 10, X2: 90, Y2: 50},
	{X1: 50, Y1: 50, X2: 90, Y2: 90},
}

func TestSequence_AllVisible(t *testing.T) {
	g := createGridRaster()
	res := Sequence(g, gridCells, 5)

	if len(res.Visible) != 4 || len(res.Frames) != 4 {
		t.Fatalf("expected 4 visible cells and frames, got %d/%d", len(res.Visible), len(res.Frames))
	}
	for i, f := range res.Frames {
		if f.Index != i || f.Cell != gridCells[i] {
			t.Errorf("frame %d: unexpected index/cell %d %v", i, f.Index, f.Cell)
		}
	}

	// Frame 0 has only the first cell shaded.
	first := res.Frames[0].Image
	if got := first.GrayAt(30, 30).Y; got != 245 {
		t.Errorf("frame 0 at (30,30): got %d, want 245", got)
	}
	if got := first.GrayAt(70, 70).Y; got != 255 {
		t.Errorf("frame 0 at (70,70): got %d, want 255", got)
	}
	// Ink stays at zero when shaded.
	if got := first.GrayAt(10, 30).Y; got != 0 {
		t.Errorf("frame 0 at (10,30): got %d, want 0", got)
	}

	// The last frame has everything shaded; the shared line area twice.
	last := res.Frames[3].Image
	if got := last.GrayAt(70, 70).Y; got != 245 {
		t.Errorf("frame 3 at (70,70): got %d, want 245", got)
	}
	if got := last.GrayAt(52, 30).Y; got != 235 {
		t.Errorf("frame 3 at (52,30): got %d, want 235", got)
	}
}

func TestSequence_RepeatedCellHidden(t *testing.T) {
	g := createGridRaster()
	cells := []detection.Rect{gridCells[0], gridCells[0]}

	res := Sequence(g, cells, 5)
	if len(res.Visible) != 1 || len(res.Frames) != 1 {
		t.Errorf("expected the repeat to be hidden, got %d visible", len(res.Visible))
	}
}

func TestSequence_DoesNotModifyInput(t *testing.T) {
	g := createGridRaster()
	before := g.Clone()

	Sequence(g, gridCells, 5)

	for i := range g.Pix {
		if g.Pix[i] != before.Pix[i] {
			t.Fatalf("input raster modified at offset %d", i)
		}
	}
}

func TestSequence_OutsideRaster(t *testing.T) {
	g := raster.New(20, 20)
	res := Sequence(g, []detection.Rect{{X1: 100, Y1: 100, X2: 150, Y2: 150}}, 5)
	if len(res.Visible) != 0 {
		t.Errorf("expected no visible cells, got %v", res.Visible)
	}
}

func TestMode(t *testing.T) {
	var hist, first [256]int
	hist[255], first[255] = 3, 1
	hist[0], first[0] = 3, 0
	hist[100], first[100] = 2, 2

	if got := mode(hist, first); got != 0 {
		t.Errorf("tie should go to the value seen first, got %d", got)
	}

	hist[100] = 4
	if got := mode(hist, first); got != 100 {
		t.Errorf("got %d, want 100", got)
	}
}

func TestSaveFrames(t *testing.T) {
	res := Sequence(createGridRaster(), gridCells[:2], 5)
	dir := filepath.Join(t.TempDir(), "frames")

	paths, err := SaveFrames(res.Frames, dir, "")
	if err != nil {
		t.Fatalf("SaveFrames failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if filepath.Base(paths[1]) != "im1.png" {
		t.Errorf("unexpected frame name: %s", paths[1])
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("frame not written: %v", err)
		}
	}

	img, err := imaging.Open(paths[0])
	if err != nil {
		t.Fatalf("failed to reopen frame: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Errorf("unexpected frame size %v", img.Bounds())
	}
}

func TestSaveFrame_NoImage(t *testing.T) {
	if err := SaveFrame(Frame{Index: 3}, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Error("expected error for frame without image")
	}
}
