package surface

import (
	"testing"

	"github.com/phroun/vtsurface/escape"
)

func noBG() escape.ColorSpec { return escape.ColorSpec{} }

func TestGridResizePreservesTopLeft(t *testing.T) {
	g := newGrid(5, 3)
	g.cells[0][0].Rune = 'A'
	g.resize(3, 2, noBG())
	if g.cells[0][0].Rune != 'A' {
		t.Fatalf("expected top-left content preserved after shrink")
	}
	if g.cols != 3 || g.rows != 2 {
		t.Fatalf("got %dx%d, want 3x2", g.cols, g.rows)
	}
}

func TestGridScrollUpFillsBottomWithBlank(t *testing.T) {
	g := newGrid(4, 3)
	g.cells[2][0].Rune = 'z'
	g.scrollUp(1, noBG(), nil)
	if g.cells[2][0].Rune != 0 && g.cells[2][0].Rune != ' ' {
		t.Fatalf("expected bottom row blanked, got %q", g.cells[2][0].Rune)
	}
}

func TestGridInsertChars(t *testing.T) {
	g := newGrid(5, 1)
	for i, r := range []rune{'a', 'b', 'c', 'd', 'e'} {
		g.cells[0][i].Rune = r
	}
	g.insertChars(0, 1, 2, noBG())
	got := string([]rune{g.cells[0][0].Rune, g.cells[0][1].Rune, g.cells[0][2].Rune, g.cells[0][3].Rune})
	if got[0] != 'a' || got[3] != 'b' {
		t.Fatalf("unexpected row after insertChars: %q", got)
	}
}

func TestGridDeleteChars(t *testing.T) {
	g := newGrid(5, 1)
	for i, r := range []rune{'a', 'b', 'c', 'd', 'e'} {
		g.cells[0][i].Rune = r
	}
	g.deleteChars(0, 0, 1, noBG())
	if g.cells[0][0].Rune != 'b' || g.cells[0][3].Rune != 'e' {
		t.Fatalf("unexpected row after deleteChars: %+v", g.cells[0])
	}
}

func TestGridTabStopsDefaultEvery8(t *testing.T) {
	g := newGrid(20, 1)
	if next := g.nextTabStop(0); next != 8 {
		t.Fatalf("nextTabStop(0) = %d, want 8", next)
	}
	g.clearAllTabStops()
	g.setTabStop(5)
	if next := g.nextTabStop(0); next != 5 {
		t.Fatalf("nextTabStop(0) after custom stop = %d, want 5", next)
	}
}
