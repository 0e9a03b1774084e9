package surface

import (
	"testing"

	"github.com/phroun/vtsurface/escape"
)

func newTestSurface(cols, rows int) *Surface {
	return NewSurface(Options{Cols: cols, Rows: rows, ScrollbackLines: 100})
}

func applyAll(s *Surface, actions ...escape.Action) {
	for _, a := range actions {
		s.Apply(a)
	}
}

func TestPrintAdvancesCursor(t *testing.T) {
	s := newTestSurface(10, 3)
	applyAll(s, escape.Print{Rune: 'h'}, escape.Print{Rune: 'i'})
	if s.cursor.Col != 2 {
		t.Fatalf("cursor col = %d, want 2", s.cursor.Col)
	}
	g := s.activeGrid()
	if g.cells[0][0].Rune != 'h' || g.cells[0][1].Rune != 'i' {
		t.Fatalf("unexpected row content: %+v", g.cells[0][:2])
	}
}

func TestPrintWrapsAtEndOfLine(t *testing.T) {
	s := newTestSurface(3, 3)
	applyAll(s, escape.Print{Rune: 'a'}, escape.Print{Rune: 'b'}, escape.Print{Rune: 'c'})
	if !s.cursor.WrapPending {
		t.Fatalf("expected WrapPending after filling the line")
	}
	applyAll(s, escape.Print{Rune: 'd'})
	if s.cursor.Row != 1 || s.cursor.Col != 1 {
		t.Fatalf("cursor = (%d,%d), want (1,1)", s.cursor.Row, s.cursor.Col)
	}
	if s.activeGrid().cells[1][0].Rune != 'd' {
		t.Fatalf("expected 'd' wrapped to next line")
	}
}

func TestLineFeedScrollsAtBottomMargin(t *testing.T) {
	s := newTestSurface(5, 2)
	applyAll(s, escape.Print{Rune: 'x'})
	s.Apply(escape.Control{Function: escape.CtrlLineFeed})
	s.Apply(escape.Control{Function: escape.CtrlLineFeed})
	if s.scrollbackBuf.Len() != 1 {
		t.Fatalf("scrollback len = %d, want 1", s.scrollbackBuf.Len())
	}
	if s.scrollbackBuf.Row(0)[0].Rune != 'x' {
		t.Fatalf("expected scrolled row to carry 'x'")
	}
}

func TestCursorPositionOneBased(t *testing.T) {
	s := newTestSurface(80, 24)
	s.Apply(escape.CursorMove{Kind: escape.CursorPosition, Row: 5, Col: 10})
	row, col := s.CursorPosition()
	if row != 5 || col != 10 {
		t.Fatalf("CursorPosition = (%d,%d), want (5,10)", row, col)
	}
}

func TestSGRAppliesToSubsequentPrint(t *testing.T) {
	s := newTestSurface(10, 3)
	s.Apply(escape.SGR{Attr: escape.SGRAttribute{Kind: escape.SGRForeground, Color: escape.ColorSpec{Kind: escape.ColorPaletteIndex, Index: 2}}})
	s.Apply(escape.Print{Rune: 'z'})
	cell := s.activeGrid().cells[0][0]
	if cell.Foreground.Kind != escape.ColorPaletteIndex || cell.Foreground.Index != 2 {
		t.Fatalf("unexpected foreground: %+v", cell.Foreground)
	}
}

func TestSGRResetClearsAttrs(t *testing.T) {
	s := newTestSurface(10, 3)
	s.Apply(escape.SGR{Attr: escape.SGRAttribute{Kind: escape.SGRIntensity, Intensity: escape.IntensityBold}})
	s.Apply(escape.SGR{Attr: escape.SGRAttribute{Kind: escape.SGRReset}})
	if s.curAttrs != 0 {
		t.Fatalf("curAttrs = %v, want 0 after reset", s.curAttrs)
	}
}

func TestEraseDisplayAllClampsBackground(t *testing.T) {
	s := newTestSurface(4, 2)
	s.Apply(escape.SGR{Attr: escape.SGRAttribute{Kind: escape.SGRBackground, Color: escape.ColorSpec{Kind: escape.ColorPaletteIndex, Index: 4}}})
	s.Apply(escape.Erase{Kind: escape.EraseDisplayAll})
	cell := s.activeGrid().cells[0][0]
	if cell.Rune != ' ' || cell.Background.Index != 4 {
		t.Fatalf("unexpected erased cell: %+v", cell)
	}
}

func TestAltScreenSaveRestoresCursor(t *testing.T) {
	s := newTestSurface(10, 5)
	s.Apply(escape.CursorMove{Kind: escape.CursorPosition, Row: 3, Col: 3})
	s.Apply(escape.SetMode{Mode: int(escape.PrivateModeSwapScreenAndRestoreCursor), Private: true, Enable: true})
	if !s.usingAlt {
		t.Fatalf("expected alt screen active")
	}
	s.Apply(escape.CursorMove{Kind: escape.CursorPosition, Row: 1, Col: 1})
	s.Apply(escape.SetMode{Mode: int(escape.PrivateModeSwapScreenAndRestoreCursor), Private: true, Enable: false})
	if s.usingAlt {
		t.Fatalf("expected primary screen restored")
	}
	row, col := s.CursorPosition()
	if row != 3 || col != 3 {
		t.Fatalf("cursor after alt-screen exit = (%d,%d), want (3,3)", row, col)
	}
}

func TestResizeClampsCursorAndMarksFullClear(t *testing.T) {
	s := newTestSurface(10, 5)
	s.Apply(escape.CursorMove{Kind: escape.CursorPosition, Row: 5, Col: 10})
	s.Resize(4, 3)
	row, col := s.CursorPosition()
	if row > 3 || col > 4 {
		t.Fatalf("cursor not clamped after resize: (%d,%d)", row, col)
	}
	snap := s.Snapshot()
	_, fullClear := snap.Damage()
	if !fullClear {
		t.Fatalf("expected full_clear damage after resize")
	}
}

func TestSnapshotCoalescesWithoutMutation(t *testing.T) {
	s := newTestSurface(10, 3)
	s.Apply(escape.Print{Rune: 'a'})
	first := s.Snapshot()
	second := s.Snapshot()
	if first != second {
		t.Fatalf("expected coalesced snapshot pointer to be reused")
	}
	s.Apply(escape.Print{Rune: 'b'})
	third := s.Snapshot()
	if third == second {
		t.Fatalf("expected a new snapshot after a mutation")
	}
}

func TestSyncUpdateHoldsSnapshotUntilEnd(t *testing.T) {
	s := newTestSurface(10, 3)
	s.Apply(escape.Print{Rune: 'a'})
	before := s.Snapshot()
	s.Apply(escape.SyncUpdate{Begin: true})
	s.Apply(escape.Print{Rune: 'b'})
	during := s.Snapshot()
	if during != before {
		t.Fatalf("expected snapshot frozen during sync batch")
	}
	s.Apply(escape.SyncUpdate{Begin: false})
	after := s.Snapshot()
	if after == before {
		t.Fatalf("expected a fresh snapshot once the batch ends")
	}
	if after.Cells[0][1].Rune != 'b' {
		t.Fatalf("expected batched mutation to be visible after merge")
	}
}

func TestHyperlinkAttachesToPrintedCells(t *testing.T) {
	s := newTestSurface(10, 3)
	s.Apply(escape.Hyperlink{ID: "1", URI: "https://example.com"})
	s.Apply(escape.Print{Rune: 'x'})
	s.Apply(escape.Hyperlink{ID: "1", URI: ""})
	snap := s.Snapshot()
	spans := snap.HyperlinkSpans()
	if len(spans) != 1 || spans[0].URI != "https://example.com" {
		t.Fatalf("unexpected spans: %+v", spans)
	}
}

func TestDetectedHyperlinksFindsBareURL(t *testing.T) {
	s := newTestSurface(40, 1)
	for _, r := range "see https://example.com/x now" {
		s.Apply(escape.Print{Rune: r})
	}
	snap := s.Snapshot()
	found := snap.DetectedHyperlinks()
	if len(found) != 1 {
		t.Fatalf("got %d detected links, want 1: %+v", len(found), found)
	}
	if found[0].URI != "https://example.com/x" {
		t.Fatalf("got URI %q", found[0].URI)
	}
}

func TestTabStopDefaultEvery8Columns(t *testing.T) {
	s := newTestSurface(20, 1)
	s.Apply(escape.Control{Function: escape.CtrlTab})
	if s.cursor.Col != 8 {
		t.Fatalf("cursor col after first tab = %d, want 8", s.cursor.Col)
	}
}

func TestScrollRegionClampsLineFeed(t *testing.T) {
	s := newTestSurface(5, 5)
	s.Apply(escape.SetScrollRegion{Top: 2, Bottom: 4})
	s.Apply(escape.CursorMove{Kind: escape.CursorPosition, Row: 4, Col: 1})
	s.Apply(escape.Control{Function: escape.CtrlLineFeed})
	row, _ := s.CursorPosition()
	if row != 4 {
		t.Fatalf("row after scroll at bottom margin = %d, want 4 (scrolled in place)", row)
	}
}
