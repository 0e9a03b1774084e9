package surface

import "github.com/phroun/vtsurface/escape"

// Cursor is the terminal's insertion point plus the rendering and
// pending-wrap state ECMA-48 attaches to it. Grounded on the teacher's
// buffer.go cursor fields (cursorX/cursorY/cursorVisible/cursorShape/
// cursorBlink), generalized with the "deferred wrap" flag otty-surface's
// cursor.rs models explicitly rather than folding into Col.
type Cursor struct {
	Row, Col int
	Visible  bool
	Style    escape.CursorStyle
	// WrapPending marks that the last Print reached the final column
	// with autowrap on; the next printable character wraps to the next
	// line before being placed, rather than overwriting column-1.
	WrapPending bool
}

// SavedCursor is the state captured by DECSC (ESC 7) and restored by
// DECRC (ESC 8), plus the xterm "save cursor" CSI s/u pair.
type SavedCursor struct {
	Cursor       Cursor
	ActiveCharset escape.CharsetIndex
	OriginMode   bool
}
