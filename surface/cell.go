// Package surface applies the Action stream produced by the escape
// package to a grid model and exposes read-only Snapshots of it for a
// renderer. It owns all terminal state that is visible to the user:
// cells, cursor, scroll region, tab stops, selection, and damage.
package surface

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/phroun/vtsurface/escape"
)

// Cell is a single grid position. Grounded on the teacher's cell.go
// Cell struct, trimmed to the attributes spec.md's data model calls for
// and carrying escape.ColorSpec instead of the teacher's resolved Color
// so a renderer can re-theme without re-parsing SGR.
type Cell struct {
	Rune       rune
	Combining  []rune // additional combining marks attached to Rune
	Foreground escape.ColorSpec
	Background escape.ColorSpec
	Underline  escape.ColorSpec // color of the underline, if distinct from Foreground
	Attrs      CellAttrs
	Width      int    // 1 or 2; 0 marks the trailing half of a wide cell
	HyperlinkID uint32 // 0 means no hyperlink
}

// CellAttrs is a bitset of boolean SGR attributes.
type CellAttrs uint16

const (
	AttrBold CellAttrs = 1 << iota
	AttrHalfBright
	AttrItalic
	AttrUnderline
	AttrDoubleUnderline
	AttrCurlyUnderline
	AttrDottedUnderline
	AttrDashedUnderline
	AttrBlink
	AttrRapidBlink
	AttrInverse
	AttrInvisible
	AttrStrikethrough
	AttrOverline
)

// blank returns the empty cell used to fill newly exposed grid space
// (resize, erase, scroll). bg carries the current SGR background so
// erased areas pick up the active background color, matching ECMA-48's
// erase semantics.
func blank(bg escape.ColorSpec) Cell {
	return Cell{Rune: ' ', Width: 1, Background: bg}
}

// runeWidth returns the display width of r in cells (0, 1, or 2),
// delegating to go-runewidth rather than the teacher's hand-rolled
// GetEastAsianWidth tables (see DESIGN.md).
func runeWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// isCombiningMark reports whether r should attach to the previous cell
// instead of occupying a new one, using uniseg's grapheme-cluster
// property tables in place of the teacher's hand-rolled IsCombiningMark
// ranges (see DESIGN.md).
func isCombiningMark(r rune) bool {
	if r == 0 {
		return false
	}
	// A rune that joins a preceding base character into the same
	// grapheme cluster is, for terminal purposes, a combining mark: it
	// should be folded into the existing cell rather than occupy a new
	// one. 'a' is an arbitrary base with no clustering behavior of its
	// own, used only to probe r's joining property.
	g := uniseg.NewGraphemes(string([]rune{'a', r}))
	g.Next()
	return len(g.Runes()) == 2
}
