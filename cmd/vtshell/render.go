package main

import (
	"fmt"
	"strings"

	"github.com/phroun/vtsurface/escape"
	"github.com/phroun/vtsurface/surface"
)

// frameRenderer writes damaged lines of a Snapshot to the real host
// terminal as ANSI, tracking per-cell SGR state so it only emits
// attribute/color changes that actually differ from the previous cell
// written. Grounded on the teacher's Renderer.RenderToString SGR
// optimization in cli/renderer.go, simplified: this harness draws
// full-screen with no border/status-bar compositing, since vtshell is
// a direct pass-through shell rather than the teacher's
// embeddable-widget-with-chrome use case (see DESIGN.md).
type frameRenderer struct {
	out strings.Builder

	haveAttr bool
	fg, bg   escape.ColorSpec
	attrs    surface.CellAttrs
}

func newFrameRenderer() *frameRenderer {
	return &frameRenderer{}
}

// render appends the ANSI needed to bring the host terminal from
// whatever it last displayed to snap, using only snap's damaged lines
// (or the whole grid on fullClear), and returns the accumulated bytes.
func (r *frameRenderer) render(snap *surface.Snapshot) []byte {
	r.out.Reset()
	r.out.WriteString("\x1b[?25l")

	lines, fullClear := snap.Damage()
	if fullClear {
		r.out.WriteString("\x1b[2J")
		r.haveAttr = false
		for row := 0; row < snap.Rows; row++ {
			r.renderLine(snap, row, 0, snap.Cols-1)
		}
	} else {
		for _, d := range lines {
			if d.Row < 0 || d.Row >= snap.Rows {
				continue
			}
			r.renderLine(snap, d.Row, d.MinCol, d.MaxCol)
		}
	}

	r.out.WriteString("\x1b[0m")
	if snap.Modes.ShowCursor {
		fmt.Fprintf(&r.out, "\x1b[%d;%dH\x1b[?25h", snap.Cursor.Row+1, snap.Cursor.Col+1)
	}
	return []byte(r.out.String())
}

func (r *frameRenderer) renderLine(snap *surface.Snapshot, row, minCol, maxCol int) {
	if minCol > maxCol {
		return
	}
	fmt.Fprintf(&r.out, "\x1b[%d;%dH", row+1, minCol+1)
	cells := snap.Cells[row]
	for col := minCol; col <= maxCol && col < len(cells); col++ {
		cell := cells[col]
		if cell.Width == 0 {
			continue // trailing half of a wide glyph already emitted
		}
		r.writeSGR(cell)
		if cell.Rune == 0 {
			r.out.WriteRune(' ')
			continue
		}
		r.out.WriteRune(cell.Rune)
		for _, c := range cell.Combining {
			r.out.WriteRune(c)
		}
	}
}

func (r *frameRenderer) writeSGR(cell surface.Cell) {
	if r.haveAttr && cell.Foreground == r.fg && cell.Background == r.bg && cell.Attrs == r.attrs {
		return
	}
	var codes []string
	codes = append(codes, "0")
	if cell.Attrs&surface.AttrBold != 0 {
		codes = append(codes, "1")
	}
	if cell.Attrs&surface.AttrHalfBright != 0 {
		codes = append(codes, "2")
	}
	if cell.Attrs&surface.AttrItalic != 0 {
		codes = append(codes, "3")
	}
	if cell.Attrs&(surface.AttrUnderline|surface.AttrDoubleUnderline|surface.AttrCurlyUnderline|surface.AttrDottedUnderline|surface.AttrDashedUnderline) != 0 {
		codes = append(codes, "4")
	}
	if cell.Attrs&surface.AttrBlink != 0 {
		codes = append(codes, "5")
	}
	if cell.Attrs&surface.AttrRapidBlink != 0 {
		codes = append(codes, "6")
	}
	if cell.Attrs&surface.AttrInverse != 0 {
		codes = append(codes, "7")
	}
	if cell.Attrs&surface.AttrInvisible != 0 {
		codes = append(codes, "8")
	}
	if cell.Attrs&surface.AttrStrikethrough != 0 {
		codes = append(codes, "9")
	}
	if cell.Attrs&surface.AttrOverline != 0 {
		codes = append(codes, "53")
	}
	codes = append(codes, sgrColorCode(cell.Foreground, true), sgrColorCode(cell.Background, false))

	r.out.WriteString("\x1b[")
	r.out.WriteString(strings.Join(codes, ";"))
	r.out.WriteString("m")

	r.haveAttr = true
	r.fg, r.bg, r.attrs = cell.Foreground, cell.Background, cell.Attrs
}

func sgrColorCode(c escape.ColorSpec, foreground bool) string {
	base := 39
	if !foreground {
		base = 49
	}
	switch c.Kind {
	case escape.ColorPaletteIndex:
		if foreground {
			return fmt.Sprintf("38;5;%d", c.Index)
		}
		return fmt.Sprintf("48;5;%d", c.Index)
	case escape.ColorTrueColor:
		if foreground {
			return fmt.Sprintf("38;2;%d;%d;%d", c.RGB.R, c.RGB.G, c.RGB.B)
		}
		return fmt.Sprintf("48;2;%d;%d;%d", c.RGB.R, c.RGB.G, c.RGB.B)
	default:
		return fmt.Sprintf("%d", base)
	}
}
