package escape

// CursorShape is the rendered shape of the text cursor, set via DECSCUSR
// (CSI Ps SP q). Grounded on otty-escape/src/cursor.rs's CursorShape.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBeam
	CursorHollowBlock
	CursorHidden
)

// CursorStyle bundles the shape with its blink state.
type CursorStyle struct {
	Shape    CursorShape
	Blinking bool
}

// cursorStyleFromDECSCUSR decodes DECSCUSR's single numeric parameter.
// The odd/even pairing (blinking/steady variants sharing a shape) is
// standard DECSCUSR numbering: 0/1 block blinking, 2 block steady, 3/4
// underline, 5/6 beam.
func cursorStyleFromDECSCUSR(p int) CursorStyle {
	switch p {
	case 0, 1:
		return CursorStyle{Shape: CursorBlock, Blinking: true}
	case 2:
		return CursorStyle{Shape: CursorBlock, Blinking: false}
	case 3:
		return CursorStyle{Shape: CursorUnderline, Blinking: true}
	case 4:
		return CursorStyle{Shape: CursorUnderline, Blinking: false}
	case 5:
		return CursorStyle{Shape: CursorBeam, Blinking: true}
	case 6:
		return CursorStyle{Shape: CursorBeam, Blinking: false}
	default:
		return CursorStyle{Shape: CursorBlock, Blinking: true}
	}
}
