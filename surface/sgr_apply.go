package surface

import "github.com/phroun/vtsurface/escape"

// underlineBit maps an escape.Underline style to the CellAttrs bit
// that records it. Only one style is active at a time, so the caller
// clears the other underline bits (underlineMask) before setting it.
func underlineBit(u escape.Underline) CellAttrs {
	switch u {
	case escape.UnderlineSingle:
		return AttrUnderline
	case escape.UnderlineDouble:
		return AttrDoubleUnderline
	case escape.UnderlineCurly:
		return AttrCurlyUnderline
	case escape.UnderlineDotted:
		return AttrDottedUnderline
	case escape.UnderlineDashed:
		return AttrDashedUnderline
	default:
		return 0
	}
}

const underlineMask = AttrUnderline | AttrDoubleUnderline | AttrCurlyUnderline | AttrDottedUnderline | AttrDashedUnderline

func blinkBit(b escape.Blink) CellAttrs {
	switch b {
	case escape.BlinkSlow:
		return AttrBlink
	case escape.BlinkRapid:
		return AttrRapidBlink
	default:
		return 0
	}
}

const blinkMask = AttrBlink | AttrRapidBlink

// applySGR applies one decoded SGR attribute to the current rendition
// template, which subsequent Print calls stamp onto new cells.
// Grounded on spec.md's 4.2 SGR family and sgr.go's SGRAttribute shape.
func (s *Surface) applySGR(attr escape.SGRAttribute) {
	switch attr.Kind {
	case escape.SGRReset:
		s.curFG, s.curBG, s.curUL = escape.ColorSpec{}, escape.ColorSpec{}, escape.ColorSpec{}
		s.curAttrs = 0
	case escape.SGRIntensity:
		switch attr.Intensity {
		case escape.IntensityBold:
			s.curAttrs |= AttrBold
			s.curAttrs &^= AttrHalfBright
		case escape.IntensityHalf:
			s.curAttrs |= AttrHalfBright
			s.curAttrs &^= AttrBold
		default:
			s.curAttrs &^= AttrBold | AttrHalfBright
		}
	case escape.SGRUnderline:
		s.curAttrs = s.curAttrs&^underlineMask | underlineBit(attr.Underline)
	case escape.SGRUnderlineColor:
		s.curUL = attr.Color
	case escape.SGRBlink:
		s.curAttrs = s.curAttrs&^blinkMask | blinkBit(attr.Blink)
	case escape.SGRItalic:
		s.setBoolAttr(AttrItalic, attr.Bool)
	case escape.SGRInverse:
		s.setBoolAttr(AttrInverse, attr.Bool)
	case escape.SGRInvisible:
		s.setBoolAttr(AttrInvisible, attr.Bool)
	case escape.SGRStrikeThrough:
		s.setBoolAttr(AttrStrikethrough, attr.Bool)
	case escape.SGRFont:
		// Alternate fonts are a rendering concern this grid model does
		// not track per cell; recognized and ignored.
	case escape.SGRForeground:
		s.curFG = attr.Color
	case escape.SGRBackground:
		s.curBG = attr.Color
	case escape.SGROverline:
		s.setBoolAttr(AttrOverline, attr.Bool)
	case escape.SGRVerticalAlign:
		// Superscript/subscript likewise has no cell-level bit; a
		// renderer that cares can special-case VAlign via the raw
		// Action if it intercepts SGR before Surface does.
	}
}

func (s *Surface) setBoolAttr(bit CellAttrs, on bool) {
	if on {
		s.curAttrs |= bit
	} else {
		s.curAttrs &^= bit
	}
}
