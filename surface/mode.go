package surface

import "github.com/phroun/vtsurface/escape"

// Modes holds the terminal's persistent DEC private and ANSI mode
// state. Grounded on the teacher's buffer.go boolean mode fields
// (bracketedPasteMode, flexWidthMode, ambiguousWidthMode, ...),
// generalized to cover the full set escape.NamedPrivateMode names.
type Modes struct {
	Insert             bool
	LineFeedNewLine    bool
	CursorKeys         bool // application (true) vs normal (false)
	Column132          bool
	OriginMode         bool
	AutoWrap           bool
	BlinkingCursor     bool
	ShowCursor         bool
	MouseClicks        bool
	CellMouseMotion    bool
	AllMouseMotion     bool
	FocusEvents        bool
	Utf8Mouse          bool
	SgrMouse           bool
	AlternateScroll    bool
	AltScreenSaveCursor bool
	BracketedPaste     bool
	SyncUpdate         bool
}

func defaultModes() Modes {
	return Modes{
		AutoWrap:  true,
		ShowCursor: true,
	}
}

// apply flips the named mode on or off. The interpreter layer emits
// SetMode for every mode number it sees, known or not; unknown numbers
// are ignored here.
func (m *Modes) apply(a escape.SetMode) {
	if a.Private {
		switch escape.NamedPrivateMode(a.Mode) {
		case escape.PrivateModeCursorKeys:
			m.CursorKeys = a.Enable
		case escape.PrivateModeColumn132:
			m.Column132 = a.Enable
		case escape.PrivateModeOrigin:
			m.OriginMode = a.Enable
		case escape.PrivateModeLineWrap:
			m.AutoWrap = a.Enable
		case escape.PrivateModeBlinkingCursor:
			m.BlinkingCursor = a.Enable
		case escape.PrivateModeShowCursor:
			m.ShowCursor = a.Enable
		case escape.PrivateModeReportMouseClicks:
			m.MouseClicks = a.Enable
		case escape.PrivateModeReportCellMouseMotion:
			m.CellMouseMotion = a.Enable
		case escape.PrivateModeReportAllMouseMotion:
			m.AllMouseMotion = a.Enable
		case escape.PrivateModeReportFocusInOut:
			m.FocusEvents = a.Enable
		case escape.PrivateModeUtf8Mouse:
			m.Utf8Mouse = a.Enable
		case escape.PrivateModeSgrMouse:
			m.SgrMouse = a.Enable
		case escape.PrivateModeAlternateScroll:
			m.AlternateScroll = a.Enable
		case escape.PrivateModeSwapScreenAndRestoreCursor:
			m.AltScreenSaveCursor = a.Enable
		case escape.PrivateModeBracketedPaste:
			m.BracketedPaste = a.Enable
		case escape.PrivateModeSyncUpdate:
			m.SyncUpdate = a.Enable
		}
		return
	}
	switch escape.NamedMode(a.Mode) {
	case escape.ModeInsert:
		m.Insert = a.Enable
	case escape.ModeLineFeedNewLine:
		m.LineFeedNewLine = a.Enable
	}
}

// DECRQM reply values (CSI Ps $y / CSI ? Ps $y): 0 not recognized, 1
// set, 2 reset. xterm also distinguishes "permanently set/reset" (3/4);
// Modes doesn't track any permanently-fixed mode, so those never occur.
const (
	modeReportUnrecognized = 0
	modeReportSet          = 1
	modeReportReset        = 2
)

func reportBool(b bool) int {
	if b {
		return modeReportSet
	}
	return modeReportReset
}

// report answers a DECRQM query for mode, mirroring apply's case list
// so every mode it tracks is queryable.
func (m Modes) report(mode int, private bool) int {
	if private {
		switch escape.NamedPrivateMode(mode) {
		case escape.PrivateModeCursorKeys:
			return reportBool(m.CursorKeys)
		case escape.PrivateModeColumn132:
			return reportBool(m.Column132)
		case escape.PrivateModeOrigin:
			return reportBool(m.OriginMode)
		case escape.PrivateModeLineWrap:
			return reportBool(m.AutoWrap)
		case escape.PrivateModeBlinkingCursor:
			return reportBool(m.BlinkingCursor)
		case escape.PrivateModeShowCursor:
			return reportBool(m.ShowCursor)
		case escape.PrivateModeReportMouseClicks:
			return reportBool(m.MouseClicks)
		case escape.PrivateModeReportCellMouseMotion:
			return reportBool(m.CellMouseMotion)
		case escape.PrivateModeReportAllMouseMotion:
			return reportBool(m.AllMouseMotion)
		case escape.PrivateModeReportFocusInOut:
			return reportBool(m.FocusEvents)
		case escape.PrivateModeUtf8Mouse:
			return reportBool(m.Utf8Mouse)
		case escape.PrivateModeSgrMouse:
			return reportBool(m.SgrMouse)
		case escape.PrivateModeAlternateScroll:
			return reportBool(m.AlternateScroll)
		case escape.PrivateModeSwapScreenAndRestoreCursor:
			return reportBool(m.AltScreenSaveCursor)
		case escape.PrivateModeBracketedPaste:
			return reportBool(m.BracketedPaste)
		case escape.PrivateModeSyncUpdate:
			return reportBool(m.SyncUpdate)
		default:
			return modeReportUnrecognized
		}
	}
	switch escape.NamedMode(mode) {
	case escape.ModeInsert:
		return reportBool(m.Insert)
	case escape.ModeLineFeedNewLine:
		return reportBool(m.LineFeedNewLine)
	default:
		return modeReportUnrecognized
	}
}
