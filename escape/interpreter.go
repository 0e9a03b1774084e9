package escape

import (
	"bytes"
	"encoding/base64"
	"log"
	"strconv"

	"github.com/phroun/vtsurface/vtparse"
)

// Sink receives the decoded Action stream. surface.Surface is the
// production implementation; tests use a small recording sink.
type Sink interface {
	Apply(Action)
}

var _ vtparse.Actor = (*Interpreter)(nil)

// Interpreter implements vtparse.Actor, translating recognized VT
// sequences into Action values delivered to a Sink. It holds the small
// amount of state (active charset slots, current keyboard-mode stack)
// that spans multiple sequences but is not itself part of the grid, so
// it does not belong in the surface package.
type Interpreter struct {
	Sink Sink

	// ReplyWriter, if non-nil, receives the replies Interpreter answers
	// on its own: the DSR status report (CSI 5 n). DA, cursor-position,
	// DECRQM and keyboard queries are emitted as Actions to the Sink,
	// which writes those replies itself. nil means
	// replies are dropped - acceptable for a non-interactive consumer
	// (e.g. replaying a recorded session) but a live PTY-backed host
	// must set this.
	ReplyWriter func([]byte)

	// Logger, if non-nil, receives diagnostics for recoverable anomalies
	// (unrecognized controls, ESC sequences, DSR requests, SGR
	// parameters and OSC selectors, and unparsable OSC payloads). An
	// oversized OSC field is cut short by the parser without any
	// diagnostic reaching this Logger. nil means silent,
	// matching the "a library doesn't log by default" norm the teacher
	// follows by not logging at all.
	Logger *log.Logger

	charsets    [4]Charset
	activeSlot  CharsetIndex
	keyboardModes []KeyboardMode // stack, per kitty protocol CSI > u / < u

	lastPrintable rune // cache for REP (CSI n b); 0 means "none yet"

	dcsParams  []vtparse.Param
	dcsInter   []byte
	dcsFinal   byte
	dcsPayload []byte
}

// NewInterpreter returns an Interpreter ready to feed sink.
func NewInterpreter(sink Sink) *Interpreter {
	return &Interpreter{
		Sink:          sink,
		keyboardModes: []KeyboardMode{KeyboardNoMode},
	}
}

func (in *Interpreter) emit(a Action) {
	if in.Sink != nil {
		in.Sink.Apply(a)
	}
}

func (in *Interpreter) logf(format string, args ...any) {
	if in.Logger != nil {
		in.Logger.Printf(format, args...)
	}
}

func (in *Interpreter) reply(b []byte) {
	if in.ReplyWriter != nil {
		in.ReplyWriter(b)
	}
}

// Print implements vtparse.Actor.
func (in *Interpreter) Print(r rune) {
	mapped := in.charsets[in.activeSlot].Map(r)
	in.lastPrintable = mapped
	in.emit(Print{Rune: mapped})
}

// Execute implements vtparse.Actor for single-byte C0/C1 controls.
func (in *Interpreter) Execute(b byte) {
	switch b {
	case 0x07:
		in.emit(Control{Function: CtrlBell})
	case 0x08:
		in.emit(Control{Function: CtrlBackspace})
	case 0x09:
		in.emit(Control{Function: CtrlTab})
	case 0x0a, 0x0b, 0x0c:
		in.emit(Control{Function: CtrlLineFeed})
	case 0x0d:
		in.emit(Control{Function: CtrlCarriageReturn})
	case 0x0e:
		in.activeSlot = G1
		in.emit(InvokeCharset{Index: G1})
	case 0x0f:
		in.activeSlot = G0
		in.emit(InvokeCharset{Index: G0})
	case 0x84: // IND (8-bit)
		in.emit(Control{Function: CtrlIndex})
	case 0x85: // NEL (8-bit)
		in.emit(Control{Function: CtrlNextLine})
	case 0x88: // HTS (8-bit)
		in.emit(Control{Function: CtrlSetHorizontalTab})
	case 0x8d: // RI (8-bit)
		in.emit(Control{Function: CtrlReverseIndex})
	default:
		in.logf("escape: ignoring unrecognized control byte 0x%02x", b)
	}
}

// EscDispatch implements vtparse.Actor for two-or-more-byte escape
// sequences outside the CSI/OSC/DCS/SOS-PM-APC families.
func (in *Interpreter) EscDispatch(inter []byte, final byte) {
	if len(inter) == 1 && inter[0] == '#' && final == '8' {
		in.emit(Control{Function: CtrlScreenAlignmentTest})
		return
	}
	if len(inter) == 1 {
		switch inter[0] {
		case '(':
			in.emit(DesignateCharset{Index: G0, Charset: charsetFromDesignator(final)})
			in.charsets[G0] = charsetFromDesignator(final)
			return
		case ')':
			in.emit(DesignateCharset{Index: G1, Charset: charsetFromDesignator(final)})
			in.charsets[G1] = charsetFromDesignator(final)
			return
		case '*':
			in.emit(DesignateCharset{Index: G2, Charset: charsetFromDesignator(final)})
			in.charsets[G2] = charsetFromDesignator(final)
			return
		case '+':
			in.emit(DesignateCharset{Index: G3, Charset: charsetFromDesignator(final)})
			in.charsets[G3] = charsetFromDesignator(final)
			return
		}
	}
	if len(inter) == 0 {
		switch final {
		case 'D':
			in.emit(Control{Function: CtrlIndex})
			return
		case 'E':
			in.emit(Control{Function: CtrlNextLine})
			return
		case 'H':
			in.emit(Control{Function: CtrlSetHorizontalTab})
			return
		case 'M':
			in.emit(Control{Function: CtrlReverseIndex})
			return
		case 'c':
			in.emit(Control{Function: CtrlFullReset})
			return
		case '7':
			in.emit(Control{Function: CtrlSaveCursor})
			return
		case '8':
			in.emit(Control{Function: CtrlRestoreCursor})
			return
		case '=':
			in.emit(Control{Function: CtrlSetKeypadApplicationMode})
			return
		case '>':
			in.emit(Control{Function: CtrlUnsetKeypadApplicationMode})
			return
		case '\\':
			return // bare ST after a string already closed; no-op
		}
	}
	in.logf("escape: unrecognized ESC sequence inter=%q final=%q", inter, final)
}

// CSIDispatch implements vtparse.Actor. DEC-private and xterm
// modifier-introducer bytes (?, <, =, >) arrive promoted into params[0]
// as a Marker rather than as an intermediate (see vtparse's collect/
// promoteMarker), so routing switches on that marker rather than on
// inter.
func (in *Interpreter) CSIDispatch(params []vtparse.Param, inter []byte, final byte) {
	marker, numeric := splitMarker(params)

	switch {
	case len(inter) == 1 && inter[0] == ' ' && final == 'q':
		in.emit(SetCursorStyle{Style: cursorStyleFromDECSCUSR(intParam(numeric, 0, 0))})
	case len(inter) == 1 && inter[0] == '!' && final == 'p':
		in.emit(Control{Function: CtrlSoftReset})
	case len(inter) == 1 && inter[0] == '$' && final == 'p':
		in.emit(ReportMode{Mode: int(intParamRaw(numeric, 0)), Private: marker == '?'})
	// The parser closes a lone marker with one implicit zero parameter,
	// so "CSI ? u" arrives as [P('?'), 0].
	case marker == '?' && final == 'u' && len(numeric) <= 1 && intParamRaw(numeric, 0) == 0:
		in.emit(KittyKeyboard{Op: KeyboardModeQuery})
	case marker == '?' && final == 'm' && intParamRaw(numeric, 0) == 4:
		in.emit(ModifyOtherKeysQuery{})
	case marker == '?':
		in.dispatchPrivateCSI(numeric, final)
	case marker == '>' && final == 'm':
		in.dispatchModifyOtherKeys(numeric)
	case marker == '>' && final == 'u':
		in.dispatchKittyPush(numeric)
	case marker == '<' && final == 'u':
		in.dispatchKittyPop(numeric)
	case marker == '=' && final == 'u':
		in.dispatchKittySet(numeric)
	case marker == 0 && len(inter) == 0:
		in.dispatchPublicCSI(numeric, final)
	default:
		in.emitUnspecified(params, inter, final)
	}
}

func (in *Interpreter) emitUnspecified(params []vtparse.Param, inter []byte, final byte) {
	vals := make([]int64, 0, len(params))
	truncated := false
	for _, p := range params {
		if p.IsMarker() {
			truncated = true
			continue
		}
		vals = append(vals, p.Value)
	}
	in.emit(Unspecified{Params: vals, Intermediates: inter, Final: final, ParametersTruncated: truncated})
}

// splitMarker separates a leading promoted marker byte ('?', '<', '=',
// or '>') from the numeric parameters that follow it. marker is 0 when
// params carries no leading marker.
func splitMarker(params []vtparse.Param) (marker byte, numeric []vtparse.Param) {
	if len(params) > 0 && params[0].IsMarker() {
		return params[0].Marker, params[1:]
	}
	return 0, params
}

func intParam(params []vtparse.Param, i int, def int64) int {
	if i < 0 || i >= len(params) || params[i].IsMarker() {
		return int(def)
	}
	if params[i].Value == 0 {
		return int(def)
	}
	return int(params[i].Value)
}

// intParamRaw returns the literal value (0 stays 0, no default
// substitution), for operations like SGR and mode numbers where 0 is
// meaningful.
func intParamRaw(params []vtparse.Param, i int) int64 {
	if i < 0 || i >= len(params) || params[i].IsMarker() {
		return 0
	}
	return params[i].Value
}

func (in *Interpreter) dispatchPublicCSI(p []vtparse.Param, final byte) {
	n := intParam(p, 0, 1)
	switch final {
	case 'A':
		in.emit(CursorMove{Kind: CursorUp, N: n})
	case 'B':
		in.emit(CursorMove{Kind: CursorDown, N: n})
	case 'C':
		in.emit(CursorMove{Kind: CursorForward, N: n})
	case 'D':
		in.emit(CursorMove{Kind: CursorBack, N: n})
	case 'E':
		in.emit(CursorMove{Kind: CursorNextLine, N: n})
	case 'F':
		in.emit(CursorMove{Kind: CursorPrevLine, N: n})
	case 'G', '`':
		in.emit(CursorMove{Kind: CursorHorizontalAbsolute, N: n})
	case 'd':
		in.emit(CursorMove{Kind: CursorVerticalAbsolute, N: n})
	case 'H', 'f':
		in.emit(CursorMove{Kind: CursorPosition, Row: intParam(p, 0, 1), Col: intParam(p, 1, 1)})
	case 'J':
		in.emit(Erase{Kind: eraseDisplayKind(intParamRaw(p, 0))})
	case 'K':
		in.emit(Erase{Kind: eraseLineKind(intParamRaw(p, 0))})
	case 'L':
		in.emit(Edit{Kind: InsertLines, Count: n})
	case 'M':
		in.emit(Edit{Kind: DeleteLines, Count: n})
	case '@':
		in.emit(Edit{Kind: InsertChars, Count: n})
	case 'P':
		in.emit(Edit{Kind: DeleteChars, Count: n})
	case 'X':
		in.emit(Edit{Kind: EraseChars, Count: n})
	case 'S':
		in.emit(Edit{Kind: ScrollUp, Count: n})
	case 'T':
		in.emit(Edit{Kind: ScrollDown, Count: n})
	case 'g':
		in.dispatchTabClear(intParamRaw(p, 0))
	case 'r':
		in.emit(SetScrollRegion{Top: intParam(p, 0, 1), Bottom: intParam(p, 1, 0)})
	case 's':
		in.emit(Control{Function: CtrlSaveCursor})
	case 'u':
		in.emit(Control{Function: CtrlRestoreCursor})
	case 'h', 'l':
		for _, param := range p {
			if param.IsMarker() {
				continue
			}
			in.emit(SetMode{Mode: int(param.Value), Private: false, Enable: final == 'h'})
		}
	case 'm':
		in.dispatchSGR(p)
	case 'n':
		in.dispatchDSR(p)
	case 'c':
		in.emit(DeviceAttributes{Kind: DA1})
	case 'b':
		in.dispatchRepeat(n)
	case 't':
		in.dispatchWindowOps(p)
	default:
		in.emitUnspecified(p, nil, final)
	}
}

// dispatchRepeat implements REP (CSI n b): repeat the last printed
// character n times. A no-op if nothing has been printed yet.
func (in *Interpreter) dispatchRepeat(n int) {
	if in.lastPrintable == 0 {
		return
	}
	for i := 0; i < n; i++ {
		in.emit(Print{Rune: in.lastPrintable})
	}
}

// dispatchWindowOps implements the subset of XTWINOPS (CSI Ps ; ... t)
// that vtsurface answers: 14/18 (pixel/char size queries) and 22/23
// (window/icon title push/pop). Other ops are forwarded as-is for the
// sink to ignore or log.
func (in *Interpreter) dispatchWindowOps(p []vtparse.Param) {
	if len(p) == 0 {
		return
	}
	op := int(intParamRaw(p, 0))
	params := make([]int64, 0, len(p)-1)
	for _, param := range p[1:] {
		if param.IsMarker() {
			continue
		}
		params = append(params, param.Value)
	}
	in.emit(WindowOps{Op: op, Params: params})
}

func eraseDisplayKind(n int64) EraseKind {
	switch n {
	case 1:
		return EraseDisplayAbove
	case 2:
		return EraseDisplayAll
	case 3:
		return EraseDisplaySaved
	default:
		return EraseDisplayBelow
	}
}

func eraseLineKind(n int64) EraseKind {
	switch n {
	case 1:
		return EraseLineLeft
	case 2:
		return EraseLineAll
	default:
		return EraseLineRight
	}
}

func (in *Interpreter) dispatchTabClear(n int64) {
	if n == 3 {
		in.emit(SetTabStop{Kind: TabStopClearAll})
		return
	}
	in.emit(SetTabStop{Kind: TabStopClearCurrent})
}

func (in *Interpreter) dispatchPrivateCSI(p []vtparse.Param, final byte) {
	if final == 'n' && intParamRaw(p, 0) == 6 {
		in.emit(DeviceStatusReport{ExtendedCursorPosition: true})
		return
	}
	if final != 'h' && final != 'l' {
		in.emitUnspecified(p, []byte{'?'}, final)
		return
	}
	enable := final == 'h'
	for _, param := range p {
		if param.IsMarker() {
			continue
		}
		mode := int(param.Value)
		if NamedPrivateMode(mode) == PrivateModeSyncUpdate {
			in.emit(SyncUpdate{Begin: enable})
			continue
		}
		in.emit(SetMode{Mode: mode, Private: true, Enable: enable})
	}
}

func (in *Interpreter) dispatchDSR(p []vtparse.Param) {
	n := intParamRaw(p, 0)
	switch n {
	case 5:
		in.reply([]byte("\x1b[0n"))
	case 6:
		in.emit(DeviceStatusReport{CursorPosition: true})
	default:
		in.logf("escape: unrecognized DSR request %d", n)
	}
}

func (in *Interpreter) dispatchModifyOtherKeys(p []vtparse.Param) {
	if intParamRaw(p, 0) != 4 {
		return
	}
	switch intParamRaw(p, 1) {
	case 0:
		in.emit(ModifyOtherKeysMode{State: ModifyOtherKeysReset})
	case 1:
		in.emit(ModifyOtherKeysMode{State: ModifyOtherKeysEnableExceptWellDefined})
	case 2:
		in.emit(ModifyOtherKeysMode{State: ModifyOtherKeysEnableAll})
	}
}

func (in *Interpreter) dispatchKittyPush(p []vtparse.Param) {
	modes := KeyboardMode(intParamRaw(p, 0))
	in.keyboardModes = append(in.keyboardModes, modes)
	in.emit(KittyKeyboard{Op: KeyboardModePush, Modes: modes})
}

func (in *Interpreter) dispatchKittyPop(p []vtparse.Param) {
	n := int(intParam(p, 0, 1))
	for i := 0; i < n && len(in.keyboardModes) > 1; i++ {
		in.keyboardModes = in.keyboardModes[:len(in.keyboardModes)-1]
	}
	in.emit(KittyKeyboard{Op: KeyboardModePop, PopN: n, Modes: in.keyboardModes[len(in.keyboardModes)-1]})
}

func (in *Interpreter) dispatchKittySet(p []vtparse.Param) {
	modes := KeyboardMode(intParamRaw(p, 0))
	behavior := kittyApplyBehaviorFromProtocol(intParam(p, 1, 1))
	top := len(in.keyboardModes) - 1
	in.keyboardModes[top] = behavior.Apply(in.keyboardModes[top], modes)
	in.emit(KittyKeyboard{Op: KeyboardModeApply, Modes: in.keyboardModes[top], Apply: behavior})
}

// kittyApplyBehaviorFromProtocol maps the kitty keyboard protocol's 1
// (set/replace, the default), 2 (union), 3 (difference) mode numbers to
// KittyApplyBehavior.
func kittyApplyBehaviorFromProtocol(mode int) KittyApplyBehavior {
	switch mode {
	case 2:
		return KittyApplyUnion
	case 3:
		return KittyApplySubtract
	default:
		return KittyApplyReplace
	}
}

// dispatchSGR decodes one or more SGR parameters, emitting one SGR
// Action per attribute so the sink can apply them independently and in
// order, matching how multi-attribute sequences like "CSI 1;31;4m"
// compose.
func (in *Interpreter) dispatchSGR(p []vtparse.Param) {
	if len(p) == 0 {
		in.emit(SGR{Attr: SGRAttribute{Kind: SGRReset}})
		return
	}
	for i := 0; i < len(p); i++ {
		if p[i].IsMarker() {
			continue
		}
		n := p[i].Value
		switch {
		case n == 0:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRReset}})
		case n == 1:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRIntensity, Intensity: IntensityBold}})
		case n == 2:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRIntensity, Intensity: IntensityHalf}})
		case n == 22:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRIntensity, Intensity: IntensityNormal}})
		case n == 3:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRItalic, Bool: true}})
		case n == 23:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRItalic, Bool: false}})
		case n == 4:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRUnderline, Underline: underlineFromParam(p[i])}})
		case n == 24:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRUnderline, Underline: UnderlineNone}})
		case n == 5:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRBlink, Blink: BlinkSlow}})
		case n == 6:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRBlink, Blink: BlinkRapid}})
		case n == 25:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRBlink, Blink: BlinkNone}})
		case n == 7:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRInverse, Bool: true}})
		case n == 27:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRInverse, Bool: false}})
		case n == 8:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRInvisible, Bool: true}})
		case n == 28:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRInvisible, Bool: false}})
		case n == 9:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRStrikeThrough, Bool: true}})
		case n == 29:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRStrikeThrough, Bool: false}})
		case n == 53:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGROverline, Bool: true}})
		case n == 55:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGROverline, Bool: false}})
		case n == 73:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRVerticalAlign, VAlign: VerticalAlignSuperscript}})
		case n == 74:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRVerticalAlign, VAlign: VerticalAlignSubscript}})
		case n == 75:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRVerticalAlign, VAlign: VerticalAlignBaseline}})
		case n == 10:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRFont, Font: Font{Alternate: false}}})
		case n >= 11 && n <= 19:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRFont, Font: Font{Alternate: true, Index: uint8(n - 10)}}})
		case n >= 30 && n <= 37:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRForeground, Color: ColorSpec{Kind: ColorPaletteIndex, Index: uint8(n - 30)}}})
		case n == 38:
			i = in.dispatchExtendedColor(p, i, SGRForeground)
		case n == 39:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRForeground, Color: ColorSpec{Kind: ColorDefault}}})
		case n >= 40 && n <= 47:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRBackground, Color: ColorSpec{Kind: ColorPaletteIndex, Index: uint8(n - 40)}}})
		case n == 48:
			i = in.dispatchExtendedColor(p, i, SGRBackground)
		case n == 49:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRBackground, Color: ColorSpec{Kind: ColorDefault}}})
		case n == 58:
			i = in.dispatchExtendedColor(p, i, SGRUnderlineColor)
		case n == 59:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRUnderlineColor, Color: ColorSpec{Kind: ColorDefault}}})
		case n >= 90 && n <= 97:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRForeground, Color: ColorSpec{Kind: ColorPaletteIndex, Index: uint8(n - 90 + 8)}}})
		case n >= 100 && n <= 107:
			in.emit(SGR{Attr: SGRAttribute{Kind: SGRBackground, Color: ColorSpec{Kind: ColorPaletteIndex, Index: uint8(n - 100 + 8)}}})
		default:
			in.logf("escape: unrecognized SGR parameter %d", n)
		}
	}
}

func underlineFromParam(p vtparse.Param) Underline {
	if len(p.Subs) == 0 {
		if p.Value == 0 {
			return UnderlineNone
		}
		return UnderlineSingle
	}
	switch p.Subs[0] {
	case 0:
		return UnderlineNone
	case 2:
		return UnderlineDouble
	case 3:
		return UnderlineCurly
	case 4:
		return UnderlineDotted
	case 5:
		return UnderlineDashed
	default:
		return UnderlineSingle
	}
}

// dispatchExtendedColor decodes the SGR 38/48/58 extended color forms:
// "38;5;n" (palette) and "38;2;r;g;b" (true color), in both the
// semicolon-separated legacy form and the colon sub-parameter form
// ("38:2::r:g:b"). Returns the index of the last parameter consumed so
// the caller's loop can skip over it.
func (in *Interpreter) dispatchExtendedColor(p []vtparse.Param, i int, kind SGRAttributeKind) int {
	cur := p[i]
	if len(cur.Subs) > 0 {
		return in.dispatchExtendedColorSubs(cur, kind, i)
	}
	if i+1 >= len(p) {
		return i
	}
	switch intParamRaw(p, i+1) {
	case 5:
		if i+2 >= len(p) {
			return i + 1
		}
		in.emit(SGR{Attr: SGRAttribute{Kind: kind, Color: ColorSpec{Kind: ColorPaletteIndex, Index: uint8(intParamRaw(p, i+2))}}})
		return i + 2
	case 2:
		if i+4 >= len(p) {
			return i + 1
		}
		rgb := RGB{
			R: uint8(intParamRaw(p, i+2)),
			G: uint8(intParamRaw(p, i+3)),
			B: uint8(intParamRaw(p, i+4)),
		}
		in.emit(SGR{Attr: SGRAttribute{Kind: kind, Color: ColorSpec{Kind: ColorTrueColor, RGB: rgb}}})
		return i + 4
	default:
		return i + 1
	}
}

func (in *Interpreter) dispatchExtendedColorSubs(p vtparse.Param, kind SGRAttributeKind, i int) int {
	subs := p.Subs
	if len(subs) == 0 {
		return i
	}
	switch subs[0] {
	case 5:
		if len(subs) < 2 {
			return i
		}
		in.emit(SGR{Attr: SGRAttribute{Kind: kind, Color: ColorSpec{Kind: ColorPaletteIndex, Index: uint8(subs[1])}}})
	case 2:
		// Colon form carries an optional colorspace-id sub-param ahead
		// of r/g/b ("38:2:CS:r:g:b"); accept both 3-value and 4-value
		// tails.
		var r, g, b int64
		switch {
		case len(subs) >= 5:
			r, g, b = subs[2], subs[3], subs[4]
		case len(subs) >= 4:
			r, g, b = subs[1], subs[2], subs[3]
		default:
			return i
		}
		in.emit(SGR{Attr: SGRAttribute{Kind: kind, Color: ColorSpec{Kind: ColorTrueColor, RGB: RGB{R: uint8(r), G: uint8(g), B: uint8(b)}}}})
	}
	return i
}

// Hook implements vtparse.Actor: a DCS sequence's header is complete and
// payload bytes (if any) will follow via Put.
func (in *Interpreter) Hook(params []vtparse.Param, inter []byte, final byte) {
	in.dcsParams = append(in.dcsParams[:0], params...)
	in.dcsInter = append(in.dcsInter[:0], inter...)
	in.dcsFinal = final
	in.dcsPayload = in.dcsPayload[:0]
}

// Put implements vtparse.Actor, appending one payload byte to the
// currently-open DCS string.
func (in *Interpreter) Put(b byte) {
	in.dcsPayload = append(in.dcsPayload, b)
}

// Unhook implements vtparse.Actor: the DCS string's terminator has been
// reached.
func (in *Interpreter) Unhook() {
	vals := make([]int64, 0, len(in.dcsParams))
	for _, p := range in.dcsParams {
		if !p.IsMarker() {
			vals = append(vals, p.Value)
		}
	}
	in.emit(DCSPassthrough{
		Params:        vals,
		Intermediates: append([]byte(nil), in.dcsInter...),
		Final:         in.dcsFinal,
		Payload:       append([]byte(nil), in.dcsPayload...),
	})
}

// OscDispatch implements vtparse.Actor.
func (in *Interpreter) OscDispatch(fields [][]byte) {
	if len(fields) == 0 {
		return
	}
	kind, err := strconv.Atoi(string(fields[0]))
	if err != nil {
		in.logf("escape: OSC with non-numeric selector %q", fields[0])
		return
	}
	switch kind {
	case 0:
		in.emit(SetTitle{IconTitle: true, WindowTitle: true, Title: joinField(fields)})
	case 1:
		in.emit(SetTitle{IconTitle: true, Title: joinField(fields)})
	case 2:
		in.emit(SetTitle{WindowTitle: true, Title: joinField(fields)})
	case 4:
		in.dispatchOSCPalette(fields)
	case 8:
		in.dispatchOSCHyperlink(fields)
	case 10:
		in.dispatchOSCDynamicColor(fields, DynamicColorForeground)
	case 11:
		in.dispatchOSCDynamicColor(fields, DynamicColorBackground)
	case 12:
		in.dispatchOSCDynamicColor(fields, DynamicColorCursor)
	case 52:
		in.dispatchOSCClipboard(fields)
	case 104:
		in.dispatchOSCResetPalette(fields)
	case 110:
		in.emit(ResetColor{Dynamic: true, Slot: DynamicColorForeground})
	case 111:
		in.emit(ResetColor{Dynamic: true, Slot: DynamicColorBackground})
	case 112:
		in.emit(ResetColor{Dynamic: true, Slot: DynamicColorCursor})
	default:
		in.logf("escape: unrecognized OSC selector %d", kind)
	}
}

func joinField(fields [][]byte) string {
	if len(fields) < 2 {
		return ""
	}
	return string(bytes.Join(fields[1:], []byte{';'}))
}

func (in *Interpreter) dispatchOSCPalette(fields [][]byte) {
	// OSC 4 ; index ; spec (possibly repeated pairs).
	for i := 1; i+1 < len(fields); i += 2 {
		idx, err := strconv.Atoi(string(fields[i]))
		if err != nil {
			continue
		}
		rgb, ok := parseXParseColor(string(fields[i+1]))
		if !ok {
			in.logf("escape: OSC 4 unparsable color spec %q", fields[i+1])
			continue
		}
		in.emit(SetPaletteColor{Index: idx, Color: rgb})
	}
}

func (in *Interpreter) dispatchOSCResetPalette(fields [][]byte) {
	if len(fields) < 2 {
		return
	}
	for _, f := range fields[1:] {
		idx, err := strconv.Atoi(string(f))
		if err != nil {
			continue
		}
		in.emit(ResetColor{Index: idx})
	}
}

func (in *Interpreter) dispatchOSCDynamicColor(fields [][]byte, slot DynamicColorSlot) {
	if len(fields) < 2 {
		return
	}
	rgb, ok := parseXParseColor(string(fields[1]))
	if !ok {
		in.logf("escape: OSC dynamic color unparsable spec %q", fields[1])
		return
	}
	in.emit(SetDynamicColor{Slot: slot, Color: rgb})
}

func (in *Interpreter) dispatchOSCHyperlink(fields [][]byte) {
	// OSC 8 ; params ; uri - params is a semicolon-free key=value list
	// (id=...); only "id" is recognized, matching xterm.
	id := ""
	if len(fields) >= 2 {
		id = parseHyperlinkID(string(fields[1]))
	}
	uri := ""
	if len(fields) >= 3 {
		uri = string(fields[2])
	}
	in.emit(Hyperlink{ID: id, URI: uri})
}

func parseHyperlinkID(params string) string {
	const prefix = "id="
	for _, kv := range splitColon(params) {
		if len(kv) > len(prefix) && kv[:len(prefix)] == prefix {
			return kv[len(prefix):]
		}
	}
	return ""
}

func splitColon(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func (in *Interpreter) dispatchOSCClipboard(fields [][]byte) {
	if len(fields) < 3 {
		return
	}
	selector := byte('c')
	if len(fields[1]) > 0 {
		selector = fields[1][0]
	}
	payload := string(fields[2])
	if payload == "?" {
		in.emit(Clipboard{Selector: selector, Write: false})
		return
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		in.logf("escape: OSC 52 invalid base64 payload")
		return
	}
	in.emit(Clipboard{Selector: selector, Write: true, Data: data})
}
