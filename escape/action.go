// Package escape maps the events recognized by vtparse into a closed set
// of semantic actions, and provides Interpreter, a vtparse.Actor that
// performs that mapping and hands the result to a Sink (the surface
// package's Surface, in production).
//
// The mapping itself never mutates terminal state: Interpreter decides
// *what* a sequence means; Sink decides *how* to apply it to a grid.
package escape

// Action is the closed set of terminal operations recognized by
// Interpreter. It is a sum type expressed as a Go interface with an
// unexported marker method, satisfied only by the concrete types in this
// file - callers outside the package can accept and switch on Action
// values but cannot manufacture new variants.
type Action interface {
	isAction()
}

// Print emits one (possibly wide, possibly combining) rune at the
// current cursor position, advancing the cursor per the active charset
// and width rules.
type Print struct {
	Rune rune
}

func (Print) isAction() {}

// ControlFunction identifies a single-byte C0/C1 control function, or an
// ECMA-48 escape sequence with no parameters worth modeling as its own
// Action variant.
type ControlFunction int

const (
	CtrlBell ControlFunction = iota
	CtrlBackspace
	CtrlTab
	CtrlLineFeed
	CtrlCarriageReturn
	CtrlReverseIndex
	CtrlIndex
	CtrlNextLine
	CtrlSetHorizontalTab
	CtrlSaveCursor
	CtrlRestoreCursor
	CtrlScreenAlignmentTest
	CtrlSetKeypadApplicationMode
	CtrlUnsetKeypadApplicationMode
	CtrlFullReset
	CtrlSoftReset
)

// Control carries a parameterless control function.
type Control struct {
	Function ControlFunction
}

func (Control) isAction() {}

// CursorMove repositions the cursor. Relative moves clamp at the margins
// rather than wrapping; Absolute moves are 1-based per ECMA-48 and
// converted to 0-based grid coordinates by the sink.
type CursorMoveKind int

const (
	CursorUp CursorMoveKind = iota
	CursorDown
	CursorForward
	CursorBack
	CursorNextLine
	CursorPrevLine
	CursorHorizontalAbsolute
	CursorVerticalAbsolute
	CursorPosition
)

type CursorMove struct {
	Kind CursorMoveKind
	// N is the repeat count/offset for relative moves, or the 1-based
	// coordinate for Horizontal/VerticalAbsolute.
	N int
	// Row/Col are 1-based targets for CursorPosition; both default to 1
	// when the corresponding CSI parameter is omitted or zero.
	Row, Col int
}

func (CursorMove) isAction() {}

// SetCursorStyle changes the cursor's rendered shape and blink state
// (DECSCUSR).
type SetCursorStyle struct {
	Style CursorStyle
}

func (SetCursorStyle) isAction() {}

// EraseKind selects what ED/EL erase.
type EraseKind int

const (
	EraseDisplayBelow EraseKind = iota
	EraseDisplayAbove
	EraseDisplayAll
	EraseDisplaySaved
	EraseLineRight
	EraseLineLeft
	EraseLineAll
)

type Erase struct {
	Kind EraseKind
}

func (Erase) isAction() {}

// EditKind selects an insert/delete line-or-character operation (IL, DL,
// ICH, DCH, ECH).
type EditKind int

const (
	InsertLines EditKind = iota
	DeleteLines
	InsertChars
	DeleteChars
	EraseChars
	ScrollUp
	ScrollDown
)

type Edit struct {
	Kind  EditKind
	Count int
}

func (Edit) isAction() {}

// SetScrollRegion sets the vertical scroll margins (DECSTBM). Top/Bottom
// are 1-based; both zero means "reset to full screen".
type SetScrollRegion struct {
	Top, Bottom int
}

func (SetScrollRegion) isAction() {}

// SetTabStop sets or clears tab stops (HTS, TBC).
type TabStopKind int

const (
	TabStopSet TabStopKind = iota
	TabStopClearCurrent
	TabStopClearAll
)

type SetTabStop struct {
	Kind TabStopKind
}

func (SetTabStop) isAction() {}

// SGR carries one Select Graphic Rendition change. A single CSI ... m
// sequence with multiple parameters decodes to multiple SGR actions
// applied in order, matching how the parameters are meant to compose.
type SGR struct {
	Attr SGRAttribute
}

func (SGR) isAction() {}

// SetMode sets or resets an ANSI or DEC-private mode. Private reports
// whether Mode came from a CSI ? ... h/l sequence.
type SetMode struct {
	Mode    int
	Private bool
	Enable  bool
}

func (SetMode) isAction() {}

// DesignateCharset assigns a character set to one of the G0-G3 slots
// (ESC ( / ) / * / + <charset>).
type DesignateCharset struct {
	Index   CharsetIndex
	Charset Charset
}

func (DesignateCharset) isAction() {}

// InvokeCharset switches the active slot: SO selects G1, SI selects G0.
// The locking shifts ESC n/o are not recognized.
type InvokeCharset struct {
	Index CharsetIndex
}

func (InvokeCharset) isAction() {}

// SetTitle sets the window/icon title (OSC 0/1/2).
type SetTitle struct {
	IconTitle   bool
	WindowTitle bool
	Title       string
}

func (SetTitle) isAction() {}

// SetPaletteColor assigns an RGB color to a palette slot (OSC 4) or to
// one of the dynamic colors (OSC 10/11/12 foreground/background/cursor).
type DynamicColorSlot int

const (
	DynamicColorForeground DynamicColorSlot = iota
	DynamicColorBackground
	DynamicColorCursor
)

type SetPaletteColor struct {
	Index int
	Color RGB
}

func (SetPaletteColor) isAction() {}

type SetDynamicColor struct {
	Slot  DynamicColorSlot
	Color RGB
}

func (SetDynamicColor) isAction() {}

// ResetColor restores a palette slot (OSC 104) or dynamic color (OSC
// 110/111/112) to its default. With Dynamic set, Slot is reset and
// Index is ignored.
type ResetColor struct {
	Index   int
	Dynamic bool
	Slot    DynamicColorSlot
}

func (ResetColor) isAction() {}

// Hyperlink opens (URI non-empty) or closes (URI empty) an OSC 8
// hyperlink span starting at the next printed cell.
type Hyperlink struct {
	ID  string
	URI string
}

func (Hyperlink) isAction() {}

// Clipboard carries an OSC 52 clipboard read/write request. Data is
// already base64-decoded when Write is true; for a read request
// (Data == nil, Write == false) the sink is expected to reply out of
// band via its own host boundary, not through the Action stream.
type Clipboard struct {
	Selector byte // 'c' (clipboard), 'p' (primary), 's' (selection), etc.
	Write    bool
	Data     []byte
}

func (Clipboard) isAction() {}

// SyncUpdate enters or leaves a synchronized-update batch (DEC private
// mode 2026, CSI ? 2026 h/l).
type SyncUpdate struct {
	Begin bool
}

func (SyncUpdate) isAction() {}

// KittyKeyboard pushes/pops/applies a kitty keyboard protocol mode change,
// or queries the current mode (KeyboardModeQuery).
type KeyboardModeOp int

const (
	KeyboardModeApply KeyboardModeOp = iota
	KeyboardModePush
	KeyboardModePop
	KeyboardModeQuery
)

type KittyKeyboard struct {
	Op    KeyboardModeOp
	Modes KeyboardMode
	Apply KittyApplyBehavior
	PopN  int
}

func (KittyKeyboard) isAction() {}

// ModifyOtherKeysMode sets XTMODKEYS' modifyOtherKeys state (CSI > 4 ; n m).
type ModifyOtherKeysMode struct {
	State ModifyOtherKeysState
}

func (ModifyOtherKeysMode) isAction() {}

// DeviceAttributes requests a DA1/DA2/DA3 reply be written back to the
// host. Interpreter emits it through the Sink; the Sink's owner (the
// root package's Instance) synthesizes and queues the reply bytes.
type DeviceAttributesKind int

const (
	DA1 DeviceAttributesKind = iota
	DA2
	DA3
)

type DeviceAttributes struct {
	Kind DeviceAttributesKind
}

func (DeviceAttributes) isAction() {}

// DeviceStatusReport requests a cursor-position report (CPR or
// DECXCPR). The DSR status request (CSI 5 n) is answered by Interpreter
// directly and never produces this Action.
type DeviceStatusReport struct {
	// ExtendedCursorPosition requests DECXCPR (CSI ? 6 n) instead of
	// plain CPR (CSI 6 n).
	ExtendedCursorPosition bool
	CursorPosition         bool
}

func (DeviceStatusReport) isAction() {}

// ReportMode requests a DECRQM reply (CSI Ps $p / CSI ? Ps $p) stating
// whether Mode is set, reset, or unrecognized. Answered by whatever owns
// the live mode state (the root package's Instance, via Surface), since
// Interpreter doesn't track applied mode values itself.
type ReportMode struct {
	Mode    int
	Private bool
}

func (ReportMode) isAction() {}

// WindowOps carries an xterm window-operations request (CSI Ps ; ... t).
// Op 14 and 18 ask for a size reply (pixel and character-cell
// respectively); 22/23 push/pop the window/icon title stack. Params holds
// any parameters after Op (e.g. the title-stack selector for 22/23).
type WindowOps struct {
	Op     int
	Params []int64
}

func (WindowOps) isAction() {}

// ModifyOtherKeysQuery requests the current modifyOtherKeys state be
// reported back (CSI ? 4 m), distinct from ModifyOtherKeysMode, which
// sets it.
type ModifyOtherKeysQuery struct{}

func (ModifyOtherKeysQuery) isAction() {}

// Unspecified carries a recognized-but-unmapped CSI sequence, preserving
// its raw parameters for diagnostics or passthrough. Mirrors
// otty-escape's CsiSequence::Unspecified variant.
type Unspecified struct {
	Params              []int64
	Intermediates       []byte
	Final               byte
	ParametersTruncated bool
}

func (Unspecified) isAction() {}

// DCSPassthrough carries the full payload of a recognized Device Control
// String once closed (e.g. DECRQSS, sixel/kitty graphics, tmux control
// mode). The surface layer is not expected to rasterize graphics; it
// records the span so a renderer that understands the payload can act
// on it.
type DCSPassthrough struct {
	Params        []int64
	Intermediates []byte
	Final         byte
	Payload       []byte
}

func (DCSPassthrough) isAction() {}
