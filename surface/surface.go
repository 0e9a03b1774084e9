package surface

import (
	"log"
	"time"

	"github.com/phroun/vtsurface/escape"
)

// Surface applies an Action stream to a grid and produces Snapshots.
// It implements escape.Sink directly; the root vtsurface package wraps
// it to additionally answer DSR/DA queries (which need cursor state
// Surface owns but Interpreter does not — see DESIGN.md).
var _ escape.Sink = (*Surface)(nil)

// EventKind enumerates the side-channel events spec.md's 4.3 apply()
// description says Surface "may emit" alongside grid mutation.
type EventKind int

const (
	EventBell EventKind = iota
	EventTitleChanged
	EventIconTitleChanged
	EventCursorShapeChanged
	EventMouseCursorIcon
	EventHyperlinkActivated
	EventModeChanged
	EventChildSizeRequested
	EventClipboard
)

// Event is a side-channel notification accumulated during Apply and
// drained by the owner (the root package's Instance) after each chunk.
type Event struct {
	Kind      EventKind
	Title     string
	Style     escape.CursorStyle
	Name      string
	LinkID    string
	LinkURI   string
	Mode      int
	ModeOn    bool
	Cols, Rows int
	Clipboard Clipboard
}

// Clipboard carries an OSC 52 read/write request for the host to
// service out of band.
type Clipboard struct {
	Selector byte
	Write    bool
	Data     []byte
}

// Options configures a new Surface. Grounded on the teacher's buffer.go
// constructor parameters (cols, rows, scrollback capacity) plus
// SPEC_FULL.md's ambient configuration section.
type Options struct {
	Cols, Rows       int
	ScrollbackLines  int
	AmbiguousIsWide  bool
}

// Surface is the grid, cursor, modes, scrollback, selection, and
// palette for one terminal instance. Not internally thread-safe — per
// spec.md §5 it is driven by a single owning loop.
type Surface struct {
	opts Options

	primary   *grid
	alternate *grid
	usingAlt  bool

	cursor      Cursor
	saved       SavedCursor
	savedAlt    SavedCursor
	charsets    [4]escape.Charset
	activeSlot  escape.CharsetIndex

	modes Modes

	curFG, curBG, curUL escape.ColorSpec
	curAttrs            CellAttrs
	curHyperlink        uint32

	scrollbackBuf *scrollback
	displayOffset int

	selection Selection
	palette   *palette
	links     *hyperlinkTable

	dmg *damage
	sync *syncState

	title, iconTitle string
	titleStack       []titleStackEntry
	kittyModes       escape.KeyboardMode
	modifyOtherKeys  escape.ModifyOtherKeysState

	events []Event

	lastSnapshot *Snapshot
	dirty        bool

	Logger *log.Logger
}

// NewSurface builds a Surface at the given geometry. Grounded on the
// teacher's NewBuffer constructor in buffer.go.
func NewSurface(opts Options) *Surface {
	if opts.Cols < 1 {
		opts.Cols = 1
	}
	if opts.Rows < 1 {
		opts.Rows = 1
	}
	s := &Surface{
		opts:          opts,
		primary:       newGrid(opts.Cols, opts.Rows),
		alternate:     newGrid(opts.Cols, opts.Rows),
		scrollbackBuf: newScrollback(opts.ScrollbackLines),
		palette:       newPalette(),
		links:         newHyperlinkTable(),
		dmg:           newDamage(opts.Rows),
		sync:          newSyncState(),
		modes:         defaultModes(),
	}
	s.cursor.Visible = true
	s.charsets = [4]escape.Charset{escape.CharsetASCII, escape.CharsetASCII, escape.CharsetASCII, escape.CharsetASCII}
	s.dirty = true
	return s
}

func (s *Surface) activeGrid() *grid {
	if s.usingAlt {
		return s.alternate
	}
	return s.primary
}

func (s *Surface) emit(e Event) { s.events = append(s.events, e) }

// DrainEvents returns and clears the side-channel events accumulated
// since the last call.
func (s *Surface) DrainEvents() []Event {
	e := s.events
	s.events = nil
	return e
}

// Resize reallocates the grid, clamping cursor/selection and marking
// full damage, per spec.md's 4.3 resize() contract. Soft-wrap reflow
// is not attempted; content is anchored top-left, matching the
// teacher's buffer.go resize behavior for non-reflowing resizes.
func (s *Surface) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.opts.Cols, s.opts.Rows = cols, rows
	s.primary.resize(cols, rows, s.curBG)
	s.alternate.resize(cols, rows, s.curBG)
	s.dmg.resize(rows)
	s.cursor.Row = clampInt(s.cursor.Row, 0, rows-1)
	s.cursor.Col = clampInt(s.cursor.Col, 0, cols-1)
	s.selection.clampToResize(cols, rows)
	s.dmg.markFullClear()
	s.dirty = true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetDisplayOffset requests a scrollback-offset view, clamped to
// [0, history length]. Does not move the cursor.
func (s *Surface) SetDisplayOffset(n int) {
	max := s.scrollbackBuf.Len()
	if n < 0 {
		n = 0
	}
	if n > max {
		n = max
	}
	if n != s.displayOffset {
		s.displayOffset = n
		s.dmg.markFullClear()
		s.dirty = true
	}
}

func (s *Surface) SetSelection(anchor, head Point, kind SelectionKind) {
	s.selection.set(anchor, head, kind)
	s.dirty = true
}

func (s *Surface) ClearSelection() {
	s.selection.clear()
	s.dirty = true
}

// CursorPosition returns the 1-based row/col the host should report in
// a DSR 6 / DECXCPR reply.
func (s *Surface) CursorPosition() (row, col int) {
	return s.cursor.Row + 1, s.cursor.Col + 1
}

// KeyboardMode returns the current kitty keyboard protocol mask, for a
// `CSI ? u` query reply.
func (s *Surface) KeyboardMode() escape.KeyboardMode { return s.kittyModes }

// ModifyOtherKeys returns the current modifyOtherKeys state, for a
// `CSI > 4 ; Ps m` query reply.
func (s *Surface) ModifyOtherKeys() escape.ModifyOtherKeysState { return s.modifyOtherKeys }

// ModeState answers a DECRQM query for mode, for a `CSI [?]Ps $p` reply.
func (s *Surface) ModeState(mode int, private bool) int {
	return s.modes.report(mode, private)
}

// WindowSize returns the current grid geometry and an assumed per-cell
// pixel size, for an XTWINOPS 14/18 size-report reply. vtsurface has no
// real window-pixel geometry to draw on, so PixelCols/PixelRows are
// derived from a fixed cell size rather than measured.
func (s *Surface) WindowSize() (cols, rows, pixelCols, pixelRows int) {
	const cellWidthPx, cellHeightPx = 8, 16
	return s.opts.Cols, s.opts.Rows, s.opts.Cols * cellWidthPx, s.opts.Rows * cellHeightPx
}

// Tick advances the synchronized-update watchdog. Grounded on spec.md
// §5's tick(now) hook.
func (s *Surface) Tick(now time.Time) {
	if s.sync.checkWatchdog(now) {
		if s.Logger != nil {
			s.Logger.Printf("vtsurface: sync-update watchdog forced flush")
		}
		s.dirty = true
	}
}

// Apply dispatches one Action against the grid. Never fails; invalid
// combinations are clamped, per spec.md's 4.3 contract.
func (s *Surface) Apply(a escape.Action) {
	switch act := a.(type) {
	case escape.Print:
		s.applyPrint(act.Rune)
	case escape.Control:
		s.applyControl(act.Function)
	case escape.CursorMove:
		s.applyCursorMove(act)
	case escape.SetCursorStyle:
		s.cursor.Style = act.Style
		s.emit(Event{Kind: EventCursorShapeChanged, Style: act.Style})
	case escape.Erase:
		s.applyErase(act.Kind)
	case escape.Edit:
		s.applyEdit(act)
	case escape.SetScrollRegion:
		g := s.activeGrid()
		if act.Top == 0 && act.Bottom == 0 {
			g.setScrollRegion(0, g.rows-1)
		} else {
			g.setScrollRegion(act.Top-1, act.Bottom-1)
		}
		s.moveCursorTo(0, 0)
	case escape.SetTabStop:
		s.applyTabStop(act.Kind)
	case escape.SGR:
		s.applySGR(act.Attr)
	case escape.SetMode:
		s.applySetMode(act)
	case escape.DesignateCharset:
		s.charsets[act.Index] = act.Charset
	case escape.InvokeCharset:
		s.activeSlot = act.Index
	case escape.SetTitle:
		s.applySetTitle(act)
	case escape.SetPaletteColor:
		s.palette.setIndex(act.Index, act.Color)
		s.dmg.markPaletteChanged()
		s.dirty = true
	case escape.SetDynamicColor:
		s.palette.setDynamic(act.Slot, act.Color)
		s.dmg.markPaletteChanged()
		s.dirty = true
	case escape.ResetColor:
		if act.Dynamic {
			s.palette.resetDynamic(act.Slot)
		} else {
			s.palette.resetIndex(act.Index)
		}
		s.dmg.markPaletteChanged()
		s.dirty = true
	case escape.Hyperlink:
		s.curHyperlink = s.links.open(act.ID, act.URI)
		if act.URI != "" {
			s.emit(Event{Kind: EventHyperlinkActivated, LinkID: act.ID, LinkURI: act.URI})
		}
	case escape.Clipboard:
		s.emit(Event{Kind: EventClipboard, Clipboard: Clipboard{Selector: act.Selector, Write: act.Write, Data: act.Data}})
	case escape.SyncUpdate:
		s.applySyncUpdate(act.Begin)
	case escape.KittyKeyboard:
		if act.Op != escape.KeyboardModeQuery {
			s.kittyModes = act.Modes
		}
	case escape.ModifyOtherKeysMode:
		s.modifyOtherKeys = act.State
	case escape.WindowOps:
		s.applyWindowOps(act)
	case escape.DeviceAttributes, escape.DeviceStatusReport, escape.ReportMode, escape.ModifyOtherKeysQuery:
		// Answered by the root package, which owns the reply channel
		// and queries CursorPosition/KeyboardMode/ModeState/ModifyOtherKeys
		// before writing back.
	case escape.Unspecified:
		if s.Logger != nil {
			s.Logger.Printf("vtsurface: unspecified CSI params=%v inter=%q final=%q", act.Params, act.Intermediates, act.Final)
		}
	case escape.DCSPassthrough:
		if s.Logger != nil {
			s.Logger.Printf("vtsurface: DCS passthrough final=%q len=%d", act.Final, len(act.Payload))
		}
	}
}
