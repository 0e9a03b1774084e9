package surface

import (
	"time"

	"github.com/phroun/vtsurface/escape"
)

// applyPrint implements spec.md's 4.3 printing algorithm: deferred
// wrap, wide-glyph pre-wrap, insert-mode shift, combining-mark fold,
// charset translation.
func (s *Surface) applyPrint(r rune) {
	g := s.activeGrid()

	mapped := s.charsets[s.activeSlot].Map(r)

	if isCombiningMark(mapped) && s.cursor.Col > 0 {
		row := s.cursorRow()
		col := s.cursor.Col - 1
		if s.cursor.WrapPending {
			col = g.cols - 1
		}
		if col >= 0 && col < g.cols {
			g.cells[row][col].Combining = append(g.cells[row][col].Combining, mapped)
			s.dmg.markLine(row, col, col)
			s.dirty = true
		}
		return
	}

	width := runeWidth(mapped)
	if width <= 0 {
		width = 1
	}

	if s.cursor.WrapPending && s.modes.AutoWrap {
		s.lineFeed()
		s.cursor.Col = 0
		s.cursor.WrapPending = false
	}

	if width == 2 && s.cursor.Col == g.cols-1 {
		s.lineFeed()
		s.cursor.Col = 0
		s.cursor.WrapPending = false
	}

	if s.modes.Insert {
		g.insertChars(s.cursorRow(), s.cursor.Col, width, s.curBG)
	}

	row := s.cursorRow()
	cell := Cell{
		Rune:        mapped,
		Foreground:  s.curFG,
		Background:  s.curBG,
		Underline:   s.curUL,
		Attrs:       s.curAttrs,
		Width:       width,
		HyperlinkID: s.curHyperlink,
	}
	g.cells[row][s.cursor.Col] = cell
	if width == 2 && s.cursor.Col+1 < g.cols {
		g.cells[row][s.cursor.Col+1] = Cell{Width: 0, Background: s.curBG, HyperlinkID: s.curHyperlink}
	}
	s.dmg.markLine(row, s.cursor.Col, s.cursor.Col+width-1)

	s.cursor.Col += width
	if s.cursor.Col >= g.cols {
		s.cursor.Col = g.cols - 1
		s.cursor.WrapPending = true
	}
	s.dmg.markCursorMoved()
	s.dirty = true
}

// cursorRow returns the cursor's absolute grid row. Cursor.Row is
// stored absolute in both addressing modes; origin-mode translation of
// CUP/VPA targets happens once, in moveCursorTo.
func (s *Surface) cursorRow() int {
	return s.cursor.Row
}

// lineFeed implements spec.md's 4.3 line-feed algorithm: scroll the
// region if at the bottom margin, else move the cursor down.
func (s *Surface) lineFeed() {
	g := s.activeGrid()
	atBottom := s.cursorRow() == g.scrollBot
	if atBottom {
		var sb *scrollback
		if !s.usingAlt && g.scrollTop == 0 {
			sb = s.scrollbackBuf
		}
		g.scrollUp(1, s.curBG, sb)
		s.dmg.markFullClear()
	} else if s.cursor.Row < g.rows-1 {
		s.cursor.Row++
	}
	if s.modes.LineFeedNewLine {
		s.cursor.Col = 0
	}
	s.cursor.WrapPending = false
	s.dirty = true
}

func (s *Surface) reverseIndex() {
	g := s.activeGrid()
	if s.cursorRow() == g.scrollTop {
		g.scrollDown(1, s.curBG)
		s.dmg.markFullClear()
	} else if s.cursor.Row > 0 {
		s.cursor.Row--
	}
	s.cursor.WrapPending = false
	s.dirty = true
}

func (s *Surface) applyControl(fn escape.ControlFunction) {
	switch fn {
	case escape.CtrlBell:
		s.emit(Event{Kind: EventBell})
	case escape.CtrlBackspace:
		if s.cursor.Col > 0 {
			s.cursor.Col--
		}
		s.cursor.WrapPending = false
	case escape.CtrlTab:
		s.cursor.Col = s.activeGrid().nextTabStop(s.cursor.Col)
	case escape.CtrlLineFeed:
		s.lineFeed()
	case escape.CtrlCarriageReturn:
		s.cursor.Col = 0
		s.cursor.WrapPending = false
	case escape.CtrlReverseIndex:
		s.reverseIndex()
	case escape.CtrlIndex:
		s.lineFeed()
	case escape.CtrlNextLine:
		s.lineFeed()
		s.cursor.Col = 0
	case escape.CtrlSetHorizontalTab:
		s.activeGrid().setTabStop(s.cursor.Col)
	case escape.CtrlSaveCursor:
		s.saveCursor()
	case escape.CtrlRestoreCursor:
		s.restoreCursor()
	case escape.CtrlScreenAlignmentTest:
		s.decAlignmentTest()
	case escape.CtrlSetKeypadApplicationMode, escape.CtrlUnsetKeypadApplicationMode:
		// Keypad mode affects key-encoding, not grid state; surfaced to
		// the host via ModeChanged if it cares.
	case escape.CtrlFullReset:
		s.reset(true)
	case escape.CtrlSoftReset:
		s.reset(false)
	}
	s.dirty = true
}

func (s *Surface) saveCursor() {
	sv := SavedCursor{Cursor: s.cursor, ActiveCharset: s.activeSlot, OriginMode: s.modes.OriginMode}
	if s.usingAlt {
		s.savedAlt = sv
	} else {
		s.saved = sv
	}
}

func (s *Surface) restoreCursor() {
	var sv SavedCursor
	if s.usingAlt {
		sv = s.savedAlt
	} else {
		sv = s.saved
	}
	s.cursor = sv.Cursor
	s.activeSlot = sv.ActiveCharset
	s.modes.OriginMode = sv.OriginMode
	g := s.activeGrid()
	s.cursor.Row = clampInt(s.cursor.Row, 0, g.rows-1)
	s.cursor.Col = clampInt(s.cursor.Col, 0, g.cols-1)
}

func (s *Surface) decAlignmentTest() {
	g := s.activeGrid()
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			g.cells[r][c] = Cell{Rune: 'E', Width: 1}
		}
	}
	s.dmg.markFullClear()
}

func (s *Surface) reset(full bool) {
	cols, rows := s.opts.Cols, s.opts.Rows
	s.primary = newGrid(cols, rows)
	s.alternate = newGrid(cols, rows)
	s.usingAlt = false
	s.cursor = Cursor{Visible: true}
	s.saved, s.savedAlt = SavedCursor{}, SavedCursor{}
	s.charsets = [4]escape.Charset{escape.CharsetASCII, escape.CharsetASCII, escape.CharsetASCII, escape.CharsetASCII}
	s.activeSlot = escape.G0
	s.modes = defaultModes()
	s.curFG, s.curBG, s.curUL = escape.ColorSpec{}, escape.ColorSpec{}, escape.ColorSpec{}
	s.curAttrs = 0
	s.curHyperlink = 0
	if full {
		s.scrollbackBuf.clear()
		s.palette = newPalette()
		s.links = newHyperlinkTable()
		s.title, s.iconTitle = "", ""
	}
	s.dmg.markFullClear()
	s.dirty = true
}

func (s *Surface) moveCursorTo(row, col int) {
	g := s.activeGrid()
	top, bot := 0, g.rows-1
	if s.modes.OriginMode {
		top, bot = g.scrollTop, g.scrollBot
		row += top
	}
	s.cursor.Row = clampInt(row, top, bot)
	s.cursor.Col = clampInt(col, 0, g.cols-1)
	s.cursor.WrapPending = false
	s.dmg.markCursorMoved()
}

func (s *Surface) applyCursorMove(m escape.CursorMove) {
	g := s.activeGrid()
	n := m.N
	if n <= 0 {
		n = 1
	}
	switch m.Kind {
	case escape.CursorUp:
		top := 0
		if s.modes.OriginMode {
			top = g.scrollTop
		}
		s.cursor.Row = clampInt(s.cursor.Row-n, top, g.rows-1)
		s.cursor.WrapPending = false
	case escape.CursorDown:
		bot := g.rows - 1
		if s.modes.OriginMode {
			bot = g.scrollBot
		}
		s.cursor.Row = clampInt(s.cursor.Row+n, 0, bot)
		s.cursor.WrapPending = false
	case escape.CursorForward:
		s.cursor.Col = clampInt(s.cursor.Col+n, 0, g.cols-1)
		s.cursor.WrapPending = false
	case escape.CursorBack:
		s.cursor.Col = clampInt(s.cursor.Col-n, 0, g.cols-1)
		s.cursor.WrapPending = false
	case escape.CursorNextLine:
		bot := g.rows - 1
		if s.modes.OriginMode {
			bot = g.scrollBot
		}
		s.cursor.Row = clampInt(s.cursor.Row+n, 0, bot)
		s.cursor.Col = 0
		s.cursor.WrapPending = false
	case escape.CursorPrevLine:
		top := 0
		if s.modes.OriginMode {
			top = g.scrollTop
		}
		s.cursor.Row = clampInt(s.cursor.Row-n, top, g.rows-1)
		s.cursor.Col = 0
		s.cursor.WrapPending = false
	case escape.CursorHorizontalAbsolute:
		s.cursor.Col = clampInt(n-1, 0, g.cols-1)
		s.cursor.WrapPending = false
	case escape.CursorVerticalAbsolute:
		s.moveCursorTo(n-1, s.cursor.Col)
	case escape.CursorPosition:
		row, col := m.Row, m.Col
		if row <= 0 {
			row = 1
		}
		if col <= 0 {
			col = 1
		}
		s.moveCursorTo(row-1, col-1)
	}
	s.dmg.markCursorMoved()
	s.dirty = true
}

func (s *Surface) applyErase(kind escape.EraseKind) {
	g := s.activeGrid()
	row := s.cursorRow()
	switch kind {
	case escape.EraseLineRight:
		g.eraseLine(row, s.cursor.Col, g.cols-1, s.curBG)
		s.dmg.markLine(row, s.cursor.Col, g.cols-1)
	case escape.EraseLineLeft:
		g.eraseLine(row, 0, s.cursor.Col, s.curBG)
		s.dmg.markLine(row, 0, s.cursor.Col)
	case escape.EraseLineAll:
		g.eraseLine(row, 0, g.cols-1, s.curBG)
		s.dmg.markLine(row, 0, g.cols-1)
	case escape.EraseDisplayBelow:
		g.eraseLine(row, s.cursor.Col, g.cols-1, s.curBG)
		for r := row + 1; r < g.rows; r++ {
			g.eraseLine(r, 0, g.cols-1, s.curBG)
		}
		s.dmg.markFullClear()
	case escape.EraseDisplayAbove:
		g.eraseLine(row, 0, s.cursor.Col, s.curBG)
		for r := 0; r < row; r++ {
			g.eraseLine(r, 0, g.cols-1, s.curBG)
		}
		s.dmg.markFullClear()
	case escape.EraseDisplayAll:
		for r := 0; r < g.rows; r++ {
			g.eraseLine(r, 0, g.cols-1, s.curBG)
		}
		s.dmg.markFullClear()
	case escape.EraseDisplaySaved:
		if !s.usingAlt {
			s.scrollbackBuf.clear()
		}
		s.dmg.markFullClear()
	}
	s.dirty = true
}

func (s *Surface) applyEdit(e escape.Edit) {
	g := s.activeGrid()
	row := s.cursorRow()
	n := e.Count
	if n <= 0 {
		n = 1
	}
	switch e.Kind {
	case escape.InsertLines:
		g.insertLines(row, n, s.curBG)
		s.dmg.markFullClear()
	case escape.DeleteLines:
		g.deleteLines(row, n, s.curBG)
		s.dmg.markFullClear()
	case escape.InsertChars:
		g.insertChars(row, s.cursor.Col, n, s.curBG)
		s.dmg.markLine(row, s.cursor.Col, g.cols-1)
	case escape.DeleteChars:
		g.deleteChars(row, s.cursor.Col, n, s.curBG)
		s.dmg.markLine(row, s.cursor.Col, g.cols-1)
	case escape.EraseChars:
		to := s.cursor.Col + n - 1
		if to >= g.cols {
			to = g.cols - 1
		}
		g.eraseLine(row, s.cursor.Col, to, s.curBG)
		s.dmg.markLine(row, s.cursor.Col, to)
	case escape.ScrollUp:
		var sb *scrollback
		if !s.usingAlt && g.scrollTop == 0 {
			sb = s.scrollbackBuf
		}
		g.scrollUp(n, s.curBG, sb)
		s.dmg.markFullClear()
	case escape.ScrollDown:
		g.scrollDown(n, s.curBG)
		s.dmg.markFullClear()
	}
	s.dirty = true
}

func (s *Surface) applyTabStop(kind escape.TabStopKind) {
	g := s.activeGrid()
	switch kind {
	case escape.TabStopSet:
		g.setTabStop(s.cursor.Col)
	case escape.TabStopClearCurrent:
		g.clearTabStop(s.cursor.Col)
	case escape.TabStopClearAll:
		g.clearAllTabStops()
	}
}

func (s *Surface) applySetTitle(a escape.SetTitle) {
	if a.WindowTitle {
		s.title = a.Title
		s.dmg.markTitleChanged()
		s.emit(Event{Kind: EventTitleChanged, Title: a.Title})
	}
	if a.IconTitle {
		s.iconTitle = a.Title
		s.emit(Event{Kind: EventIconTitleChanged, Title: a.Title})
	}
	s.dirty = true
}

func (s *Surface) applySetMode(a escape.SetMode) {
	before := s.modes
	// Entering/leaving the alternate screen (1049) is handled here
	// rather than in modes.apply, since it needs to swap grids.
	if a.Private && escape.NamedPrivateMode(a.Mode) == escape.PrivateModeSwapScreenAndRestoreCursor {
		s.applyAltScreen(a.Enable)
	}
	s.modes.apply(a)
	if before != s.modes {
		s.dmg.markModeChanged()
		s.emit(Event{Kind: EventModeChanged, Mode: a.Mode, ModeOn: a.Enable})
	}
	s.dirty = true
}

func (s *Surface) applyAltScreen(enable bool) {
	if enable == s.usingAlt {
		return
	}
	if enable {
		s.saveCursor()
		s.usingAlt = true
		s.alternate = newGrid(s.opts.Cols, s.opts.Rows)
	} else {
		s.usingAlt = false
		s.restoreCursor()
	}
	s.dmg.markFullClear()
}

// titleStackEntry is one saved window/icon title pair, for XTWINOPS
// 22/23 (push/pop title).
type titleStackEntry struct {
	title, iconTitle string
}

// applyWindowOps implements the stateful subset of XTWINOPS: 22 pushes
// the current window/icon title, 23 pops it back. Ops 14/18 (size
// queries) carry no grid-visible state and are answered directly by the
// owning Instance from geometry it already has.
func (s *Surface) applyWindowOps(act escape.WindowOps) {
	switch act.Op {
	case 22:
		s.titleStack = append(s.titleStack, titleStackEntry{title: s.title, iconTitle: s.iconTitle})
	case 23:
		if len(s.titleStack) == 0 {
			return
		}
		top := s.titleStack[len(s.titleStack)-1]
		s.titleStack = s.titleStack[:len(s.titleStack)-1]
		s.title, s.iconTitle = top.title, top.iconTitle
		s.dmg.markTitleChanged()
		s.emit(Event{Kind: EventTitleChanged, Title: s.title})
		s.emit(Event{Kind: EventIconTitleChanged, Title: s.iconTitle})
	}
	s.dirty = true
}

func (s *Surface) applySyncUpdate(begin bool) {
	if begin {
		s.sync.begin(time.Now())
		return
	}
	if s.sync.end() {
		s.dirty = true
	}
}
