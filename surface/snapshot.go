package surface

// Snapshot is an immutable, shareable view of a Surface at one instant.
// Grounded on spec.md's 4.3 snapshot() description: size, cursor,
// modes, display offset, damage, cells, selection, palette version,
// title. Once returned from Surface.Snapshot, a Snapshot is never
// mutated; Go's GC lets any number of goroutines hold and read it
// concurrently without the explicit Arc the original needed.
type Snapshot struct {
	Cols, Rows    int
	Cells         [][]Cell
	Cursor        Cursor
	Modes         Modes
	DisplayOffset int
	Selection     Selection
	PaletteVersion uint64
	Title         string

	damageLines    []lineDamage
	fullClear      bool
	titleChanged   bool
	paletteChanged bool
	cursorMoved    bool
	modeChanged    bool

	hyperlinks *hyperlinkTable
	detected   []HyperlinkSpan
	detectedOK bool
}

// LineDamage is one row's dirty column range, exposed read-only.
type LineDamage struct {
	Row            int
	MinCol, MaxCol int
}

// Damage returns the dirty line ranges for this snapshot, re-based by
// DisplayOffset so a renderer that's scrolled back sees damage in
// on-screen coordinates rather than raw grid rows, per SPEC_FULL.md's
// display-offset supplement to spec.md's damage model.
func (s *Snapshot) Damage() (lines []LineDamage, fullClear bool) {
	if s.fullClear {
		return nil, true
	}
	for row, d := range s.damageLines {
		if d.empty() {
			continue
		}
		visibleRow := row + s.DisplayOffset
		if visibleRow < 0 || visibleRow >= s.Rows {
			continue
		}
		lines = append(lines, LineDamage{Row: visibleRow, MinCol: d.MinCol, MaxCol: d.MaxCol})
	}
	return lines, false
}

func (s *Snapshot) TitleChanged() bool   { return s.titleChanged }
func (s *Snapshot) PaletteChanged() bool { return s.paletteChanged }
func (s *Snapshot) CursorMoved() bool    { return s.cursorMoved }
func (s *Snapshot) ModeChanged() bool    { return s.modeChanged }

// HyperlinkSpans recovers contiguous per-row runs of equal HyperlinkID
// from the cell grid, per SPEC_FULL.md's span-recovery supplement to
// otty-surface/src/hyperlink.rs.
func (s *Snapshot) HyperlinkSpans() []HyperlinkSpan {
	var spans []HyperlinkSpan
	for row, line := range s.Cells {
		var cur uint32
		var start int
		flush := func(end int) {
			if cur == 0 {
				return
			}
			if entry, ok := s.hyperlinks.lookup(cur); ok {
				spans = append(spans, HyperlinkSpan{
					URI:   entry.URI,
					Start: Point{Row: row, Col: start},
					End:   Point{Row: row, Col: end},
				})
			}
		}
		for col, c := range line {
			if c.HyperlinkID != cur {
				flush(col - 1)
				cur = c.HyperlinkID
				start = col
			}
		}
		flush(len(line) - 1)
	}
	return spans
}

// DetectedHyperlinks scans cell text for bare URLs using the fixed
// scheme list SPEC_FULL.md's regex-detection supplement names, caching
// the result on first call since it's computed lazily per snapshot.
// OSC 8 spans (HyperlinkSpans) take precedence on overlap; callers
// should check those first.
func (s *Snapshot) DetectedHyperlinks() []HyperlinkSpan {
	if s.detectedOK {
		return s.detected
	}
	var spans []HyperlinkSpan
	for row, line := range s.Cells {
		text := make([]rune, len(line))
		byteOffsetOfCol := make([]int, len(line)+1)
		offset := 0
		for i, c := range line {
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			text[i] = r
			byteOffsetOfCol[i] = offset
			offset += len(string(r))
		}
		byteOffsetOfCol[len(line)] = offset
		str := string(text)
		for _, m := range detectedURLPattern.FindAllStringIndex(str, -1) {
			startCol := colForByteOffset(byteOffsetOfCol, m[0])
			endCol := colForByteOffset(byteOffsetOfCol, m[1]) - 1
			if endCol < startCol || occupied(line, startCol, endCol) {
				continue
			}
			spans = append(spans, HyperlinkSpan{
				URI:   string(text[startCol : endCol+1]),
				Start: Point{Row: row, Col: startCol},
				End:   Point{Row: row, Col: endCol},
			})
		}
	}
	s.detected = spans
	s.detectedOK = true
	return spans
}

func occupied(line []Cell, from, to int) bool {
	for i := from; i <= to && i < len(line); i++ {
		if line[i].HyperlinkID != 0 {
			return true
		}
	}
	return false
}

// colForByteOffset maps a byte offset in the row's joined string back
// to a column index, given byteOffsetOfCol[i] = byte offset at which
// column i begins.
func colForByteOffset(byteOffsetOfCol []int, offset int) int {
	for col := len(byteOffsetOfCol) - 1; col >= 0; col-- {
		if byteOffsetOfCol[col] <= offset {
			return col
		}
	}
	return 0
}
