package surface

// Snapshot returns the current immutable view, building one only if
// something changed since the last call (or reusing the batch's frozen
// snapshot while a sync update is in progress), per spec.md's 4.3
// coalescing and "one snapshot per batch" contracts.
func (s *Surface) Snapshot() *Snapshot {
	if s.sync.active() && s.lastSnapshot != nil {
		return s.lastSnapshot
	}
	if !s.dirty && s.lastSnapshot != nil {
		return s.lastSnapshot
	}
	snap := s.buildSnapshot()
	s.lastSnapshot = snap
	s.dirty = false
	s.dmg.clear()
	return snap
}

func (s *Surface) buildSnapshot() *Snapshot {
	g := s.activeGrid()
	rows := g.rows
	cells := make([][]Cell, rows)
	offset := s.displayOffset
	if s.usingAlt {
		offset = 0
	}
	for r := 0; r < rows; r++ {
		fromHistory := offset - r
		var src []Cell
		if fromHistory > 0 {
			src = s.scrollbackBuf.Row(s.scrollbackBuf.Len() - fromHistory)
		} else {
			gridRow := -fromHistory
			if gridRow < len(g.cells) {
				src = g.cells[gridRow]
			}
		}
		row := make([]Cell, g.cols)
		copy(row, src)
		cells[r] = row
	}

	dmgLines := make([]lineDamage, len(s.dmg.lines))
	copy(dmgLines, s.dmg.lines)

	return &Snapshot{
		Cols:           g.cols,
		Rows:           rows,
		Cells:          cells,
		Cursor:         s.cursor,
		Modes:          s.modes,
		DisplayOffset:  offset,
		Selection:      s.selection,
		PaletteVersion: s.palette.version,
		Title:          s.title,

		damageLines:    dmgLines,
		fullClear:      s.dmg.fullClear,
		titleChanged:   s.dmg.titleChanged,
		paletteChanged: s.dmg.paletteChanged,
		cursorMoved:    s.dmg.cursorMoved,
		modeChanged:    s.dmg.modeChanged,

		hyperlinks: s.links,
	}
}
