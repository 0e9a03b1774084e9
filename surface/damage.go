package surface

// lineDamage is the dirty column range for one row; MinCol > MaxCol
// means the row is clean.
type lineDamage struct {
	MinCol, MaxCol int
}

func (d lineDamage) empty() bool { return d.MinCol > d.MaxCol }

// damage accumulates per-mutation dirty state between snapshots.
// Grounded on spec.md's 4.3/DATA MODEL Damage description: per-line
// ranges plus global flags, cleared on snapshot. Per-line ranges are
// never collapsed into full_clear automatically; only operations that
// call markFullClear set it.
type damage struct {
	lines          []lineDamage
	fullClear      bool
	titleChanged   bool
	paletteChanged bool
	cursorMoved    bool
	modeChanged    bool
}

func newDamage(rows int) *damage {
	d := &damage{lines: make([]lineDamage, rows)}
	d.clear()
	return d
}

func (d *damage) resize(rows int) {
	d.lines = make([]lineDamage, rows)
	d.clear()
	d.fullClear = true
}

// clear resets all damage after a snapshot has been emitted.
func (d *damage) clear() {
	for i := range d.lines {
		d.lines[i] = lineDamage{MinCol: 1, MaxCol: 0}
	}
	d.fullClear = false
	d.titleChanged = false
	d.paletteChanged = false
	d.cursorMoved = false
	d.modeChanged = false
}

func (d *damage) markLine(row, minCol, maxCol int) {
	if row < 0 || row >= len(d.lines) {
		return
	}
	cur := d.lines[row]
	if cur.empty() {
		d.lines[row] = lineDamage{MinCol: minCol, MaxCol: maxCol}
		return
	}
	if minCol < cur.MinCol {
		cur.MinCol = minCol
	}
	if maxCol > cur.MaxCol {
		cur.MaxCol = maxCol
	}
	d.lines[row] = cur
}

func (d *damage) markFullClear() {
	d.fullClear = true
}

func (d *damage) markCursorMoved() { d.cursorMoved = true }
func (d *damage) markModeChanged() { d.modeChanged = true }
func (d *damage) markTitleChanged() { d.titleChanged = true }
func (d *damage) markPaletteChanged() { d.paletteChanged = true }

// empty reports whether nothing is dirty. Snapshot does not consult
// it; cache reuse there is decided by Surface.dirty.
func (d *damage) empty() bool {
	if d.fullClear || d.titleChanged || d.paletteChanged || d.cursorMoved || d.modeChanged {
		return false
	}
	for _, l := range d.lines {
		if !l.empty() {
			return false
		}
	}
	return true
}
